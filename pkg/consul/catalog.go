package consul

// Node is a catalog node.
type Node struct {
	ID              string            `json:"ID,omitempty"`
	Node            string            `json:"Node"`
	Address         string            `json:"Address"`
	Datacenter      string            `json:"Datacenter,omitempty"`
	TaggedAddresses map[string]string `json:"TaggedAddresses,omitempty"`
	Meta            map[string]string `json:"Meta,omitempty"`
	CreateIndex     uint64            `json:"CreateIndex,omitempty"`
	ModifyIndex     uint64            `json:"ModifyIndex,omitempty"`
}

// CatalogService is one instance of a service as seen by the catalog.
type CatalogService struct {
	ID                       string                    `json:"ID,omitempty"`
	Node                     string                    `json:"Node"`
	Address                  string                    `json:"Address,omitempty"`
	Datacenter               string                    `json:"Datacenter,omitempty"`
	TaggedAddresses          map[string]string         `json:"TaggedAddresses,omitempty"`
	NodeMeta                 map[string]string         `json:"NodeMeta,omitempty"`
	ServiceID                string                    `json:"ServiceID,omitempty"`
	ServiceName              string                    `json:"ServiceName,omitempty"`
	ServiceKind              string                    `json:"ServiceKind,omitempty"`
	ServiceAddress           string                    `json:"ServiceAddress,omitempty"`
	ServiceTaggedAddresses   map[string]ServiceAddress `json:"ServiceTaggedAddresses,omitempty"`
	ServiceTags              []string                  `json:"ServiceTags,omitempty"`
	ServiceMeta              map[string]string         `json:"ServiceMeta,omitempty"`
	ServicePort              int                       `json:"ServicePort,omitempty"`
	ServiceWeights           *AgentWeights             `json:"ServiceWeights,omitempty"`
	ServiceEnableTagOverride bool                      `json:"ServiceEnableTagOverride,omitempty"`
	Namespace                string                    `json:"Namespace,omitempty"`
	CreateIndex              uint64                    `json:"CreateIndex,omitempty"`
	ModifyIndex              uint64                    `json:"ModifyIndex,omitempty"`
}

// NodeServiceList is a node together with the services registered on it.
type NodeServiceList struct {
	Node     *Node           `json:"Node,omitempty"`
	Services []*AgentService `json:"Services,omitempty"`
}

// CompoundServiceName identifies a service within a namespace.
type CompoundServiceName struct {
	Name      string `json:"Name"`
	Namespace string `json:"Namespace,omitempty"`
}

// GatewayService links a gateway to a service it exposes.
type GatewayService struct {
	Gateway      CompoundServiceName `json:"Gateway"`
	Service      CompoundServiceName `json:"Service"`
	GatewayKind  string              `json:"GatewayKind,omitempty"`
	Port         int                 `json:"Port,omitempty"`
	Protocol     string              `json:"Protocol,omitempty"`
	Hosts        []string            `json:"Hosts,omitempty"`
	CAFile       string              `json:"CAFile,omitempty"`
	CertFile     string              `json:"CertFile,omitempty"`
	KeyFile      string              `json:"KeyFile,omitempty"`
	SNI          string              `json:"SNI,omitempty"`
	FromWildcard bool                `json:"FromWildcard,omitempty"`
}

// CatalogRegistration is the body of catalog/register.
type CatalogRegistration struct {
	ID              string            `json:"ID,omitempty"`
	Node            string            `json:"Node"`
	Address         string            `json:"Address"`
	Datacenter      string            `json:"Datacenter,omitempty"`
	TaggedAddresses map[string]string `json:"TaggedAddresses,omitempty"`
	NodeMeta        map[string]string `json:"NodeMeta,omitempty"`
	Service         *AgentService     `json:"Service,omitempty"`
	Check           *AgentCheck       `json:"Check,omitempty"`
	Checks          []*HealthCheck    `json:"Checks,omitempty"`
	SkipNodeUpdate  bool              `json:"SkipNodeUpdate,omitempty"`
	Namespace       string            `json:"Namespace,omitempty"`
}

// CatalogDeregistration is the body of catalog/deregister. Without ServiceID
// and CheckID the whole node is removed.
type CatalogDeregistration struct {
	Node       string `json:"Node"`
	Datacenter string `json:"Datacenter,omitempty"`
	ServiceID  string `json:"ServiceID,omitempty"`
	CheckID    string `json:"CheckID,omitempty"`
	Namespace  string `json:"Namespace,omitempty"`
}
