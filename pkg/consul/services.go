package consul

// AgentService is a service registered with an agent.
type AgentService struct {
	Kind              string                    `json:"Kind,omitempty"`
	ID                string                    `json:"ID"`
	Service           string                    `json:"Service"`
	Tags              []string                  `json:"Tags,omitempty"`
	Meta              map[string]string         `json:"Meta,omitempty"`
	Port              int                       `json:"Port,omitempty"`
	Address           string                    `json:"Address,omitempty"`
	TaggedAddresses   map[string]ServiceAddress `json:"TaggedAddresses,omitempty"`
	Weights           *AgentWeights             `json:"Weights,omitempty"`
	EnableTagOverride bool                      `json:"EnableTagOverride,omitempty"`
	ContentHash       string                    `json:"ContentHash,omitempty"`
	Datacenter        string                    `json:"Datacenter,omitempty"`
	Namespace         string                    `json:"Namespace,omitempty"`
	CreateIndex       uint64                    `json:"CreateIndex,omitempty"`
	ModifyIndex       uint64                    `json:"ModifyIndex,omitempty"`
}

// ServiceAddress is a tagged address of a service.
type ServiceAddress struct {
	Address string `json:"Address"`
	Port    int    `json:"Port"`
}

// AgentWeights are DNS SRV weights by health state.
type AgentWeights struct {
	Passing int `json:"Passing"`
	Warning int `json:"Warning"`
}

// AgentServiceRegistration is the body of agent/service/register.
type AgentServiceRegistration struct {
	Kind              string                    `json:"Kind,omitempty"`
	ID                string                    `json:"ID,omitempty"`
	Name              string                    `json:"Name"`
	Tags              []string                  `json:"Tags,omitempty"`
	Port              int                       `json:"Port,omitempty"`
	Address           string                    `json:"Address,omitempty"`
	TaggedAddresses   map[string]ServiceAddress `json:"TaggedAddresses,omitempty"`
	EnableTagOverride bool                      `json:"EnableTagOverride,omitempty"`
	Meta              map[string]string         `json:"Meta,omitempty"`
	Weights           *AgentWeights             `json:"Weights,omitempty"`
	Check             *AgentServiceCheck        `json:"Check,omitempty"`
	Checks            []*AgentServiceCheck      `json:"Checks,omitempty"`
	Namespace         string                    `json:"Namespace,omitempty"`
}
