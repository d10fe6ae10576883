package consul

// AgentConfiguration is the configuration and member information of the
// local agent.
type AgentConfiguration struct {
	Config *AgentConfig      `json:"Config,omitempty"`
	Member *AgentMember      `json:"Member,omitempty"`
	Meta   map[string]string `json:"Meta,omitempty"`
}

// AgentConfig is the subset of agent configuration reported by agent/self.
type AgentConfig struct {
	Datacenter        string `json:"Datacenter,omitempty"`
	PrimaryDatacenter string `json:"PrimaryDatacenter,omitempty"`
	NodeName          string `json:"NodeName,omitempty"`
	NodeID            string `json:"NodeID,omitempty"`
	Server            *bool  `json:"Server,omitempty"`
	Revision          string `json:"Revision,omitempty"`
	Version           string `json:"Version,omitempty"`
}

// AgentMember is the serf member record of the local agent.
type AgentMember struct {
	Name   string            `json:"Name,omitempty"`
	Addr   string            `json:"Addr,omitempty"`
	Port   uint16            `json:"Port,omitempty"`
	Tags   map[string]string `json:"Tags,omitempty"`
	Status int               `json:"Status,omitempty"`
}
