package consul

// Check statuses.
const (
	HealthAny         = "any"
	HealthPassing     = "passing"
	HealthWarning     = "warning"
	HealthCritical    = "critical"
	HealthMaintenance = "maintenance"
)

// AgentCheck is a check registered with the local agent.
type AgentCheck struct {
	Node        string   `json:"Node,omitempty"`
	CheckID     string   `json:"CheckID"`
	Name        string   `json:"Name"`
	Status      string   `json:"Status,omitempty"`
	Notes       string   `json:"Notes,omitempty"`
	Output      string   `json:"Output,omitempty"`
	ServiceID   string   `json:"ServiceID,omitempty"`
	ServiceName string   `json:"ServiceName,omitempty"`
	ServiceTags []string `json:"ServiceTags,omitempty"`
	Type        string   `json:"Type,omitempty"`
	Namespace   string   `json:"Namespace,omitempty"`
}

// AgentServiceCheck defines a check. It is used both inside service
// registrations and, embedded in AgentCheckRegistration, on its own.
type AgentServiceCheck struct {
	CheckID                        string              `json:"CheckID,omitempty"`
	Name                           string              `json:"Name,omitempty"`
	Args                           []string            `json:"Args,omitempty"`
	DockerContainerID              string              `json:"DockerContainerID,omitempty"`
	Shell                          string              `json:"Shell,omitempty"`
	Interval                       string              `json:"Interval,omitempty"`
	Timeout                        string              `json:"Timeout,omitempty"`
	TTL                            string              `json:"TTL,omitempty"`
	HTTP                           string              `json:"HTTP,omitempty"`
	Header                         map[string][]string `json:"Header,omitempty"`
	Method                         string              `json:"Method,omitempty"`
	Body                           string              `json:"Body,omitempty"`
	TCP                            string              `json:"TCP,omitempty"`
	GRPC                           string              `json:"GRPC,omitempty"`
	GRPCUseTLS                     bool                `json:"GRPCUseTLS,omitempty"`
	TLSServerName                  string              `json:"TLSServerName,omitempty"`
	TLSSkipVerify                  bool                `json:"TLSSkipVerify,omitempty"`
	Status                         string              `json:"Status,omitempty"`
	Notes                          string              `json:"Notes,omitempty"`
	SuccessBeforePassing           int                 `json:"SuccessBeforePassing,omitempty"`
	FailuresBeforeCritical         int                 `json:"FailuresBeforeCritical,omitempty"`
	DeregisterCriticalServiceAfter string              `json:"DeregisterCriticalServiceAfter,omitempty"`
}

// AgentCheckRegistration is the body of agent/check/register.
type AgentCheckRegistration struct {
	ID        string `json:"ID,omitempty"`
	ServiceID string `json:"ServiceID,omitempty"`
	Namespace string `json:"Namespace,omitempty"`
	AgentServiceCheck
}

// CheckUpdate is the body of agent/check/update.
type CheckUpdate struct {
	Status string `json:"Status"`
	Output string `json:"Output,omitempty"`
}

func validCheckStatus(status string) bool {
	switch status {
	case HealthPassing, HealthWarning, HealthCritical:
		return true
	default:
		return false
	}
}
