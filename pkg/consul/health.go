package consul

import "strings"

// HealthCheck is a check as stored in the catalog.
type HealthCheck struct {
	Node        string   `json:"Node"`
	CheckID     string   `json:"CheckID"`
	Name        string   `json:"Name"`
	Status      string   `json:"Status"`
	Notes       string   `json:"Notes,omitempty"`
	Output      string   `json:"Output,omitempty"`
	ServiceID   string   `json:"ServiceID,omitempty"`
	ServiceName string   `json:"ServiceName,omitempty"`
	ServiceTags []string `json:"ServiceTags,omitempty"`
	Type        string   `json:"Type,omitempty"`
	Namespace   string   `json:"Namespace,omitempty"`
	CreateIndex uint64   `json:"CreateIndex,omitempty"`
	ModifyIndex uint64   `json:"ModifyIndex,omitempty"`
}

// HealthChecks is a list of checks.
type HealthChecks []*HealthCheck

// AggregatedStatus folds the checks into one status. Maintenance wins over
// critical, critical over warning and warning over passing. An empty list
// is passing; an unknown status yields "".
func (c HealthChecks) AggregatedStatus() string {
	var warning, critical, maintenance bool

	for _, check := range c {
		if check == nil {
			continue
		}

		if check.CheckID == nodeMaintCheckID || isServiceMaintCheck(check.CheckID) {
			maintenance = true

			continue
		}

		switch check.Status {
		case HealthPassing:
		case HealthWarning:
			warning = true
		case HealthCritical:
			critical = true
		default:
			return ""
		}
	}

	switch {
	case maintenance:
		return HealthMaintenance
	case critical:
		return HealthCritical
	case warning:
		return HealthWarning
	default:
		return HealthPassing
	}
}

const (
	nodeMaintCheckID        = "_node_maintenance"
	serviceMaintCheckPrefix = "_service_maintenance:"
)

func isServiceMaintCheck(id string) bool {
	return strings.HasPrefix(id, serviceMaintCheckPrefix)
}

// ServiceEntry is a service instance together with its node and checks.
type ServiceEntry struct {
	Node    *Node         `json:"Node,omitempty"`
	Service *AgentService `json:"Service,omitempty"`
	Checks  HealthChecks  `json:"Checks,omitempty"`
}

func validHealthState(state string) bool {
	switch state {
	case HealthAny, HealthPassing, HealthWarning, HealthCritical:
		return true
	default:
		return false
	}
}
