package consul

// AgentSelfRequest reads the configuration of the local agent.
//
// GET agent/self
type AgentSelfRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *AgentSelfRequest) Build() (*Descriptor[AgentConfiguration], error) {
	req := deref(r)

	return NewRequest[AgentConfiguration](MethodGet, "agent/self").
		Options(req.QueryOptions).
		Build()
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}

	return *p
}
