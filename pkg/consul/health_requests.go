package consul

import "fmt"

// HealthNodeRequest lists the checks of a node.
//
// GET health/node/{node}
type HealthNodeRequest struct {
	QueryOptions

	Node string
}

// Build implements Endpoint.
func (r *HealthNodeRequest) Build() (*Descriptor[[]HealthCheck], error) {
	req := deref(r)

	return NewRequest[[]HealthCheck](MethodGet, "health/node/{node}").
		Require("Node", req.Node).
		PathParam("node", req.Node).
		Options(req.QueryOptions).
		Build()
}

// HealthChecksRequest lists the checks of a service.
//
// GET health/checks/{service}
type HealthChecksRequest struct {
	QueryOptions

	Service string
}

// Build implements Endpoint.
func (r *HealthChecksRequest) Build() (*Descriptor[[]HealthCheck], error) {
	req := deref(r)

	return NewRequest[[]HealthCheck](MethodGet, "health/checks/{service}").
		Require("Service", req.Service).
		PathParam("service", req.Service).
		Options(req.QueryOptions).
		Build()
}

// HealthServiceRequest lists the instances of a service with their checks.
//
// GET health/service/{service}
type HealthServiceRequest struct {
	QueryOptions

	Service string
	// Tags keeps only instances carrying every tag.
	Tags []string
	// Passing keeps only instances whose checks are all passing.
	Passing bool
}

// Build implements Endpoint.
func (r *HealthServiceRequest) Build() (*Descriptor[[]ServiceEntry], error) {
	return r.build("health/service/{service}")
}

// BuildConnect returns the descriptor of the Connect-capable variant.
//
// GET health/connect/{service}
func (r *HealthServiceRequest) BuildConnect() (*Descriptor[[]ServiceEntry], error) {
	return r.build("health/connect/{service}")
}

// BuildIngress returns the descriptor of the ingress gateway variant.
//
// GET health/ingress/{service}
func (r *HealthServiceRequest) BuildIngress() (*Descriptor[[]ServiceEntry], error) {
	return r.build("health/ingress/{service}")
}

func (r *HealthServiceRequest) build(path string) (*Descriptor[[]ServiceEntry], error) {
	req := deref(r)

	return NewRequest[[]ServiceEntry](MethodGet, path).
		Require("Service", req.Service).
		PathParam("service", req.Service).
		QueryValues("tag", req.Tags).
		QueryFlag("passing", req.Passing).
		Options(req.QueryOptions).
		Build()
}

// HealthStateRequest lists checks in a state: any, passing, warning or
// critical.
//
// GET health/state/{state}
type HealthStateRequest struct {
	QueryOptions

	State string
}

// Build implements Endpoint.
func (r *HealthStateRequest) Build() (*Descriptor[[]HealthCheck], error) {
	req := deref(r)

	b := NewRequest[[]HealthCheck](MethodGet, "health/state/{state}").
		Require("State", req.State)

	if req.State != "" && !validHealthState(req.State) {
		b.Check(&ValidationError{Field: "State", Err: fmt.Errorf("%w: %q", ErrInvalidHealthState, req.State)})
	}

	return b.
		PathParam("state", req.State).
		Options(req.QueryOptions).
		Build()
}
