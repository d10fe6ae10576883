package consul

// ServiceListRequest lists the services of the local agent.
//
// GET agent/services
type ServiceListRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *ServiceListRequest) Build() (*Descriptor[map[string]AgentService], error) {
	req := deref(r)

	return NewRequest[map[string]AgentService](MethodGet, "agent/services").
		Options(req.QueryOptions).
		Build()
}

// ServiceGetRequest reads one service of the local agent. It supports
// blocking on the X-Consul-Index of the response.
//
// GET agent/service/{service_id}
type ServiceGetRequest struct {
	QueryOptions

	ServiceID string
}

// Build implements Endpoint.
func (r *ServiceGetRequest) Build() (*Descriptor[AgentService], error) {
	req := deref(r)

	return NewRequest[AgentService](MethodGet, "agent/service/{service_id}").
		Require("ServiceID", req.ServiceID).
		PathParam("service_id", req.ServiceID).
		Options(req.QueryOptions).
		Build()
}

// ServiceRegisterRequest adds a service to the local agent.
//
// PUT agent/service/register
type ServiceRegisterRequest struct {
	QueryOptions

	Service AgentServiceRegistration
	// ReplaceExistingChecks removes checks not present in this registration.
	ReplaceExistingChecks bool
}

// Build implements Endpoint.
func (r *ServiceRegisterRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "agent/service/register").
		Require("Name", req.Service.Name).
		QueryFlag("replace-existing-checks", req.ReplaceExistingChecks).
		JSONBody(req.Service).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}

// ServiceDeregisterRequest removes a service from the local agent.
//
// PUT agent/service/deregister/{service_id}
type ServiceDeregisterRequest struct {
	QueryOptions

	ServiceID string
}

// Build implements Endpoint.
func (r *ServiceDeregisterRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "agent/service/deregister/{service_id}").
		Require("ServiceID", req.ServiceID).
		PathParam("service_id", req.ServiceID).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}

// ServiceMaintenanceRequest toggles maintenance mode of a service.
//
// PUT agent/service/maintenance/{service_id}
type ServiceMaintenanceRequest struct {
	QueryOptions

	ServiceID string
	Enable    bool
	Reason    string
}

// Build implements Endpoint.
func (r *ServiceMaintenanceRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "agent/service/maintenance/{service_id}").
		Require("ServiceID", req.ServiceID).
		PathParam("service_id", req.ServiceID).
		QueryBool("enable", &req.Enable).
		Query("reason", req.Reason).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}
