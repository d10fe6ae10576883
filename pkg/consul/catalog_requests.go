package consul

// CatalogRegisterRequest registers or updates a node, service or check
// directly in the catalog.
//
// PUT catalog/register
type CatalogRegisterRequest struct {
	QueryOptions

	Registration CatalogRegistration
}

// Build implements Endpoint.
func (r *CatalogRegisterRequest) Build() (*Descriptor[bool], error) {
	req := deref(r)

	return NewRequest[bool](MethodPut, "catalog/register").
		Require("Node", req.Registration.Node).
		Require("Address", req.Registration.Address).
		JSONBody(req.Registration).
		Options(req.QueryOptions).
		Build()
}

// CatalogDeregisterRequest removes a node, service or check from the
// catalog.
//
// PUT catalog/deregister
type CatalogDeregisterRequest struct {
	QueryOptions

	Deregistration CatalogDeregistration
}

// Build implements Endpoint.
func (r *CatalogDeregisterRequest) Build() (*Descriptor[bool], error) {
	req := deref(r)

	return NewRequest[bool](MethodPut, "catalog/deregister").
		Require("Node", req.Deregistration.Node).
		JSONBody(req.Deregistration).
		Options(req.QueryOptions).
		Build()
}

// CatalogDatacentersRequest lists known datacenters.
//
// GET catalog/datacenters
type CatalogDatacentersRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *CatalogDatacentersRequest) Build() (*Descriptor[[]string], error) {
	req := deref(r)

	return NewRequest[[]string](MethodGet, "catalog/datacenters").
		Options(req.QueryOptions).
		Build()
}

// CatalogNodesRequest lists nodes.
//
// GET catalog/nodes
type CatalogNodesRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *CatalogNodesRequest) Build() (*Descriptor[[]Node], error) {
	req := deref(r)

	return NewRequest[[]Node](MethodGet, "catalog/nodes").
		Options(req.QueryOptions).
		Build()
}

// CatalogServicesRequest lists services and their tags.
//
// GET catalog/services
type CatalogServicesRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *CatalogServicesRequest) Build() (*Descriptor[map[string][]string], error) {
	req := deref(r)

	return NewRequest[map[string][]string](MethodGet, "catalog/services").
		Options(req.QueryOptions).
		Build()
}

// CatalogServiceRequest lists the nodes providing a service.
//
// GET catalog/service/{service}
type CatalogServiceRequest struct {
	QueryOptions

	Service string
	// Tags keeps only instances carrying every tag.
	Tags []string
}

// Build implements Endpoint.
func (r *CatalogServiceRequest) Build() (*Descriptor[[]CatalogService], error) {
	return r.build("catalog/service/{service}")
}

// BuildConnect returns the descriptor of the Connect-capable variant.
//
// GET catalog/connect/{service}
func (r *CatalogServiceRequest) BuildConnect() (*Descriptor[[]CatalogService], error) {
	return r.build("catalog/connect/{service}")
}

func (r *CatalogServiceRequest) build(path string) (*Descriptor[[]CatalogService], error) {
	req := deref(r)

	return NewRequest[[]CatalogService](MethodGet, path).
		Require("Service", req.Service).
		PathParam("service", req.Service).
		QueryValues("tag", req.Tags).
		Options(req.QueryOptions).
		Build()
}

// CatalogNodeServicesRequest lists the services registered on a node.
//
// GET catalog/node-services/{node}
type CatalogNodeServicesRequest struct {
	QueryOptions

	Node string
}

// Build implements Endpoint.
func (r *CatalogNodeServicesRequest) Build() (*Descriptor[NodeServiceList], error) {
	req := deref(r)

	return NewRequest[NodeServiceList](MethodGet, "catalog/node-services/{node}").
		Require("Node", req.Node).
		PathParam("node", req.Node).
		Options(req.QueryOptions).
		Build()
}

// CatalogGatewayServicesRequest lists the services exposed by a gateway.
//
// GET catalog/gateway-services/{gateway}
type CatalogGatewayServicesRequest struct {
	QueryOptions

	Gateway string
}

// Build implements Endpoint.
func (r *CatalogGatewayServicesRequest) Build() (*Descriptor[[]GatewayService], error) {
	req := deref(r)

	return NewRequest[[]GatewayService](MethodGet, "catalog/gateway-services/{gateway}").
		Require("Gateway", req.Gateway).
		PathParam("gateway", req.Gateway).
		Options(req.QueryOptions).
		Build()
}
