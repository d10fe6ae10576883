package consul

import "context"

// Client is the main interface for the Consul HTTP API.
type Client interface {
	Agent() AgentClient
	Catalog() CatalogClient
	Checks() ChecksClient
	Health() HealthClient
	KV() KVClient
	Services() ServicesClient
	Sessions() SessionsClient
	Snapshots() SnapshotsClient
}

// Request arguments of every resource client method may be nil, which is the
// same as passing the zero value.

// AgentClient reads local agent information.
type AgentClient interface {
	Self(ctx context.Context, req *AgentSelfRequest) (*Response[AgentConfiguration], error)
}

// KVClient provides access to the key/value store.
type KVClient interface {
	Read(ctx context.Context, req *KVReadRequest) (*Response[[]KVPair], error)
	ReadRaw(ctx context.Context, req *KVReadRequest) (*Response[[]byte], error)
	Keys(ctx context.Context, req *KVKeysRequest) (*Response[[]string], error)
	Set(ctx context.Context, req *KVSetRequest) (*Response[bool], error)
	Delete(ctx context.Context, req *KVDeleteRequest) (*Response[bool], error)
}

// CatalogClient provides access to the cluster catalog.
type CatalogClient interface {
	Register(ctx context.Context, req *CatalogRegisterRequest) (*Response[bool], error)
	Deregister(ctx context.Context, req *CatalogDeregisterRequest) (*Response[bool], error)
	Datacenters(ctx context.Context, req *CatalogDatacentersRequest) (*Response[[]string], error)
	Nodes(ctx context.Context, req *CatalogNodesRequest) (*Response[[]Node], error)
	Services(ctx context.Context, req *CatalogServicesRequest) (*Response[map[string][]string], error)
	Service(ctx context.Context, req *CatalogServiceRequest) (*Response[[]CatalogService], error)
	Connect(ctx context.Context, req *CatalogServiceRequest) (*Response[[]CatalogService], error)
	NodeServices(ctx context.Context, req *CatalogNodeServicesRequest) (*Response[NodeServiceList], error)
	GatewayServices(ctx context.Context, req *CatalogGatewayServicesRequest) (*Response[[]GatewayService], error)
}

// ChecksClient manages checks registered with the local agent.
type ChecksClient interface {
	List(ctx context.Context, req *CheckListRequest) (*Response[map[string]AgentCheck], error)
	Register(ctx context.Context, req *CheckRegisterRequest) (*Response[Empty], error)
	Deregister(ctx context.Context, req *CheckDeregisterRequest) (*Response[Empty], error)
	Pass(ctx context.Context, req *CheckTTLRequest) (*Response[Empty], error)
	Warn(ctx context.Context, req *CheckTTLRequest) (*Response[Empty], error)
	Fail(ctx context.Context, req *CheckTTLRequest) (*Response[Empty], error)
	Update(ctx context.Context, req *CheckUpdateRequest) (*Response[Empty], error)
}

// HealthClient queries health information from the catalog.
type HealthClient interface {
	Node(ctx context.Context, req *HealthNodeRequest) (*Response[[]HealthCheck], error)
	Checks(ctx context.Context, req *HealthChecksRequest) (*Response[[]HealthCheck], error)
	Service(ctx context.Context, req *HealthServiceRequest) (*Response[[]ServiceEntry], error)
	Connect(ctx context.Context, req *HealthServiceRequest) (*Response[[]ServiceEntry], error)
	Ingress(ctx context.Context, req *HealthServiceRequest) (*Response[[]ServiceEntry], error)
	State(ctx context.Context, req *HealthStateRequest) (*Response[[]HealthCheck], error)
}

// ServicesClient manages services registered with the local agent.
type ServicesClient interface {
	List(ctx context.Context, req *ServiceListRequest) (*Response[map[string]AgentService], error)
	Get(ctx context.Context, req *ServiceGetRequest) (*Response[AgentService], error)
	Register(ctx context.Context, req *ServiceRegisterRequest) (*Response[Empty], error)
	Deregister(ctx context.Context, req *ServiceDeregisterRequest) (*Response[Empty], error)
	Maintenance(ctx context.Context, req *ServiceMaintenanceRequest) (*Response[Empty], error)
}

// SessionsClient manages sessions.
type SessionsClient interface {
	Create(ctx context.Context, req *SessionCreateRequest) (*Response[SessionID], error)
	Destroy(ctx context.Context, req *SessionDestroyRequest) (*Response[bool], error)
	Info(ctx context.Context, req *SessionInfoRequest) (*Response[[]Session], error)
	Node(ctx context.Context, req *SessionNodeRequest) (*Response[[]Session], error)
	List(ctx context.Context, req *SessionListRequest) (*Response[[]Session], error)
	Renew(ctx context.Context, req *SessionRenewRequest) (*Response[[]Session], error)
}

// SnapshotsClient saves and restores server state.
type SnapshotsClient interface {
	Save(ctx context.Context, req *SnapshotSaveRequest) (*Response[[]byte], error)
	Restore(ctx context.Context, req *SnapshotRestoreRequest) (*Response[Empty], error)
}
