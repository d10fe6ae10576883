package consul

import "github.com/fivetwenty-io/consul-client/internal/constants"

// SnapshotSaveRequest downloads a point-in-time snapshot of the server
// state. The payload is the gzipped tar archive.
//
// GET snapshot
type SnapshotSaveRequest struct {
	QueryOptions
}

// Build implements Endpoint.
func (r *SnapshotSaveRequest) Build() (*Descriptor[[]byte], error) {
	req := deref(r)

	return NewRequest[[]byte](MethodGet, "snapshot").
		Decoder(RawDecoder()).
		Options(req.QueryOptions).
		Build()
}

// SnapshotRestoreRequest restores a snapshot archive.
//
// PUT snapshot
type SnapshotRestoreRequest struct {
	QueryOptions

	Snapshot []byte
}

// Build implements Endpoint.
func (r *SnapshotRestoreRequest) Build() (*Descriptor[Empty], error) {
	req := deref(r)

	return NewRequest[Empty](MethodPut, "snapshot").
		RequireBytes("Snapshot", req.Snapshot).
		RawBody(req.Snapshot, constants.ContentTypeBinary).
		Decoder(EmptyDecoder()).
		Options(req.QueryOptions).
		Build()
}
