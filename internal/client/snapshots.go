package client

import (
	"context"

	"github.com/fivetwenty-io/consul-client/pkg/consul"
)

// SnapshotsClient implements consul.SnapshotsClient.
type SnapshotsClient struct {
	engine *Engine
}

// NewSnapshotsClient creates a new snapshots client.
func NewSnapshotsClient(engine *Engine) *SnapshotsClient {
	return &SnapshotsClient{engine: engine}
}

// Save implements consul.SnapshotsClient.Save.
func (c *SnapshotsClient) Save(ctx context.Context, req *consul.SnapshotSaveRequest) (*consul.Response[[]byte], error) {
	return Execute[[]byte](ctx, c.engine, req)
}

// Restore implements consul.SnapshotsClient.Restore.
func (c *SnapshotsClient) Restore(ctx context.Context, req *consul.SnapshotRestoreRequest) (*consul.Response[consul.Empty], error) {
	return Execute[consul.Empty](ctx, c.engine, req)
}
