package mocks

import (
	"context"

	"github.com/dpshade/remindful/internal/service/snapshot"
)

// MockSnapshotService implements snapshot.Service for handler tests.
type MockSnapshotService struct {
	ExportFn func(ctx context.Context) (*snapshot.Snapshot, error)
	ImportFn func(ctx context.Context, snap *snapshot.Snapshot) (*snapshot.ImportResult, error)

	Snapshot *snapshot.Snapshot
	Result   *snapshot.ImportResult
	Err      error
}

var _ snapshot.Service = (*MockSnapshotService)(nil)

func (m *MockSnapshotService) Export(ctx context.Context) (*snapshot.Snapshot, error) {
	if m.ExportFn != nil {
		return m.ExportFn(ctx)
	}
	return m.Snapshot, m.Err
}

func (m *MockSnapshotService) Import(
	ctx context.Context,
	snap *snapshot.Snapshot,
) (*snapshot.ImportResult, error) {
	if m.ImportFn != nil {
		return m.ImportFn(ctx, snap)
	}
	return m.Result, m.Err
}
