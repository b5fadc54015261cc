package inventory

import (
	"context"
)

// mockSource is a mock implementation of the Source interface for
// testing the discovery pipeline.
type mockSource struct {
	// Configurable behavior
	listVMsFunc        func(ctx context.Context) ([]string, error)
	resolveAddressFunc func(ctx context.Context, vm string) (string, bool, error)

	// Call tracking
	resolveCalls []string
}

func newMockSource() *mockSource {
	m := &mockSource{}

	// Default: no VMs, every resolution absent
	m.listVMsFunc = func(context.Context) ([]string, error) {
		return nil, nil
	}
	m.resolveAddressFunc = func(_ context.Context, _ string) (string, bool, error) {
		return "", false, nil
	}

	return m
}

func (m *mockSource) ListVMs(ctx context.Context) ([]string, error) {
	return m.listVMsFunc(ctx)
}

func (m *mockSource) ResolveAddress(ctx context.Context, vm string) (string, bool, error) {
	m.resolveCalls = append(m.resolveCalls, vm)
	return m.resolveAddressFunc(ctx, vm)
}
