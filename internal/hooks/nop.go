// Package hooks provides the default no-op callbacks for types.Hooks.
package hooks

import (
	"context"

	"github.com/arloliu/seatplan/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the codebase.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, string, types.ConflictReport) error = (*NopHooks)(nil).OnDraftChanged
	_ func(context.Context, types.Version) error                = (*NopHooks)(nil).OnCommitted
	_ func(context.Context, error) error                        = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnDraftChanged: h.OnDraftChanged,
		OnCommitted:    h.OnCommitted,
		OnError:        h.OnError,
	}
}

// Complete returns a copy of h with every nil callback replaced by a no-op.
//
// Parameters:
//   - h: User hooks (may be nil)
//
// Returns:
//   - types.Hooks: Hooks safe to call without nil checks
func Complete(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnDraftChanged != nil {
		out.OnDraftChanged = h.OnDraftChanged
	}
	if h.OnCommitted != nil {
		out.OnCommitted = h.OnCommitted
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnDraftChanged is a no-op implementation.
func (h *NopHooks) OnDraftChanged(_ context.Context, _ string, _ types.ConflictReport) error {
	return nil
}

// OnCommitted is a no-op implementation.
func (h *NopHooks) OnCommitted(_ context.Context, _ types.Version) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ error) error {
	return nil
}
