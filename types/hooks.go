package types

import "context"

// Hooks defines callbacks for draft and commit events.
//
// All hooks are optional. They are called synchronously after the session
// lock is released, in the goroutine that performed the operation. Hook
// errors are logged and reported to OnError but never fail the operation.
//
// Example:
//
//	hooks := &seatplan.Hooks{
//	    OnCommitted: func(ctx context.Context, v seatplan.Version) error {
//	        return notifyFrontDesk(ctx, v.EventID, v.VersionNumber)
//	    },
//	}
type Hooks struct {
	// OnDraftChanged is called after every draft mutation with the fresh conflict report.
	OnDraftChanged func(ctx context.Context, eventID string, report ConflictReport) error

	// OnCommitted is called after a draft was promoted and its version stored.
	OnCommitted func(ctx context.Context, version Version) error

	// OnError is called when a hook or a best-effort step fails.
	OnError func(ctx context.Context, err error) error
}
