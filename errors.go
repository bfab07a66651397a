package seatplan

import "github.com/arloliu/seatplan/types"

// Sentinel errors returned by the Planner and Session.
//
// They alias the definitions in the types package so that errors.Is works
// whichever package the caller imports.
var (
	ErrInvalidConfig        = types.ErrInvalidConfig
	ErrRosterSourceRequired = types.ErrRosterSourceRequired
	ErrUnsupportedAlgorithm = types.ErrUnsupportedAlgorithm
	ErrInvalidResult        = types.ErrInvalidResult
	ErrEventIDRequired      = types.ErrEventIDRequired

	ErrNothingToCommit    = types.ErrNothingToCommit
	ErrNothingToUndo      = types.ErrNothingToUndo
	ErrNothingToRedo      = types.ErrNothingToRedo
	ErrUnknownParticipant = types.ErrUnknownParticipant
	ErrUnknownTable       = types.ErrUnknownTable
	ErrTableFull          = types.ErrTableFull

	ErrVersionNotFound  = types.ErrVersionNotFound
	ErrVersionConflict  = types.ErrVersionConflict
	ErrInvalidEventID   = types.ErrInvalidEventID
	ErrStoreUnavailable = types.ErrStoreUnavailable
)
