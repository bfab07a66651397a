package seatplan

import "github.com/arloliu/seatplan/types"

// Re-export types from the types package.
//
// Internal packages depend on types rather than on the root package, which
// avoids import cycles while still giving users seatplan.Participant,
// seatplan.Conflict and so on.
type (
	Participant      = types.Participant
	Table            = types.Table
	Assignment       = types.Assignment
	AssignmentResult = types.AssignmentResult
	Summary          = types.Summary
	Algorithm        = types.Algorithm
	Conflict         = types.Conflict
	ConflictType     = types.ConflictType
	ConflictReport   = types.ConflictReport
	Severity         = types.Severity
	FixResult        = types.FixResult
	Version          = types.Version
	Diff             = types.Diff
	Move             = types.Move
)

// Re-export interfaces from the types package for convenience.
type (
	RosterSource     = types.RosterSource
	VersionStore     = types.VersionStore
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export constants from the types package.
const (
	AlgorithmRoundRobin     = types.AlgorithmRoundRobin
	AlgorithmVIPSpread      = types.AlgorithmVIPSpread
	AlgorithmGroupByCompany = types.AlgorithmGroupByCompany

	ConflictCapacityOverflow    = types.ConflictCapacityOverflow
	ConflictDuplicateAssignment = types.ConflictDuplicateAssignment
	ConflictUnassigned          = types.ConflictUnassigned
	ConflictVIPImbalance        = types.ConflictVIPImbalance
	ConflictGroupScatter        = types.ConflictGroupScatter

	SeverityError   = types.SeverityError
	SeverityWarning = types.SeverityWarning

	SourceManual    = types.SourceManual
	SourceSmartFix  = types.SourceSmartFix
	SourceRebalance = types.SourceRebalance
	SourceRestore   = types.SourceRestore
)
