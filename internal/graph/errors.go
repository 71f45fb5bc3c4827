package graph

import "errors"

var (
	// ErrNotFound indicates a node id that is not part of the model.
	ErrNotFound = errors.New("node not found")

	// ErrUnknownGroup indicates a group id that is not part of the model.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrUnknownPhase indicates a phase id that is not part of the model.
	ErrUnknownPhase = errors.New("unknown phase")

	// ErrDuplicateNode indicates two node definitions share an id.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrStageConflict indicates a stage is claimed by more than one phase,
	// which would make the stage-to-phase lookup ambiguous.
	ErrStageConflict = errors.New("stage owned by more than one phase")
)
