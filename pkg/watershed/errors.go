package watershed

import (
	stderrors "errors"
	"fmt"
)

// Errors for malformed seed collections. The grid and mask errors live in
// package voxel.
var (
	// ErrInvalidSeed indicates a seed with a zero id, an id outside the int32
	// range, or a malformed mask.
	ErrInvalidSeed = stderrors.New("watershed: invalid seed")

	// ErrDuplicateSeedID indicates two seeds sharing one id.
	ErrDuplicateSeedID = stderrors.New("watershed: seed ids must be unique")

	// ErrSeedOverlap indicates two seeds claiming the same voxel.
	ErrSeedOverlap = stderrors.New("watershed: seeds overlap")

	// ErrInternal is matched by every *InternalError.
	ErrInternal = stderrors.New("watershed: internal invariant violated")
)

// InternalError reports a broken invariant inside the engine. It means a bug,
// never bad input, and the partial result must be discarded.
type InternalError struct {
	Op     string
	Offset int
	Msg    string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("watershed: internal error in %s at voxel %d: %s", e.Op, e.Offset, e.Msg)
}

// Is lets errors.Is(err, ErrInternal) succeed.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

func internalErrorf(op string, offset int, format string, args ...interface{}) error {
	return &InternalError{Op: op, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
