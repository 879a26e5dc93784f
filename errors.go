package pace

import "errors"

// Sentinel errors for the pace package.
// Use errors.Is to check: errors.Is(err, pace.ErrNoCandidates)
var (
	ErrNoCandidates   = errors.New("pace: no candidate items")
	ErrNoStorage      = errors.New("pace: storage is required")
	ErrInvalidConfig  = errors.New("pace: invalid config")
	ErrInvalidOutcome = errors.New("pace: invalid outcome")
)
