package deviceflow

import "errors"

var (
	// ErrFlowExpired indicates the attempt ran past its configured maximum duration.
	// It is always returned together with context.DeadlineExceeded.
	ErrFlowExpired = errors.New("device flow expired")
)
