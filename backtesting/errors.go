package backtesting

import "errors"

// ErrNoSignalConditions is returned by Run when called with an empty
// condition list — there would be no way to ever open a position.
var ErrNoSignalConditions = errors.New("backtesting: no signal conditions provided")

// ErrEmptyRange is returned by Run and RandomBaseline when the bar range
// has no bars in it.
var ErrEmptyRange = errors.New("backtesting: empty bar range")

// ErrLengthMismatch is returned when the bar series and fuzzy output
// series passed to Run have different lengths.
var ErrLengthMismatch = errors.New("backtesting: bars and fuzzy output length mismatch")
