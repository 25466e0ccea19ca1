package optimize

import "errors"

// ErrAborted is returned alongside a partial Result when the context is
// canceled after at least one fold has already produced a validated
// result — the caller can still use Result, but later folds never ran.
var ErrAborted = errors.New("optimize: training aborted by context cancellation")

// ErrAbortedBeforeAnyFold is returned when the context is canceled before
// any fold produced a validated result, so there is nothing usable to
// return.
var ErrAbortedBeforeAnyFold = errors.New("optimize: training aborted before completing any fold")
