package orchestrator

import "errors"

// ErrExternalService marks failures of the remote model behind the
// fallback path. Callers match it with errors.Is; the orchestrator
// itself only logs these and continues with heuristics.
var ErrExternalService = errors.New("external service error")
