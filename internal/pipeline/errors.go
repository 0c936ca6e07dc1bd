package pipeline

import "fmt"

// Terminal run statuses recorded for every analysis.
const (
	StatusOK              = "OK"
	StatusFetchError      = "FETCH_ERROR"
	StatusGenerationError = "GENERATION_ERROR"
	StatusPersistError    = "PERSIST_ERROR"
)

// FetchError means upstream data could not be obtained. The generative
// model is never invoked for such a run.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PersistenceError means the report was generated but could not be written.
// The run is still considered failed; there is no partial-success state.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("persist report: %v", e.Err) }
func (e *PersistenceError) Unwrap() error { return e.Err }
