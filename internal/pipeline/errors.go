package pipeline

import "fmt"

// Stage failure kinds. Each wraps the underlying cause so callers can
// classify with errors.As at the orchestrator boundary; none of them
// escapes Handle.

type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema introspection failed: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("SQL generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UnsafeQueryError marks generated SQL that hit the safety denylist. The
// statement is never executed.
type UnsafeQueryError struct {
	SQL string
}

func (e *UnsafeQueryError) Error() string {
	return "generated SQL failed safety check"
}

type ExecutionError struct {
	Err error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }
