package domain

import "fmt"

// SchemaError reports a malformed input table: a required column is
// missing or a field could not be coerced. It aborts the pipeline for the
// dataset; no partial report is produced from invalid input.
type SchemaError struct {
	Column string
	Row    int // 1-based data row; 0 when the whole table is at fault
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("schema error: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	}
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// ArtifactError reports a failed visualization or document export. It is
// isolated per artifact: one failed chart never prevents the rest of the
// report from being produced.
type ArtifactError struct {
	Kind string
	Err  error
}

func (e *ArtifactError) Error() string {
	return fmt.Sprintf("artifact %q: %v", e.Kind, e.Err)
}

func (e *ArtifactError) Unwrap() error { return e.Err }
