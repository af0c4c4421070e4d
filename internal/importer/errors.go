package importer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBatchNotFound covers unknown, expired and already-committed batches.
	ErrBatchNotFound = errors.New("import batch not found or expired")

	// ErrStaleBatch means the committed file hash does not match the one
	// recorded at preview time; the file changed between preview and commit.
	ErrStaleBatch = errors.New("file hash does not match previewed batch")
)

// SchemaError means the file structure itself is unusable. It is fatal to the
// whole preview; no rows are processed.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
}

// CommitFailedError wraps a storage failure during apply. The transaction was
// rolled back; nothing from the batch was written.
type CommitFailedError struct {
	Err error
}

func (e *CommitFailedError) Error() string {
	return "import commit failed: " + e.Err.Error()
}

func (e *CommitFailedError) Unwrap() error {
	return e.Err
}
