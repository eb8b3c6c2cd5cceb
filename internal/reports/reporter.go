// Package reports exports ledger data as PDF, Excel, and plain-text files.
package reports

import (
	"errors"

	"fincoach/internal/storage"
)

// ErrNoData signals that the requested report has nothing to say. Callers
// turn it into a user-facing message.
var ErrNoData = errors.New("no data for report")

// Reporter writes documents into a fixed reports directory. Generation is a
// blocking call producing a file as a side effect; partially written files
// are not cleaned up or retried.
type Reporter struct {
	repo *storage.SQLiteRepository
	dir  string
}

func NewReporter(repo *storage.SQLiteRepository, dir string) *Reporter {
	return &Reporter{repo: repo, dir: dir}
}
