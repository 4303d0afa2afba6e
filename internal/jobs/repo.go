package jobs

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "job not found" }

type Repo interface {
	Seed(ctx context.Context, postings []Job) error
	List(ctx context.Context) ([]Job, error)
	Get(ctx context.Context, jobID string) (Job, error)
}
