package applications

import "context"

// Repo archives submitted applications for the admin listing. The session
// registry remains the source of truth while an application is in progress;
// the archive only ever sees final records.
type Repo interface {
	Create(ctx context.Context, app Application) error
	List(ctx context.Context, jobID string, limit, offset int) ([]Application, error)
}
