package sessions

import (
	"context"
	"errors"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "session not found" }

// ErrAlreadySubmitted is returned by Submit when the session was submitted
// before. The stored fields are left untouched.
var ErrAlreadySubmitted = errors.New("application already submitted")

// Repo is the session registry. Concurrent SetField calls for the same field
// race and the last write to reach the store wins; callers must not expect
// stronger consistency.
type Repo interface {
	Create(ctx context.Context, jobID, userAgent string) (Session, error)
	Get(ctx context.Context, sessionID string) (Session, error)
	SetField(ctx context.Context, sessionID, fieldName, value string) error
	Submit(ctx context.Context, sessionID string) (Session, error)
}
