package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{sessions: make(map[string]Session)}
}

func (r *MemoryRepo) Create(ctx context.Context, jobID, userAgent string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	sess := Session{
		ID:        uuid.NewString(),
		JobID:     jobID,
		UserAgent: userAgent,
		Fields:    make(map[string]string),
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}
	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()
	return copySession(sess), nil
}

func (r *MemoryRepo) Get(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	return copySession(sess), nil
}

func (r *MemoryRepo) SetField(ctx context.Context, sessionID, fieldName, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.Fields[fieldName] = value
	r.sessions[sessionID] = sess
	return nil
}

func (r *MemoryRepo) Submit(ctx context.Context, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		return Session{}, ErrNotFound
	}
	if sess.Status == StatusSubmitted {
		return copySession(sess), ErrAlreadySubmitted
	}
	sess.Status = StatusSubmitted
	r.sessions[sessionID] = sess
	return copySession(sess), nil
}

func copySession(sess Session) Session {
	fields := make(map[string]string, len(sess.Fields))
	for k, v := range sess.Fields {
		fields[k] = v
	}
	sess.Fields = fields
	return sess
}
