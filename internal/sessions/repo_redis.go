package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix     = "session:"
	applicationKeyPrefix = "application:"
)

// RedisRepo keeps the session record in `session:{id}` and its field values in
// `application:{id}`, the layout both server processes agree on. TTL eviction
// is the store operator's policy, not the registry's; the registry only
// refreshes the TTL on writes.
type RedisRepo struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRepo(client *redis.Client, ttl time.Duration) *RedisRepo {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisRepo{Client: client, TTL: ttl}
}

func (r *RedisRepo) Create(ctx context.Context, jobID, userAgent string) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		JobID:     jobID,
		UserAgent: userAgent,
		Fields:    make(map[string]string),
		Status:    StatusOpen,
		CreatedAt: time.Now().UTC(),
	}

	key := sessionKeyPrefix + sess.ID
	err := r.Client.HSet(ctx, key, map[string]string{
		"job_id":     sess.JobID,
		"user_agent": sess.UserAgent,
		"status":     sess.Status,
		"created_at": sess.CreatedAt.Format(time.RFC3339),
	}).Err()
	if err != nil {
		return Session{}, err
	}
	if err := r.Client.Expire(ctx, key, r.TTL).Err(); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (r *RedisRepo) Get(ctx context.Context, sessionID string) (Session, error) {
	data, err := r.Client.HGetAll(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return Session{}, err
	}
	if len(data) == 0 {
		return Session{}, ErrNotFound
	}

	fields, err := r.Client.HGetAll(ctx, applicationKeyPrefix+sessionID).Result()
	if err != nil {
		return Session{}, err
	}
	if fields == nil {
		fields = make(map[string]string)
	}

	sess := Session{
		ID:        sessionID,
		JobID:     data["job_id"],
		UserAgent: data["user_agent"],
		Fields:    fields,
		Status:    data["status"],
	}
	if sess.Status == "" {
		sess.Status = StatusOpen
	}
	if raw := data["created_at"]; raw != "" {
		if ts, err := time.Parse(time.RFC3339, raw); err == nil {
			sess.CreatedAt = ts
		}
	}
	return sess, nil
}

func (r *RedisRepo) SetField(ctx context.Context, sessionID, fieldName, value string) error {
	exists, err := r.Client.Exists(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	key := applicationKeyPrefix + sessionID
	if err := r.Client.HSet(ctx, key, fieldName, value).Err(); err != nil {
		return err
	}
	return r.Client.Expire(ctx, key, r.TTL).Err()
}

func (r *RedisRepo) Submit(ctx context.Context, sessionID string) (Session, error) {
	sess, err := r.Get(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Status == StatusSubmitted {
		return sess, ErrAlreadySubmitted
	}

	key := sessionKeyPrefix + sessionID
	err = r.Client.HSet(ctx, key, map[string]string{
		"status":       StatusSubmitted,
		"submitted_at": time.Now().UTC().Format(time.RFC3339),
	}).Err()
	if err != nil {
		return Session{}, err
	}
	sess.Status = StatusSubmitted
	return sess, nil
}
