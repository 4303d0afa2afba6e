package jobs

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"
)

const (
	jobKeyPrefix = "job:"
	allJobsKey   = "all_jobs"
)

// RedisRepo stores the catalog in the shared store so that other processes
// (the tool server in particular) can resolve postings by id.
type RedisRepo struct {
	Client *redis.Client
}

func (r *RedisRepo) Seed(ctx context.Context, postings []Job) error {
	for _, job := range postings {
		if err := r.Client.HSet(ctx, jobKeyPrefix+job.ID, jobToMap(job)).Err(); err != nil {
			return err
		}
		if err := r.Client.SAdd(ctx, allJobsKey, job.ID).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (r *RedisRepo) List(ctx context.Context) ([]Job, error) {
	ids, err := r.Client.SMembers(ctx, allJobsKey).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Job, 0, len(ids))
	for _, id := range ids {
		data, err := r.Client.HGetAll(ctx, jobKeyPrefix+id).Result()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}
		out = append(out, jobFromMap(data))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PostedDate > out[j].PostedDate })
	return out, nil
}

func (r *RedisRepo) Get(ctx context.Context, jobID string) (Job, error) {
	data, err := r.Client.HGetAll(ctx, jobKeyPrefix+jobID).Result()
	if err != nil {
		return Job{}, err
	}
	if len(data) == 0 {
		return Job{}, ErrNotFound
	}
	return jobFromMap(data), nil
}

func jobToMap(job Job) map[string]string {
	return map[string]string{
		"id":           job.ID,
		"title":        job.Title,
		"department":   job.Department,
		"description":  job.Description,
		"requirements": job.Requirements,
		"location":     job.Location,
		"growth_path":  job.GrowthPath,
		"posted_date":  job.PostedDate,
		"team_size":    job.TeamSize,
	}
}

func jobFromMap(data map[string]string) Job {
	return Job{
		ID:           data["id"],
		Title:        data["title"],
		Department:   data["department"],
		Description:  data["description"],
		Requirements: data["requirements"],
		Location:     data["location"],
		GrowthPath:   data["growth_path"],
		PostedDate:   data["posted_date"],
		TeamSize:     data["team_size"],
	}
}
