package projects

import (
	"context"
	"sort"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	projects map[string]Project
	intents  map[string]DeleteIntent
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		projects: make(map[string]Project),
		intents:  make(map[string]DeleteIntent),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, projectID string) (Project, error) {
	if err := ctx.Err(); err != nil {
		return Project{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[projectID]
	if !ok {
		return Project{}, ErrNotFound
	}
	return project, nil
}

func (r *MemoryRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Project
	for _, project := range r.projects {
		if project.RecruiterID == recruiterID {
			out = append(out, project)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, project Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[project.ID]
	if !ok {
		return ErrNotFound
	}
	project.RecruiterID = existing.RecruiterID
	project.CreatedAt = existing.CreatedAt
	project.UpdatedAt = time.Now().UTC()
	r.projects[project.ID] = project
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, projectID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[projectID]; !ok {
		return ErrNotFound
	}
	delete(r.projects, projectID)
	return nil
}

func (r *MemoryRepo) CreateIntent(ctx context.Context, intent DeleteIntent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	intent.CreatedAt = now
	intent.UpdatedAt = now
	r.intents[intent.ID] = intent
	return nil
}

func (r *MemoryRepo) GetIntent(ctx context.Context, intentID string) (DeleteIntent, error) {
	if err := ctx.Err(); err != nil {
		return DeleteIntent{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	intent, ok := r.intents[intentID]
	if !ok {
		return DeleteIntent{}, ErrNotFound
	}
	return intent, nil
}

func (r *MemoryRepo) MarkIntentDone(ctx context.Context, intentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	intent, ok := r.intents[intentID]
	if !ok {
		return ErrNotFound
	}
	intent.State = IntentDone
	intent.UpdatedAt = time.Now().UTC()
	r.intents[intentID] = intent
	return nil
}

func (r *MemoryRepo) ListPendingIntents(ctx context.Context, limit int) ([]DeleteIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []DeleteIntent
	for _, intent := range r.intents {
		if intent.State == IntentPending {
			out = append(out, intent)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
