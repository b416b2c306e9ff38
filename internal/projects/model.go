package projects

import "time"

type Project struct {
	ID          string    `json:"id"`
	RecruiterID string    `json:"recruiterId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Delete-intent states. A pending intent marks a cascade delete that has
// not finished; the worker resumes it.
const (
	IntentPending = "pending"
	IntentDone    = "done"
)

type DeleteIntent struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	RecruiterID string    `json:"recruiterId"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
