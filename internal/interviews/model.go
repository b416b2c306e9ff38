package interviews

import "time"

// Session states. A session is a fixed linear walk over its question
// list; the index only moves forward.
const (
	StateNotStarted = "not_started"
	StateInProgress = "in_progress"
	StateComplete   = "complete"
)

type Session struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	UserName     string            `json:"userName"`
	Questions    []string          `json:"questions"`
	Answers      map[string]string `json:"answers"`
	CurrentIndex int               `json:"currentIndex"`
	State        string            `json:"state"`
	Transcript   string            `json:"transcript"`
	Summary      string            `json:"summary,omitempty"`
	Feedback     string            `json:"feedback,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CurrentQuestion returns the question at the session's index, or ""
// outside InProgress.
func (s Session) CurrentQuestion() string {
	if s.State != StateInProgress || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return ""
	}
	return s.Questions[s.CurrentIndex]
}
