package interviews

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mitrahire-backend/internal/shared/telemetry"
)

var (
	ErrForbidden       = errors.New("session belongs to another user")
	ErrEmptyTranscript = errors.New("answer transcript is empty")
	ErrInvalidState    = errors.New("operation not allowed in this state")
)

// GenerationError marks a failure of the feedback generator, as opposed
// to a session or storage failure.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string { return "generate feedback: " + e.Err.Error() }
func (e *GenerationError) Unwrap() error { return e.Err }

// ResultSink receives the summary and feedback of a completed session.
// Implemented by the users service.
type ResultSink interface {
	SaveInterviewResults(ctx context.Context, userID, summary, feedback string) error
}

type Service struct {
	Repo      Repo
	Generator *Generator
	Results   ResultSink
}

func NewService(repo Repo, generator *Generator, results ResultSink) *Service {
	return &Service{Repo: repo, Generator: generator, Results: results}
}

// Create opens a session over the given question set. The questions are
// fixed for the session's lifetime.
func (s *Service) Create(ctx context.Context, userID, userName string, questions []string) (Session, error) {
	cleaned := make([]string, 0, len(questions))
	for _, q := range questions {
		if q = strings.TrimSpace(q); q != "" {
			cleaned = append(cleaned, q)
		}
	}
	if len(cleaned) == 0 {
		return Session{}, errors.New("at least one question is required")
	}

	session := Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		UserName:     userName,
		Questions:    cleaned,
		Answers:      map[string]string{},
		CurrentIndex: -1,
		State:        StateNotStarted,
	}
	if err := s.Repo.Create(ctx, session); err != nil {
		return Session{}, err
	}
	return s.Repo.GetByID(ctx, session.ID)
}

func (s *Service) Get(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Repo.GetByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.UserID != userID {
		return Session{}, ErrForbidden
	}
	return session, nil
}

// Start moves the session to the first question.
func (s *Service) Start(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.State != StateNotStarted {
		return Session{}, ErrInvalidState
	}
	session.State = StateInProgress
	session.CurrentIndex = 0
	session.Transcript = ""
	if err := s.Repo.Update(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// SetTranscript overwrites the transcript buffer. Recognition events
// carry the latest full utterance, so the buffer never appends.
func (s *Service) SetTranscript(ctx context.Context, userID, sessionID, transcript string) (Session, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.State != StateInProgress {
		return Session{}, ErrInvalidState
	}
	session.Transcript = transcript
	if err := s.Repo.Update(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Next records the current answer and advances to the next question.
// An empty transcript blocks the transition; the last question must be
// closed with End, not Next.
func (s *Service) Next(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.State != StateInProgress {
		return Session{}, ErrInvalidState
	}
	if strings.TrimSpace(session.Transcript) == "" {
		return Session{}, ErrEmptyTranscript
	}
	if session.CurrentIndex >= len(session.Questions)-1 {
		return Session{}, ErrInvalidState
	}

	session.Answers[session.CurrentQuestion()] = session.Transcript
	session.Transcript = ""
	session.CurrentIndex++
	if err := s.Repo.Update(ctx, session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// End records the final answer, generates summary and feedback over the
// full answer mapping, and completes the session. A generation failure
// leaves the session in progress so the caller can retry.
func (s *Service) End(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return Session{}, err
	}
	if session.State != StateInProgress {
		return Session{}, ErrInvalidState
	}
	if strings.TrimSpace(session.Transcript) == "" {
		return Session{}, ErrEmptyTranscript
	}

	session.Answers[session.CurrentQuestion()] = session.Transcript

	summary, feedback, err := s.Generator.Feedback(ctx, session.UserName, session.Answers)
	if err != nil {
		return Session{}, &GenerationError{Err: err}
	}

	session.Transcript = ""
	session.Summary = summary
	session.Feedback = feedback
	session.State = StateComplete
	if err := s.Repo.Update(ctx, session); err != nil {
		return Session{}, err
	}

	if s.Results != nil {
		if err := s.Results.SaveInterviewResults(ctx, session.UserID, summary, feedback); err != nil {
			telemetry.Error("interviews.save_results_failed", map[string]any{"session_id": session.ID, "error": err.Error()})
		}
	}
	return session, nil
}
