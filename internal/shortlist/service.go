package shortlist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"mitrahire-backend/internal/extract"
	"mitrahire-backend/internal/llm"
	"mitrahire-backend/internal/shared/telemetry"
)

// ResumeRef is one candidate entry in a shortlist request. ResumeURL is
// either an http(s) URL or an object storage key.
type ResumeRef struct {
	Name      string `json:"name"`
	ResumeURL string `json:"resumeURL"`
}

type ScoredResume struct {
	Name      string `json:"name"`
	ResumeURL string `json:"resumeUrl"`
	Score     int    `json:"score"`
}

// KeyOpener streams stored resume objects by storage key.
type KeyOpener interface {
	OpenByKey(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

type Service struct {
	LLM     llm.Client
	Objects KeyOpener
	HTTP    *http.Client

	// extractText is swappable in tests.
	extractText func(ctx context.Context, r io.Reader) (string, error)
}

func NewService(client llm.Client, objects KeyOpener) *Service {
	return &Service{
		LLM:         client,
		Objects:     objects,
		HTTP:        &http.Client{Timeout: 30 * time.Second},
		extractText: extract.TextFromReader,
	}
}

// Shortlist scores every fetchable resume against the job description
// and returns the top count by score, descending. Unfetchable or empty
// resumes are skipped; a malformed model reply scores 0 rather than
// failing the batch.
func (s *Service) Shortlist(ctx context.Context, count int, jobDescription string, refs []ResumeRef) ([]ScoredResume, error) {
	if count <= 0 || len(refs) == 0 {
		return nil, errors.New("invalid input: no resumes or invalid count")
	}

	var scored []ScoredResume
	for _, ref := range refs {
		if ref.Name == "" || ref.ResumeURL == "" {
			continue
		}
		content, err := s.fetchText(ctx, ref.ResumeURL)
		if err != nil {
			telemetry.Info("shortlist.skip", map[string]any{"name": ref.Name, "error": err.Error()})
			continue
		}
		if content == "" {
			continue
		}

		score, err := s.scoreOne(ctx, content, jobDescription)
		if err != nil {
			var malformed *llm.MalformedResponseError
			if errors.As(err, &malformed) {
				telemetry.Info("shortlist.malformed_score", map[string]any{"name": ref.Name})
				score = 0
			} else {
				return nil, fmt.Errorf("score resume %q: %w", ref.Name, err)
			}
		}
		scored = append(scored, ScoredResume{Name: ref.Name, ResumeURL: ref.ResumeURL, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if len(scored) > count {
		scored = scored[:count]
	}
	return scored, nil
}

// Summary produces a recruiter-facing candidate summary for one resume.
func (s *Service) Summary(ctx context.Context, resumeURL, jobDescription string) (string, error) {
	content, err := s.fetchText(ctx, resumeURL)
	if err != nil {
		return "", fmt.Errorf("fetch resume: %w", err)
	}
	if content == "" {
		return "", errors.New("no text could be extracted from the resume")
	}

	raw, err := s.LLM.GenerateText(ctx, llm.CandidateSummaryPrompt(content, jobDescription))
	if err != nil {
		return "", err
	}
	var out struct {
		Summary string `json:"summary"`
	}
	if err := llm.ParseStructured(raw, llm.SummarySchema, &out); err != nil {
		return "", err
	}
	return out.Summary, nil
}

func (s *Service) scoreOne(ctx context.Context, content, jobDescription string) (int, error) {
	raw, err := s.LLM.GenerateText(ctx, llm.ATSScorePrompt(content, jobDescription))
	if err != nil {
		return 0, err
	}
	var out struct {
		Score int `json:"score"`
	}
	if err := llm.ParseStructured(raw, llm.ScoreSchema, &out); err != nil {
		return 0, err
	}
	return out.Score, nil
}

func (s *Service) fetchText(ctx context.Context, ref string) (string, error) {
	var rc io.ReadCloser
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
		if err != nil {
			return "", err
		}
		resp, err := s.HTTP.Do(req)
		if err != nil {
			return "", err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return "", fmt.Errorf("fetch resume: status %d", resp.StatusCode)
		}
		rc = resp.Body
	} else {
		var err error
		rc, err = s.Objects.OpenByKey(ctx, ref)
		if err != nil {
			return "", err
		}
	}
	defer rc.Close()

	text, err := s.extractText(ctx, rc)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
