package users

import "time"

const (
	RoleApplicant = "applicant"
	RoleRecruiter = "recruiter"
)

type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	PasswordHash      string    `json:"-"`
	Questions         []string  `json:"questions,omitempty"`
	InterviewSummary  string    `json:"interviewSummary,omitempty"`
	InterviewFeedback string    `json:"interviewFeedback,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func ValidRole(role string) bool {
	return role == RoleApplicant || role == RoleRecruiter
}
