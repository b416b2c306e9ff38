package resumes

import "time"

type Resume struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"projectId"`
	RecruiterID   string    `json:"recruiterId"`
	ApplicantName string    `json:"applicantName"`
	FileName      string    `json:"fileName"`
	StorageKey    string    `json:"storageKey"`
	MimeType      string    `json:"mimeType"`
	SizeBytes     int64     `json:"sizeBytes"`
	CreatedAt     time.Time `json:"createdAt"`
}
