package models

// Theme belongs to a Subject through SubjectID.
type Theme struct {
	ID        int64  `json:"id"`
	SubjectID int64  `json:"subject_id"`
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content"`
	Tags      string `json:"tags"`
}
