package models

import (
	"time"

	"github.com/google/uuid"
)

// Submission is one stored inspection report. RowID is its only identity;
// SheetName is a display label and may repeat.
type Submission struct {
	RowID          uuid.UUID
	UserID         string
	AuthorName     string
	TeamName       string
	DeptType       string
	SubmittedAt    time.Time
	ItemName       string
	ItemTotal      string
	InspectionDate string
	RelatedDoc     string
	SheetName      string
	SheetURL       string
	PhotoURLs      []string
	PINHash        string
}

// Summary is the client-facing view of a submission. PINHash never leaves
// the server.
func (s *Submission) Summary(loc *time.Location) SubmissionSummary {
	return SubmissionSummary{
		RowID:          s.RowID.String(),
		UserID:         s.UserID,
		SubmittedAt:    s.SubmittedAt.In(loc).Format(SubmittedAtLayout),
		ItemName:       s.ItemName,
		ItemTotal:      s.ItemTotal,
		DeptType:       s.DeptType,
		TeamName:       s.TeamName,
		AuthorName:     s.AuthorName,
		InspectionDate: s.InspectionDate,
		RelatedDoc:     s.RelatedDoc,
		SheetName:      s.SheetName,
		SheetURL:       s.SheetURL,
		PhotoURLs:      s.PhotoURLs,
	}
}

type User struct {
	ID        uuid.UUID
	Name      string
	TeamName  string
	PINHash   string
	CreatedAt time.Time
}

// SubmittedAtLayout matches the "yyyy-MM-dd HH:mm" stamp of the log sheet.
const SubmittedAtLayout = "2006-01-02 15:04"
