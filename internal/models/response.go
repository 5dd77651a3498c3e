package models

// Status values shared by every script-compatible response.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

type SubmitResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	RowID          string `json:"rowId,omitempty"`
	SheetName      string `json:"sheetName,omitempty"`
	SheetURL       string `json:"sheetUrl,omitempty"`
	SpreadsheetURL string `json:"spreadsheetUrl,omitempty"`
}

type SubmissionSummary struct {
	RowID          string   `json:"rowId"`
	UserID         string   `json:"userId,omitempty"`
	SubmittedAt    string   `json:"submittedAt"`
	ItemName       string   `json:"itemName"`
	ItemTotal      string   `json:"itemTotal,omitempty"`
	DeptType       string   `json:"deptType,omitempty"`
	TeamName       string   `json:"teamName,omitempty"`
	AuthorName     string   `json:"authorName"`
	InspectionDate string   `json:"inspectionDate,omitempty"`
	RelatedDoc     string   `json:"relatedDoc,omitempty"`
	SheetName      string   `json:"sheetName,omitempty"`
	SheetURL       string   `json:"sheetUrl,omitempty"`
	PhotoURLs      []string `json:"photoUrls,omitempty"`
}

type AuthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	UserID   string `json:"userId,omitempty"`
	Name     string `json:"name,omitempty"`
	TeamName string `json:"teamName,omitempty"`
	Token    string `json:"token,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version int    `json:"version,omitempty"`
}

type RecordListResponse struct {
	Records []SubmissionSummary `json:"records"`
}
