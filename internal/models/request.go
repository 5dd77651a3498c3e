package models

// SubmitRequest is the record a client sends for one completed draft.
// ItemTotal carries raw digits without group separators. Photos and
// signatures are data URLs.
type SubmitRequest struct {
	UserID     string `json:"userId,omitempty"`
	AuthorName string `json:"authorName"`
	TeamName   string `json:"teamName,omitempty"`
	DeptType   string `json:"deptType,omitempty"`
	// PIN is only sent by clients without a registered session; it
	// authorises a later delete.
	PIN string `json:"pin,omitempty"`

	InspectionDate  string `json:"inspectionDate"`
	ReceiptDate     string `json:"receiptDate,omitempty"`
	InspectionPlace string `json:"inspectionPlace,omitempty"`
	RelatedDoc      string `json:"relatedDoc,omitempty"`
	ItemName        string `json:"itemName"`
	ItemTotal       string `json:"itemTotal,omitempty"`
	BuyerName       string `json:"buyerName,omitempty"`
	InspectorName   string `json:"inspectorName,omitempty"`

	BuyerSignature     string   `json:"buyerSignature,omitempty"`
	InspectorSignature string   `json:"inspectorSignature,omitempty"`
	Photos             []string `json:"photos,omitempty"`
}

// ExecRequest is the body accepted by the script-compatible POST endpoint.
// Action "register" uses Name/TeamName/PIN; anything else is a submission.
type ExecRequest struct {
	Action string `json:"action,omitempty"`
	Name   string `json:"name,omitempty"`
	SubmitRequest
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	TeamName string `json:"teamName"`
	PIN      string `json:"pin" binding:"required"`
}

type LoginRequest struct {
	Name string `json:"name" binding:"required"`
	PIN  string `json:"pin" binding:"required"`
}

type DeleteRecordRequest struct {
	PIN string `json:"pin"`
}
