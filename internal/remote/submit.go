package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"inspection-report/internal/form"
	"inspection-report/internal/models"
	"inspection-report/internal/preview"
	"inspection-report/internal/session"
)

// Outcome says how much is known about a submission.
type Outcome int

const (
	// Failed means nothing is known to have reached the service, or the
	// service rejected the record.
	Failed Outcome = iota
	// Unconfirmed means the readable request failed but the fire-and-forget
	// resend was delivered. The record is probably saved.
	Unconfirmed
	// Confirmed means the service answered with the stored location.
	Confirmed
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Unconfirmed:
		return "unconfirmed"
	default:
		return "failed"
	}
}

const (
	OpenDocumentLabel    = "📄 저장된 문서 열기"
	OpenSpreadsheetLabel = "📊 스프레드시트 열기"
)

type SubmitResult struct {
	Outcome   Outcome
	RowID     string
	SheetName string
	SheetURL  string

	spreadsheetURL string
}

// Link is the document to offer after submitting: the record's own sheet
// when known, otherwise the shared spreadsheet.
func (r *SubmitResult) Link() (label, href string) {
	if r.SheetURL != "" {
		return OpenDocumentLabel, r.SheetURL
	}
	return OpenSpreadsheetLabel, r.spreadsheetURL
}

// BuildRequest assembles the record for d. A session supplies the author,
// team and user id; without one the typed author, team and PIN are sent.
func BuildRequest(d *form.Draft, s *session.Session) models.SubmitRequest {
	photos := make([]string, len(d.Photos))
	for i, p := range d.Photos {
		photos[i] = p.ImageData
	}

	req := models.SubmitRequest{
		InspectionDate:     d.Get(form.FieldInspectionDate),
		ReceiptDate:        d.Get(form.FieldReceiptDate),
		InspectionPlace:    d.Get(form.FieldInspectionPlace),
		RelatedDoc:         d.Get(form.FieldRelatedDoc),
		ItemName:           d.Get(form.FieldItemName),
		ItemTotal:          preview.UnformatAmount(d.Get(form.FieldItemTotal)),
		BuyerName:          d.Get(form.FieldBuyerName),
		InspectorName:      d.Get(form.FieldInspectorName),
		BuyerSignature:     d.Buyer.Effective(),
		InspectorSignature: d.Inspector.Effective(),
		Photos:             photos,
	}
	if s != nil {
		req.UserID = s.UserID
		req.AuthorName = s.Name
		req.TeamName = s.TeamName
	} else {
		req.AuthorName = d.Get(form.FieldAuthorName)
		req.TeamName = d.Get(form.FieldTeamName)
		req.PIN = d.PIN.Value()
	}
	return req
}

// Submit sends d to the service. Only one submit per client runs at a time;
// a concurrent call gets ErrSubmitInFlight. The returned result is non-nil
// whenever the request was attempted, including on failure.
func (c *Client) Submit(ctx context.Context, d *form.Draft, s *session.Session) (*SubmitResult, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer c.submitting.Store(false)

	payload := BuildRequest(d, s)
	result := &SubmitResult{Outcome: Failed, spreadsheetURL: c.spreadsheetURL}

	var resp models.SubmitResponse
	err := c.postJSON(ctx, "submit", payload, &resp)
	if err == nil {
		if resp.Status != models.StatusOK {
			return result, &RemoteError{Message: resp.Message}
		}
		result.Outcome = Confirmed
		result.RowID = resp.RowID
		result.SheetName = resp.SheetName
		result.SheetURL = resp.SheetURL
		return result, nil
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		return result, err
	}
	c.logger.Warn("readable submit failed, resending without reading the response", zap.Error(err))

	if ferr := c.sendBlind(ctx, payload); ferr != nil {
		return result, fmt.Errorf("submit failed: %w", errors.Join(err, ferr))
	}
	result.Outcome = Unconfirmed
	return result, nil
}

// sendBlind posts payload as plain text and ignores the response body.
// Delivery is all it can report; an error status counts as not delivered.
func (c *Client) sendBlind(ctx context.Context, payload models.SubmitRequest) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return &TransportError{Op: "submit", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/plain;charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "submit", Err: fmt.Errorf("failed to execute request: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Op: "submit", StatusCode: resp.StatusCode, Body: truncate(body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
