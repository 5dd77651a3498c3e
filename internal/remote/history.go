package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"slices"

	"inspection-report/internal/models"
)

// listResponse accepts either the record array or a {status:"error"} body.
type listResponse struct {
	records []models.SubmissionSummary
	failure *models.StatusResponse
}

func (l *listResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if bytes.HasPrefix(trimmed, []byte("[")) {
		return json.Unmarshal(data, &l.records)
	}
	l.failure = &models.StatusResponse{}
	return json.Unmarshal(data, l.failure)
}

// List returns stored records, most recent first. A non-empty userID limits
// the result to that user's records. Transport failures are retried.
func (c *Client) List(ctx context.Context, userID string) ([]models.SubmissionSummary, error) {
	params := url.Values{"action": {"list"}}
	if userID != "" {
		params.Set("userId", userID)
	}

	var out listResponse
	err := c.RetryWithBackoff(ctx, func() error {
		out = listResponse{}
		return c.getJSON(ctx, "list", params, &out)
	}, 3)
	if err != nil {
		return nil, err
	}
	if out.failure != nil {
		return nil, &RemoteError{Message: out.failure.Message}
	}

	records := out.records
	slices.Reverse(records)
	return records, nil
}

// Get finds one record by row id in the full list.
func (c *Client) Get(ctx context.Context, rowID string) (*models.SubmissionSummary, error) {
	records, err := c.List(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].RowID == rowID {
			return &records[i], nil
		}
	}
	return nil, &RemoteError{Message: "기록을 찾을 수 없습니다"}
}

// Delete removes a record after the service checks pin against it.
func (c *Client) Delete(ctx context.Context, rowID, pin string) error {
	params := url.Values{"action": {"delete"}, "rowId": {rowID}, "pin": {pin}}

	var resp models.StatusResponse
	if err := c.getJSON(ctx, "delete", params, &resp); err != nil {
		return err
	}
	if resp.Status != models.StatusOK {
		return &RemoteError{Message: resp.Message}
	}
	return nil
}

// Health returns the service's reported version.
func (c *Client) Health(ctx context.Context) (int, error) {
	var resp models.HealthResponse
	if err := c.getJSON(ctx, "health", url.Values{}, &resp); err != nil {
		return 0, err
	}
	if resp.Status != models.StatusOK {
		return 0, errors.New("service unhealthy")
	}
	return resp.Version, nil
}
