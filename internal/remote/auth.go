package remote

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"inspection-report/internal/form"
	"inspection-report/internal/models"
	"inspection-report/internal/session"
)

type registerBody struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	TeamName string `json:"teamName"`
	PIN      string `json:"pin"`
}

// Register creates an account. The JSON POST is tried first; when it cannot
// be delivered or read, the same request is repeated as a GET.
func (c *Client) Register(ctx context.Context, name, teamName, pin string) (*session.Session, error) {
	name, teamName = strings.TrimSpace(name), strings.TrimSpace(teamName)
	if name == "" {
		return nil, &AuthError{Message: "이름을 입력해주세요"}
	}
	if !form.ValidPIN(pin) {
		return nil, &AuthError{Message: "비밀번호 4자리를 모두 입력해주세요"}
	}

	var resp models.AuthResponse
	err := c.postJSON(ctx, "register", registerBody{Action: "register", Name: name, TeamName: teamName, PIN: pin}, &resp)

	var (
		terr *TransportError
		serr *StatusError
	)
	if errors.As(err, &terr) || errors.As(err, &serr) {
		resp = models.AuthResponse{}
		params := url.Values{"action": {"register"}, "name": {name}, "teamName": {teamName}, "pin": {pin}}
		err = c.getJSON(ctx, "register", params, &resp)
	}
	if err != nil {
		return nil, err
	}
	return sessionFrom(resp)
}

// Login checks name and pin. A rejection carries the service's generic
// message and never says which of the two was wrong.
func (c *Client) Login(ctx context.Context, name, pin string) (*session.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" || !form.ValidPIN(pin) {
		return nil, &AuthError{Message: "이름과 비밀번호 4자리를 입력해주세요"}
	}

	var resp models.AuthResponse
	params := url.Values{"action": {"login"}, "name": {name}, "pin": {pin}}
	if err := c.getJSON(ctx, "login", params, &resp); err != nil {
		return nil, err
	}
	return sessionFrom(resp)
}

func sessionFrom(resp models.AuthResponse) (*session.Session, error) {
	if resp.Status != models.StatusOK {
		return nil, &AuthError{Message: resp.Message}
	}
	return &session.Session{
		UserID:   resp.UserID,
		Name:     resp.Name,
		TeamName: resp.TeamName,
		Token:    resp.Token,
	}, nil
}
