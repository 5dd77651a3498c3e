// Package session persists the signed-in identity between client runs.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the authenticated identity. UserID correlates a user with the
// records they submit.
type Session struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	TeamName string `json:"teamName,omitempty"`
	Token    string `json:"token,omitempty"`
}

// AuthorLine is "team (name)" when a team is set, otherwise the name.
func (s *Session) AuthorLine() string {
	if s == nil {
		return ""
	}
	return AuthorLine(s.TeamName, s.Name)
}

func AuthorLine(team, author string) string {
	if team != "" {
		return fmt.Sprintf("%s (%s)", team, author)
	}
	return author
}

// FileStore keeps one session as JSON on disk until Clear.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is <user config dir>/inspect/session.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "inspect", "session.json"), nil
}

// Load returns nil without error when nobody is signed in.
func (f *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	if s.UserID == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *FileStore) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (f *FileStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
