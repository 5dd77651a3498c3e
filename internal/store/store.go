// Package store defines the record and user persistence contract of the
// storage service and an in-memory implementation of it.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"inspection-report/internal/models"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateName = errors.New("duplicate user name")
)

// Store persists submissions and users.
//
// ListSubmissions returns rows in append order; callers that want
// most-recent-first reverse it. FindUsersByName returns every user whose
// name matches exactly, oldest first, so "first match wins" stays the
// caller's decision.
type Store interface {
	CreateSubmission(ctx context.Context, sub *models.Submission) error
	ListSubmissions(ctx context.Context, userID string) ([]models.Submission, error)
	GetSubmission(ctx context.Context, rowID uuid.UUID) (*models.Submission, error)
	DeleteSubmission(ctx context.Context, rowID uuid.UUID) error

	CreateUser(ctx context.Context, user *models.User) error
	FindUsersByName(ctx context.Context, name string) ([]models.User, error)

	Close() error
}
