package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"inspection-report/internal/models"
	"inspection-report/internal/store"
)

// SQLStore implements store.Store on Postgres or SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

var _ store.Store = (*SQLStore)(nil)

// Open connects and pings. SQLite additionally gets WAL mode.
func Open(dialect Dialect, connectionString string) (*SQLStore, error) {
	db, err := sql.Open(string(dialect), connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == SQLite {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return &SQLStore{db: db, dialect: dialect}, nil
}

func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

func (s *SQLStore) CreateSubmission(ctx context.Context, sub *models.Submission) error {
	photos, err := json.Marshal(sub.PhotoURLs)
	if err != nil {
		return fmt.Errorf("failed to encode photo urls: %w", err)
	}
	if sub.PhotoURLs == nil {
		photos = []byte("[]")
	}

	_, err = s.db.ExecContext(ctx, s.dialect.Rebind(insertSubmission),
		sub.RowID, sub.UserID, sub.AuthorName, sub.TeamName, sub.DeptType, sub.SubmittedAt.UTC(),
		sub.ItemName, sub.ItemTotal, sub.InspectionDate, sub.RelatedDoc,
		sub.SheetName, sub.SheetURL, string(photos), sub.PINHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}
	return nil
}

func (s *SQLStore) ListSubmissions(ctx context.Context, userID string) ([]models.Submission, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID == "" {
		rows, err = s.db.QueryContext(ctx, selectSubmissions)
	} else {
		rows, err = s.db.QueryContext(ctx, s.dialect.Rebind(selectSubmissionsByUser), userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	return subs, nil
}

func (s *SQLStore) GetSubmission(ctx context.Context, rowID uuid.UUID) (*models.Submission, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.Rebind(selectSubmission), rowID)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

func (s *SQLStore) DeleteSubmission(ctx context.Context, rowID uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(deleteSubmission), rowID)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, s.dialect.Rebind(insertUser),
		user.ID, user.Name, user.TeamName, user.PINHash, user.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return store.ErrDuplicateName
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *SQLStore) FindUsersByName(ctx context.Context, name string) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(selectUsersByName), name)
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.TeamName, &u.PINHash, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}
	return users, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*models.Submission, error) {
	var (
		sub    models.Submission
		photos string
	)
	err := row.Scan(
		&sub.RowID, &sub.UserID, &sub.AuthorName, &sub.TeamName, &sub.DeptType, &sub.SubmittedAt,
		&sub.ItemName, &sub.ItemTotal, &sub.InspectionDate, &sub.RelatedDoc,
		&sub.SheetName, &sub.SheetURL, &photos, &sub.PINHash,
	)
	if err != nil {
		return nil, err
	}
	if photos != "" {
		if err := json.Unmarshal([]byte(photos), &sub.PhotoURLs); err != nil {
			return nil, fmt.Errorf("invalid photo urls: %w", err)
		}
	}
	return &sub, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
