package database_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"inspection-report/internal/database"
	"inspection-report/internal/models"
	"inspection-report/internal/store"
)

func openSQLite(t *testing.T) *database.SQLStore {
	t.Helper()
	s, err := database.Open(database.SQLite, filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, database.NewMigrator(s.DB(), s.Dialect(), zap.NewNop()).Run())
	return s
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", database.Postgres.Rebind(q))
	assert.Equal(t, q, database.SQLite.Rebind(q))
}

func TestMigrator_Idempotent(t *testing.T) {
	s := openSQLite(t)
	assert.NoError(t, database.NewMigrator(s.DB(), s.Dialect(), zap.NewNop()).Run())
}

func TestSQLStore_SubmissionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	sub := &models.Submission{
		RowID:          uuid.New(),
		UserID:         "u1",
		AuthorName:     "김철수",
		SubmittedAt:    time.Date(2024, 3, 1, 1, 30, 0, 0, time.UTC),
		ItemName:       "의자",
		ItemTotal:      "150000",
		InspectionDate: "2024-03-01",
		SheetName:      "의자_0301_1030",
		SheetURL:       "http://blobs/records/x/의자_0301_1030.xlsx",
		PhotoURLs:      []string{"http://blobs/p1.jpg", "http://blobs/p2.jpg"},
		PINHash:        "hash",
	}
	require.NoError(t, s.CreateSubmission(ctx, sub))

	got, err := s.GetSubmission(ctx, sub.RowID)
	require.NoError(t, err)
	assert.Equal(t, sub.ItemName, got.ItemName)
	assert.Equal(t, sub.PhotoURLs, got.PhotoURLs)
	assert.Equal(t, "hash", got.PINHash)
	assert.True(t, sub.SubmittedAt.Equal(got.SubmittedAt))
}

func TestSQLStore_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	ids := make([]uuid.UUID, 3)
	for i, user := range []string{"u1", "u2", "u1"} {
		ids[i] = uuid.New()
		require.NoError(t, s.CreateSubmission(ctx, &models.Submission{
			RowID: ids[i], UserID: user, SubmittedAt: time.Now(),
		}))
	}

	all, err := s.ListSubmissions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[0], all[0].RowID)

	mine, err := s.ListSubmissions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, ids[0], mine[0].RowID)
	assert.Equal(t, ids[2], mine[1].RowID)
}

func TestSQLStore_DeleteMissing(t *testing.T) {
	s := openSQLite(t)
	assert.ErrorIs(t, s.DeleteSubmission(context.Background(), uuid.New()), store.ErrNotFound)

	_, err := s.GetSubmission(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_DuplicateUser(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	u := &models.User{ID: uuid.New(), Name: "김철수", PINHash: "h", CreatedAt: time.Now()}
	require.NoError(t, s.CreateUser(ctx, u))

	dup := &models.User{ID: uuid.New(), Name: "김철수", PINHash: "h", CreatedAt: time.Now()}
	assert.ErrorIs(t, s.CreateUser(ctx, dup), store.ErrDuplicateName)

	users, err := s.FindUsersByName(ctx, "김철수")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
}
