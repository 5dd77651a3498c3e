package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"inspection-report/internal/blobstore"
	"inspection-report/internal/dataurl"
	"inspection-report/internal/middleware"
	"inspection-report/internal/models"
	"inspection-report/internal/realtime"
	"inspection-report/internal/store"
)

type recordedEvent struct {
	userID    string
	eventType string
	payload   map[string]any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishRecordEvent(userID, eventType string, payload map[string]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{userID, eventType, payload})
	return nil
}

type failingBlobs struct {
	*blobstore.LocalStore
	failSuffix string
}

func (f *failingBlobs) Put(storagePath, contentType string, data []byte) (string, error) {
	if strings.HasSuffix(storagePath, f.failSuffix) {
		return "", errors.New("bucket unavailable")
	}
	return f.LocalStore.Put(storagePath, contentType, data)
}

var seoul = time.FixedZone("KST", 9*60*60)

func pngDataURL(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return dataurl.Encode("image/png", buf.Bytes())
}

func newSubmissionService(t *testing.T) (*SubmissionService, *store.MemoryStore, *blobstore.LocalStore, *recordingPublisher) {
	t.Helper()
	blobs, err := blobstore.NewLocalStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)
	st := store.NewMemoryStore()
	pub := &recordingPublisher{}
	svc := NewSubmissionService(st, blobs, pub, seoul, "https://sheets.example/d/log", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 7, 5, 30, 0, 0, time.UTC) }
	return svc, st, blobs, pub
}

func chairRequest() models.SubmitRequest {
	return models.SubmitRequest{
		UserID:         "u-1",
		AuthorName:     "김철수",
		TeamName:       "시설팀",
		InspectionDate: "2025-03-07",
		ItemName:       "의자",
		ItemTotal:      "150000",
		BuyerName:      "이영희",
		InspectorName:  "박민수",
	}
}

func TestSubmit_StoresRecordAndBlobs(t *testing.T) {
	svc, st, blobs, pub := newSubmissionService(t)
	req := chairRequest()
	req.Photos = []string{pngDataURL(t), "not-a-data-url", pngDataURL(t)}

	resp, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOK, resp.Status)
	assert.Equal(t, "의자_0307_1430", resp.SheetName)
	assert.Equal(t, "https://sheets.example/d/log", resp.SpreadsheetURL)
	assert.True(t, strings.HasPrefix(resp.SheetURL, "http://localhost:8080/blobs/records/"+resp.RowID+"/"))

	subs, err := st.ListSubmissions(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	sub := subs[0]
	assert.Equal(t, defaultDeptType, sub.DeptType)
	assert.Len(t, sub.PhotoURLs, 2)
	assert.Empty(t, sub.PINHash)

	_, err = os.Stat(filepath.Join(blobs.Dir(), "records", resp.RowID, "photo1.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(blobs.Dir(), "records", resp.RowID, "photo3.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(blobs.Dir(), "records", resp.RowID, "의자_0307_1430.xlsx"))
	assert.NoError(t, err)

	require.Len(t, pub.events, 1)
	assert.Equal(t, realtime.EventRecordSubmitted, pub.events[0].eventType)
	assert.Equal(t, "u-1", pub.events[0].userID)
}

func TestSubmit_SkipsNonImagePhotos(t *testing.T) {
	svc, st, blobs, _ := newSubmissionService(t)
	req := chairRequest()
	req.Photos = []string{
		dataurl.Encode("text/html", []byte("<script>alert(1)</script>")),
		dataurl.Encode("image/jpeg", []byte("<html><body>not a photo</body></html>")),
		pngDataURL(t),
	}

	resp, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	subs, err := st.ListSubmissions(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].PhotoURLs, 1)

	dir := filepath.Join(blobs.Dir(), "records", resp.RowID)
	for _, name := range []string{"photo1.jpg", "photo2.jpg"} {
		_, err = os.Stat(filepath.Join(dir, name))
		assert.ErrorIs(t, err, os.ErrNotExist, name)
	}
	_, err = os.Stat(filepath.Join(dir, "photo3.png"))
	assert.NoError(t, err)
}

func TestSubmit_TooManyPhotos(t *testing.T) {
	svc, _, _, _ := newSubmissionService(t)
	req := chairRequest()
	for i := 0; i < 5; i++ {
		req.Photos = append(req.Photos, pngDataURL(t))
	}
	_, err := svc.Submit(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyPhotos)
}

func TestSubmit_SameMinuteKeepsDistinctRows(t *testing.T) {
	svc, st, _, _ := newSubmissionService(t)

	first, err := svc.Submit(context.Background(), chairRequest())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), chairRequest())
	require.NoError(t, err)

	assert.Equal(t, first.SheetName, second.SheetName)
	assert.NotEqual(t, first.RowID, second.RowID)

	subs, err := st.ListSubmissions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestSubmit_WorkbookFailureCleansUp(t *testing.T) {
	svc, st, local, _ := newSubmissionService(t)
	svc.blobs = &failingBlobs{LocalStore: local, failSuffix: ".xlsx"}

	req := chairRequest()
	req.Photos = []string{pngDataURL(t)}
	_, err := svc.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store workbook")

	subs, err := st.ListSubmissions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, subs)

	matches, err := filepath.Glob(filepath.Join(local.Dir(), "records", "*", "photo1.png"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestListAndGet(t *testing.T) {
	svc, _, _, _ := newSubmissionService(t)
	a, err := svc.Submit(context.Background(), chairRequest())
	require.NoError(t, err)
	other := chairRequest()
	other.UserID = "u-2"
	other.ItemName = "책상"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	mine, err := svc.List(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.RowID, mine[0].RowID)
	assert.Equal(t, "2025-03-07 14:30", mine[0].SubmittedAt)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.Get(context.Background(), a.RowID)
	require.NoError(t, err)
	assert.Equal(t, "의자", got.ItemName)

	_, err = svc.Get(context.Background(), "sheet-name-not-id")
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = svc.Get(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDelete(t *testing.T) {
	svc, st, _, pub := newSubmissionService(t)
	req := chairRequest()
	req.PIN = "1234"
	resp, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), resp.RowID, "9999"), ErrPINMismatch)
	require.NoError(t, svc.Delete(context.Background(), resp.RowID, "1234"))
	assert.ErrorIs(t, svc.Delete(context.Background(), resp.RowID, "1234"), ErrRecordNotFound)

	subs, err := st.ListSubmissions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, subs)

	require.Len(t, pub.events, 2)
	assert.Equal(t, realtime.EventRecordDeleted, pub.events[1].eventType)
}

func TestDelete_RowWithoutPINCannotBeDeleted(t *testing.T) {
	svc, _, _, _ := newSubmissionService(t)
	resp, err := svc.Submit(context.Background(), chairRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), resp.RowID, ""), ErrPINMismatch)
}

func TestExportLog(t *testing.T) {
	svc, _, _, _ := newSubmissionService(t)
	_, err := svc.Submit(context.Background(), chairRequest())
	require.NoError(t, err)

	data, err := svc.ExportLog(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestVerifyPIN(t *testing.T) {
	hash, err := HashPIN("0420")
	require.NoError(t, err)

	assert.True(t, VerifyPIN(hash, "0420"))
	assert.False(t, VerifyPIN(hash, "0421"))
	assert.True(t, VerifyPIN(LegacyHashPIN("0420"), "0420"))
	assert.False(t, VerifyPIN(LegacyHashPIN("0420"), "0421"))
	assert.False(t, VerifyPIN("", ""))

	empty, err := HashPIN("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore(), "secret")

	reg, err := svc.Register(context.Background(), "  김철수 ", "시설팀", "1234")
	require.NoError(t, err)
	assert.Equal(t, "김철수", reg.Name)
	assert.Equal(t, "시설팀", reg.TeamName)
	assert.NotEmpty(t, reg.UserID)

	claims, err := middleware.ValidateToken("secret", reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, claims.UserID)

	_, err = svc.Register(context.Background(), "김철수", "", "5678")
	assert.ErrorIs(t, err, ErrDuplicateName)

	login, err := svc.Login(context.Background(), "김철수", "1234")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	_, err = svc.Login(context.Background(), "김철수", "0000")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "없는사람", "1234")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := NewAuthService(store.NewMemoryStore(), "secret")

	_, err := svc.Register(context.Background(), "  ", "", "1234")
	assert.ErrorIs(t, err, ErrNameRequired)
	_, err = svc.Register(context.Background(), "김철수", "", "12a4")
	assert.ErrorIs(t, err, ErrInvalidPIN)
	_, err = svc.Register(context.Background(), "김철수", "", "123")
	assert.ErrorIs(t, err, ErrInvalidPIN)
}
