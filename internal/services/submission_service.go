package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"inspection-report/internal/dataurl"
	"inspection-report/internal/form"
	"inspection-report/internal/models"
	"inspection-report/internal/realtime"
	"inspection-report/internal/sheets"
	"inspection-report/internal/store"
)

const (
	defaultDeptType = "개인"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BlobStore keeps photos and workbooks and hands back a public URL.
type BlobStore interface {
	Put(storagePath, contentType string, data []byte) (string, error)
	Delete(storagePaths ...string) error
}

type Publisher interface {
	PublishRecordEvent(userID, eventType string, payload map[string]any) error
}

type SubmissionService struct {
	store          store.Store
	blobs          BlobStore
	events         Publisher
	loc            *time.Location
	spreadsheetURL string
	logger         *zap.Logger
	now            func() time.Time
}

// NewSubmissionService wires the submission pipeline. events may be nil.
func NewSubmissionService(
	st store.Store,
	blobs BlobStore,
	events Publisher,
	loc *time.Location,
	spreadsheetURL string,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		store:          st,
		blobs:          blobs,
		events:         events,
		loc:            loc,
		spreadsheetURL: spreadsheetURL,
		logger:         logger,
		now:            time.Now,
	}
}

// SpreadsheetURL is the shared link returned alongside every submission.
func (s *SubmissionService) SpreadsheetURL() string {
	return s.spreadsheetURL
}

// Submit stores one report: photos first, then the document workbook, then
// the log row. Photos that cannot be decoded or uploaded are skipped.
func (s *SubmissionService) Submit(ctx context.Context, req models.SubmitRequest) (*models.SubmitResponse, error) {
	if len(req.Photos) > form.MaxPhotos {
		return nil, ErrTooManyPhotos
	}

	rowID := uuid.New()
	now := s.now()
	sheetName := sheets.SheetName(req.ItemName, now, s.loc)
	prefix := "records/" + rowID.String() + "/"

	var uploaded []string
	cleanup := func() {
		if len(uploaded) == 0 {
			return
		}
		if err := s.blobs.Delete(uploaded...); err != nil {
			s.logger.Warn("failed to remove blobs of rejected submission", zap.String("row_id", rowID.String()), zap.Error(err))
		}
	}

	photoURLs := make([]string, 0, len(req.Photos))
	for i, photo := range req.Photos {
		mime, data, err := dataurl.Decode(photo)
		if err != nil {
			s.logger.Warn("skipping unreadable photo", zap.String("row_id", rowID.String()), zap.Int("index", i), zap.Error(err))
			continue
		}
		ext, ok := photoExtensions[mime]
		if !ok || http.DetectContentType(data) != mime {
			s.logger.Warn("skipping photo that is not an image", zap.String("row_id", rowID.String()), zap.Int("index", i), zap.String("mime", mime))
			continue
		}
		path := fmt.Sprintf("%sphoto%d%s", prefix, i+1, ext)
		u, err := s.blobs.Put(path, mime, data)
		if err != nil {
			s.logger.Warn("failed to store photo", zap.String("row_id", rowID.String()), zap.Int("index", i), zap.Error(err))
			continue
		}
		uploaded = append(uploaded, path)
		photoURLs = append(photoURLs, u)
	}

	workbook, err := sheets.BuildDocument(sheets.Document{SheetName: sheetName, Request: req, PhotoURLs: photoURLs})
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	workbookPath := prefix + sheetName + ".xlsx"
	sheetURL, err := s.blobs.Put(workbookPath, xlsxContentType, workbook)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to store workbook: %w", err)
	}
	uploaded = append(uploaded, workbookPath)

	pinHash, err := HashPIN(req.PIN)
	if err != nil {
		cleanup()
		return nil, err
	}

	deptType := req.DeptType
	if deptType == "" {
		deptType = defaultDeptType
	}

	sub := &models.Submission{
		RowID:          rowID,
		UserID:         req.UserID,
		AuthorName:     req.AuthorName,
		TeamName:       req.TeamName,
		DeptType:       deptType,
		SubmittedAt:    now,
		ItemName:       req.ItemName,
		ItemTotal:      req.ItemTotal,
		InspectionDate: req.InspectionDate,
		RelatedDoc:     req.RelatedDoc,
		SheetName:      sheetName,
		SheetURL:       sheetURL,
		PhotoURLs:      photoURLs,
		PINHash:        pinHash,
	}
	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	s.logger.Info("submission stored",
		zap.String("row_id", rowID.String()),
		zap.String("sheet_name", sheetName),
		zap.Int("photos", len(photoURLs)),
	)
	s.publish(req.UserID, realtime.EventRecordSubmitted, realtime.SubmittedPayload(rowID.String(), req.ItemName, sheetName, sheetURL))

	return &models.SubmitResponse{
		Status:         models.StatusOK,
		RowID:          rowID.String(),
		SheetName:      sheetName,
		SheetURL:       sheetURL,
		SpreadsheetURL: s.spreadsheetURL,
	}, nil
}

// List returns summaries in submission order. An empty userID lists all.
func (s *SubmissionService) List(ctx context.Context, userID string) ([]models.SubmissionSummary, error) {
	subs, err := s.store.ListSubmissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	out := make([]models.SubmissionSummary, len(subs))
	for i := range subs {
		out[i] = subs[i].Summary(s.loc)
	}
	return out, nil
}

func (s *SubmissionService) Get(ctx context.Context, rowID string) (*models.SubmissionSummary, error) {
	sub, err := s.find(ctx, rowID)
	if err != nil {
		return nil, err
	}
	summary := sub.Summary(s.loc)
	return &summary, nil
}

// Delete removes the log row when pin matches the hash stored with it.
// Stored blobs are left in place.
func (s *SubmissionService) Delete(ctx context.Context, rowID, pin string) error {
	sub, err := s.find(ctx, rowID)
	if err != nil {
		return err
	}
	if !VerifyPIN(sub.PINHash, pin) {
		return ErrPINMismatch
	}
	if err := s.store.DeleteSubmission(ctx, sub.RowID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	s.logger.Info("submission deleted", zap.String("row_id", rowID))
	s.publish(sub.UserID, realtime.EventRecordDeleted, realtime.DeletedPayload(sub.RowID.String()))
	return nil
}

// ExportLog renders every submission as the log workbook.
func (s *SubmissionService) ExportLog(ctx context.Context, userID string) ([]byte, error) {
	records, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sheets.BuildLog(records)
}

func (s *SubmissionService) find(ctx context.Context, rowID string) (*models.Submission, error) {
	id, err := uuid.Parse(strings.TrimSpace(rowID))
	if err != nil {
		return nil, ErrRecordNotFound
	}
	sub, err := s.store.GetSubmission(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return sub, nil
}

func (s *SubmissionService) publish(userID, eventType string, payload map[string]any) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRecordEvent(userID, eventType, payload); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// photoExtensions lists the photo types served back from the public bucket.
// The declared type must match the bytes.
var photoExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}
