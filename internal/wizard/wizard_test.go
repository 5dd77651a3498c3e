package wizard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"inspection-report/internal/form"
	"inspection-report/internal/remote"
	"inspection-report/internal/session"
	"inspection-report/internal/wizard"
)

var today = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func TestWizard_PreviewBuiltOnStepThree(t *testing.T) {
	w := wizard.New(today, &session.Session{UserID: "u1", Name: "김철수", TeamName: "시설팀"}, form.Rules{})
	w.Draft.Set(form.FieldItemName, "의자")
	w.Draft.Set(form.FieldItemTotal, "150000")

	require.NoError(t, w.Next())
	assert.Nil(t, w.Preview())

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, form.StepPhotos, w.Draft.Step())

	w.Draft.Photos = []form.PhotoEntry{{ImageData: "data:image/png;base64,AA=="}}
	require.NoError(t, w.Next())
	require.NotNil(t, w.Preview())
	assert.Equal(t, "150,000원", w.Preview().Amount)
	assert.Equal(t, "시설팀 (김철수)", w.Preview().AuthorLine)
	assert.Equal(t, 1, w.Preview().Photos.Layout.Count)

	w.Draft.Set(form.FieldItemTotal, "200000")
	require.NoError(t, w.GoToStep(form.StepPreview))
	assert.Equal(t, "200,000원", w.Preview().Amount)
}

func TestWizard_BackwardFromPreviewNeverValidates(t *testing.T) {
	w := wizard.New(today, nil, form.Rules{})
	w.Draft.Set(form.FieldAuthorName, "김철수")
	w.Draft.Set(form.FieldItemName, "의자")
	w.Draft.PIN.Enter("1234")
	w.Draft.Photos = []form.PhotoEntry{{ImageData: "data:image/png;base64,AA=="}}
	require.NoError(t, w.GoToStep(form.StepPreview))

	w.Draft.Set(form.FieldItemName, "")
	w.Draft.Photos = nil
	require.NoError(t, w.GoToStep(form.StepDetails))
	assert.Equal(t, form.StepDetails, w.Draft.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, form.StepDetails, w.Draft.Step())
}

func TestWizard_Reset(t *testing.T) {
	w := wizard.New(today, &session.Session{UserID: "u1", Name: "김철수"}, form.Rules{})
	w.Draft.Set(form.FieldItemName, "의자")
	w.Draft.Photos = []form.PhotoEntry{{ImageData: "data:image/png;base64,AA=="}}
	require.NoError(t, w.GoToStep(form.StepPreview))

	w.Reset(today)
	assert.Nil(t, w.Preview())
	assert.Equal(t, form.StepDetails, w.Draft.Step())
	assert.Empty(t, w.Draft.Photos)
}

type stubSubmitter struct {
	outcome remote.Outcome
	err     error
	calls   int
}

func (s *stubSubmitter) Submit(ctx context.Context, d *form.Draft, _ *session.Session) (*remote.SubmitResult, error) {
	s.calls++
	return &remote.SubmitResult{Outcome: s.outcome}, s.err
}

func readyWizard(t *testing.T) *wizard.Wizard {
	w := wizard.New(today, &session.Session{UserID: "u1", Name: "김철수"}, form.Rules{})
	w.Draft.Set(form.FieldItemName, "의자")
	w.Draft.Photos = []form.PhotoEntry{{ImageData: "data:image/png;base64,AA=="}}
	require.NoError(t, w.GoToStep(form.StepPreview))
	return w
}

func TestWizard_SubmitOnlyFromPreview(t *testing.T) {
	w := wizard.New(today, nil, form.Rules{})
	sub := &stubSubmitter{outcome: remote.Confirmed}

	_, err := w.Submit(context.Background(), sub, today)
	assert.ErrorIs(t, err, wizard.ErrNotOnPreview)
	assert.Zero(t, sub.calls)
}

func TestWizard_SubmitResetsUnlessFailed(t *testing.T) {
	for _, outcome := range []remote.Outcome{remote.Confirmed, remote.Unconfirmed} {
		w := readyWizard(t)
		res, err := w.Submit(context.Background(), &stubSubmitter{outcome: outcome}, today)
		require.NoError(t, err)
		assert.Equal(t, outcome, res.Outcome)
		assert.Equal(t, form.StepDetails, w.Draft.Step(), outcome.String())
		assert.Empty(t, w.Draft.Photos)
	}

	w := readyWizard(t)
	_, err := w.Submit(context.Background(), &stubSubmitter{outcome: remote.Failed, err: assert.AnError}, today)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, form.StepPreview, w.Draft.Step())
	assert.Equal(t, "의자", w.Draft.Get(form.FieldItemName))
}
