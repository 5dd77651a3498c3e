// Package wizard drives a draft through the three report steps and keeps
// the document preview in sync with it.
package wizard

import (
	"context"
	"errors"
	"time"

	"inspection-report/internal/form"
	"inspection-report/internal/preview"
	"inspection-report/internal/remote"
	"inspection-report/internal/session"
)

var ErrNotOnPreview = errors.New("submit is only available on the preview step")

type Submitter interface {
	Submit(ctx context.Context, d *form.Draft, s *session.Session) (*remote.SubmitResult, error)
}

type Wizard struct {
	Draft   *form.Draft
	Session *session.Session
	Rules   form.Rules

	view *preview.DocumentView
}

func New(today time.Time, s *session.Session, rules form.Rules) *Wizard {
	return &Wizard{Draft: form.NewDraft(today), Session: s, Rules: rules}
}

// GoToStep navigates the draft. Entering the preview step always rebuilds
// the preview, even when already there.
func (w *Wizard) GoToStep(target int) error {
	if err := w.Draft.GoToStep(target, w.Rules, w.Session); err != nil {
		return err
	}
	if target == form.StepPreview {
		v := preview.Render(w.Draft, w.Session)
		w.view = &v
	}
	return nil
}

func (w *Wizard) Next() error {
	return w.GoToStep(w.Draft.Step() + 1)
}

func (w *Wizard) Back() error {
	if w.Draft.Step() == form.StepDetails {
		return nil
	}
	return w.GoToStep(w.Draft.Step() - 1)
}

// Preview returns the last rendered document, or nil before step 3 has been
// reached.
func (w *Wizard) Preview() *preview.DocumentView {
	return w.view
}

func (w *Wizard) Reset(today time.Time) {
	w.Draft.Reset(today)
	w.view = nil
}

// Submit sends the draft from the preview step. Unless the outcome is
// remote.Failed the wizard resets for a new report; a failed draft is kept
// so it can be sent again.
func (w *Wizard) Submit(ctx context.Context, sub Submitter, today time.Time) (*remote.SubmitResult, error) {
	if w.Draft.Step() != form.StepPreview {
		return nil, ErrNotOnPreview
	}
	res, err := sub.Submit(ctx, w.Draft, w.Session)
	if res != nil && res.Outcome != remote.Failed {
		w.Reset(today)
	}
	return res, err
}
