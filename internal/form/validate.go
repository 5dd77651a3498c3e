package form

import (
	"fmt"

	"inspection-report/internal/session"
)

// ValidationError blocks forward navigation. Field is the input that should
// receive focus.
type ValidationError struct {
	Step    int
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Rules selects the step-1 requirements that differ between deployments.
type Rules struct {
	// RequireAmount makes the purchase amount mandatory.
	RequireAmount bool
}

// ValidateStep returns the first failing requirement of step, or nil. A
// signed-in session supplies the author and replaces the PIN.
func (r Rules) ValidateStep(d *Draft, step int, s *session.Session) error {
	switch step {
	case StepDetails:
		return r.validateDetails(d, s)
	case StepPhotos:
		if len(d.Photos) == 0 {
			return &ValidationError{Step: step, Message: "사진을 1장 이상 등록해주세요"}
		}
		return nil
	case StepPreview:
		return nil
	default:
		return fmt.Errorf("unknown step %d", step)
	}
}

func (r Rules) validateDetails(d *Draft, s *session.Session) error {
	fail := func(f Field, msg string) error {
		return &ValidationError{Step: StepDetails, Field: f, Message: msg}
	}

	if s == nil {
		if d.Get(FieldAuthorName) == "" {
			return fail(FieldAuthorName, "작성자 이름을 입력해주세요")
		}
		if !d.PIN.Valid() {
			return fail(FieldPIN, "비밀번호 4자리를 모두 입력해주세요")
		}
	} else if s.Name == "" {
		return fail(FieldAuthorName, "작성자 이름을 입력해주세요")
	}

	if d.Get(FieldInspectionDate) == "" {
		return fail(FieldInspectionDate, "검수일자를 선택해주세요")
	}
	if d.Get(FieldItemName) == "" {
		return fail(FieldItemName, "물품명을 입력해주세요")
	}
	if r.RequireAmount && d.Get(FieldItemTotal) == "" {
		return fail(FieldItemTotal, "합계금액을 입력해주세요")
	}
	return nil
}

func (r Rules) CanAdvance(d *Draft, step int, s *session.Session) bool {
	return r.ValidateStep(d, step, s) == nil
}

// GoToStep moves to target. Moving forward requires the current step, and
// any step skipped over, to validate; on failure nothing changes. Moving
// backward never validates.
func (d *Draft) GoToStep(target int, r Rules, s *session.Session) error {
	if target < StepDetails || target > StepPreview {
		return fmt.Errorf("step %d out of range", target)
	}
	for step := d.step; step < target; step++ {
		if err := r.ValidateStep(d, step, s); err != nil {
			return err
		}
	}
	d.step = target
	return nil
}
