// Package form holds the in-progress inspection report: field values, the
// PIN widget, photos, signatures and the three-step navigation rules.
package form

import (
	"strings"
	"time"
)

type Field string

const (
	FieldRelatedDoc      Field = "relatedDoc"
	FieldItemName        Field = "itemName"
	FieldItemTotal       Field = "itemTotal"
	FieldInspectionDate  Field = "inspectionDate"
	FieldReceiptDate     Field = "receiptDate"
	FieldInspectionPlace Field = "inspectionPlace"
	FieldBuyerName       Field = "buyerName"
	FieldInspectorName   Field = "inspectorName"
	FieldTeamName        Field = "teamName"
	FieldAuthorName      Field = "authorName"

	// FieldPIN names the first PIN cell, which takes focus on PIN errors.
	FieldPIN Field = "pin0"
)

// Fields lists every text field in form order.
var Fields = []Field{
	FieldInspectionDate, FieldReceiptDate, FieldRelatedDoc, FieldTeamName, FieldAuthorName,
	FieldItemName, FieldItemTotal, FieldInspectionPlace, FieldBuyerName, FieldInspectorName,
}

const (
	StepDetails = 1
	StepPhotos  = 2
	StepPreview = 3
)

const dateLayout = "2006-01-02"

// Draft is one report being filled in. It is owned by a single caller and
// passed explicitly; nothing here is shared.
type Draft struct {
	step   int
	fields map[Field]string

	PIN       PINInput
	Photos    []PhotoEntry
	Buyer     *Signer
	Inspector *Signer
}

// NewDraft starts at step 1 with both dates set to today.
func NewDraft(today time.Time) *Draft {
	d := &Draft{}
	d.Reset(today)
	return d
}

// Reset discards everything entered so far.
func (d *Draft) Reset(today time.Time) {
	d.step = StepDetails
	d.fields = make(map[Field]string, len(Fields))
	d.PIN.Clear()
	d.Photos = nil
	d.Buyer = NewSigner()
	d.Inspector = NewSigner()

	date := today.Format(dateLayout)
	d.fields[FieldInspectionDate] = date
	d.fields[FieldReceiptDate] = date
}

func (d *Draft) Step() int {
	return d.step
}

func (d *Draft) Set(f Field, value string) {
	d.fields[f] = value
}

// Get returns the trimmed value of f.
func (d *Draft) Get(f Field) string {
	return strings.TrimSpace(d.fields[f])
}

// Values copies all non-empty fields.
func (d *Draft) Values() map[Field]string {
	out := make(map[Field]string, len(d.fields))
	for k := range d.fields {
		if v := d.Get(k); v != "" {
			out[k] = v
		}
	}
	return out
}
