// Package preview builds read-only views of an inspection report: the
// document shown before submission, the standalone print view of a stored
// record and the history list entries. Everything here is pure; HTML output
// is a thin template over the view values.
package preview

import (
	"strings"

	"inspection-report/internal/form"
	"inspection-report/internal/session"
)

const (
	Title = "물품검수조서"

	FooterAssociation  = "사단법인 한국지체장애인협회"
	FooterOrganization = "강동어울림복지관"

	NoPhotoText = "사진 없음"
)

// Signatory is one row of the inspector table.
type Signatory struct {
	Role string
	Name string
	// Signature is the effective signature or stamp data URL, "" if none.
	Signature string
}

func (s Signatory) Signed() bool {
	return s.Signature != ""
}

type PhotoBlock struct {
	Layout form.Layout
	Images []string
}

func (p PhotoBlock) Empty() bool {
	return len(p.Images) == 0
}

// DocumentView mirrors the paper form.
type DocumentView struct {
	Title           string
	InspectionDate  string
	ReceiptDate     string
	RelatedDoc      string
	AuthorLine      string
	ItemName        string
	Amount          string
	InspectionPlace string
	Buyer           Signatory
	Inspector       Signatory
	Photos          PhotoBlock
	Footer          [2]string
}

// Render builds the document for d. A non-nil session supplies the author
// and team. d is not modified.
func Render(d *form.Draft, s *session.Session) DocumentView {
	author, team := d.Get(form.FieldAuthorName), d.Get(form.FieldTeamName)
	if s != nil {
		author, team = s.Name, s.TeamName
	}

	images := make([]string, len(d.Photos))
	for i, p := range d.Photos {
		images[i] = p.ImageData
	}
	layout, _ := form.LayoutFor(len(images))

	return DocumentView{
		Title:           Title,
		InspectionDate:  DisplayDate(d.Get(form.FieldInspectionDate)),
		ReceiptDate:     DisplayDate(d.Get(form.FieldReceiptDate)),
		RelatedDoc:      d.Get(form.FieldRelatedDoc),
		AuthorLine:      session.AuthorLine(team, author),
		ItemName:        d.Get(form.FieldItemName),
		Amount:          FormatAmount(d.Get(form.FieldItemTotal)),
		InspectionPlace: d.Get(form.FieldInspectionPlace),
		Buyer: Signatory{
			Role:      "물품구매자",
			Name:      d.Get(form.FieldBuyerName),
			Signature: d.Buyer.Effective(),
		},
		Inspector: Signatory{
			Role:      "검수입회자",
			Name:      d.Get(form.FieldInspectorName),
			Signature: d.Inspector.Effective(),
		},
		Photos: PhotoBlock{Layout: layout, Images: images},
		Footer: [2]string{FooterAssociation, FooterOrganization},
	}
}

// DisplayDate turns 2024-03-01 into 2024.03.01.
func DisplayDate(iso string) string {
	return strings.ReplaceAll(iso, "-", ".")
}
