package preview

import (
	"inspection-report/internal/form"
	"inspection-report/internal/models"
	"inspection-report/internal/session"
)

const MissingItemName = "(물품명 없음)"

// PrintView is the standalone printable form of a stored record.
type PrintView struct {
	Title          string
	RelatedDoc     string
	ItemName       string
	Amount         string
	InspectionDate string
	SubmittedAt    string
	AuthorLine     string
	SheetURL       string
	Photos         PhotoBlock
	Footer         [2]string
}

func RenderPrint(r models.SubmissionSummary) PrintView {
	layout, _ := form.LayoutFor(len(r.PhotoURLs))
	return PrintView{
		Title:          Title,
		RelatedDoc:     r.RelatedDoc,
		ItemName:       itemName(r.ItemName),
		Amount:         FormatAmount(r.ItemTotal),
		InspectionDate: DisplayDate(r.InspectionDate),
		SubmittedAt:    r.SubmittedAt,
		AuthorLine:     session.AuthorLine(r.TeamName, r.AuthorName),
		SheetURL:       r.SheetURL,
		Photos:         PhotoBlock{Layout: layout, Images: r.PhotoURLs},
		Footer:         [2]string{FooterAssociation, FooterOrganization},
	}
}

// HistoryEntry is one card of the history list.
type HistoryEntry struct {
	RowID          string
	ItemName       string
	SubmittedAt    string
	TeamName       string
	AuthorName     string
	Amount         string
	InspectionDate string
	// Link is the record's own document when the service returned one,
	// otherwise the shared spreadsheet.
	Link     string
	OwnLink  bool
	SheetURL string
}

// History converts records, already ordered most-recent-first, into list
// entries. fallbackURL is the shared spreadsheet link.
func History(records []models.SubmissionSummary, fallbackURL string) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		e := HistoryEntry{
			RowID:          r.RowID,
			ItemName:       itemName(r.ItemName),
			SubmittedAt:    r.SubmittedAt,
			TeamName:       r.TeamName,
			AuthorName:     r.AuthorName,
			Amount:         FormatAmount(r.ItemTotal),
			InspectionDate: r.InspectionDate,
			Link:           fallbackURL,
			SheetURL:       fallbackURL,
		}
		if r.SheetURL != "" {
			e.Link = r.SheetURL
			e.OwnLink = true
		}
		out = append(out, e)
	}
	return out
}

func itemName(s string) string {
	if s == "" {
		return MissingItemName
	}
	return s
}
