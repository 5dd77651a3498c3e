// Package sheets writes inspection reports as spreadsheet workbooks: one
// workbook per submitted document and an export of the submission log.
package sheets

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"inspection-report/internal/dataurl"
	"inspection-report/internal/models"
	"inspection-report/internal/session"
)

const (
	// LogSheetName is the sheet holding one row per submission.
	LogSheetName = "제출기록"

	defaultItemName = "물품"
	maxSheetName    = 31
)

// LogHeader lists the log columns. The PIN hash column is never exported.
var LogHeader = []any{"rowId", "제출일시", "물품명", "금액", "구분", "팀명", "작성자", "검수일", "시트명", "시트URL"}

// SheetName is the display label of a document: the item name followed by
// the submission minute in loc. Two documents may share a label.
func SheetName(itemName string, at time.Time, loc *time.Location) string {
	if itemName == "" {
		itemName = defaultItemName
	}
	return sanitize(itemName + "_" + at.In(loc).Format("0102_1504"))
}

// sanitize drops characters a sheet name cannot hold and caps its length.
func sanitize(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > maxSheetName {
		name = string([]rune(name)[:maxSheetName])
	}
	return name
}

// Document is everything written into a single report workbook.
type Document struct {
	SheetName string
	Request   models.SubmitRequest
	PhotoURLs []string
}

// BuildDocument lays the report out as the paper form and returns the
// encoded .xlsx.
func BuildDocument(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.SheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	r := doc.Request
	rows := [][]any{
		{"물품검수조서"},
		{},
		{"검수일자", r.InspectionDate, "", "영수증일자", r.ReceiptDate},
		{"관련문서", r.RelatedDoc},
		{"검수장소", r.InspectionPlace, "", "작성자", session.AuthorLine(r.TeamName, r.AuthorName)},
		{},
		{"물품명", r.ItemName},
		{"합계금액", r.ItemTotal},
		{},
		{"물품구매자", r.BuyerName, "", "검수입회자", r.InspectorName},
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	title, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", "A1", title); err != nil {
		return nil, fmt.Errorf("failed to style title: %w", err)
	}

	signRow := len(rows) + 1
	addSignature(f, sheet, fmt.Sprintf("B%d", signRow), r.BuyerSignature)
	addSignature(f, sheet, fmt.Sprintf("E%d", signRow), r.InspectorSignature)

	for i, u := range doc.PhotoURLs {
		cell := fmt.Sprintf("A%d", signRow+2+i)
		if err := f.SetCellValue(sheet, cell, fmt.Sprintf("사진%d: %s", i+1, u)); err != nil {
			return nil, fmt.Errorf("failed to write photo link: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// addSignature embeds a PNG or JPEG data URL at cell. Signatures that cannot
// be decoded are left out rather than failing the document.
func addSignature(f *excelize.File, sheet, cell, data string) {
	if data == "" {
		return
	}
	mime, raw, err := dataurl.Decode(data)
	if err != nil {
		return
	}
	var ext string
	switch mime {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		return
	}
	_ = f.AddPictureFromBytes(sheet, cell, &excelize.Picture{
		Extension: ext,
		File:      raw,
		Format:    &excelize.GraphicOptions{LockAspectRatio: true, ScaleX: 0.5, ScaleY: 0.5},
	})
}

// BuildLog exports summaries as the submission log workbook.
func BuildLog(records []models.SubmissionSummary) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), LogSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(LogSheetName, "A1", &LogHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DBEAFE"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	if err := f.SetCellStyle(LogSheetName, "A1", "J1", header); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range records {
		row := []any{r.RowID, r.SubmittedAt, r.ItemName, r.ItemTotal, r.DeptType, r.TeamName, r.AuthorName, r.InspectionDate, r.SheetName, r.SheetURL}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(LogSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
