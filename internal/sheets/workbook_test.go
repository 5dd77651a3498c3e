package sheets_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"inspection-report/internal/models"
	"inspection-report/internal/sheets"
)

func TestSheetName(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	at := time.Date(2024, 3, 1, 1, 15, 0, 0, time.UTC)

	assert.Equal(t, "의자_0301_1015", sheets.SheetName("의자", at, seoul))
	assert.Equal(t, "물품_0301_1015", sheets.SheetName("", at, seoul))
	assert.Equal(t, "A_B_C_0301_1015", sheets.SheetName("A/B:C", at, seoul))

	long := sheets.SheetName("가나다라마바사아자차카타파하가나다라마바사아자차카타파하", at, seoul)
	assert.Equal(t, 31, len([]rune(long)))
}

func TestBuildDocument(t *testing.T) {
	data, err := sheets.BuildDocument(sheets.Document{
		SheetName: "의자_0301_1015",
		Request: models.SubmitRequest{
			AuthorName:     "김철수",
			TeamName:       "시설팀",
			InspectionDate: "2024-03-01",
			ItemName:       "의자",
			ItemTotal:      "150000",
			BuyerName:      "이영희",
			BuyerSignature: "data:text/plain;base64,AA==",
		},
		PhotoURLs: []string{"https://example.com/p1.jpg", "https://example.com/p2.jpg"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"의자_0301_1015"}, f.GetSheetList())

	title, err := f.GetCellValue("의자_0301_1015", "A1")
	require.NoError(t, err)
	assert.Equal(t, "물품검수조서", title)

	author, _ := f.GetCellValue("의자_0301_1015", "E5")
	assert.Equal(t, "시설팀 (김철수)", author)
	total, _ := f.GetCellValue("의자_0301_1015", "B8")
	assert.Equal(t, "150000", total)
	photo, _ := f.GetCellValue("의자_0301_1015", "A13")
	assert.Equal(t, "사진1: https://example.com/p1.jpg", photo)
	photo, _ = f.GetCellValue("의자_0301_1015", "A14")
	assert.Equal(t, "사진2: https://example.com/p2.jpg", photo)
}

func TestBuildLog(t *testing.T) {
	data, err := sheets.BuildLog([]models.SubmissionSummary{
		{RowID: "r1", SubmittedAt: "2024-03-01 10:15", ItemName: "의자", ItemTotal: "150000", AuthorName: "김철수"},
		{RowID: "r2", SubmittedAt: "2024-03-02 09:00", ItemName: "책상"},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheets.LogSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.GreaterOrEqual(t, len(rows[1]), 7)
	assert.Equal(t, "rowId", rows[0][0])
	assert.Len(t, rows[0], 10)
	assert.NotContains(t, rows[0], "pinHash")
	assert.Equal(t, []string{"r1", "2024-03-01 10:15", "의자", "150000", "", "", "김철수"}, rows[1][:7])
	assert.Equal(t, "책상", rows[2][2])
}
