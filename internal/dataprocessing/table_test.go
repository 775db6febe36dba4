package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "adpulse/internal/errors"
)

func TestParseCSV(t *testing.T) {
	input := "\ufeffCampaign,Cost,revenue_payme\n" +
		"alpha,100,300\n" +
		"beta,200\n" // short row

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Campaign", "Cost", "revenue_payme"}, table.Headers, "BOM must be stripped from the first header")
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "alpha", table.Cell(table.Rows[0], "Campaign"))
	assert.Equal(t, "300", table.Cell(table.Rows[0], "revenue_payme"))
	assert.Equal(t, "", table.Cell(table.Rows[1], "revenue_payme"), "missing cells read as empty")
	assert.Equal(t, "", table.Cell(table.Rows[0], "no such column"))
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestNewTable_DuplicateHeaders(t *testing.T) {
	table := NewTable([]string{"Cost", "Cost"}, [][]string{{"first", "second"}})
	assert.Equal(t, "first", table.Cell(table.Rows[0], "Cost"), "first occurrence of a duplicate header wins")
}

func TestTableRowMap(t *testing.T) {
	table := NewTable([]string{"Campaign", "", "Cost"}, nil)
	m := table.RowMap([]string{"alpha", "ignored", "100"})

	assert.Equal(t, map[string]string{"Campaign": "alpha", "Cost": "100"}, m, "unnamed columns are dropped")

	m = table.RowMap([]string{"beta"})
	assert.Equal(t, map[string]string{"Campaign": "beta", "Cost": ""}, m)
}

func TestParseUpload_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Campaign", "Cost"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"alpha", 100}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ParseUpload("report.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Campaign", "Cost"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "alpha", table.Cell(table.Rows[0], "Campaign"))
	assert.Equal(t, "100", table.Cell(table.Rows[0], "Cost"))
}

func TestParseUpload_CSVAndWorkbookEquivalence(t *testing.T) {
	csvTable, err := ParseUpload("report.csv", strings.NewReader("Campaign,Cost\nalpha,100\n"))
	require.NoError(t, err)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Campaign", "Cost"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"alpha", "100"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	xlsxTable, err := ParseUpload("report.xlsx", buf)
	require.NoError(t, err)

	assert.Equal(t, csvTable.Headers, xlsxTable.Headers)
	assert.Equal(t, csvTable.Rows, xlsxTable.Rows)
}

func TestParseUpload_UnsupportedExtension(t *testing.T) {
	_, err := ParseUpload("report.pdf", strings.NewReader("data"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestParseUpload_CorruptWorkbook(t *testing.T) {
	_, err := ParseUpload("report.xlsx", strings.NewReader("not a zip archive"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}
