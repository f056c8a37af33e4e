package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tradedesk/htsagent/internal/models"
)

var sampleEntries = []models.DutyEntry{
	{HTSCode: "0102.29.40", ProductCost: 1000, Freight: 50, Insurance: 20, DutyCost: 50, TotalLandedCost: 1120},
	{HTSCode: "0101.21.00", ProductCost: 500, Freight: 25, Insurance: 10, DutyCost: 0, TotalLandedCost: 535},
}

func TestToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duty_results.xlsx")
	require.NoError(t, ToExcel(sampleEntries, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "HTS Code", rows[0][0])
	assert.Equal(t, "Total Landed Cost", rows[0][5])
	assert.Equal(t, "0102.29.40", rows[1][0])
	assert.Equal(t, "1120", rows[1][5])
	assert.Equal(t, "0101.21.00", rows[2][0])
}

func TestToExcelEmptyHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duty_results.xlsx")
	require.NoError(t, ToExcel(nil, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}

func TestToPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "duty_results.pdf")
	require.NoError(t, ToPDF(sampleEntries, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
