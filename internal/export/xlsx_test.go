package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Raymond9734/customer-dashboard-backend/internal/models"
)

func TestWriteXLSX(t *testing.T) {
	customers := []models.Customer{
		{ID: "2", Name: "Kris Roher", Level: models.LevelWarga, FavoriteMenu: "Surf & Turf Gift Basket", TotalTransaction: 651200, CreatedAt: "2023-02-20"},
		{ID: "1", Name: "Odis Rhinehart", Level: models.LevelWarga, FavoriteMenu: "Chicken & Ribs Combo", TotalTransaction: 194700, CreatedAt: "2023-01-15"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, customers))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "Name", "Level", "Favorite Menu", "Total Transaction", "Created At"}, rows[0])
	assert.Equal(t, []string{"2", "Kris Roher", "Warga", "Surf & Turf Gift Basket", "651200", "2023-02-20"}, rows[1])
	assert.Equal(t, "1", rows[2][0], "rows keep the given order")
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
