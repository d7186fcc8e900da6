package controllers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideway/rideway/app/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestRecordsToCSV(t *testing.T) {
	records := []models.MaintenanceRecord{
		{
			Motorcycle: models.Motorcycle{Name: "Street Triple"},
			Task:       &models.MaintenanceTask{Name: "Oil Change"},
			Date:       time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Mileage:    intPtr(12000),
			Cost:       floatPtr(89.9),
			Notes:      "full synthetic",
		},
		{
			// Free-standing record without a task, mileage, or cost.
			Motorcycle: models.Motorcycle{Name: "Tenere 700"},
			Date:       time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
			Notes:      "",
		},
	}

	body, err := recordsToCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"date", "motorcycle", "task", "mileage_km", "cost", "notes"}, rows[0])
	assert.Equal(t, []string{"2025-03-15", "Street Triple", "Oil Change", "12000", "89.90", "full synthetic"}, rows[1])
	assert.Equal(t, []string{"2025-04-02", "Tenere 700", "", "", "", ""}, rows[2])
}

func TestRecordsToCSVEmpty(t *testing.T) {
	body, err := recordsToCSV(nil)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"date", "motorcycle", "task", "mileage_km", "cost", "notes"}, rows[0])
}
