package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/units"
)

func intPtr(v int) *int { return &v }

func TestFormatTimePtr(t *testing.T) {
	assert.Nil(t, formatTimePtr(nil))

	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2025, 6, 1, 13, 30, 0, 0, loc)
	assert.Equal(t, "2025-06-01T12:30:00Z", formatTimePtr(&ts))
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "N/A", formatDistance(nil, units.Metric))
	assert.Equal(t, "5000 km", formatDistance(intPtr(5000), units.Metric))
	assert.Equal(t, "3107 mi", formatDistance(intPtr(5000), units.Imperial))
}

func TestStatusPayloadCarriesCalculatorFieldsVerbatim(t *testing.T) {
	pct := 40.0
	status := maintenance.Status{
		DueMileage:           intPtr(15000),
		RemainingMiles:       intPtr(3000),
		CompletionPercentage: &pct,
		Priority:             maintenance.PriorityLow,
	}

	payload := statusPayload(status, units.Metric)

	assert.Equal(t, intPtr(15000), payload["due_mileage"])
	assert.Equal(t, intPtr(3000), payload["remaining_miles"])
	assert.Equal(t, false, payload["is_due"])
	assert.Equal(t, &pct, payload["completion_percentage"])
	assert.Equal(t, maintenance.PriorityLow, payload["priority"])
	assert.Nil(t, payload["due_date"])
	assert.Equal(t, "15000 km", payload["due_mileage_display"])
	assert.Equal(t, "3000 km", payload["remaining_display"])
}

func TestRecomputeTaskNextDue(t *testing.T) {
	task := &models.MaintenanceTask{
		IntervalMiles: intPtr(3000),
		IntervalDays:  intPtr(180),
	}
	record := &models.MaintenanceRecord{
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Mileage: intPtr(12000),
	}

	recomputeTaskNextDue(task, record)

	require.NotNil(t, task.NextDueOdometer)
	assert.Equal(t, 15000, *task.NextDueOdometer)
	require.NotNil(t, record.NextDueOdometer)
	assert.Equal(t, 15000, *record.NextDueOdometer)

	require.NotNil(t, task.NextDueDate)
	assert.Equal(t, time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC), *task.NextDueDate)
	require.NotNil(t, record.NextDueDate)
	assert.Equal(t, *task.NextDueDate, *record.NextDueDate)
}

func TestRecomputeTaskNextDueSkipsAbsentIntervals(t *testing.T) {
	task := &models.MaintenanceTask{}
	record := &models.MaintenanceRecord{
		Date:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Mileage: intPtr(12000),
	}

	recomputeTaskNextDue(task, record)

	assert.Nil(t, task.NextDueOdometer)
	assert.Nil(t, task.NextDueDate)
	assert.Nil(t, record.NextDueOdometer)
	assert.Nil(t, record.NextDueDate)
}
