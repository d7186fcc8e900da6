package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestMaintenanceTaskValidate(t *testing.T) {
	task := &MaintenanceTask{
		Name:         "Oil Change",
		IntervalBase: "current",
		Priority:     "low",
	}
	assert.NoError(t, task.Validate())

	task.Name = ""
	assert.Error(t, task.Validate())

	task.Name = "Oil Change"
	task.Priority = "urgent"
	assert.Error(t, task.Validate())

	task.Priority = "high"
	task.IntervalBase = "purchase"
	assert.Error(t, task.Validate())
}

func TestMaintenanceTaskCalculatorInput(t *testing.T) {
	task := &MaintenanceTask{
		IntervalMiles:   intPtr(3000),
		IntervalBase:    "zero",
		NextDueOdometer: intPtr(15000),
		Priority:        "medium",
	}

	input := task.CalculatorInput()

	require.NotNil(t, input.IntervalMiles)
	assert.Equal(t, 3000, *input.IntervalMiles)
	assert.Nil(t, input.IntervalDays)
	assert.Equal(t, "zero", input.IntervalBase)
	require.NotNil(t, input.NextDueOdometer)
	assert.Equal(t, 15000, *input.NextDueOdometer)
	assert.Equal(t, "medium", input.Priority)
}

func TestMaintenanceRecordCalculatorInputNilReceiver(t *testing.T) {
	var record *MaintenanceRecord
	assert.Nil(t, record.CalculatorInput())
}
