package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ip(v int) *int { return &v }

func TestComputeZeroBaseCheckpoint(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(5000), IntervalBase: IntervalBaseZero, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(12000)}

	status := Compute(task, moto, nil, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 15000, *status.DueMileage)
	require.NotNil(t, status.RemainingMiles)
	assert.Equal(t, 3000, *status.RemainingMiles)
	assert.False(t, status.IsDue)
}

func TestComputeCurrentBaseCheckpoint(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(5000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(12000)}

	status := Compute(task, moto, nil, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 17000, *status.DueMileage)
}

func TestComputeExampleScenario(t *testing.T) {
	// New 3,000 km oil change task on a bike at 9,000 km: due at 12,000 km,
	// 3,000 km remaining, 0% complete, not due, stored priority kept.
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(3000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(9000)}

	status := Compute(task, moto, nil, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 12000, *status.DueMileage)
	require.NotNil(t, status.RemainingMiles)
	assert.Equal(t, 3000, *status.RemainingMiles)
	require.NotNil(t, status.CompletionPercentage)
	assert.Equal(t, 0.0, *status.CompletionPercentage)
	assert.False(t, status.IsDue)
	assert.Equal(t, PriorityLow, status.Priority)
	assert.Nil(t, status.DueDate)
}

func TestComputeRecordNextDueOdometerWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(5000), IntervalBase: IntervalBaseCurrent, NextDueOdometer: ip(99999), Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(12000)}
	last := &RecordInput{
		Date:            now.AddDate(0, -1, 0),
		Mileage:         ip(10000),
		NextDueOdometer: ip(14500),
	}

	status := Compute(task, moto, last, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 14500, *status.DueMileage)
}

func TestComputeRecordMileagePlusInterval(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(5000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(12000)}
	last := &RecordInput{Date: now.AddDate(0, -1, 0), Mileage: ip(10000)}

	status := Compute(task, moto, last, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 15000, *status.DueMileage)
}

func TestComputeDueDateBoundaryInclusive(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalDays: ip(180), Priority: PriorityLow}
	last := &RecordInput{Date: now.AddDate(0, 0, -180)}

	status := Compute(task, MotorcycleInput{}, last, now)

	require.NotNil(t, status.DueDate)
	assert.True(t, status.DueDate.Equal(now))
	assert.True(t, status.IsDue, "a task due exactly now is due")
	assert.Equal(t, PriorityHigh, status.Priority)
}

func TestComputeDueDateFromPurchaseDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	purchase := now.AddDate(0, 0, -30)
	task := TaskInput{IntervalDays: ip(90), Priority: PriorityLow}
	moto := MotorcycleInput{PurchaseDate: &purchase}

	status := Compute(task, moto, nil, now)

	require.NotNil(t, status.DueDate)
	assert.Equal(t, purchase.AddDate(0, 0, 90), *status.DueDate)
	assert.False(t, status.IsDue)
}

func TestComputeOverdueMileage(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(3000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(16000)}
	last := &RecordInput{Date: now.AddDate(0, -6, 0), Mileage: ip(12000)}

	status := Compute(task, moto, last, now)

	require.NotNil(t, status.DueMileage)
	assert.Equal(t, 15000, *status.DueMileage)
	assert.True(t, status.IsDue)
	require.NotNil(t, status.RemainingMiles)
	assert.Equal(t, 0, *status.RemainingMiles, "remaining never goes negative")
	require.NotNil(t, status.CompletionPercentage)
	assert.Equal(t, 100.0, *status.CompletionPercentage)
	assert.Equal(t, PriorityHigh, status.Priority)
}

func TestComputeInformationalOnlyTask(t *testing.T) {
	now := time.Now()
	task := TaskInput{Priority: PriorityMedium}
	moto := MotorcycleInput{CurrentMileage: ip(50000)}

	status := Compute(task, moto, nil, now)

	assert.False(t, status.IsDue)
	assert.Nil(t, status.DueDate)
	assert.Nil(t, status.DueMileage)
	assert.Nil(t, status.RemainingMiles)
	assert.Nil(t, status.CompletionPercentage)
	assert.Equal(t, PriorityMedium, status.Priority)
}

func TestComputeZeroIntervalYieldsNoProjection(t *testing.T) {
	now := time.Now()
	task := TaskInput{IntervalMiles: ip(0), IntervalBase: IntervalBaseZero, Priority: PriorityLow}
	moto := MotorcycleInput{CurrentMileage: ip(12000)}

	status := Compute(task, moto, nil, now)

	assert.Nil(t, status.DueMileage)
	assert.Nil(t, status.CompletionPercentage)
	assert.False(t, status.IsDue)
}

func TestComputePriorityEscalation(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(1000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}

	tests := []struct {
		name     string
		mileage  int // into a 1000-interval, last record at 0
		expected string
	}{
		{"under 75 percent keeps stored", 500, PriorityLow},
		{"at 75 percent escalates to medium", 750, PriorityMedium},
		{"at 90 percent escalates to high", 900, PriorityHigh},
	}
	last := &RecordInput{Date: now.AddDate(0, -1, 0), Mileage: ip(0)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moto := MotorcycleInput{CurrentMileage: ip(tt.mileage)}
			status := Compute(task, moto, last, now)
			assert.Equal(t, tt.expected, status.Priority)
		})
	}
}

func TestComputeCompletionStaysWithinBounds(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	task := TaskInput{IntervalMiles: ip(5000), IntervalBase: IntervalBaseCurrent, Priority: PriorityLow}
	last := &RecordInput{Date: now.AddDate(0, -1, 0), Mileage: ip(10000)}

	for _, mileage := range []int{0, 9000, 10000, 12500, 15000, 50000} {
		status := Compute(task, MotorcycleInput{CurrentMileage: ip(mileage)}, last, now)
		if status.CompletionPercentage == nil {
			continue
		}
		assert.GreaterOrEqual(t, *status.CompletionPercentage, 0.0)
		assert.LessOrEqual(t, *status.CompletionPercentage, 100.0)
	}
}
