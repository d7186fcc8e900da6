package maintenance

import (
	"time"
)

// Interval bases supported by tasks. A "current"-based task slides its next
// checkpoint forward from wherever the odometer stood when the task was
// created or last completed. A "zero"-based task pins checkpoints to fixed
// multiples of the interval (every 5,000 km exactly), regardless of when the
// motorcycle was added.
const (
	IntervalBaseCurrent = "current"
	IntervalBaseZero    = "zero"
)

// Task priorities as stored on the task. Compute may escalate but never
// lowers the stored priority.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TaskInput carries the task fields the due calculation reads.
type TaskInput struct {
	IntervalMiles   *int
	IntervalDays    *int
	IntervalBase    string
	NextDueOdometer *int
	Priority        string
}

// MotorcycleInput carries the motorcycle fields the due calculation reads.
type MotorcycleInput struct {
	CurrentMileage *int
	PurchaseDate   *time.Time
}

// RecordInput is the most recent completed maintenance record for the task,
// if any.
type RecordInput struct {
	Date            time.Time
	Mileage         *int
	NextDueOdometer *int
}

// Status is the due-state projection consumed by dashboards. Absent values
// stay nil; callers serialize it verbatim.
type Status struct {
	DueDate              *time.Time `json:"due_date"`
	DueMileage           *int       `json:"due_mileage"`
	IsDue                bool       `json:"is_due"`
	RemainingMiles       *int       `json:"remaining_miles"`
	CompletionPercentage *float64   `json:"completion_percentage"`
	Priority             string     `json:"priority"`
}

// Compute derives the due state for a task from the motorcycle's current
// mileage and the most recent completed record. It is a pure function; every
// handler and scheduler job that shows due state goes through it so the
// projection is never served from a stale stored column.
//
// A task with neither a mileage nor a day interval is informational-only and
// is never computed as due.
func Compute(task TaskInput, moto MotorcycleInput, last *RecordInput, now time.Time) Status {
	if task.IntervalMiles == nil && task.IntervalDays == nil {
		return Status{Priority: task.Priority}
	}

	status := Status{
		DueDate:    dueDate(task, moto, last, now),
		DueMileage: dueMileage(task, moto, last),
	}

	if status.DueDate != nil && !status.DueDate.After(now) {
		status.IsDue = true
	}
	if status.DueMileage != nil && moto.CurrentMileage != nil && *status.DueMileage <= *moto.CurrentMileage {
		status.IsDue = true
	}

	if status.DueMileage != nil && moto.CurrentMileage != nil {
		remaining := *status.DueMileage - *moto.CurrentMileage
		if remaining < 0 {
			remaining = 0
		}
		status.RemainingMiles = &remaining
	}

	status.CompletionPercentage = completionPercentage(task.IntervalMiles, status.RemainingMiles)
	status.Priority = derivePriority(task.Priority, status.IsDue, status.CompletionPercentage)

	return status
}

// dueDate bases the next due date off the last completion when one exists,
// otherwise off the purchase date, otherwise off now.
func dueDate(task TaskInput, moto MotorcycleInput, last *RecordInput, now time.Time) *time.Time {
	if task.IntervalDays == nil {
		return nil
	}
	base := now
	if last != nil {
		base = last.Date
	} else if moto.PurchaseDate != nil {
		base = *moto.PurchaseDate
	}
	due := base.AddDate(0, 0, *task.IntervalDays)
	return &due
}

// dueMileage resolves the next due odometer reading. Precedence with a prior
// record: the record's stored next-due odometer wins over recomputing from
// the interval. Without one: the task's stored next-due odometer wins over
// deriving a checkpoint from the interval base.
func dueMileage(task TaskInput, moto MotorcycleInput, last *RecordInput) *int {
	if last != nil {
		if last.NextDueOdometer != nil {
			v := *last.NextDueOdometer
			return &v
		}
		if last.Mileage != nil && task.IntervalMiles != nil {
			v := *last.Mileage + *task.IntervalMiles
			return &v
		}
		return nil
	}

	if task.NextDueOdometer != nil {
		v := *task.NextDueOdometer
		return &v
	}
	if task.IntervalMiles == nil || *task.IntervalMiles <= 0 || moto.CurrentMileage == nil {
		return nil
	}

	if task.IntervalBase == IntervalBaseZero {
		// Next multiple of the interval strictly greater than the current
		// reading, so a bike at 12,000 km with a 5,000 km interval is due at
		// 15,000 km.
		v := (*moto.CurrentMileage / *task.IntervalMiles + 1) * *task.IntervalMiles
		return &v
	}
	v := *moto.CurrentMileage + *task.IntervalMiles
	return &v
}

// completionPercentage reports how far through the current interval the
// motorcycle has progressed, clamped to [0,100]. A zero or absent interval
// yields nil rather than a division by zero.
func completionPercentage(intervalMiles *int, remaining *int) *float64 {
	if intervalMiles == nil || *intervalMiles <= 0 || remaining == nil {
		return nil
	}
	pct := 100 * float64(*intervalMiles-*remaining) / float64(*intervalMiles)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return &pct
}

func derivePriority(stored string, isDue bool, completion *float64) string {
	if isDue {
		return PriorityHigh
	}
	if completion != nil {
		if *completion >= 90 {
			return PriorityHigh
		}
		if *completion >= 75 {
			return PriorityMedium
		}
	}
	return stored
}
