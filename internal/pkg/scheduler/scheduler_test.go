package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/throttle"
)

func intPtr(v int) *int { return &v }

type fakeTaskRepo struct {
	active []models.MaintenanceTask
}

func (f *fakeTaskRepo) Create(*models.MaintenanceTask) error                 { return nil }
func (f *fakeTaskRepo) GetByID(uint) (*models.MaintenanceTask, error)        { return nil, nil }
func (f *fakeTaskRepo) GetByUUID(string) (*models.MaintenanceTask, error)    { return nil, nil }
func (f *fakeTaskRepo) GetByMotorcycleID(uint, bool) ([]models.MaintenanceTask, error) {
	return nil, nil
}
func (f *fakeTaskRepo) GetActive() ([]models.MaintenanceTask, error) { return f.active, nil }
func (f *fakeTaskRepo) Update(*models.MaintenanceTask) error         { return nil }
func (f *fakeTaskRepo) Archive(uint) error                           { return nil }
func (f *fakeTaskRepo) Delete(uint) error                            { return nil }
func (f *fakeTaskRepo) Count() (int64, error)                        { return 0, nil }

type fakeRecordRepo struct {
	latestByTask map[uint]*models.MaintenanceRecord
}

func (f *fakeRecordRepo) Create(*models.MaintenanceRecord) error              { return nil }
func (f *fakeRecordRepo) GetByID(uint) (*models.MaintenanceRecord, error)     { return nil, nil }
func (f *fakeRecordRepo) GetByUUID(string) (*models.MaintenanceRecord, error) { return nil, nil }
func (f *fakeRecordRepo) GetByMotorcycleID(uint, int, int) ([]models.MaintenanceRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) GetByUserID(uint) ([]models.MaintenanceRecord, error) { return nil, nil }
func (f *fakeRecordRepo) GetLatestForTask(taskID uint) (*models.MaintenanceRecord, error) {
	return f.latestByTask[taskID], nil
}
func (f *fakeRecordRepo) GetLatestForMotorcycle(uint) (*models.MaintenanceRecord, error) {
	return nil, nil
}
func (f *fakeRecordRepo) Update(*models.MaintenanceRecord) error          { return nil }
func (f *fakeRecordRepo) Delete(uint) error                               { return nil }
func (f *fakeRecordRepo) Count() (int64, error)                           { return 0, nil }
func (f *fakeRecordRepo) TotalCostSince(uint, time.Time) (float64, error) { return 0, nil }

type fakeNotificationRepo struct {
	created []models.Notification
}

func (f *fakeNotificationRepo) Create(n *models.Notification) error {
	f.created = append(f.created, *n)
	return nil
}
func (f *fakeNotificationRepo) GetByUserID(uint, bool, int, int) ([]models.Notification, error) {
	return nil, nil
}
func (f *fakeNotificationRepo) MarkAsRead(uint, uint) error     { return nil }
func (f *fakeNotificationRepo) CountUnread(uint) (int64, error) { return 0, nil }

func TestScanDueTasksNotifiesOwner(t *testing.T) {
	overdueSince := time.Now().AddDate(0, 0, -10)
	tasks := &fakeTaskRepo{active: []models.MaintenanceTask{
		{
			ID:           1,
			UUID:         "task-1",
			Name:         "Chain Lube",
			IntervalDays: intPtr(7),
			Priority:     "low",
			Motorcycle:   models.Motorcycle{ID: 10, UserID: 42, Name: "Street Triple"},
		},
	}}
	records := &fakeRecordRepo{latestByTask: map[uint]*models.MaintenanceRecord{
		1: {TaskID: &tasks.active[0].ID, Date: overdueSince},
	}}
	notifications := &fakeNotificationRepo{}

	s := New(&repository.Repositories{
		Task:         tasks,
		Record:       records,
		Notification: notifications,
	}, throttle.NewDefault())

	s.scanDueTasks()

	require.Len(t, notifications.created, 1)
	created := notifications.created[0]
	assert.Equal(t, uint(42), created.UserID)
	assert.Equal(t, models.NOTIFICATION_MAINTENANCE_DUE, created.Type)
	assert.Equal(t, "Street Triple is due for Chain Lube", created.Content)
	assert.Equal(t, uint(1), created.ReferenceID)

	// A second pass inside the cooldown must not duplicate the alert.
	s.scanDueTasks()
	assert.Len(t, notifications.created, 1)
}

func TestScanDueTasksSkipsOrphanedTasks(t *testing.T) {
	overdueSince := time.Now().AddDate(0, 0, -10)
	tasks := &fakeTaskRepo{active: []models.MaintenanceTask{
		{
			// The owning motorcycle row is gone; the preload left the
			// zero value behind.
			ID:           2,
			UUID:         "task-2",
			Name:         "Valve Check",
			IntervalDays: intPtr(7),
			Priority:     "low",
			Motorcycle:   models.Motorcycle{},
		},
	}}
	records := &fakeRecordRepo{latestByTask: map[uint]*models.MaintenanceRecord{
		2: {TaskID: &tasks.active[0].ID, Date: overdueSince},
	}}
	notifications := &fakeNotificationRepo{}

	s := New(&repository.Repositories{
		Task:         tasks,
		Record:       records,
		Notification: notifications,
	}, throttle.NewDefault())

	s.scanDueTasks()

	assert.Empty(t, notifications.created)
}

func TestScanDueTasksSkipsNotDueTasks(t *testing.T) {
	tasks := &fakeTaskRepo{active: []models.MaintenanceTask{
		{
			ID:           3,
			UUID:         "task-3",
			Name:         "Oil Change",
			IntervalDays: intPtr(180),
			Priority:     "low",
			Motorcycle:   models.Motorcycle{ID: 11, UserID: 42, Name: "Tenere 700"},
		},
	}}
	records := &fakeRecordRepo{latestByTask: map[uint]*models.MaintenanceRecord{
		3: {TaskID: &tasks.active[0].ID, Date: time.Now().AddDate(0, 0, -1)},
	}}
	notifications := &fakeNotificationRepo{}

	s := New(&repository.Repositories{
		Task:         tasks,
		Record:       records,
		Notification: notifications,
	}, throttle.NewDefault())

	s.scanDueTasks()

	assert.Empty(t, notifications.created)
}
