package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rideway/rideway/app/models"
	"github.com/rideway/rideway/app/repository"
	"github.com/rideway/rideway/internal/pkg/maintenance"
	"github.com/rideway/rideway/internal/pkg/statistics"
	"github.com/rideway/rideway/internal/pkg/throttle"
)

// dueNotificationCooldown keeps the hourly due scan from re-announcing the
// same task every pass. Once a day is enough for an odometer-driven alert.
const dueNotificationCooldown = 24 * time.Hour

// Scheduler runs the periodic background jobs: the throttle sweep, the
// maintenance due scan, and the statistics cache refresh.
type Scheduler struct {
	cron     *cron.Cron
	repos    *repository.Repositories
	throttle *throttle.Throttle
}

func New(repos *repository.Repositories, throttle *throttle.Throttle) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		repos:    repos,
		throttle: throttle,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweepThrottle); err != nil {
		return fmt.Errorf("add throttle sweep: %w", err)
	}
	if _, err := s.cron.AddFunc("@hourly", s.scanDueTasks); err != nil {
		return fmt.Errorf("add due scan: %w", err)
	}
	if _, err := s.cron.AddFunc("@every 5m", s.refreshStatistics); err != nil {
		return fmt.Errorf("add statistics refresh: %w", err)
	}

	s.cron.Start()
	log.Print("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Print("Scheduler stopped")
}

func (s *Scheduler) sweepThrottle() {
	removed := s.throttle.Sweep(throttle.MaxEntryAge)
	if removed > 0 {
		log.Printf("Throttle sweep removed %d stale entries", removed)
	}
}

// scanDueTasks recomputes the due state for every active task and writes an
// in-app notification for the owner when a task has come due. The throttle
// keeps a task that stays due from producing a notification on every pass.
func (s *Scheduler) scanDueTasks() {
	tasks, err := s.repos.Task.GetActive()
	if err != nil {
		log.Printf("Due scan: loading active tasks failed: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		// A zero-value motorcycle means the owning row is gone; a
		// notification for user 0 helps nobody.
		if task.Motorcycle.ID == 0 {
			continue
		}
		last, err := s.repos.Record.GetLatestForTask(task.ID)
		if err != nil {
			log.Printf("Due scan: latest record lookup for task %d failed: %v", task.ID, err)
			continue
		}

		status := maintenance.Compute(task.CalculatorInput(), maintenance.MotorcycleInput{
			CurrentMileage: task.Motorcycle.CurrentMileage,
			PurchaseDate:   task.Motorcycle.PurchaseDate,
		}, last.CalculatorInput(), now)

		if !status.IsDue {
			continue
		}
		if !s.throttle.CanTriggerEvent(task.UUID, models.NOTIFICATION_MAINTENANCE_DUE, dueNotificationCooldown) {
			continue
		}

		content := fmt.Sprintf("%s is due for %s", task.Motorcycle.Name, task.Name)
		notification := models.Notification{
			UserID:      task.Motorcycle.UserID,
			Type:        models.NOTIFICATION_MAINTENANCE_DUE,
			Content:     content,
			ReferenceID: task.ID,
		}
		if err := s.repos.Notification.Create(&notification); err != nil {
			log.Printf("Due scan: creating notification for task %d failed: %v", task.ID, err)
		}
	}
}

func (s *Scheduler) refreshStatistics() {
	statistics.UpdateCacheIfNeeded()
}
