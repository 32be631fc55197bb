package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ErrInvalidSchedule возвращается при некорректном cron выражении
var ErrInvalidSchedule = errors.New("jobs: invalid cron schedule")

const cleanupTimeout = time.Minute

// HistoryCleanup удаляет бронирования, закончившиеся раньше срока хранения
type HistoryCleanup struct {
	repo      ReservationRepository
	retention time.Duration
	now       func() time.Time
	logger    Logger
}

// NewHistoryCleanup создает задачу очистки истории; retentionDays = 0 отключает очистку
func NewHistoryCleanup(repo ReservationRepository, retentionDays int, logger Logger) *HistoryCleanup {
	return &HistoryCleanup{
		repo:      repo,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		logger:    logger,
	}
}

// Enabled возвращает false, если срок хранения не задан
func (j *HistoryCleanup) Enabled() bool {
	return j.retention > 0
}

// Run выполняет одну очистку и возвращает число удаленных бронирований
func (j *HistoryCleanup) Run(ctx context.Context) (int64, error) {
	if !j.Enabled() {
		return 0, nil
	}

	before := j.now().Add(-j.retention)
	j.logger.Info("HistoryCleanup: deleting reservations ended before %s", before.Format(time.RFC3339))

	deleted, err := j.repo.DeleteEndedBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("history cleanup: %w", err)
	}

	if deleted == 0 {
		j.logger.Info("HistoryCleanup: nothing to delete")
	} else {
		j.logger.Info("HistoryCleanup: deleted %d reservations", deleted)
	}
	return deleted, nil
}

// Scheduler запускает фоновые задачи по расписанию
type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler создает планировщик в часовом поясе loc
func NewScheduler(loc *time.Location, logger Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger,
	}
}

// AddHistoryCleanup регистрирует очистку истории по cron расписанию
// Выключенная задача не регистрируется
func (s *Scheduler) AddHistoryCleanup(spec string, job *HistoryCleanup) error {
	if !job.Enabled() {
		s.logger.Info("Scheduler: history cleanup disabled")
		return nil
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
		defer cancel()

		if _, err := job.Run(ctx); err != nil {
			s.logger.Error("Scheduler: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	s.logger.Info("Scheduler: history cleanup scheduled at %q", spec)
	return nil
}

// Len возвращает число зарегистрированных задач
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start запускает планировщик в отдельной горутине
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения выполняющихся задач
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler: stop timed out, running jobs abandoned")
	}
}
