package match_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/internal/infra/notify"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
)

// UseCase use case подбора кандидатов из листа ожидания
// Запускается при освобождении слота: отмена, no-show, перенос
type UseCase struct {
	waitlistRepo WaitlistRepository
	publisher    NotificationPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher может быть nil, если уведомления отключены -
// тогда подбор выполняется, но события не публикуются
func NewUseCase(
	waitlistRepo WaitlistRepository,
	publisher NotificationPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// MatchAndNotify подбирает кандидатов на освободившийся интервал,
// переводит их в notified и публикует события
//
// Порядок кандидатов детерминирован: приоритет по убыванию, затем время
// создания записи, затем ID. Конкурирующий sweep мог уже перевести запись
// в другой статус - такие записи пропускаются без ошибки
func (uc *UseCase) MatchAndNotify(ctx context.Context, staffID, branchID int64, date time.Time, window domain.TimeRange) error {
	uc.logger.Info("MatchWaitlist: slot freed for staff=%d on %s, interval=[%s, %s)",
		staffID, date.Format(domain.DateFormat), window.Start, window.End)

	now := uc.timeProvider.Now()

	uc.publishSlotFreed(ctx, staffID, branchID, date, window, now)

	entries, err := uc.waitlistRepo.GetActiveByStaff(ctx, staffID)
	if err != nil {
		uc.logger.Error("MatchWaitlist: failed to get waitlist for staff=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get waitlist: %v", ErrInternal, err)
	}

	matched := match(entries, date, window, now)
	if len(matched) == 0 {
		uc.logger.Info("MatchWaitlist: no candidates for staff=%d on %s", staffID, date.Format(domain.DateFormat))
		return nil
	}

	candidates := make([]notify.MatchedCandidate, 0, len(matched))

	for _, entry := range matched {
		if err := uc.waitlistRepo.MarkNotified(ctx, entry.ID, now); err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				// Запись успела сменить статус, кандидатом не становится
				uc.logger.Warn("MatchWaitlist: entry id=%d no longer active, skipping", entry.ID)
				continue
			}
			uc.logger.Error("MatchWaitlist: failed to mark entry id=%d notified: %v", entry.ID, err)
			return fmt.Errorf("%w: failed to mark entry notified: %v", ErrInternal, err)
		}

		candidates = append(candidates, notify.MatchedCandidate{
			EntryID:    entry.ID,
			CustomerID: entry.CustomerID,
			Priority:   entry.Priority,
			Rank:       len(candidates),
		})
	}

	if len(candidates) == 0 {
		return nil
	}

	uc.logger.Info("MatchWaitlist: notified %d candidates for staff=%d on %s",
		len(candidates), staffID, date.Format(domain.DateFormat))

	if uc.publisher != nil {
		event := notify.WaitlistMatchedEvent{
			StaffID:    staffID,
			BranchID:   branchID,
			Date:       date.Format(domain.DateFormat),
			StartTime:  window.Start.String(),
			EndTime:    window.End.String(),
			Candidates: candidates,
			MatchedAt:  now,
		}

		if err := uc.publisher.PublishWaitlistMatched(ctx, event); err != nil {
			// Статусы уже обновлены, потеря события не откатывает подбор
			uc.logger.Error("MatchWaitlist: failed to publish matched event: %v", err)
		}
	}

	return nil
}

// publishSlotFreed публикует событие освобождения слота
// Ошибка публикации логируется и не прерывает подбор
func (uc *UseCase) publishSlotFreed(ctx context.Context, staffID, branchID int64, date time.Time, window domain.TimeRange, now time.Time) {
	if uc.publisher == nil {
		return
	}

	event := notify.SlotFreedEvent{
		StaffID:   staffID,
		BranchID:  branchID,
		Date:      date.Format(domain.DateFormat),
		StartTime: window.Start.String(),
		EndTime:   window.End.String(),
		FreedAt:   now,
	}

	if err := uc.publisher.PublishSlotFreed(ctx, event); err != nil {
		uc.logger.Error("MatchWaitlist: failed to publish slot freed event: %v", err)
	}
}
