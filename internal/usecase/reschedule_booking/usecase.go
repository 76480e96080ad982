package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
)

// cancelReasonRescheduled причина отмены, записываемая старому бронированию
const cancelReasonRescheduled = "rescheduled"

// matchTimeout ограничивает фоновый подбор кандидатов после освобождения слота
const matchTimeout = 30 * time.Second

// UseCase use case для переноса бронирования
// Перенос выполняется как отмена старого бронирования и создание нового
// в одной сериализуемой транзакции: история отмены сохраняется, а слот
// не может быть занят между отменой и созданием
type UseCase struct {
	bookingRepo     BookingRepository
	conflictChecker ConflictChecker
	matcher         WaitlistMatcher
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// matcher может быть nil, если уведомления листа ожидания отключены
func NewUseCase(
	bookingRepo BookingRepository,
	conflictChecker ConflictChecker,
	matcher WaitlistMatcher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		conflictChecker: conflictChecker,
		matcher:         matcher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, user=%d, new date=%s, new interval=[%s, %s)",
		req.BookingID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	var old *domain.Booking
	var result *domain.Booking

	// 2. Отмена старого и создание нового в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		old, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		// Клиент может переносить только своё бронирование
		if old.CustomerID != req.UserID {
			uc.logger.Warn("RescheduleBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		if old.Status != domain.StatusBooked {
			uc.logger.Warn("RescheduleBooking: booking id=%d has status=%s, cannot reschedule",
				req.BookingID, old.Status)
			return ErrNotReschedulable
		}

		// Старое бронирование исключается из проверки: при переносе в рамках
		// одного дня оно не должно блокировать свой же интервал
		err = uc.conflictChecker.Check(txCtx, old.StaffID, req.Date, req.StartTime, req.EndTime, &old.ID)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("RescheduleBooking: conflict for staff=%d on %s: %v",
					old.StaffID, req.Date.Format(domain.DateFormat), err)
				return err
			}
			uc.logger.Error("RescheduleBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.Cancel(txCtx, old.ID, old.Status, cancelReasonRescheduled); err != nil {
			uc.logger.Error("RescheduleBooking: failed to cancel booking id=%d: %v", old.ID, err)
			return fmt.Errorf("%w: failed to cancel old booking: %v", ErrInternal, err)
		}

		// Новое бронирование наследует денормализованные данные,
		// но отрывается от повторяющейся серии
		booking := &domain.Booking{
			CustomerID:        old.CustomerID,
			StaffID:           old.StaffID,
			BranchID:          old.BranchID,
			ServiceID:         old.ServiceID,
			Date:              req.Date,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			Status:            domain.StatusBooked,
			ServiceName:       old.ServiceName,
			TotalAmount:       old.TotalAmount,
			Notes:             old.Notes,
			RecurrencePattern: domain.RecurrenceNone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create new booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d to id=%d", old.ID, result.ID)

	// 3. Слот старого бронирования освободился - подбираем кандидатов в фоне
	uc.notifySlotFreed(old)

	return toResponse(result, old.ID), nil
}

// notifySlotFreed запускает фоновый подбор кандидатов для освободившегося интервала
// Ошибки подбора логируются и не влияют на результат переноса
func (uc *UseCase) notifySlotFreed(old *domain.Booking) {
	if uc.matcher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), matchTimeout)
		defer cancel()

		err := uc.matcher.MatchAndNotify(ctx, old.StaffID, old.BranchID, old.Date, old.Interval())
		if err != nil {
			uc.logger.Error("RescheduleBooking: matching failed for staff=%d date=%s: %v",
				old.StaffID, old.Date.Format(domain.DateFormat), err)
		}
	}()
}
