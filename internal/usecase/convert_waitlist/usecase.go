package convert_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
)

// UseCase use case конвертации записи листа ожидания в бронирование
// Клиент, получивший уведомление об освободившемся слоте, подтверждает
// бронирование. Слот мог быть занят между уведомлением и подтверждением -
// тогда конвертация откатывается, а запись возвращается в active
type UseCase struct {
	bookingRepo     BookingRepository
	waitlistRepo    WaitlistRepository
	conflictChecker ConflictChecker
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	conflictChecker ConflictChecker,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		waitlistRepo:    waitlistRepo,
		conflictChecker: conflictChecker,
		directoryClient: directoryClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case конвертации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConvertWaitlist: entry=%d, user=%d, date=%s, interval=[%s, %s)",
		req.EntryID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConvertWaitlist: validation failed: %v", err)
		return nil, err
	}

	// 2. Запись должна существовать, принадлежать клиенту и быть в notified
	entry, err := uc.waitlistRepo.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			uc.logger.Warn("ConvertWaitlist: entry id=%d not found", req.EntryID)
			return nil, ErrEntryNotFound
		}
		uc.logger.Error("ConvertWaitlist: repository error for entry id=%d: %v", req.EntryID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	if entry.CustomerID != req.UserID {
		uc.logger.Warn("ConvertWaitlist: access denied for user=%d to entry id=%d", req.UserID, req.EntryID)
		return nil, ErrAccessDenied
	}

	if entry.Status != domain.WaitlistNotified {
		uc.logger.Warn("ConvertWaitlist: entry id=%d has status=%s, expected notified", req.EntryID, entry.Status)
		return nil, ErrNotNotified
	}

	// 3. Название услуги для денормализации
	service, err := uc.directoryClient.GetService(ctx, entry.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("ConvertWaitlist: service id=%d not found", entry.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("ConvertWaitlist: failed to get service id=%d: %v", entry.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	var result *domain.Booking

	// 4. Проверка конфликта, создание бронирования и перевод записи
	// в converted - одна сериализуемая транзакция
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.conflictChecker.Check(txCtx, entry.StaffID, req.Date, req.StartTime, req.EndTime, nil); err != nil {
			return err
		}

		booking := &domain.Booking{
			CustomerID:        entry.CustomerID,
			StaffID:           entry.StaffID,
			BranchID:          entry.BranchID,
			ServiceID:         entry.ServiceID,
			Date:              req.Date,
			StartTime:         req.StartTime,
			EndTime:           req.EndTime,
			Status:            domain.StatusBooked,
			ServiceName:       service.Name,
			Notes:             entry.Notes,
			RecurrencePattern: domain.RecurrenceNone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.waitlistRepo.UpdateStatus(txCtx, entry.ID, domain.WaitlistConverted); err != nil {
			return fmt.Errorf("%w: failed to mark entry converted: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// Слот заняли между уведомлением и подтверждением -
			// запись возвращается в очередь, клиент получает конфликт
			uc.logger.Warn("ConvertWaitlist: slot taken for entry id=%d: %v", req.EntryID, err)
			uc.revertToActive(ctx, entry.ID)
			return nil, err
		}
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("ConvertWaitlist: transaction failed for entry id=%d: %v", req.EntryID, err)
			return nil, err
		}
		uc.logger.Error("ConvertWaitlist: conflict check failed for entry id=%d: %v", req.EntryID, err)
		return nil, fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}

	uc.logger.Info("ConvertWaitlist: successfully converted entry id=%d to booking id=%d", entry.ID, result.ID)

	return toResponse(result, entry.ID), nil
}

// revertToActive возвращает запись из notified в active после несостоявшейся
// конвертации. Ошибка отката логируется: запись истечёт по expires_at
func (uc *UseCase) revertToActive(ctx context.Context, entryID int64) {
	if err := uc.waitlistRepo.UpdateStatus(ctx, entryID, domain.WaitlistActive); err != nil {
		uc.logger.Error("ConvertWaitlist: failed to revert entry id=%d to active: %v", entryID, err)
	}
}
