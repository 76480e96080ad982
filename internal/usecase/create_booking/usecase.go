package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	conflictChecker ConflictChecker
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	conflictChecker ConflictChecker,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		conflictChecker: conflictChecker,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка конфликтов и запись выполняются в одной сериализуемой транзакции:
// между проверкой и записью никто не может занять тот же интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, staff=%d, branch=%d, service=%d, date=%s, interval=[%s, %s)",
		req.CustomerID, req.StaffID, req.BranchID, req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Проверяем сотрудника, филиал и услугу в справочнике
	staff, service, err := uc.resolveDirectory(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Интервал должен лежать в рабочих часах сотрудника
	schedule := staff.WorkingHours.ForDate(req.Date)
	if err := validateWithinWorkingHours(schedule, req.StartTime, req.EndTime); err != nil {
		uc.logger.Warn("CreateBooking: interval [%s, %s) outside working hours for staff=%d on %s: %v",
			req.StartTime, req.EndTime, req.StaffID, req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	var result *domain.Booking

	// 5. Проверка конфликтов и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.conflictChecker.Check(txCtx, req.StaffID, req.Date, req.StartTime, req.EndTime, nil); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				uc.logger.Warn("CreateBooking: conflict for staff=%d on %s: %v",
					req.StaffID, req.Date.Format(domain.DateFormat), err)
				return err
			}
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			BranchID:   req.BranchID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     domain.StatusBooked,
			// Денормализация данных услуги на момент создания
			ServiceName:       service.Name,
			Notes:             req.Notes,
			RecurrencePattern: domain.RecurrenceNone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return toResponse(result), nil
}

// resolveDirectory проверяет существование и активность сотрудника, филиала и услуги
func (uc *UseCase) resolveDirectory(ctx context.Context, req *Request) (*directoryClient.Staff, *directoryClient.Service, error) {
	staff, err := uc.directoryClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%d is inactive", req.StaffID)
		return nil, nil, ErrStaffInactive
	}

	if staff.BranchID != req.BranchID {
		uc.logger.Warn("CreateBooking: staff id=%d does not work at branch id=%d", req.StaffID, req.BranchID)
		return nil, nil, ErrStaffNotInBranch
	}

	branch, err := uc.directoryClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBranchNotFound) {
			uc.logger.Warn("CreateBooking: branch id=%d not found", req.BranchID)
			return nil, nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateBooking: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	if !branch.IsActive {
		uc.logger.Warn("CreateBooking: branch id=%d is inactive", req.BranchID)
		return nil, nil, ErrBranchNotFound
	}

	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return staff, service, nil
}
