package create_recurring_series

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Причины пропуска экземпляров серии
const (
	skipReasonConflict     = "time conflict with existing bookings"
	skipReasonNotWorking   = "staff is not working on this date"
	skipReasonOutsideHours = "interval is outside working hours"
)

// UseCase use case для создания повторяющейся серии бронирований
// Серия создаётся по принципу частичного успеха: конфликтные экземпляры
// пропускаются с указанием причины, остальные создаются
type UseCase struct {
	bookingRepo     BookingRepository
	conflictChecker ConflictChecker
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	maxInstances    int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// maxInstances <= 0 включает лимит по умолчанию
func NewUseCase(
	bookingRepo BookingRepository,
	conflictChecker ConflictChecker,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	maxInstances int,
	logger Logger,
) *UseCase {
	if maxInstances <= 0 {
		maxInstances = domain.DefaultMaxRecurrenceInstances
	}

	return &UseCase{
		bookingRepo:     bookingRepo,
		conflictChecker: conflictChecker,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		maxInstances:    maxInstances,
		logger:          logger,
	}
}

// Execute выполняет use case создания серии
// Каждый экземпляр проверяется и создаётся в собственной сериализуемой
// транзакции: конфликт одного экземпляра не откатывает остальные
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringSeries: customer=%d, staff=%d, pattern=%s, start=%s, interval=[%s, %s)",
		req.CustomerID, req.StaffID, req.Pattern,
		req.StartDate.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateRecurringSeries: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.StartDate, now); err != nil {
		uc.logger.Warn("CreateRecurringSeries: start date %s is in the past", req.StartDate.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Проверяем сотрудника, филиал и услугу в справочнике
	staff, service, err := uc.resolveDirectory(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Раскрываем серию в список дат
	spec := domain.RecurrenceSpec{
		Pattern:     domain.RecurrencePattern(req.Pattern),
		Interval:    req.Interval,
		EndDate:     req.EndDate,
		CustomDates: req.CustomDates,
	}

	dates := expand(req.StartDate, spec, uc.maxInstances)
	if len(dates) == 0 {
		uc.logger.Warn("CreateRecurringSeries: expansion produced no instances")
		return nil, ErrEmptySeries
	}

	seriesID := uuid.NewString()
	uc.logger.Info("CreateRecurringSeries: series %s expanded to %d instances", seriesID, len(dates))

	resp := &Response{
		SeriesID:  seriesID,
		Instances: make([]InstanceResult, 0, len(dates)),
	}

	// 4. Создаём экземпляры последовательно
	for seq, date := range dates {
		// Длинная серия не должна переживать отменённый запрос
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("CreateRecurringSeries: context cancelled after %d instances: %v", seq, err)
			return nil, fmt.Errorf("%w: context cancelled: %v", ErrInternal, err)
		}

		result := uc.createInstance(ctx, req, staff, service, seriesID, seq, date)
		resp.Instances = append(resp.Instances, result)

		if result.Skipped {
			resp.SkippedCount++
		} else {
			resp.CreatedCount++
		}
	}

	uc.logger.Info("CreateRecurringSeries: series %s created=%d, skipped=%d",
		seriesID, resp.CreatedCount, resp.SkippedCount)

	return resp, nil
}

// createInstance создаёт один экземпляр серии в сериализуемой транзакции
// Конфликт интервала или нерабочий день переводят экземпляр в skipped
func (uc *UseCase) createInstance(
	ctx context.Context,
	req *Request,
	staff *directoryClient.Staff,
	service *directoryClient.Service,
	seriesID string,
	seq int,
	date time.Time,
) InstanceResult {
	result := InstanceResult{Sequence: seq, Date: date}

	// Рабочие часы зависят от дня недели - проверяем каждую дату отдельно
	schedule := staff.WorkingHours.ForDate(date)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		uc.logger.Info("CreateRecurringSeries: instance %d on %s skipped, staff not working",
			seq, date.Format(domain.DateFormat))
		result.Skipped = true
		result.Reason = skipReasonNotWorking
		return result
	}

	if outsideWorkingHours(schedule, req.StartTime, req.EndTime) {
		uc.logger.Info("CreateRecurringSeries: instance %d on %s skipped, outside working hours",
			seq, date.Format(domain.DateFormat))
		result.Skipped = true
		result.Reason = skipReasonOutsideHours
		return result
	}

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := uc.conflictChecker.Check(txCtx, req.StaffID, date, req.StartTime, req.EndTime, nil); err != nil {
			return err
		}

		booking := &domain.Booking{
			CustomerID: req.CustomerID,
			StaffID:    req.StaffID,
			BranchID:   req.BranchID,
			ServiceID:  req.ServiceID,
			Date:       date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			Status:     domain.StatusBooked,

			ServiceName: service.Name,
			Notes:       req.Notes,

			IsRecurring:        true,
			RecurrencePattern:  domain.RecurrencePattern(req.Pattern),
			RecurrenceInterval: req.Interval,
			RecurrenceEndDate:  req.EndDate,
			ParentSeriesID:     &seriesID,
			RecurrenceSequence: seq,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create instance: %v", ErrInternal, err)
		}

		result.BookingID = created.ID
		return nil
	})

	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.logger.Info("CreateRecurringSeries: instance %d on %s skipped, conflict: %v",
				seq, date.Format(domain.DateFormat), err)
			result.Skipped = true
			result.Reason = skipReasonConflict
			return result
		}

		// Инфраструктурная ошибка тоже не валит серию целиком,
		// но причина сохраняется в результате экземпляра
		uc.logger.Error("CreateRecurringSeries: instance %d on %s failed: %v",
			seq, date.Format(domain.DateFormat), err)
		result.Skipped = true
		result.Reason = err.Error()
		return result
	}

	return result
}

// outsideWorkingHours возвращает true, если интервал выходит за рабочие часы
func outsideWorkingHours(schedule directoryClient.DaySchedule, start, end types.TimeString) bool {
	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return true
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return true
	}

	return start.IsBefore(openTime) || closeTime.IsBefore(end)
}

// resolveDirectory проверяет существование и активность сотрудника, филиала и услуги
func (uc *UseCase) resolveDirectory(ctx context.Context, req *Request) (*directoryClient.Staff, *directoryClient.Service, error) {
	staff, err := uc.directoryClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateRecurringSeries: staff id=%d not found", req.StaffID)
			return nil, nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateRecurringSeries: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive {
		uc.logger.Warn("CreateRecurringSeries: staff id=%d is inactive", req.StaffID)
		return nil, nil, ErrStaffInactive
	}

	if staff.BranchID != req.BranchID {
		uc.logger.Warn("CreateRecurringSeries: staff id=%d does not work at branch id=%d", req.StaffID, req.BranchID)
		return nil, nil, ErrStaffNotInBranch
	}

	branch, err := uc.directoryClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBranchNotFound) {
			uc.logger.Warn("CreateRecurringSeries: branch id=%d not found", req.BranchID)
			return nil, nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateRecurringSeries: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	if !branch.IsActive {
		uc.logger.Warn("CreateRecurringSeries: branch id=%d is inactive", req.BranchID)
		return nil, nil, ErrBranchNotFound
	}

	service, err := uc.directoryClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateRecurringSeries: service id=%d not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateRecurringSeries: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return staff, service, nil
}
