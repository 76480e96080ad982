package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	directoryClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/directoryservice"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// minutesPerDay граница суток для обрезки буферов
const minutesPerDay = 24 * 60

// UseCase use case для расчёта доступности сотрудников
// Доступность - это рабочие часы минус занятые интервалы с учётом
// буферов подготовки и уборки услуг
type UseCase struct {
	bookingRepo     BookingRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// ExecuteStaff возвращает свободные интервалы одного сотрудника на дату
func (uc *UseCase) ExecuteStaff(ctx context.Context, req *StaffRequest) (*StaffResponse, error) {
	uc.logger.Info("GetAvailability: staff=%d, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	staff, err := uc.directoryClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailability: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailability: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	serviceCache := make(map[int64]*directoryClient.Service)
	availability, err := uc.computeStaffAvailability(ctx, staff, req.Date, serviceCache)
	if err != nil {
		return nil, err
	}

	return &StaffResponse{
		Date:         req.Date.Format(domain.DateFormat),
		Availability: availability,
	}, nil
}

// ExecuteBranch возвращает свободные интервалы всех активных сотрудников филиала
// Расписание у каждого сотрудника своё, агрегации по филиалу нет -
// клиент видит доступность персонально по каждому мастеру
func (uc *UseCase) ExecuteBranch(ctx context.Context, req *BranchRequest) (*BranchResponse, error) {
	uc.logger.Info("GetAvailability: branch=%d, date=%s", req.BranchID, req.Date.Format(domain.DateFormat))

	if req.BranchID <= 0 {
		return nil, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	branch, err := uc.directoryClient.GetBranch(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailability: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailability: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	if !branch.IsActive {
		uc.logger.Warn("GetAvailability: branch id=%d is inactive", req.BranchID)
		return nil, ErrBranchNotFound
	}

	staffList, err := uc.directoryClient.GetBranchStaff(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get staff of branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch staff: %v", ErrInternal, err)
	}

	resp := &BranchResponse{
		BranchID: req.BranchID,
		Date:     req.Date.Format(domain.DateFormat),
		Staff:    make([]StaffAvailability, 0, len(staffList)),
	}

	// Кэш услуг общий на запрос: в филиале буферы услуг одни и те же
	serviceCache := make(map[int64]*directoryClient.Service)

	for _, staff := range staffList {
		if !staff.IsActive {
			continue
		}

		availability, err := uc.computeStaffAvailability(ctx, staff, req.Date, serviceCache)
		if err != nil {
			return nil, err
		}

		resp.Staff = append(resp.Staff, availability)
	}

	uc.logger.Info("GetAvailability: branch=%d, computed availability for %d staff", req.BranchID, len(resp.Staff))
	return resp, nil
}

// computeStaffAvailability вычисляет свободные интервалы сотрудника на дату
func (uc *UseCase) computeStaffAvailability(
	ctx context.Context,
	staff *directoryClient.Staff,
	date time.Time,
	serviceCache map[int64]*directoryClient.Service,
) (StaffAvailability, error) {
	availability := StaffAvailability{
		StaffID:       staff.ID,
		StaffName:     staff.FullName,
		FreeIntervals: []FreeInterval{},
	}

	schedule := staff.WorkingHours.ForDate(date)
	if !schedule.IsOpen || schedule.OpenTime == nil || schedule.CloseTime == nil {
		return availability, nil
	}

	openTime, err := types.NewTimeStringFromString(*schedule.OpenTime)
	if err != nil {
		return availability, fmt.Errorf("%w: invalid schedule open time: %v", ErrInternal, err)
	}
	closeTime, err := types.NewTimeStringFromString(*schedule.CloseTime)
	if err != nil {
		return availability, fmt.Errorf("%w: invalid schedule close time: %v", ErrInternal, err)
	}

	availability.IsWorking = true
	working := minuteRange{start: openTime.Minutes(), end: closeTime.Minutes()}

	bookings, err := uc.bookingRepo.GetByStaffAndDate(ctx, staff.ID, date, true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings for staff=%d: %v", staff.ID, err)
		return availability, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	busy := make([]minuteRange, 0, len(bookings))
	for _, booking := range bookings {
		busy = append(busy, uc.occupiedRange(ctx, booking, serviceCache))
	}

	for _, free := range subtractRanges(working, busy) {
		startStr, err := types.NewTimeStringFromMinutes(free.start)
		if err != nil {
			return availability, fmt.Errorf("%w: failed to format interval start: %v", ErrInternal, err)
		}
		endStr, err := types.NewTimeStringFromMinutes(free.end)
		if err != nil {
			return availability, fmt.Errorf("%w: failed to format interval end: %v", ErrInternal, err)
		}

		availability.FreeIntervals = append(availability.FreeIntervals, FreeInterval{
			StartTime: startStr.String(),
			EndTime:   endStr.String(),
		})
	}

	return availability, nil
}

// occupiedRange возвращает занятый интервал бронирования с буферами услуги
// Буфер подготовки расширяет интервал назад, буфер уборки - вперёд.
// Недоступность справочника услуг не валит расчёт: интервал учитывается без буферов
func (uc *UseCase) occupiedRange(
	ctx context.Context,
	booking *domain.Booking,
	serviceCache map[int64]*directoryClient.Service,
) minuteRange {
	occupied := minuteRange{
		start: booking.StartTime.Minutes(),
		end:   booking.EndTime.Minutes(),
	}

	service, ok := serviceCache[booking.ServiceID]
	if !ok {
		var err error
		service, err = uc.directoryClient.GetService(ctx, booking.ServiceID)
		if err != nil {
			uc.logger.Warn("GetAvailability: failed to get service id=%d, ignoring buffers: %v",
				booking.ServiceID, err)
			service = nil
		}
		serviceCache[booking.ServiceID] = service
	}

	if service != nil {
		occupied.start -= service.PrepBufferMinutes
		occupied.end += service.CleanupBufferMinutes
	}

	// Буферы не выходят за границы суток
	if occupied.start < 0 {
		occupied.start = 0
	}
	if occupied.end > minutesPerDay {
		occupied.end = minutesPerDay
	}

	return occupied
}
