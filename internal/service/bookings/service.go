package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulingService/internal/service/bookings/models"
)

// matchTimeout ограничивает фоновый подбор кандидатов после освобождения слота
const matchTimeout = 30 * time.Second

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	matcher     WaitlistMatcher
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
// matcher может быть nil, если уведомления листа ожидания отключены
func NewService(
	bookingRepo BookingRepository,
	matcher WaitlistMatcher,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		matcher:     matcher,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetStaffBookings получает бронирования сотрудника с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению неактивных бронирований
func (s *Service) GetStaffBookings(ctx context.Context, req *models.GetStaffBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffBookings: fetching bookings for staff=%d", req.StaffID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetStaffBookings: invalid filter for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffBookings: successfully fetched %d bookings for staff=%d", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBranchBookings получает бронирования филиала за дату по всем сотрудникам
func (s *Service) GetBranchBookings(ctx context.Context, req *models.GetBranchBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBranchBookings: fetching bookings for branch=%d date=%s",
		req.BranchID, req.Date.Format(domain.DateFormat))

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBranchBookings: invalid filter for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBranchAndDate(ctx, filter)
	if err != nil {
		s.logger.Error("GetBranchBookings: repository error for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: GetBranchBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchBookings: successfully fetched %d bookings for branch=%d", len(bookings), req.BranchID)
	return models.FromDomainBookingList(bookings), nil
}

// GetSeries получает все бронирования повторяющейся серии
func (s *Service) GetSeries(ctx context.Context, seriesID string) (*models.BookingListResponse, error) {
	s.logger.Info("GetSeries: fetching series id=%s", seriesID)

	bookings, err := s.bookingRepo.GetBySeriesID(ctx, seriesID)
	if err != nil {
		s.logger.Error("GetSeries: repository error for series id=%s: %v", seriesID, err)
		return nil, fmt.Errorf("%w: GetSeries - repository error: %v", ErrInternal, err)
	}

	if len(bookings) == 0 {
		s.logger.Warn("GetSeries: series id=%s not found", seriesID)
		return nil, ErrSeriesNotFound
	}

	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования по таблице допустимых переходов
// Отмена идёт через Cancel - здесь переход в cancelled запрещён
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d requested through status update", bookingID)
		return nil, fmt.Errorf("%w: use cancel endpoint for cancellation", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := domain.ValidateBookingTransition(booking.Status, newStatus); err != nil {
		s.logger.Warn("UpdateStatus: invalid transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: booking id=%d changed concurrently, transition to %s lost",
				bookingID, newStatus)
			return nil, fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = newStatus
	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	// no_show освобождает слот так же, как отмена
	if newStatus == domain.StatusNoShow {
		s.notifySlotFreed(booking)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование с указанием причины
// Отменить можно только бронирование в статусе booked.
// После отмены запускается фоновый подбор кандидатов из листа ожидания
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Клиент может отменить только своё бронирование
	if booking.CustomerID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	if err := domain.ValidateBookingTransition(booking.Status, domain.StatusCancelled); err != nil {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: booking id=%d changed concurrently, cancellation lost", bookingID)
			return fmt.Errorf("%w: booking status changed concurrently", ErrInvalidTransition)
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	s.notifySlotFreed(booking)

	return nil
}

// notifySlotFreed запускает фоновый подбор кандидатов для освободившегося слота
// Подбор не привязан к контексту запроса: ответ клиенту не ждёт уведомлений,
// а ошибки подбора логируются и не влияют на результат отмены
func (s *Service) notifySlotFreed(booking *domain.Booking) {
	if s.matcher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), matchTimeout)
		defer cancel()

		err := s.matcher.MatchAndNotify(ctx, booking.StaffID, booking.BranchID, booking.Date, booking.Interval())
		if err != nil {
			s.logger.Error("notifySlotFreed: matching failed for staff=%d date=%s: %v",
				booking.StaffID, booking.Date.Format(domain.DateFormat), err)
		}
	}()
}
