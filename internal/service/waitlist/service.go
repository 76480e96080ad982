package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-SchedulingService/internal/service/waitlist/models"
	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Service сервис для работы с листом ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Add добавляет запись в лист ожидания
// Защита от дублей: у клиента не может быть двух активных записей
// на одного сотрудника и одну дату.
// Если срок действия не указан, запись живёт 7 дней
func (s *Service) Add(ctx context.Context, req *models.AddEntryRequest) (*models.EntryResponse, error) {
	s.logger.Info("Add: adding waitlist entry for customer=%d, staff=%d, date=%s",
		req.CustomerID, req.StaffID, req.PreferredDate)

	entry, err := s.buildEntry(req)
	if err != nil {
		s.logger.Warn("Add: validation failed for customer=%d: %v", req.CustomerID, err)
		return nil, err
	}

	existing, err := s.waitlistRepo.GetActiveByCustomerStaffAndDate(ctx, req.CustomerID, req.StaffID, entry.PreferredDate)
	if err != nil {
		s.logger.Error("Add: duplicate check failed for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Add - duplicate check: %v", ErrInternal, err)
	}
	if len(existing) > 0 {
		s.logger.Warn("Add: customer=%d already has active entry for staff=%d on %s",
			req.CustomerID, req.StaffID, req.PreferredDate)
		return nil, ErrDuplicateEntry
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Add: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: Add - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Add: successfully added waitlist entry id=%d for customer=%d", created.ID, created.CustomerID)
	return models.FromDomainEntry(created), nil
}

// GetByID получает запись листа ожидания по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EntryResponse, error) {
	entry, err := s.waitlistRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("GetByID: waitlist entry id=%d not found", id)
			return nil, ErrEntryNotFound
		}
		s.logger.Error("GetByID: repository error for entry id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(entry), nil
}

// GetStaffWaitlist получает активные записи листа ожидания для сотрудника
// в порядке приоритета
func (s *Service) GetStaffWaitlist(ctx context.Context, staffID int64) (*models.EntryListResponse, error) {
	s.logger.Info("GetStaffWaitlist: fetching active entries for staff=%d", staffID)

	entries, err := s.waitlistRepo.GetActiveByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetStaffWaitlist: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffWaitlist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffWaitlist: successfully fetched %d entries for staff=%d", len(entries), staffID)
	return models.FromDomainEntryList(entries), nil
}

// GetBranchWaitlist получает активные записи листа ожидания для филиала
// по всем сотрудникам, в порядке приоритета
func (s *Service) GetBranchWaitlist(ctx context.Context, branchID int64) (*models.EntryListResponse, error) {
	s.logger.Info("GetBranchWaitlist: fetching active entries for branch=%d", branchID)

	entries, err := s.waitlistRepo.GetActiveByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("GetBranchWaitlist: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetBranchWaitlist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBranchWaitlist: successfully fetched %d entries for branch=%d", len(entries), branchID)
	return models.FromDomainEntryList(entries), nil
}

// Withdraw отзывает запись из листа ожидания
// Клиент может отозвать только свою запись
func (s *Service) Withdraw(ctx context.Context, entryID int64, req *models.WithdrawRequest) error {
	s.logger.Info("Withdraw: withdrawing waitlist entry id=%d by user=%d", entryID, req.UserID)

	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Withdraw: waitlist entry id=%d not found", entryID)
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	if entry.CustomerID != req.UserID {
		s.logger.Warn("Withdraw: access denied for user=%d to entry id=%d", req.UserID, entryID)
		return ErrAccessDenied
	}

	if err := domain.ValidateWaitlistTransition(entry.Status, domain.WaitlistCancelled); err != nil {
		s.logger.Warn("Withdraw: entry id=%d cannot be withdrawn, status=%s", entryID, entry.Status)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}

	if err := s.waitlistRepo.UpdateStatus(ctx, entryID, domain.WaitlistCancelled); err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("Withdraw: repository error for entry id=%d: %v", entryID, err)
		return fmt.Errorf("%w: Withdraw - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Withdraw: successfully withdrew waitlist entry id=%d", entryID)
	return nil
}

// GetBranchStats возвращает статистику листа ожидания филиала по статусам
func (s *Service) GetBranchStats(ctx context.Context, branchID int64) (*models.StatsResponse, error) {
	s.logger.Info("GetBranchStats: fetching waitlist stats for branch=%d", branchID)

	stats, err := s.waitlistRepo.GetStatsByBranch(ctx, branchID)
	if err != nil {
		s.logger.Error("GetBranchStats: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetBranchStats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

// ExpireStale переводит в expired все активные записи с истёкшим сроком действия
// Идемпотентная операция для периодического запуска
func (s *Service) ExpireStale(ctx context.Context) (*models.ExpireResponse, error) {
	now := s.timeProvider.Now()
	s.logger.Info("ExpireStale: expiring stale waitlist entries at %s", now.Format(time.RFC3339))

	count, err := s.waitlistRepo.ExpireStale(ctx, now)
	if err != nil {
		s.logger.Error("ExpireStale: repository error: %v", err)
		return nil, fmt.Errorf("%w: ExpireStale - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ExpireStale: expired %d waitlist entries", count)
	return &models.ExpireResponse{ExpiredCount: count}, nil
}

// buildEntry валидирует запрос и собирает доменную модель записи
func (s *Service) buildEntry(req *models.AddEntryRequest) (*domain.WaitlistEntry, error) {
	preferredDate, err := time.Parse(domain.DateFormat, req.PreferredDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid preferred date %q", ErrInvalidInput, req.PreferredDate)
	}

	start, err := types.NewTimeStringFromString(req.PreferredStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid preferred start time %q", ErrInvalidInput, req.PreferredStart)
	}
	end, err := types.NewTimeStringFromString(req.PreferredEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid preferred end time %q", ErrInvalidInput, req.PreferredEnd)
	}
	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: preferred window must have positive length", ErrInvalidInput)
	}

	if req.FlexibleDays < domain.MinFlexibleDays || req.FlexibleDays > domain.MaxFlexibleDays {
		return nil, fmt.Errorf("%w: flexible days must be between %d and %d",
			ErrInvalidInput, domain.MinFlexibleDays, domain.MaxFlexibleDays)
	}
	if req.FlexibleHours < domain.MinFlexibleHours || req.FlexibleHours > domain.MaxFlexibleHours {
		return nil, fmt.Errorf("%w: flexible hours must be between %d and %d",
			ErrInvalidInput, domain.MinFlexibleHours, domain.MaxFlexibleHours)
	}
	if req.Priority < 0 {
		return nil, fmt.Errorf("%w: priority must not be negative", ErrInvalidInput)
	}
	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	now := s.timeProvider.Now()

	var expiresAt time.Time
	if req.ExpiresAt != nil {
		expiresAt, err = time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid expiration time %q", ErrInvalidInput, *req.ExpiresAt)
		}
		if !expiresAt.After(now) {
			return nil, fmt.Errorf("%w: expiration time must be in the future", ErrInvalidInput)
		}
	} else {
		expiresAt = now.AddDate(0, 0, domain.DefaultWaitlistExpiryDays)
	}

	return &domain.WaitlistEntry{
		CustomerID:     req.CustomerID,
		StaffID:        req.StaffID,
		BranchID:       req.BranchID,
		ServiceID:      req.ServiceID,
		PreferredDate:  preferredDate,
		PreferredStart: start,
		PreferredEnd:   end,
		FlexibleDays:   req.FlexibleDays,
		FlexibleHours:  req.FlexibleHours,
		Priority:       req.Priority,
		Notes:          req.Notes,
		Status:         domain.WaitlistActive,
		ExpiresAt:      &expiresAt,
	}, nil
}
