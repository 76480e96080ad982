package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// waitlistColumns полный список колонок таблицы waitlist_entries в порядке сканирования
var waitlistColumns = []string{
	"id",
	"customer_id",
	"staff_id",
	"branch_id",
	"service_id",
	"preferred_date",
	"preferred_start_time",
	"preferred_end_time",
	"flexible_days",
	"flexible_hours",
	"priority",
	"notes",
	"status",
	"created_at",
	"notified_at",
	"expires_at",
}

// Repository репозиторий для работы с листом ожидания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись листа ожидания
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"customer_id",
			"staff_id",
			"branch_id",
			"service_id",
			"preferred_date",
			"preferred_start_time",
			"preferred_end_time",
			"flexible_days",
			"flexible_hours",
			"priority",
			"notes",
			"status",
			"expires_at",
		).
		Values(
			entry.CustomerID,
			entry.StaffID,
			entry.BranchID,
			entry.ServiceID,
			entry.PreferredDate,
			entry.PreferredStart,
			entry.PreferredEnd,
			entry.FlexibleDays,
			entry.FlexibleHours,
			entry.Priority,
			entry.Notes,
			entry.Status,
			entry.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&entry.ID,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	entry, err := r.scanEntry(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan entry: %v", ErrScanRow, err)
	}

	return entry, nil
}

// GetActiveByStaff получает активные записи листа ожидания для сотрудника
// Порядок: приоритет по убыванию, затем время создания по возрастанию -
// ранние заявки выигрывают при равном приоритете
func (r *Repository) GetActiveByStaff(ctx context.Context, staffID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		OrderBy("priority DESC, created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetActiveByBranch получает активные записи листа ожидания для филиала
// по всем сотрудникам, в том же порядке, что и GetActiveByStaff
func (r *Repository) GetActiveByBranch(ctx context.Context, branchID int64) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		OrderBy("priority DESC, created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// GetActiveByCustomerStaffAndDate ищет активную запись клиента на того же сотрудника
// и ту же дату. Используется для защиты от дублей при добавлении
func (r *Repository) GetActiveByCustomerStaffAndDate(ctx context.Context, customerID, staffID int64, date time.Time) ([]*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(waitlistColumns...).
		From("waitlist_entries").
		Where(squirrel.Eq{"customer_id": customerID}).
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"preferred_date": date}).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCustomerStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCustomerStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// UpdateStatus обновляет статус записи листа ожидания
// Допустимость перехода проверяется на уровне сервиса через transition-таблицу
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.WaitlistStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// MarkNotified переводит запись в notified со штампом времени уведомления
func (r *Repository) MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistNotified).
		Set("notified_at", notifiedAt).
		Where(squirrel.Eq{"id": id}).
		// Уведомляем только активные записи: конкурирующий sweep мог успеть раньше
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ExpireStale переводит в expired все активные записи с истёкшим expires_at
// Идемпотентная пакетная операция: повторный запуск не меняет результат
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistExpired).
		Where(squirrel.Eq{"status": domain.WaitlistActive}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetStatsByBranch возвращает количество записей филиала по каждому статусу
func (r *Repository) GetStatsByBranch(ctx context.Context, branchID int64) (*domain.WaitlistStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("status", "COUNT(*)").
		From("waitlist_entries").
		Where(squirrel.Eq{"branch_id": branchID}).
		GroupBy("status").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStatsByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetStatsByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	stats := &domain.WaitlistStats{BranchID: branchID}
	for rows.Next() {
		var status domain.WaitlistStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: GetStatsByBranch - scan row: %v", ErrScanRow, err)
		}

		switch status {
		case domain.WaitlistActive:
			stats.TotalActive = count
		case domain.WaitlistNotified:
			stats.TotalNotified = count
		case domain.WaitlistConverted:
			stats.TotalConverted = count
		case domain.WaitlistExpired:
			stats.TotalExpired = count
		case domain.WaitlistCancelled:
			stats.TotalCancelled = count
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetStatsByBranch - rows error: %v", ErrScanRow, err)
	}

	return stats, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanEntry сканирует одну строку в доменную модель
func (r *Repository) scanEntry(row rowScanner) (*domain.WaitlistEntry, error) {
	var entry domain.WaitlistEntry
	var createdAt, notifiedAt, expiresAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.CustomerID,
		&entry.StaffID,
		&entry.BranchID,
		&entry.ServiceID,
		&entry.PreferredDate,
		&entry.PreferredStart,
		&entry.PreferredEnd,
		&entry.FlexibleDays,
		&entry.FlexibleHours,
		&entry.Priority,
		&entry.Notes,
		&entry.Status,
		&createdAt,
		&notifiedAt,
		&expiresAt,
	)
	if err != nil {
		return nil, err
	}

	entry.CreatedAt = createdAt.Time
	if notifiedAt.Valid {
		entry.NotifiedAt = &notifiedAt.Time
	}
	if expiresAt.Valid {
		entry.ExpiresAt = &expiresAt.Time
	}

	return &entry, nil
}

// scanEntries сканирует результаты запроса в слайс записей
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.WaitlistEntry, error) {
	entries := make([]*domain.WaitlistEntry, 0)

	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
