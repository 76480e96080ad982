package create_recurring_series

import (
	"time"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// Request модель запроса на создание повторяющейся серии бронирований
type Request struct {
	CustomerID int64            // ID клиента
	StaffID    int64            // ID сотрудника
	BranchID   int64            // ID филиала
	ServiceID  int64            // ID услуги
	StartDate  time.Time        // Дата первого экземпляра серии
	StartTime  types.TimeString // Начало интервала каждого экземпляра
	EndTime    types.TimeString // Конец интервала каждого экземпляра (не входит)
	Notes      *string          // Заметки, копируются в каждый экземпляр

	Pattern  string // daily | weekly | monthly | custom
	Interval int    // Шаг в днях/неделях/месяцах, для custom игнорируется

	// EndDate последняя допустимая дата экземпляра (включительно, опционально)
	EndDate *time.Time

	// CustomDates явный список дат для pattern = custom
	CustomDates []time.Time
}

// InstanceResult результат создания одного экземпляра серии
// Серия создаётся по принципу частичного успеха: конфликтные даты
// пропускаются, остальные экземпляры создаются
type InstanceResult struct {
	Sequence  int       // Позиция экземпляра в серии
	Date      time.Time // Дата экземпляра
	BookingID int64     // ID созданного бронирования, 0 если пропущен
	Skipped   bool      // Экземпляр пропущен
	Reason    string    // Причина пропуска
}

// Response модель ответа с результатами создания серии
type Response struct {
	SeriesID     string           // UUID серии
	CreatedCount int              // Количество созданных бронирований
	SkippedCount int              // Количество пропущенных экземпляров
	Instances    []InstanceResult // Результат по каждому экземпляру
}
