package notify

import "time"

// Routing keys для событий планировщика
const (
	RoutingKeySlotFreed       = "schedule.slot_freed"
	RoutingKeyWaitlistMatched = "schedule.waitlist_matched"
)

// SlotFreedEvent событие освобождения слота (отмена, no-show, перенос)
type SlotFreedEvent struct {
	StaffID   int64     `json:"staff_id"`
	BranchID  int64     `json:"branch_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	FreedAt   time.Time `json:"freed_at"`
}

// MatchedCandidate кандидат из листа ожидания, подходящий под освободившийся слот
type MatchedCandidate struct {
	EntryID    int64 `json:"entry_id"`
	CustomerID int64 `json:"customer_id"`
	Priority   int   `json:"priority"`
	Rank       int   `json:"rank"`
}

// WaitlistMatchedEvent событие подбора кандидатов из листа ожидания
// Кандидаты отсортированы по рангу - первый имеет наивысший приоритет
type WaitlistMatchedEvent struct {
	StaffID    int64              `json:"staff_id"`
	BranchID   int64              `json:"branch_id"`
	Date       string             `json:"date"`
	StartTime  string             `json:"start_time"`
	EndTime    string             `json:"end_time"`
	Candidates []MatchedCandidate `json:"candidates"`
	MatchedAt  time.Time          `json:"matched_at"`
}
