package domain

// Default configuration values
const (
	DefaultMaxRecurrenceInstances = 52 // Год еженедельной серии
	DefaultWaitlistExpiryDays     = 7
)

// Business validation constants
const (
	MinRecurrenceInterval = 1
	MaxRecurrenceInterval = 12

	MinFlexibleDays  = 0
	MaxFlexibleDays  = 30
	MinFlexibleHours = 0
	MaxFlexibleHours = 12

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
