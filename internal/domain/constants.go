package domain

// Default availability values
const (
	DefaultDaysAhead = 30
	MaxDaysAhead     = 365
)

// Business validation constants
const (
	MinDayOfWeek                = 0 // воскресенье, как time.Sunday
	MaxDayOfWeek                = 6 // суббота, как time.Saturday
	MaxNotesLength              = 500
	MaxBlockReasonLength        = 255
	MaxCancellationReasonLength = 500
	MaxClientNameLength         = 200
	MaxNameLength               = 200
	MaxDescriptionLength        = 1000
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 24 * 60
	DashboardUpcomingLimit      = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Причины недоступности слота, отдаются клиенту как есть
const (
	ReasonBooked  = "already booked"
	ReasonBlocked = "blocked"
)
