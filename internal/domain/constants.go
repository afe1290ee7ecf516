package domain

import "github.com/m04kA/SMC-FieldBookingService/pkg/types"

// Slot grid
const (
	SlotDurationMinutes = 30
	GridFloorMinutes    = 7 * 60  // 07:00
	GridCeilingMinutes  = 24 * 60 // 24:00
	SlotsPerDay         = (GridCeilingMinutes - GridFloorMinutes) / SlotDurationMinutes
)

var (
	GridFloor   = types.MustFromMinutes(GridFloorMinutes)
	GridCeiling = types.MustFromMinutes(GridCeilingMinutes)
)

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxGuestNameLength          = 200
	MaxGuestContactLength       = 200
	DefaultTimezone             = "UTC"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultExcludedStatuses статусы, которые не занимают интервал.
// Используется по умолчанию при поиске пересечений.
var DefaultExcludedStatuses = []ReservationStatus{
	StatusCancelled,
	StatusNoShow,
}
