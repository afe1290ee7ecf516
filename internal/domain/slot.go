package domain

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// SlotState состояние получасового слота
type SlotState string

const (
	SlotClosed SlotState = "CLOSED"
	SlotOpen   SlotState = "OPEN"
	SlotBooked SlotState = "BOOKED"
)

// Slot вычисляемое, не хранимое окно сетки
type Slot struct {
	Date          time.Time // полночь локальной даты площадки
	StartTime     types.TimeString
	EndTime       types.TimeString
	State         SlotState
	ReservationID *int64
	HolderLabel   string
}

// StartAt absolute slot start in the date's location
func (s *Slot) StartAt() time.Time {
	return WallClock(s.Date, s.StartTime.Minutes())
}

// EndAt absolute slot end in the date's location
func (s *Slot) EndAt() time.Time {
	return WallClock(s.Date, s.EndTime.Minutes())
}

// GridStarts начала всех слотов сетки в минутах от полуночи
func GridStarts() []int {
	starts := make([]int, 0, SlotsPerDay)
	for m := GridFloorMinutes; m < GridCeilingMinutes; m += SlotDurationMinutes {
		starts = append(starts, m)
	}
	return starts
}

// LocalDate полночь календарной даты t в зоне loc
func LocalDate(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// WallClock момент, когда на часах площадки date + minutes. 1440 даёт полночь следующего дня.
func WallClock(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, date.Location())
}

// MinutesSinceMidnight минуты от полуночи локальной даты
func MinutesSinceMidnight(t time.Time, loc *time.Location) int {
	lt := t.In(loc)
	return lt.Hour()*60 + lt.Minute()
}
