package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Weekday день недели расписания
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
	Saturday  Weekday = "SATURDAY"
	Sunday    Weekday = "SUNDAY"
)

var weekdayOrder = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// AllWeekdays returns weekdays from Monday to Sunday
func AllWeekdays() []Weekday {
	out := make([]Weekday, len(weekdayOrder))
	copy(out, weekdayOrder)
	return out
}

// ParseWeekday accepts any letter case ("monday", "MONDAY")
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToUpper(strings.TrimSpace(s)))
	if !w.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return w, nil
}

// WeekdayOf день недели для даты (в той зоне, в которой задана дата)
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday: Sunday = 0
	return weekdayOrder[(int(t.Weekday())+6)%7]
}

func (w Weekday) IsValid() bool {
	return w.Index() >= 0
}

// Index порядковый номер, Monday = 0. -1 для неизвестного значения.
func (w Weekday) Index() int {
	for i, d := range weekdayOrder {
		if d == w {
			return i
		}
	}
	return -1
}

func (w Weekday) String() string {
	return string(w)
}

// WeeklySchedule окно работы площадки в конкретный день недели.
// На пару (FieldID, Weekday) существует не более одной записи.
type WeeklySchedule struct {
	ID        int64
	FieldID   int64
	Weekday   Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks weekday and that open < close
func (s *WeeklySchedule) Validate() error {
	if !s.Weekday.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidWeekday, s.Weekday)
	}
	if err := s.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidRange, err)
	}
	if err := s.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidRange, err)
	}
	if !s.OpenTime.IsBefore(s.CloseTime) {
		return fmt.Errorf("%w: %s-%s", ErrInvalidRange, s.OpenTime, s.CloseTime)
	}
	return nil
}

// Contains reports whether [startMin, endMin) lies inside the window.
// Аргументы в минутах от полуночи.
func (s *WeeklySchedule) Contains(startMin, endMin int) bool {
	return startMin >= s.OpenTime.Minutes() && endMin <= s.CloseTime.Minutes()
}
