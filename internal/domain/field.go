package domain

import "time"

// Field бронируемая площадка. Принадлежит ровно одному тенанту.
type Field struct {
	ID            int64
	TenantID      int64
	SportCenterID *int64
	SportType     string
	Name          string
	IsAvailable   bool // ручной выключатель, не зависит от расписания
	HourlyPrice   float64
	Timezone      string // IANA, например "Europe/Moscow"
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Location returns the field's local timezone, falling back to UTC
func (f *Field) Location() *time.Location {
	if f.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(f.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
