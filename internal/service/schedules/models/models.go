package models

import (
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SetScheduleRequest запрос на установку окна работы на день недели
type SetScheduleRequest struct {
	TenantID  int64  `json:"-"`
	ActorID   int64  `json:"-"`
	FieldID   int64  `json:"-"`
	Weekday   string `json:"-"`
	OpenTime  string `json:"openTime"`  // "08:00"
	CloseTime string `json:"closeTime"` // "22:00", допускается "24:00"
}

// ScheduleResponse окно работы площадки
type ScheduleResponse struct {
	ID        int64     `json:"id"`
	FieldID   int64     `json:"fieldId"`
	Weekday   string    `json:"weekday"`
	OpenTime  string    `json:"openTime"`
	CloseTime string    `json:"closeTime"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FieldSchedulesResponse расписание площадки с понедельника по воскресенье
type FieldSchedulesResponse struct {
	FieldID   int64              `json:"fieldId"`
	Schedules []ScheduleResponse `json:"schedules"`
}

func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:        s.ID,
		FieldID:   s.FieldID,
		Weekday:   s.Weekday.String(),
		OpenTime:  s.OpenTime.String(),
		CloseTime: s.CloseTime.String(),
		UpdatedAt: s.UpdatedAt,
	}
}
