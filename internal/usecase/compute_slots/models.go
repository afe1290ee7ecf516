package compute_slots

import "time"

// Request модель запроса сетки слотов. Из From и To берутся только календарные даты.
type Request struct {
	TenantID int64
	FieldID  int64
	From     time.Time
	To       time.Time
}

// Response сетка слотов по дням
type Response struct {
	FieldID  int64  `json:"fieldId"`
	Timezone string `json:"timezone"`
	From     string `json:"from"` // "2025-10-13"
	To       string `json:"to"`
	Days     []Day  `json:"days"`
}

// Day одна колонка сетки
type Day struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Slots   []Slot `json:"slots"`
}

// Slot получасовое окно
type Slot struct {
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	State         string `json:"state"` // CLOSED | OPEN | BOOKED
	ReservationID *int64 `json:"reservationId,omitempty"`
	HolderLabel   string `json:"holderLabel,omitempty"`
}
