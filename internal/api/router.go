package api

import (
	"net/http"

	"github.com/gorilla/mux"

	changeStatusHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/change_status"
	createReservationHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/create_reservation"
	getReservationHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_reservation"
	getSchedulesHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_schedules"
	getSlotsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/get_slots"
	listReservationsHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/list_reservations"
	removeScheduleHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/remove_schedule"
	setScheduleHandler "github.com/m04kA/SMC-FieldBookingService/internal/api/handlers/set_schedule"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	reservationsService "github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	schedulesService "github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
	computeSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
	createReservationUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

// Deps зависимости HTTP слоя. Metrics может быть nil.
type Deps struct {
	ComputeSlots      *computeSlotsUC.UseCase
	CreateReservation *createReservationUC.UseCase
	Schedules         *schedulesService.Service
	Reservations      *reservationsService.Service
	Authorizer        middleware.Authorizer
	Metrics           *metrics.Metrics
	MetricsPath       string
	Logger            *logger.Logger
}

// NewRouter собирает маршруты /api/v1
func NewRouter(d Deps) *mux.Router {
	log := d.Logger

	getSlots := getSlotsHandler.NewHandler(d.ComputeSlots, log)
	getSchedules := getSchedulesHandler.NewHandler(d.Schedules, log)
	setSchedule := setScheduleHandler.NewHandler(d.Schedules, log)
	removeSchedule := removeScheduleHandler.NewHandler(d.Schedules, log)
	createReservation := createReservationHandler.NewHandler(d.CreateReservation, log)
	listReservations := listReservationsHandler.NewHandler(d.Reservations, log)
	getReservation := getReservationHandler.NewHandler(d.Reservations, log)
	changeStatus := changeStatusHandler.NewHandler(d.Reservations, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if d.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.Metrics))
		r.Handle(d.MetricsPath, d.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	guard := func(action string, h http.HandlerFunc) http.Handler {
		return middleware.RequireCapability(d.Authorizer, action, log)(h)
	}

	// --- Сетка слотов и расписание ---
	api.HandleFunc("/fields/{fieldId}/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/fields/{fieldId}/schedules", getSchedules.Handle).Methods(http.MethodGet)
	api.Handle("/fields/{fieldId}/schedules/{weekday}",
		guard(middleware.ActionScheduleManage, setSchedule.Handle)).Methods(http.MethodPut)
	api.Handle("/fields/{fieldId}/schedules/{weekday}",
		guard(middleware.ActionScheduleManage, removeSchedule.Handle)).Methods(http.MethodDelete)

	// --- Брони ---
	api.Handle("/fields/{fieldId}/reservations",
		guard(middleware.ActionReservationCreate, createReservation.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/fields/{fieldId}/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	api.Handle("/reservations/{reservationId}/{action:confirm|cancel|complete|no-show}",
		guard(middleware.ActionReservationManage, changeStatus.Handle)).Methods(http.MethodPatch)

	return r
}
