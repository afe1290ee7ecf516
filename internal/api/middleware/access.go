package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
)

// Действия, которые проверяются у AccessService
const (
	ActionScheduleManage    = "schedule.manage"
	ActionReservationCreate = "reservation.create"
	ActionReservationManage = "reservation.manage"
)

const msgAccessDenied = "доступ запрещен"

// RequireCapability пропускает запрос, только если Authorizer разрешил action.
// Должен стоять после Auth. Ресурс строится из переменных маршрута.
func RequireCapability(authorizer Authorizer, action string, log Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, okUser := GetUserID(r.Context())
			tenantID, okTenant := GetTenantID(r.Context())
			if !okUser || !okTenant {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			resource := resourceFromVars(mux.Vars(r))
			allowed, err := authorizer.IsAuthorized(r.Context(), userID, tenantID, action, resource)
			if err != nil {
				log.Error("RequireCapability: authorization check failed: actor=%d tenant=%d action=%s resource=%s request_id=%s: %v",
					userID, tenantID, action, resource, GetRequestID(r.Context()), err)
				handlers.RespondInternalError(w)
				return
			}
			if !allowed {
				log.Warn("RequireCapability: denied actor=%d tenant=%d action=%s resource=%s request_id=%s",
					userID, tenantID, action, resource, GetRequestID(r.Context()))
				handlers.RespondForbidden(w, msgAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resourceFromVars(vars map[string]string) string {
	if id, ok := vars["reservationId"]; ok {
		return "reservation:" + id
	}
	if id, ok := vars["fieldId"]; ok {
		return "field:" + id
	}
	return "tenant"
}
