package change_status

import "github.com/m04kA/SMC-FieldBookingService/internal/domain"

// actionStatuses сегмент пути -> целевой статус
var actionStatuses = map[string]domain.ReservationStatus{
	"confirm":  domain.StatusConfirmed,
	"cancel":   domain.StatusCancelled,
	"complete": domain.StatusCompleted,
	"no-show":  domain.StatusNoShow,
}

// ChangeStatusBody тело запроса, причина учитывается только при отмене
type ChangeStatusBody struct {
	Reason *string `json:"reason,omitempty"`
}
