package accessservice

// CheckRequest запрос проверки права actor на action над resource в рамках тенанта
type CheckRequest struct {
	ActorID  int64  `json:"actorId"`
	TenantID int64  `json:"tenantId"`
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// CheckResponse ответ AccessService
type CheckResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}
