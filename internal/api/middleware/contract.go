package middleware

import (
	"context"
	"time"
)

// Authorizer решает, может ли actor выполнить action над resource в рамках тенанта
type Authorizer interface {
	IsAuthorized(ctx context.Context, actorID, tenantID int64, action, resource string) (bool, error)
}

// HTTPMetrics записывает метрики HTTP запросов
type HTTPMetrics interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
