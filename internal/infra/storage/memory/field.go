package memory

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
)

type FieldRepository struct {
	store *Store
}

func (r *FieldRepository) GetByID(_ context.Context, tenantID, fieldID int64) (*domain.Field, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.fields[fieldID]
	if !ok || f.TenantID != tenantID {
		return nil, field.ErrFieldNotFound
	}
	out := *f
	return &out, nil
}

// Lock только проверяет существование: сериализацию обеспечивает TxManager
func (r *FieldRepository) Lock(ctx context.Context, tenantID, fieldID int64) error {
	_, err := r.GetByID(ctx, tenantID, fieldID)
	return err
}
