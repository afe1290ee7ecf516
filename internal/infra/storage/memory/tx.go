package memory

import "context"

type txKey struct{}

// TxManager держит общий мьютекс хранилища на время всей функции.
// Этого достаточно, чтобы проверка пересечений и вставка не разделялись гонкой.
// Отката нет: изменения, сделанные до ошибки, остаются.
type TxManager struct {
	store *Store
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	return fn(context.WithValue(ctx, txKey{}, true))
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
