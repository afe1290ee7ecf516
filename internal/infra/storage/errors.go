package storage

import "errors"

var (
	// ErrUnknownDriver возвращается при неизвестном storage.driver
	ErrUnknownDriver = errors.New("storage: unknown driver")

	// ErrConnect возвращается, когда не удалось подключиться к базе
	ErrConnect = errors.New("storage: failed to connect to database")

	// ErrSeed возвращается при некорректной начальной площадке
	ErrSeed = errors.New("storage: invalid seed field")
)
