package txmanager

import "errors"

var (
	ErrBeginTx              = errors.New("txmanager: failed to begin transaction")
	ErrCommitTx             = errors.New("txmanager: failed to commit transaction")
	ErrSerializationFailure = errors.New("txmanager: serialization failure")
)
