package txmanager

import "errors"

var (
	// ErrConflict возвращается, когда транзакция проиграла гонку после всех повторов
	ErrConflict = errors.New("txmanager: transaction conflict, retries exhausted")

	// ErrBeginTx возвращается при ошибке начала транзакции
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации транзакции
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)
