package calendar

import "errors"

var (
	// ErrCacheMiss возвращается, когда слотов нет в кэше
	ErrCacheMiss = errors.New("calendar.cache: miss")

	// ErrCache возвращается при ошибке обращения к Redis
	ErrCache = errors.New("calendar.cache: redis failure")
)
