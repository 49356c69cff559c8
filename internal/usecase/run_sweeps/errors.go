package run_sweeps

import (
	"fmt"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

var (
	// ErrUnknownSweep неизвестное имя sweep-задачи
	ErrUnknownSweep = fmt.Errorf("%w: run_sweeps: unknown sweep", domain.ErrInvalidArgument)

	// ErrSweepDisabled задача выключена в конфигурации
	ErrSweepDisabled = fmt.Errorf("%w: run_sweeps: sweep is disabled", domain.ErrInvalidState)

	// ErrInternal возвращается, когда не удалось получить кандидатов
	ErrInternal = fmt.Errorf("%w: run_sweeps", domain.ErrInternal)
)
