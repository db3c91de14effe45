package domain

import "github.com/m04kA/SMC-SchedulingService/pkg/types"

// SlotResult кандидат на запись с вердиктом доступности
type SlotResult struct {
	Time      types.TimeString
	Available bool
	Reason    *string // заполнено только для недоступных слотов
}
