package schedule

import "errors"

var (
	// ErrProfessionalNotFound возвращается, когда сотрудник не найден в организации
	ErrProfessionalNotFound = errors.New("professional not found")

	// ErrRuleNotFound возвращается, когда правило на день недели не найдено
	ErrRuleNotFound = errors.New("schedule rule not found")

	// ErrBlockNotFound возвращается, когда блокировка не найдена
	ErrBlockNotFound = errors.New("block not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeRange возвращается, когда конец интервала не позже начала
	ErrInvalidTimeRange = errors.New("end time must be after start time")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
