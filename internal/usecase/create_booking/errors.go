package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в организации
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrProfessionalNotFound возвращается, когда сотрудник не найден в организации
	ErrProfessionalNotFound = errors.New("create_booking: professional not found")

	// ErrServiceNotProvided возвращается, когда сотрудник не оказывает услугу
	ErrServiceNotProvided = errors.New("create_booking: professional does not provide this service")

	// ErrInactive возвращается, когда услуга или сотрудник отключены
	ErrInactive = errors.New("create_booking: service or professional is not active")

	// ErrStartInPast возвращается, когда время начала не в будущем
	ErrStartInPast = errors.New("create_booking: start time must be in the future")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с записью или блокировкой
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
