package approve_reschedule

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// Request входные данные для одобрения запроса на перенос
type Request struct {
	RequestID  int64
	ApprovedBy int64
}

// Response результат одобрения: обновлённые запрос и бронирование
type Response struct {
	Request     *domain.RescheduleRequest
	Reservation *domain.ScheduleReservation
}
