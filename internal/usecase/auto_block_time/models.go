package auto_block_time

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request входные данные для автоматической блокировки времени под работу
// Вызывается при принятии работы провайдером
type Request struct {
	ProviderID    int64
	JobID         int64
	ApplicationID *int64
	StartTime     time.Time
	EndTime       time.Time
	Location      *string
}

// Response созданное бронирование
// Блок занятости связан с бронированием, только если при создании
// не было конфликта с объявленной доступностью
type Response struct {
	Reservation *domain.ScheduleReservation
}
