package validate_slot

import (
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
)

// Request модель запроса проверки слота
type Request struct {
	HealerID    int64     // ID мастера
	ServiceID   int64     // ID услуги
	ScheduledAt time.Time // Предлагаемое время начала (UTC)
}

// Response результат проверки слота
type Response struct {
	Valid bool   // Прошел ли слот все проверки
	Error string // Причина отказа (пусто при Valid=true)
}

// CheckResult внутренний результат проверки для переиспользования
// создающими и переносящими бронирование use case'ами
type CheckResult struct {
	Valid   bool
	Reason  string          // Стабильный код причины отказа (см. Msg* константы)
	Healer  *domain.Healer  // Загруженный мастер (nil до проверки 3)
	Service *domain.Service // Загруженная услуга (nil до проверки 4)
}

// Стабильные причины отказа проверки слота
const (
	MsgPastTime        = "booking time must be in the future"
	MsgMisaligned      = "must be aligned to 30-minute slots"
	MsgHealerNotFound  = "healer not found or inactive"
	MsgServiceNotFound = "service not found or inactive"
	MsgOutsideWindow   = "healer not available at this time"
	MsgSlotTaken       = "time slot not available"
)
