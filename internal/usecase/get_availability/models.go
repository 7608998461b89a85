package get_availability

import (
	"time"

	"github.com/m04kA/SMC-WellnessBooking/pkg/types"
)

// Request модель запроса расписания мастера на день
type Request struct {
	HealerID int64     // ID мастера
	Date     time.Time // Календарная дата (UTC, без времени)
}

// Response модель ответа со списком слотов на день
type Response struct {
	HealerID int64     // ID мастера
	Date     time.Time // Дата, на которую запрашивались слоты
	Slots    []Slot    // Все слоты сетки с отметкой доступности
}

// Slot слот сетки с отметкой доступности
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Available bool             // Свободен ли слот
	BookingID *int64           // ID бронирования, занимающего слот (если занят)
}
