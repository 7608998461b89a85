package domain

// Сетка слотов рабочего дня
const (
	// DefaultDayStartHour начало рабочего дня (10:00)
	DefaultDayStartHour = 10
	// DefaultDayEndHour конец рабочего дня (20:00), полуоткрытый интервал
	DefaultDayEndHour = 20
	// SlotStepMinutes шаг сетки слотов
	SlotStepMinutes = 30
	// DefaultProbeDurationMinutes длительность, используемая при проверке
	// пересечений на чтении доступности (до выбора конкретной услуги)
	DefaultProbeDurationMinutes = 60
	// ConflictScanWindowMinutes окно сканирования конфликтов вокруг
	// предлагаемого времени при валидации слота (±2 часа)
	ConflictScanWindowMinutes = 120
)

// Правила переноса и отмены
const (
	// ModificationNoticeHours минимальное время до начала сеанса
	// для переноса и для жесткой отмены (24 часа)
	ModificationNoticeHours = 24
	// HalfRefundNoticeHours нижняя граница полосы HALF (включительно)
	HalfRefundNoticeHours = 24
	// FullRefundNoticeHours нижняя граница полосы FULL (включительно)
	FullRefundNoticeHours = 48
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих слот
// Используются при подсчёте пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusScheduled,
	StatusConfirmed,
	StatusRescheduled,
}

// InactiveStatuses статусы бронирований, не занимающих слот
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
