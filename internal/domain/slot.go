package domain

import (
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/pkg/types"
)

// DaySlot represents one grid slot of a healer's day with its availability
type DaySlot struct {
	StartTime types.TimeString
	Available bool
	BookingID *int64 // заполняется, если слот занят бронированием
}

// GenerateDaySlots генерирует каноническую сетку 30-минутных слотов
// для интервала [startHour, endHour). Детерминированная чистая функция
// Если endHour <= startHour, возвращает пустую сетку (не ошибку)
func GenerateDaySlots(startHour, endHour int) []types.TimeString {
	slots := make([]types.TimeString, 0)
	if endHour <= startHour {
		return slots
	}

	for minutes := startHour * 60; minutes < endHour*60; minutes += SlotStepMinutes {
		slots = append(slots, types.TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)))
	}

	return slots
}
