package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/pkg/types"
)

// DayWindow окно доступности целителя в пределах одного дня недели
// Времена в формате "HH:MM", интерпретируются в UTC
type DayWindow struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Contains проверяет попадание времени в окно: start <= t < end
// Сравнение с минутной точностью
func (w DayWindow) Contains(t types.TimeString) bool {
	return !t.IsBefore(w.Start) && t.IsBefore(w.End)
}

// WeeklyAvailability недельное расписание целителя
// Ключи - имена дней недели в нижнем регистре ("sunday".."saturday")
// Отсутствие ключа означает, что в этот день целитель не принимает
type WeeklyAvailability map[string]DayWindow

// DayName возвращает имя дня недели в формате ключей WeeklyAvailability
func DayName(weekday time.Weekday) string {
	return strings.ToLower(weekday.String())
}

// Healer represents a wellness practitioner in the system
type Healer struct {
	ID           int64
	Name         string
	IsActive     bool
	Availability WeeklyAvailability
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// WindowFor возвращает окно доступности на указанный день недели
// Второе значение false, если в этот день целитель не принимает
func (h *Healer) WindowFor(weekday time.Weekday) (DayWindow, bool) {
	w, ok := h.Availability[DayName(weekday)]
	return w, ok
}

// IsAvailableAt проверяет, попадает ли момент времени в окно доступности
// целителя на соответствующий день недели
func (h *Healer) IsAvailableAt(t time.Time) bool {
	window, ok := h.WindowFor(t.Weekday())
	if !ok {
		return false
	}
	return window.Contains(types.NewTimeString(t))
}
