package models

import (
	"fmt"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	"github.com/m04kA/SMC-WellnessBooking/pkg/types"
)

// DayWindowDTO окно доступности на день в формате API
type DayWindowDTO struct {
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "17:00"
}

// UpdateAvailabilityRequest запрос на замену недельного расписания мастера
// Ключи - имена дней недели в нижнем регистре, отсутствие дня означает выходной
type UpdateAvailabilityRequest struct {
	UserID       int64                   `json:"userId"`
	Availability map[string]DayWindowDTO `json:"availability"`
}

// AvailabilityResponse ответ с недельным расписанием мастера
type AvailabilityResponse struct {
	HealerID     int64                   `json:"healerId"`
	IsActive     bool                    `json:"isActive"`
	Availability map[string]DayWindowDTO `json:"availability"`
}

// ToDomainAvailability конвертирует запрос в domain модель с валидацией
func (r *UpdateAvailabilityRequest) ToDomainAvailability() (domain.WeeklyAvailability, error) {
	availability := make(domain.WeeklyAvailability, len(r.Availability))

	for day, window := range r.Availability {
		if !isValidDayName(day) {
			return nil, fmt.Errorf("unknown day name %q", day)
		}

		start, err := types.NewTimeStringFromString(window.Start)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid start time: %v", day, err)
		}
		end, err := types.NewTimeStringFromString(window.End)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid end time: %v", day, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%s: start must be before end", day)
		}

		availability[day] = domain.DayWindow{Start: start, End: end}
	}

	return availability, nil
}

// FromDomainAvailability конвертирует domain модель в ответ
func FromDomainAvailability(h *domain.Healer) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		HealerID:     h.ID,
		IsActive:     h.IsActive,
		Availability: make(map[string]DayWindowDTO, len(h.Availability)),
	}
	for day, window := range h.Availability {
		resp.Availability[day] = DayWindowDTO{
			Start: window.Start.String(),
			End:   window.End.String(),
		}
	}
	return resp
}

func isValidDayName(day string) bool {
	switch day {
	case "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday":
		return true
	default:
		return false
	}
}
