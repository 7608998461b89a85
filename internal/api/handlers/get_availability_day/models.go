package get_availability_day

import (
	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-WellnessBooking/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time      string `json:"time"` // "10:00"
	Available bool   `json:"available"`
	BookingID *int64 `json:"bookingId,omitempty"`
}

// AvailabilityDayResponse HTTP модель расписания на день
type AvailabilityDayResponse struct {
	HealerID int64          `json:"healerId"`
	Date     string         `json:"date"` // "2025-10-15"
	Slots    []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityDayResponse {
	out := &AvailabilityDayResponse{
		HealerID: resp.HealerID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Time:      slot.StartTime.String(),
			Available: slot.Available,
			BookingID: slot.BookingID,
		})
	}
	return out
}
