package get_healer_bookings

import (
	"context"

	"github.com/m04kA/SMC-WellnessBooking/internal/service/bookings/models"
)

type BookingService interface {
	GetHealerBookings(ctx context.Context, req *models.GetHealerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
