package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-WellnessBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только свои бронирования, чужие отдаются как отсутствующие
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getOwnedBooking(ctx, id, userID, "GetByID")
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetHealerBookings получает бронирования мастера за период
// Без периода возвращает расписание на ближайшие 30 дней
func (s *Service) GetHealerBookings(ctx context.Context, req *models.GetHealerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetHealerBookings: fetching bookings for healer=%d, includeInactive=%t",
		req.HealerID, req.IncludeInactive)

	now := s.timeProvider.Now()
	from := now.Truncate(24 * time.Hour)
	to := from.Add(30 * 24 * time.Hour)
	if req.StartDate != nil {
		from = *req.StartDate
	}
	if req.EndDate != nil {
		to = *req.EndDate
	}
	if !to.After(from) {
		s.logger.Warn("GetHealerBookings: invalid period for healer=%d", req.HealerID)
		return nil, fmt.Errorf("%w: end date must be after start date", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByHealerAndRange(ctx, req.HealerID, from, to, !req.IncludeInactive)
	if err != nil {
		s.logger.Error("GetHealerBookings: repository error for healer=%d: %v", req.HealerID, err)
		return nil, fmt.Errorf("%w: GetHealerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHealerBookings: successfully fetched %d bookings for healer=%d", len(bookings), req.HealerID)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus обновляет статус бронирования
// Терминальные статусы (cancelled, completed) менять нельзя
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s for user=%d", id, req.Status, req.UserID)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.getOwnedBooking(ctx, id, req.UserID, "UpdateStatus")
	if err != nil {
		return nil, err
	}

	if !booking.IsActive() {
		s.logger.Warn("UpdateStatus: booking id=%d in terminal status %s", id, booking.Status)
		return nil, ErrInvalidTransition
	}

	// Отмена идет через отдельный поток с расчетом возврата
	if status == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d requested via status update", id)
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	booking.Status = status
	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", id, status)
	return models.FromDomainBooking(booking), nil
}

// HardDelete удаляет бронирование целиком
// Историческая семантика отмены: допускается не позднее чем за 24 часа
// до начала сеанса, без расчета возврата
func (s *Service) HardDelete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("HardDelete: deleting booking id=%d for user=%d", id, userID)

	booking, err := s.getOwnedBooking(ctx, id, userID, "HardDelete")
	if err != nil {
		return err
	}

	if booking.LeadTime(s.timeProvider.Now()) < domain.ModificationNoticeHours*time.Hour {
		s.logger.Warn("HardDelete: booking id=%d starts too soon", id)
		return ErrTooCloseToStart
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		s.logger.Error("HardDelete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: HardDelete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("HardDelete: booking id=%d deleted", id)
	return nil
}

// getOwnedBooking получает бронирование и проверяет владельца
// Чужое бронирование не раскрывается, отдается как отсутствующее
func (s *Service) getOwnedBooking(ctx context.Context, id, userID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: booking id=%d belongs to another user", op, id)
		return nil, ErrBookingNotFound
	}

	return booking, nil
}
