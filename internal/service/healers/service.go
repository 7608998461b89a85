package healers

import (
	"context"
	"errors"
	"fmt"

	healerRepo "github.com/m04kA/SMC-WellnessBooking/internal/infra/storage/healer"
	"github.com/m04kA/SMC-WellnessBooking/internal/service/healers/models"
)

// Service сервис для работы с расписаниями мастеров
type Service struct {
	healerRepo HealerRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(healerRepo HealerRepository, logger Logger) *Service {
	return &Service{
		healerRepo: healerRepo,
		logger:     logger,
	}
}

// GetAvailability получает недельное расписание мастера
func (s *Service) GetAvailability(ctx context.Context, healerID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("GetAvailability: fetching availability for healer=%d", healerID)

	healer, err := s.healerRepo.GetByID(ctx, healerID)
	if err != nil {
		if errors.Is(err, healerRepo.ErrHealerNotFound) {
			s.logger.Warn("GetAvailability: healer id=%d not found", healerID)
			return nil, ErrHealerNotFound
		}
		s.logger.Error("GetAvailability: repository error for healer id=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(healer), nil
}

// UpdateAvailability заменяет недельное расписание мастера
// Расписание принадлежит мастеру, менять его может только он сам
func (s *Service) UpdateAvailability(ctx context.Context, healerID int64, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("UpdateAvailability: updating availability for healer=%d by user=%d", healerID, req.UserID)

	if req.UserID != healerID {
		s.logger.Warn("UpdateAvailability: user=%d is not the owner of healer=%d schedule", req.UserID, healerID)
		return nil, ErrAccessDenied
	}

	availability, err := req.ToDomainAvailability()
	if err != nil {
		s.logger.Warn("UpdateAvailability: invalid availability for healer=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	healer, err := s.healerRepo.GetByID(ctx, healerID)
	if err != nil {
		if errors.Is(err, healerRepo.ErrHealerNotFound) {
			s.logger.Warn("UpdateAvailability: healer id=%d not found", healerID)
			return nil, ErrHealerNotFound
		}
		s.logger.Error("UpdateAvailability: repository error for healer id=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	if err := s.healerRepo.UpdateAvailability(ctx, healerID, availability); err != nil {
		s.logger.Error("UpdateAvailability: failed to update healer id=%d: %v", healerID, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - failed to update: %v", ErrInternal, err)
	}

	healer.Availability = availability
	s.logger.Info("UpdateAvailability: availability for healer=%d updated, %d days configured",
		healerID, len(availability))
	return models.FromDomainAvailability(healer), nil
}
