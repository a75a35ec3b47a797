package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
	resourceRepo "github.com/m04kA/CWP-AllocationService/internal/infra/storage/resource"
)

// Service реестр ресурсов: подбор и фильтрация боксов и выездных бригад
// Чистый lookup без бизнес-правил занятости - пересечения окон проверяет
// вызывающая сторона
type Service struct {
	resourceRepo ResourceRepository
	logger       Logger
}

// NewService создает новый экземпляр реестра ресурсов
func NewService(resourceRepo ResourceRepository, logger Logger) *Service {
	return &Service{
		resourceRepo: resourceRepo,
		logger:       logger,
	}
}

// ListCandidates возвращает совместимые ресурсы в стабильном порядке подбора:
// боксы - по возрастанию номера, бригады - по возрастанию ID
// Возвращает ErrNoCandidateResource, если после фильтрации список пуст
func (s *Service) ListCandidates(ctx context.Context, query CandidateQuery) ([]Candidate, error) {
	switch query.BookingType {
	case domain.BookingTypeStationary:
		return s.listBayCandidates(ctx, query)
	case domain.BookingTypeMobile:
		return s.listTeamCandidates(ctx, query)
	default:
		return nil, ErrUnknownBookingType
	}
}

// ListWashBays возвращает все боксы (для операторских списков)
func (s *Service) ListWashBays(ctx context.Context) ([]*domain.WashBay, error) {
	bays, err := s.resourceRepo.ListWashBays(ctx, false)
	if err != nil {
		s.logger.Error("ListWashBays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWashBays - repository error: %w", ErrInternal, err)
	}
	return bays, nil
}

// ListMobileTeams возвращает все бригады (для операторских списков)
func (s *Service) ListMobileTeams(ctx context.Context) ([]*domain.MobileTeam, error) {
	teams, err := s.resourceRepo.ListMobileTeams(ctx, false)
	if err != nil {
		s.logger.Error("ListMobileTeams: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListMobileTeams - repository error: %w", ErrInternal, err)
	}
	return teams, nil
}

func (s *Service) listBayCandidates(ctx context.Context, query CandidateQuery) ([]Candidate, error) {
	// Явно выбранный бокс читаем точечно, без листинга всех боксов.
	// Проверки совместимости для него те же
	if query.PreferredResourceID != nil {
		bay, err := s.resourceRepo.GetWashBayByID(ctx, *query.PreferredResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrWashBayNotFound) {
				s.logger.Warn("ListCandidates: preferred wash bay id=%d not found", *query.PreferredResourceID)
				return nil, ErrNoCandidateResource
			}
			s.logger.Error("ListCandidates: failed to get wash bay id=%d: %v", *query.PreferredResourceID, err)
			return nil, fmt.Errorf("%w: failed to get wash bay: %w", ErrInternal, err)
		}
		if !bay.CanServe(query.VehicleSize, query.RequiredEquipment) {
			s.logger.Warn("ListCandidates: preferred wash bay id=%d is not compatible (size=%s, equipment=%v)",
				bay.ID, query.VehicleSize, query.RequiredEquipment)
			return nil, ErrNoCandidateResource
		}
		return []Candidate{{
			ResourceType: domain.ResourceTypeWashBay,
			ResourceID:   bay.ID,
			Label:        fmt.Sprintf("bay #%d", bay.BayNumber),
		}}, nil
	}

	bays, err := s.resourceRepo.ListWashBays(ctx, true)
	if err != nil {
		s.logger.Error("ListCandidates: failed to list wash bays: %v", err)
		return nil, fmt.Errorf("%w: failed to list wash bays: %w", ErrInternal, err)
	}

	candidates := make([]Candidate, 0, len(bays))
	for _, bay := range bays {
		if !bay.CanServe(query.VehicleSize, query.RequiredEquipment) {
			continue
		}
		candidates = append(candidates, Candidate{
			ResourceType: domain.ResourceTypeWashBay,
			ResourceID:   bay.ID,
			Label:        fmt.Sprintf("bay #%d", bay.BayNumber),
		})
	}

	if len(candidates) == 0 {
		s.logger.Warn("ListCandidates: no compatible wash bay (size=%s, equipment=%v)",
			query.VehicleSize, query.RequiredEquipment)
		return nil, ErrNoCandidateResource
	}

	return candidates, nil
}

func (s *Service) listTeamCandidates(ctx context.Context, query CandidateQuery) ([]Candidate, error) {
	if query.CustomerLocation == nil {
		return nil, ErrLocationRequired
	}

	if query.PreferredResourceID != nil {
		team, err := s.resourceRepo.GetMobileTeamByID(ctx, *query.PreferredResourceID)
		if err != nil {
			if errors.Is(err, resourceRepo.ErrMobileTeamNotFound) {
				s.logger.Warn("ListCandidates: preferred mobile team id=%d not found", *query.PreferredResourceID)
				return nil, ErrNoCandidateResource
			}
			s.logger.Error("ListCandidates: failed to get mobile team id=%d: %v", *query.PreferredResourceID, err)
			return nil, fmt.Errorf("%w: failed to get mobile team: %w", ErrInternal, err)
		}
		if !team.CanServe(*query.CustomerLocation, query.RequiredEquipment) {
			s.logger.Warn("ListCandidates: preferred mobile team id=%d is not compatible (location=%+v, equipment=%v)",
				team.ID, *query.CustomerLocation, query.RequiredEquipment)
			return nil, ErrNoCandidateResource
		}
		return []Candidate{{
			ResourceType:  domain.ResourceTypeMobileTeam,
			ResourceID:    team.ID,
			Label:         team.Name,
			DailyCapacity: team.DailyCapacity,
		}}, nil
	}

	teams, err := s.resourceRepo.ListMobileTeams(ctx, true)
	if err != nil {
		s.logger.Error("ListCandidates: failed to list mobile teams: %v", err)
		return nil, fmt.Errorf("%w: failed to list mobile teams: %w", ErrInternal, err)
	}

	candidates := make([]Candidate, 0, len(teams))
	for _, team := range teams {
		if !team.CanServe(*query.CustomerLocation, query.RequiredEquipment) {
			continue
		}
		candidates = append(candidates, Candidate{
			ResourceType:  domain.ResourceTypeMobileTeam,
			ResourceID:    team.ID,
			Label:         team.Name,
			DailyCapacity: team.DailyCapacity,
		})
	}

	if len(candidates) == 0 {
		s.logger.Warn("ListCandidates: no compatible mobile team (location=%+v, equipment=%v)",
			*query.CustomerLocation, query.RequiredEquipment)
		return nil, ErrNoCandidateResource
	}

	return candidates, nil
}
