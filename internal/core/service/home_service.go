package service

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

// HomeService implements home, area, and equipment use-cases, enforcing
// per-account ownership on every operation.
type HomeService struct {
	repo   ports.HomeRepository
	logger zerolog.Logger
}

func NewHomeService(repo ports.HomeRepository, logger zerolog.Logger) *HomeService {
	return &HomeService{repo: repo, logger: logger}
}

// GetHomes returns the account's homes with areas and equipment populated.
func (s *HomeService) GetHomes(ctx context.Context, accountID string) ([]*domain.Home, error) {
	homes, err := s.repo.ListHomes(ctx, accountID)
	if err != nil {
		return nil, err
	}

	for _, h := range homes {
		areas, err := s.repo.ListAreas(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		equipment, err := s.repo.ListEquipment(ctx, h.ID)
		if err != nil {
			return nil, err
		}

		byArea := make(map[string][]domain.Equipment)
		for _, e := range equipment {
			byArea[e.AreaID] = append(byArea[e.AreaID], *e)
		}

		h.Area = make([]domain.Area, 0, len(areas))
		for _, a := range areas {
			a.Equipment = byArea[a.ID]
			h.Area = append(h.Area, *a)
		}

		// Equipment whose area was deleted keeps its home and stays
		// toggleable; list it under a synthetic grouping instead of
		// hiding it.
		if orphans := byArea[""]; len(orphans) > 0 {
			h.Area = append(h.Area, domain.Area{
				HomeID:    h.ID,
				Name:      "Unassigned",
				Equipment: orphans,
			})
		}
	}

	return homes, nil
}

func (s *HomeService) CreateHome(ctx context.Context, accountID string, input ports.HomeInput) (*domain.Home, error) {
	home := &domain.Home{
		AccountID: accountID,
		HomeName:  input.HomeName,
		Location:  input.Location,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.CreateHome(ctx, home)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", accountID).Msg("failed to create home")
		return nil, err
	}

	s.logger.Info().Str("home_id", created.ID).Str("account_id", accountID).Msg("home created")
	return created, nil
}

func (s *HomeService) EditHome(ctx context.Context, accountID string, input ports.HomeInput) (*domain.Home, error) {
	home, err := s.repo.FindHomeByID(ctx, input.ID, accountID)
	if err != nil {
		return nil, err
	}

	if input.HomeName != "" {
		home.HomeName = input.HomeName
	}
	if input.Location != "" {
		home.Location = input.Location
	}

	if err := s.repo.UpdateHome(ctx, home); err != nil {
		return nil, err
	}
	return home, nil
}

func (s *HomeService) DeleteHome(ctx context.Context, accountID, homeID string) (*ports.DeleteResult, error) {
	if _, err := s.repo.FindHomeByID(ctx, homeID, accountID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteHome(ctx, homeID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("home_id", homeID).Str("account_id", accountID).Msg("home deleted")
	return &ports.DeleteResult{Code: http.StatusOK, Msg: "home deleted"}, nil
}

func (s *HomeService) CreateArea(ctx context.Context, accountID string, input ports.AreaInput) (*domain.Area, error) {
	if _, err := s.repo.FindHomeByID(ctx, input.HomeID, accountID); err != nil {
		return nil, err
	}

	area := &domain.Area{HomeID: input.HomeID, Name: input.Name}
	return s.repo.CreateArea(ctx, area)
}

func (s *HomeService) EditArea(ctx context.Context, accountID string, input ports.AreaInput) (*domain.Area, error) {
	area, err := s.ownedArea(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		area.Name = input.Name
	}

	if err := s.repo.UpdateArea(ctx, area); err != nil {
		return nil, err
	}
	return area, nil
}

func (s *HomeService) DeleteArea(ctx context.Context, accountID, areaID string) (*ports.DeleteResult, error) {
	if _, err := s.ownedArea(ctx, accountID, areaID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteArea(ctx, areaID); err != nil {
		return nil, err
	}
	return &ports.DeleteResult{Code: http.StatusOK, Msg: "area deleted"}, nil
}

func (s *HomeService) CreateEquipment(ctx context.Context, accountID string, input ports.EquipmentInput) (*domain.Equipment, error) {
	if _, err := s.repo.FindHomeByID(ctx, input.HomeID, accountID); err != nil {
		return nil, err
	}

	status := domain.EquipmentStatus(input.Status)
	if status == "" {
		status = domain.StatusActive
	}

	equipment := &domain.Equipment{
		CategoryID:  input.CategoryID,
		HomeID:      input.HomeID,
		AreaID:      input.AreaID,
		Title:       input.Title,
		Description: input.Description,
		TimeStart:   input.TimeStart,
		TimeEnd:     input.TimeEnd,
		Cycle:       input.Cycle,
		Status:      status,
	}

	return s.repo.CreateEquipment(ctx, equipment)
}

func (s *HomeService) DeleteEquipment(ctx context.Context, accountID, equipmentID string) (*ports.DeleteResult, error) {
	if _, err := s.ownedEquipment(ctx, accountID, equipmentID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteEquipment(ctx, equipmentID); err != nil {
		return nil, err
	}
	return &ports.DeleteResult{Code: http.StatusOK, Msg: "equipment deleted"}, nil
}

// ToggleDevice sets the on/off state of an owned, active device.
func (s *HomeService) ToggleDevice(ctx context.Context, accountID, equipmentID string, turnOn bool) (bool, error) {
	equipment, err := s.ownedEquipment(ctx, accountID, equipmentID)
	if err != nil {
		return false, err
	}

	if equipment.Status != domain.StatusActive {
		return false, domain.ErrDeviceUnavailable
	}

	equipment.TurnOn = turnOn
	if err := s.repo.UpdateEquipment(ctx, equipment); err != nil {
		s.logger.Error().Err(err).Str("equipment_id", equipmentID).Msg("failed to toggle device")
		return false, err
	}

	s.logger.Info().Str("equipment_id", equipmentID).Bool("turn_on", turnOn).Msg("device toggled")
	return turnOn, nil
}

// ownedArea resolves an area and verifies its home belongs to the account.
func (s *HomeService) ownedArea(ctx context.Context, accountID, areaID string) (*domain.Area, error) {
	area, err := s.repo.FindAreaByID(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindHomeByID(ctx, area.HomeID, accountID); err != nil {
		return nil, err
	}
	return area, nil
}

// ownedEquipment resolves equipment and verifies its home belongs to the account.
func (s *HomeService) ownedEquipment(ctx context.Context, accountID, equipmentID string) (*domain.Equipment, error) {
	equipment, err := s.repo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindHomeByID(ctx, equipment.HomeID, accountID); err != nil {
		return nil, err
	}
	return equipment, nil
}
