package ports

import (
	"context"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

// HomeRepository defines persistence operations for homes, areas, and equipment.
// When accountID is non-empty, reads are additionally filtered by ownership.
type HomeRepository interface {
	CreateHome(ctx context.Context, h *domain.Home) (*domain.Home, error)
	FindHomeByID(ctx context.Context, id, accountID string) (*domain.Home, error)
	ListHomes(ctx context.Context, accountID string) ([]*domain.Home, error)
	UpdateHome(ctx context.Context, h *domain.Home) error
	// DeleteHome soft-deletes the home and removes its areas and equipment.
	DeleteHome(ctx context.Context, id string) error

	CreateArea(ctx context.Context, a *domain.Area) (*domain.Area, error)
	FindAreaByID(ctx context.Context, id string) (*domain.Area, error)
	ListAreas(ctx context.Context, homeID string) ([]*domain.Area, error)
	UpdateArea(ctx context.Context, a *domain.Area) error
	DeleteArea(ctx context.Context, id string) error

	CreateEquipment(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	FindEquipmentByID(ctx context.Context, id string) (*domain.Equipment, error)
	ListEquipment(ctx context.Context, homeID string) ([]*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, e *domain.Equipment) error
	DeleteEquipment(ctx context.Context, id string) error
}
