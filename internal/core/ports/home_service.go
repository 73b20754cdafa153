package ports

import (
	"context"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

// HomeInput carries home create/update fields. ID is ignored on create.
type HomeInput struct {
	ID       string
	HomeName string
	Location string
}

// AreaInput carries area create/update fields.
type AreaInput struct {
	ID     string
	HomeID string
	Name   string
}

// EquipmentInput carries equipment create fields.
type EquipmentInput struct {
	CategoryID  int
	HomeID      string
	AreaID      string
	Title       string
	Description string
	TimeStart   string
	TimeEnd     string
	Cycle       int
	Status      string
}

// DeleteResult is the confirmation payload returned by all delete operations,
// matching the {code, msg} shape of the wire contract.
type DeleteResult struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// HomeService defines use-case operations over homes, areas, and equipment.
// Every operation is scoped to the calling account: entities belonging to
// other accounts behave as if they do not exist.
type HomeService interface {
	// GetHomes returns the account's homes with areas and equipment populated.
	GetHomes(ctx context.Context, accountID string) ([]*domain.Home, error)
	CreateHome(ctx context.Context, accountID string, input HomeInput) (*domain.Home, error)
	EditHome(ctx context.Context, accountID string, input HomeInput) (*domain.Home, error)
	DeleteHome(ctx context.Context, accountID, homeID string) (*DeleteResult, error)

	CreateArea(ctx context.Context, accountID string, input AreaInput) (*domain.Area, error)
	EditArea(ctx context.Context, accountID string, input AreaInput) (*domain.Area, error)
	DeleteArea(ctx context.Context, accountID, areaID string) (*DeleteResult, error)

	CreateEquipment(ctx context.Context, accountID string, input EquipmentInput) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, accountID, equipmentID string) (*DeleteResult, error)

	// ToggleDevice sets the on/off state of a device. Only devices with
	// status "active" accept commands. Returns the applied state.
	ToggleDevice(ctx context.Context, accountID, equipmentID string, turnOn bool) (bool, error)
}
