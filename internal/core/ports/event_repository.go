package ports

import (
	"context"
	"time"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

// DeviceEventRepository handles event persistence and equipment status updates.
type DeviceEventRepository interface {
	// UpdateEquipmentStatus sets the equipment's new status.
	UpdateEquipmentStatus(ctx context.Context, equipmentID string, status domain.EquipmentStatus, ts time.Time) error

	// InsertEvent persists an event to the device_events audit collection.
	InsertEvent(ctx context.Context, event *domain.DeviceEvent) error
}
