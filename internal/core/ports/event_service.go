package ports

import (
	"context"
	"time"
)

// DeviceEventInput is the DTO passed from the transport layer to DeviceEventService.
type DeviceEventInput struct {
	EquipmentID string
	Status      string
	Timestamp   time.Time
	Source      string
}

// DeviceEventService processes incoming device status events.
type DeviceEventService interface {
	Process(ctx context.Context, event DeviceEventInput) error
}
