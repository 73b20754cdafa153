package domain

import "time"

// DeviceEvent represents a status report received from a hub or the device itself.
type DeviceEvent struct {
	ID          string
	EquipmentID string
	Status      EquipmentStatus
	Timestamp   time.Time
	Source      string
}
