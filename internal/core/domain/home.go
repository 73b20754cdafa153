package domain

import (
	"errors"
	"time"
)

// EquipmentStatus represents the operational state of a piece of equipment.
type EquipmentStatus string

const (
	StatusActive      EquipmentStatus = "active"
	StatusInactive    EquipmentStatus = "inactive"
	StatusMaintenance EquipmentStatus = "maintenance"
)

// validTransitions defines the allowed status transitions. A device in
// maintenance must be re-activated before it can be marked inactive.
var validTransitions = map[EquipmentStatus][]EquipmentStatus{
	StatusActive:      {StatusInactive, StatusMaintenance},
	StatusInactive:    {StatusActive, StatusMaintenance},
	StatusMaintenance: {StatusActive},
}

var ErrInvalidTransition = errors.New("invalid status transition")
var ErrHomeNotFound = errors.New("home not found")
var ErrAreaNotFound = errors.New("area not found")
var ErrEquipmentNotFound = errors.New("equipment not found")
var ErrForbidden = errors.New("access forbidden")
var ErrDeviceUnavailable = errors.New("device not available for control")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s EquipmentStatus) CanTransitionTo(next EquipmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Equipment is a single controllable device (lamp, AC unit, curtain motor, ...).
type Equipment struct {
	ID          string          `json:"id"`
	CategoryID  int             `json:"categoryId"`
	HomeID      string          `json:"homeId"`
	AreaID      string          `json:"areaId,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	TimeStart   string          `json:"timeStart,omitempty"`
	TimeEnd     string          `json:"timeEnd,omitempty"`
	TurnOn      bool            `json:"turnOn"`
	Cycle       int             `json:"cycle,omitempty"`
	Status      EquipmentStatus `json:"status"`
}

// Area groups equipment within a home (living room, kitchen, ...).
type Area struct {
	ID        string      `json:"id"`
	HomeID    string      `json:"homeId"`
	Name      string      `json:"name"`
	Equipment []Equipment `json:"equipment,omitempty"`
}

// Home is the aggregate root a single account controls.
type Home struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	HomeName  string    `json:"homeName"`
	Location  string    `json:"location,omitempty"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	Area      []Area    `json:"area,omitempty"`
}
