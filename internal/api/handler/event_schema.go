package handler

import "time"

type deviceEventRequest struct {
	EquipmentID string    `json:"equipment_id" validate:"required"`
	Status      string    `json:"status"       validate:"required,oneof=active inactive maintenance"`
	Timestamp   time.Time `json:"timestamp"    validate:"required"`
	Source      string    `json:"source"       validate:"required"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
