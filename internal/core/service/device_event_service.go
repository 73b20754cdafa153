package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, equipmentID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, equipmentID, status string, ts time.Time) error
}

type deviceEventService struct {
	homeRepo  ports.HomeRepository
	eventRepo ports.DeviceEventRepository
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewDeviceEventService returns a DeviceEventService implementation.
func NewDeviceEventService(
	homeRepo ports.HomeRepository,
	eventRepo ports.DeviceEventRepository,
	dedup DedupChecker,
	log zerolog.Logger,
) ports.DeviceEventService {
	return &deviceEventService{
		homeRepo:  homeRepo,
		eventRepo: eventRepo,
		dedup:     dedup,
		log:       log,
	}
}

// Process validates, deduplicates, and persists a single device status event.
func (s *deviceEventService) Process(ctx context.Context, in ports.DeviceEventInput) error {
	newStatus := domain.EquipmentStatus(in.Status)

	// 1. Idempotency check — silently skip duplicates.
	isDup, err := s.dedup.IsDuplicate(ctx, in.EquipmentID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("equipment_id", in.EquipmentID).Msg("dedup check failed, processing anyway")
	} else if isDup {
		s.log.Debug().Str("equipment_id", in.EquipmentID).Str("status", in.Status).Msg("duplicate event skipped")
		return nil
	}

	// 2. Find the equipment (no ownership filter — events come from hubs, not users).
	equipment, err := s.homeRepo.FindEquipmentByID(ctx, in.EquipmentID)
	if err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	// 3. Validate the status transition.
	if !equipment.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("process event: %w (from %s to %s)", domain.ErrInvalidTransition, equipment.Status, newStatus)
	}

	// 4. Mark as processed before writing (prevents duplicate processing on retry).
	if markErr := s.dedup.Mark(ctx, in.EquipmentID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("equipment_id", in.EquipmentID).Msg("failed to set dedup key")
	}

	// 5. Apply the new status.
	if err := s.eventRepo.UpdateEquipmentStatus(ctx, in.EquipmentID, newStatus, in.Timestamp); err != nil {
		return fmt.Errorf("process event: update status: %w", err)
	}

	// 6. Insert into audit trail (non-fatal on failure).
	auditEvent := &domain.DeviceEvent{
		ID:          uuid.NewString(),
		EquipmentID: in.EquipmentID,
		Status:      newStatus,
		Timestamp:   in.Timestamp,
		Source:      in.Source,
	}
	if err := s.eventRepo.InsertEvent(ctx, auditEvent); err != nil {
		s.log.Warn().Err(err).Str("equipment_id", in.EquipmentID).Msg("failed to insert audit event")
	}

	s.log.Info().
		Str("equipment_id", in.EquipmentID).
		Str("status", in.Status).
		Str("source", in.Source).
		Msg("device event processed")

	return nil
}
