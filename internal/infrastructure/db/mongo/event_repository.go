package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

const eventCollection = "device_events"

// DeviceEventRepository implements ports.DeviceEventRepository using MongoDB.
type DeviceEventRepository struct {
	db *mongo.Database
}

// NewDeviceEventRepository creates a new DeviceEventRepository.
func NewDeviceEventRepository(db *mongo.Database) ports.DeviceEventRepository {
	return &DeviceEventRepository{db: db}
}

// UpdateEquipmentStatus sets the equipment's operational status.
func (r *DeviceEventRepository) UpdateEquipmentStatus(ctx context.Context, equipmentID string, status domain.EquipmentStatus, ts time.Time) error {
	oid, err := primitive.ObjectIDFromHex(equipmentID)
	if err != nil {
		return domain.ErrEquipmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":            string(status),
		"status_changed_at": ts.UTC(),
	}}

	_, err = r.db.Collection(equipmentCollection).UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

// InsertEvent persists a device event to the device_events audit collection.
func (r *DeviceEventRepository) InsertEvent(ctx context.Context, event *domain.DeviceEvent) error {
	doc := bson.M{
		"_id":          event.ID,
		"equipment_id": event.EquipmentID,
		"status":       string(event.Status),
		"timestamp":    event.Timestamp.UTC(),
		"source":       event.Source,
		"processed_at": time.Now().UTC(),
	}

	_, err := r.db.Collection(eventCollection).InsertOne(ctx, doc)
	return err
}
