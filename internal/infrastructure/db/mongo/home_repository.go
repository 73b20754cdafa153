package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

const (
	homeCollection      = "homes"
	areaCollection      = "areas"
	equipmentCollection = "equipment"
)

// HomeRepository implements ports.HomeRepository over three collections.
type HomeRepository struct {
	homes     *mongo.Collection
	areas     *mongo.Collection
	equipment *mongo.Collection
}

func NewHomeRepository(db *mongo.Database) *HomeRepository {
	return &HomeRepository{
		homes:     db.Collection(homeCollection),
		areas:     db.Collection(areaCollection),
		equipment: db.Collection(equipmentCollection),
	}
}

type homeDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	AccountID string             `bson:"account_id"`
	HomeName  string             `bson:"home_name"`
	Location  string             `bson:"location,omitempty"`
	Deleted   bool               `bson:"deleted"`
	CreatedAt int64              `bson:"created_at"`
}

type areaDoc struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	HomeID string             `bson:"home_id"`
	Name   string             `bson:"name"`
}

type equipmentDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	CategoryID  int                `bson:"category_id"`
	HomeID      string             `bson:"home_id"`
	AreaID      string             `bson:"area_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	TimeStart   string             `bson:"time_start,omitempty"`
	TimeEnd     string             `bson:"time_end,omitempty"`
	TurnOn      bool               `bson:"turn_on"`
	Cycle       int                `bson:"cycle,omitempty"`
	Status      string             `bson:"status"`
}

func (d homeDoc) toDomain() *domain.Home {
	return &domain.Home{
		ID:        d.ID.Hex(),
		AccountID: d.AccountID,
		HomeName:  d.HomeName,
		Location:  d.Location,
		Deleted:   d.Deleted,
		CreatedAt: unixToTime(d.CreatedAt),
	}
}

func (d areaDoc) toDomain() *domain.Area {
	return &domain.Area{ID: d.ID.Hex(), HomeID: d.HomeID, Name: d.Name}
}

func (d equipmentDoc) toDomain() *domain.Equipment {
	return &domain.Equipment{
		ID:          d.ID.Hex(),
		CategoryID:  d.CategoryID,
		HomeID:      d.HomeID,
		AreaID:      d.AreaID,
		Title:       d.Title,
		Description: d.Description,
		TimeStart:   d.TimeStart,
		TimeEnd:     d.TimeEnd,
		TurnOn:      d.TurnOn,
		Cycle:       d.Cycle,
		Status:      domain.EquipmentStatus(d.Status),
	}
}

// ---------------------------------------------------------------------------
// Homes
// ---------------------------------------------------------------------------

func (r *HomeRepository) CreateHome(ctx context.Context, h *domain.Home) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := homeDoc{
		AccountID: h.AccountID,
		HomeName:  h.HomeName,
		Location:  h.Location,
		CreatedAt: h.CreatedAt.Unix(),
	}

	res, err := r.homes.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert home: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *HomeRepository) FindHomeByID(ctx context.Context, id, accountID string) (*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHomeNotFound
	}

	filter := bson.M{"_id": oid, "deleted": false}
	if accountID != "" {
		filter["account_id"] = accountID
	}

	var doc homeDoc
	if err := r.homes.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHomeNotFound
		}
		return nil, fmt.Errorf("find home: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HomeRepository) ListHomes(ctx context.Context, accountID string) ([]*domain.Home, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.homes.Find(ctx, bson.M{"account_id": accountID, "deleted": false})
	if err != nil {
		return nil, fmt.Errorf("list homes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Home
	for cur.Next(ctx) {
		var doc homeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode home: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *HomeRepository) UpdateHome(ctx context.Context, h *domain.Home) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(h.ID)
	if err != nil {
		return domain.ErrHomeNotFound
	}

	update := bson.M{"$set": bson.M{
		"home_name": h.HomeName,
		"location":  h.Location,
	}}

	res, err := r.homes.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update home: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHomeNotFound
	}
	return nil
}

// DeleteHome soft-deletes the home and removes its areas and equipment.
func (r *HomeRepository) DeleteHome(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHomeNotFound
	}

	res, err := r.homes.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"deleted": true}})
	if err != nil {
		return fmt.Errorf("delete home: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHomeNotFound
	}

	if _, err := r.areas.DeleteMany(ctx, bson.M{"home_id": id}); err != nil {
		return fmt.Errorf("delete home areas: %w", err)
	}
	if _, err := r.equipment.DeleteMany(ctx, bson.M{"home_id": id}); err != nil {
		return fmt.Errorf("delete home equipment: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Areas
// ---------------------------------------------------------------------------

func (r *HomeRepository) CreateArea(ctx context.Context, a *domain.Area) (*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := areaDoc{HomeID: a.HomeID, Name: a.Name}
	res, err := r.areas.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert area: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *HomeRepository) FindAreaByID(ctx context.Context, id string) (*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAreaNotFound
	}

	var doc areaDoc
	if err := r.areas.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAreaNotFound
		}
		return nil, fmt.Errorf("find area: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HomeRepository) ListAreas(ctx context.Context, homeID string) ([]*domain.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.areas.Find(ctx, bson.M{"home_id": homeID})
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Area
	for cur.Next(ctx) {
		var doc areaDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode area: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *HomeRepository) UpdateArea(ctx context.Context, a *domain.Area) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAreaNotFound
	}

	res, err := r.areas.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"name": a.Name}})
	if err != nil {
		return fmt.Errorf("update area: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAreaNotFound
	}
	return nil
}

func (r *HomeRepository) DeleteArea(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAreaNotFound
	}

	res, err := r.areas.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete area: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAreaNotFound
	}

	// Orphaned equipment keeps its home but loses the area grouping.
	_, err = r.equipment.UpdateMany(ctx, bson.M{"area_id": id}, bson.M{"$unset": bson.M{"area_id": ""}})
	return err
}

// ---------------------------------------------------------------------------
// Equipment
// ---------------------------------------------------------------------------

func (r *HomeRepository) CreateEquipment(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := equipmentDoc{
		CategoryID:  e.CategoryID,
		HomeID:      e.HomeID,
		AreaID:      e.AreaID,
		Title:       e.Title,
		Description: e.Description,
		TimeStart:   e.TimeStart,
		TimeEnd:     e.TimeEnd,
		TurnOn:      e.TurnOn,
		Cycle:       e.Cycle,
		Status:      string(e.Status),
	}

	res, err := r.equipment.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert equipment: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *HomeRepository) FindEquipmentByID(ctx context.Context, id string) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEquipmentNotFound
	}

	var doc equipmentDoc
	if err := r.equipment.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("find equipment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HomeRepository) ListEquipment(ctx context.Context, homeID string) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.equipment.Find(ctx, bson.M{"home_id": homeID})
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Equipment
	for cur.Next(ctx) {
		var doc equipmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode equipment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *HomeRepository) UpdateEquipment(ctx context.Context, e *domain.Equipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return domain.ErrEquipmentNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       e.Title,
		"description": e.Description,
		"time_start":  e.TimeStart,
		"time_end":    e.TimeEnd,
		"turn_on":     e.TurnOn,
		"cycle":       e.Cycle,
		"status":      string(e.Status),
	}}

	res, err := r.equipment.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

func (r *HomeRepository) DeleteEquipment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEquipmentNotFound
	}

	res, err := r.equipment.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete equipment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEquipmentNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used by list queries.
func (r *HomeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.homes.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "account_id", Value: 1}},
	}); err != nil {
		return err
	}
	if _, err := r.areas.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "home_id", Value: 1}},
	}); err != nil {
		return err
	}
	_, err := r.equipment.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "home_id", Value: 1}},
	})
	return err
}
