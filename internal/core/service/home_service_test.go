package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

type stubHomeRepo struct {
	homes     map[string]*domain.Home
	areas     map[string]*domain.Area
	equipment map[string]*domain.Equipment
	nextID    int
}

func newStubHomeRepo() *stubHomeRepo {
	return &stubHomeRepo{
		homes:     make(map[string]*domain.Home),
		areas:     make(map[string]*domain.Area),
		equipment: make(map[string]*domain.Equipment),
	}
}

func (r *stubHomeRepo) id() string {
	r.nextID++
	return fmt.Sprintf("id_%d", r.nextID)
}

func (r *stubHomeRepo) CreateHome(_ context.Context, h *domain.Home) (*domain.Home, error) {
	clone := *h
	clone.ID = r.id()
	r.homes[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubHomeRepo) FindHomeByID(_ context.Context, id, accountID string) (*domain.Home, error) {
	h, ok := r.homes[id]
	if !ok || h.Deleted {
		return nil, domain.ErrHomeNotFound
	}
	if accountID != "" && h.AccountID != accountID {
		return nil, domain.ErrHomeNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *stubHomeRepo) ListHomes(_ context.Context, accountID string) ([]*domain.Home, error) {
	var out []*domain.Home
	for _, h := range r.homes {
		if h.Deleted || h.AccountID != accountID {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubHomeRepo) UpdateHome(_ context.Context, h *domain.Home) error {
	if _, ok := r.homes[h.ID]; !ok {
		return domain.ErrHomeNotFound
	}
	clone := *h
	r.homes[h.ID] = &clone
	return nil
}

func (r *stubHomeRepo) DeleteHome(_ context.Context, id string) error {
	h, ok := r.homes[id]
	if !ok {
		return domain.ErrHomeNotFound
	}
	h.Deleted = true
	return nil
}

func (r *stubHomeRepo) CreateArea(_ context.Context, a *domain.Area) (*domain.Area, error) {
	clone := *a
	clone.ID = r.id()
	r.areas[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubHomeRepo) FindAreaByID(_ context.Context, id string) (*domain.Area, error) {
	a, ok := r.areas[id]
	if !ok {
		return nil, domain.ErrAreaNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubHomeRepo) ListAreas(_ context.Context, homeID string) ([]*domain.Area, error) {
	var out []*domain.Area
	for _, a := range r.areas {
		if a.HomeID == homeID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubHomeRepo) UpdateArea(_ context.Context, a *domain.Area) error {
	if _, ok := r.areas[a.ID]; !ok {
		return domain.ErrAreaNotFound
	}
	clone := *a
	r.areas[a.ID] = &clone
	return nil
}

func (r *stubHomeRepo) DeleteArea(_ context.Context, id string) error {
	if _, ok := r.areas[id]; !ok {
		return domain.ErrAreaNotFound
	}
	delete(r.areas, id)
	// Equipment survives its area; the reference is unset.
	for _, e := range r.equipment {
		if e.AreaID == id {
			e.AreaID = ""
		}
	}
	return nil
}

func (r *stubHomeRepo) CreateEquipment(_ context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	clone := *e
	clone.ID = r.id()
	r.equipment[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubHomeRepo) FindEquipmentByID(_ context.Context, id string) (*domain.Equipment, error) {
	e, ok := r.equipment[id]
	if !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubHomeRepo) ListEquipment(_ context.Context, homeID string) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, e := range r.equipment {
		if e.HomeID == homeID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubHomeRepo) UpdateEquipment(_ context.Context, e *domain.Equipment) error {
	if _, ok := r.equipment[e.ID]; !ok {
		return domain.ErrEquipmentNotFound
	}
	clone := *e
	r.equipment[e.ID] = &clone
	return nil
}

func (r *stubHomeRepo) DeleteEquipment(_ context.Context, id string) error {
	if _, ok := r.equipment[id]; !ok {
		return domain.ErrEquipmentNotFound
	}
	delete(r.equipment, id)
	return nil
}

func newHomeServiceForTest(repo ports.HomeRepository) *HomeService {
	return NewHomeService(repo, zerolog.Nop())
}

// seedHome creates a home with one area and one active device for accountID.
func seedHome(t *testing.T, svc *HomeService, accountID string) (homeID, areaID, equipmentID string) {
	t.Helper()

	home, err := svc.CreateHome(context.Background(), accountID, ports.HomeInput{HomeName: "My Home", Location: "Hanoi"})
	if err != nil {
		t.Fatalf("create home: %v", err)
	}
	area, err := svc.CreateArea(context.Background(), accountID, ports.AreaInput{HomeID: home.ID, Name: "Living Room"})
	if err != nil {
		t.Fatalf("create area: %v", err)
	}
	equipment, err := svc.CreateEquipment(context.Background(), accountID, ports.EquipmentInput{
		CategoryID: 1,
		HomeID:     home.ID,
		AreaID:     area.ID,
		Title:      "Ceiling Lamp",
	})
	if err != nil {
		t.Fatalf("create equipment: %v", err)
	}
	return home.ID, area.ID, equipment.ID
}

func TestHomeService_GetHomes_PopulatesAreasAndEquipment(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	_, areaID, equipmentID := seedHome(t, svc, "acc_1")

	homes, err := svc.GetHomes(context.Background(), "acc_1")
	if err != nil {
		t.Fatalf("get homes: %v", err)
	}
	if len(homes) != 1 {
		t.Fatalf("expected 1 home, got %d", len(homes))
	}
	if len(homes[0].Area) != 1 || homes[0].Area[0].ID != areaID {
		t.Fatalf("expected area %s, got %+v", areaID, homes[0].Area)
	}
	equipment := homes[0].Area[0].Equipment
	if len(equipment) != 1 || equipment[0].ID != equipmentID {
		t.Fatalf("expected equipment %s, got %+v", equipmentID, equipment)
	}
	if equipment[0].Status != domain.StatusActive {
		t.Fatalf("expected default status active, got %s", equipment[0].Status)
	}
}

func TestHomeService_GetHomes_ScopedToAccount(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	seedHome(t, svc, "acc_1")

	homes, err := svc.GetHomes(context.Background(), "acc_2")
	if err != nil {
		t.Fatalf("get homes: %v", err)
	}
	if len(homes) != 0 {
		t.Fatalf("expected no homes for other account, got %d", len(homes))
	}
}

func TestHomeService_GetHomes_OrphanedEquipmentListedUnassigned(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	_, areaID, equipmentID := seedHome(t, svc, "acc_1")

	if _, err := svc.DeleteArea(context.Background(), "acc_1", areaID); err != nil {
		t.Fatalf("delete area: %v", err)
	}

	homes, err := svc.GetHomes(context.Background(), "acc_1")
	if err != nil {
		t.Fatalf("get homes: %v", err)
	}
	if len(homes) != 1 || len(homes[0].Area) != 1 {
		t.Fatalf("expected one synthetic area, got %+v", homes)
	}
	grouping := homes[0].Area[0]
	if grouping.Name != "Unassigned" || grouping.ID != "" {
		t.Fatalf("expected unassigned grouping, got %+v", grouping)
	}
	if len(grouping.Equipment) != 1 || grouping.Equipment[0].ID != equipmentID {
		t.Fatalf("equipment lost after area delete: %+v", grouping.Equipment)
	}

	// Still addressable by ID.
	if _, err := svc.ToggleDevice(context.Background(), "acc_1", equipmentID, true); err != nil {
		t.Fatalf("toggle after area delete: %v", err)
	}
}

func TestHomeService_EditHome_OtherAccountRejected(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	homeID, _, _ := seedHome(t, svc, "acc_1")

	if _, err := svc.EditHome(context.Background(), "acc_2", ports.HomeInput{ID: homeID, HomeName: "Stolen"}); err != domain.ErrHomeNotFound {
		t.Fatalf("expected ErrHomeNotFound for foreign home, got %v", err)
	}
}

func TestHomeService_DeleteHome(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	homeID, _, _ := seedHome(t, svc, "acc_1")

	result, err := svc.DeleteHome(context.Background(), "acc_1", homeID)
	if err != nil {
		t.Fatalf("delete home: %v", err)
	}
	if result.Code != 200 {
		t.Fatalf("expected code 200, got %d", result.Code)
	}

	homes, _ := svc.GetHomes(context.Background(), "acc_1")
	if len(homes) != 0 {
		t.Fatalf("expected home to be gone, got %d", len(homes))
	}
}

func TestHomeService_ToggleDevice(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	_, _, equipmentID := seedHome(t, svc, "acc_1")

	applied, err := svc.ToggleDevice(context.Background(), "acc_1", equipmentID, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !applied {
		t.Fatalf("expected applied=true")
	}

	stored, _ := repo.FindEquipmentByID(context.Background(), equipmentID)
	if !stored.TurnOn {
		t.Fatalf("expected device persisted as on")
	}
}

func TestHomeService_ToggleDevice_Unavailable(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	_, _, equipmentID := seedHome(t, svc, "acc_1")

	stored, _ := repo.FindEquipmentByID(context.Background(), equipmentID)
	stored.Status = domain.StatusMaintenance
	_ = repo.UpdateEquipment(context.Background(), stored)

	if _, err := svc.ToggleDevice(context.Background(), "acc_1", equipmentID, true); err != domain.ErrDeviceUnavailable {
		t.Fatalf("expected ErrDeviceUnavailable, got %v", err)
	}
}

func TestHomeService_ToggleDevice_OtherAccountRejected(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	_, _, equipmentID := seedHome(t, svc, "acc_1")

	if _, err := svc.ToggleDevice(context.Background(), "acc_2", equipmentID, true); err != domain.ErrHomeNotFound {
		t.Fatalf("expected ErrHomeNotFound for foreign device, got %v", err)
	}
}

func TestHomeService_CreateArea_RequiresOwnedHome(t *testing.T) {
	repo := newStubHomeRepo()
	svc := newHomeServiceForTest(repo)
	homeID, _, _ := seedHome(t, svc, "acc_1")

	if _, err := svc.CreateArea(context.Background(), "acc_2", ports.AreaInput{HomeID: homeID, Name: "Kitchen"}); err != domain.ErrHomeNotFound {
		t.Fatalf("expected ErrHomeNotFound, got %v", err)
	}
}
