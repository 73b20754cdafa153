package client

import (
	"context"

	"github.com/homelink/smarthome-system/internal/core/domain"
	"github.com/homelink/smarthome-system/internal/core/ports"
)

const getHomeDocument = `
query GetHome {
	getHome {
		id
		accountId
		homeName
		location
		deleted
		createdAt
		area {
			id
			homeId
			name
			equipment {
				id
				categoryId
				homeId
				areaId
				title
				description
				timeStart
				timeEnd
				turnOn
				cycle
				status
			}
		}
	}
}`

const createHomeDocument = `
mutation CreateHome($home: HomeInput!) {
	createHome(home: $home) {
		id
		accountId
		homeName
		location
		deleted
		createdAt
	}
}`

const editHomeDocument = `
mutation EditHome($home: HomeInput!) {
	editHome(home: $home) {
		id
		accountId
		homeName
		location
		deleted
		createdAt
	}
}`

const deleteHomeDocument = `
mutation DeleteHome($home: HomeInput!) {
	deleteHome(home: $home) {
		code
		msg
	}
}`

const createAreaDocument = `
mutation CreateArea($input: CreateArea!) {
	createArea(area: $input) {
		id
		homeId
		name
	}
}`

const editAreaDocument = `
mutation EditArea($area: AreaInput!) {
	editArea(area: $area) {
		id
		homeId
		name
	}
}`

const deleteAreaDocument = `
mutation DeleteArea($area: AreaInput!) {
	deleteArea(area: $area) {
		code
		msg
	}
}`

const createEquipmentDocument = `
mutation CreateEquipment($equipment: CreateEquipment!) {
	createEquipment(equipment: $equipment) {
		id
		categoryId
		homeId
		areaId
		title
		description
		timeStart
		timeEnd
		turnOn
		cycle
		status
	}
}`

const deleteEquipmentDocument = `
mutation DeleteEquipment($equipment: EquipmentInput!) {
	deleteEquipment(equipment: $equipment) {
		code
		msg
	}
}`

const toggleDeviceDocument = `
mutation ToggleDevice($device: DeviceInput!) {
	toggleDevice(device: $device)
}`

// GetHomes fetches the account's homes with areas and equipment populated.
func (g *Gateway) GetHomes(ctx context.Context) ([]*domain.Home, error) {
	var homes []*domain.Home
	if err := g.query(ctx, "getHome", getHomeDocument, nil, &homes); err != nil {
		return nil, err
	}
	return homes, nil
}

// CreateHome creates a home owned by the authenticated account.
func (g *Gateway) CreateHome(ctx context.Context, homeName, location string) (*domain.Home, error) {
	var home domain.Home
	err := g.query(ctx, "createHome", createHomeDocument, map[string]any{
		"home": map[string]any{"homeName": homeName, "location": location},
	}, &home)
	if err != nil {
		return nil, err
	}
	return &home, nil
}

// EditHome updates a home's name and location.
func (g *Gateway) EditHome(ctx context.Context, homeID, homeName, location string) (*domain.Home, error) {
	var home domain.Home
	err := g.query(ctx, "editHome", editHomeDocument, map[string]any{
		"home": map[string]any{"id": homeID, "homeName": homeName, "location": location},
	}, &home)
	if err != nil {
		return nil, err
	}
	return &home, nil
}

// DeleteHome removes a home and everything in it.
func (g *Gateway) DeleteHome(ctx context.Context, homeID string) (*ports.DeleteResult, error) {
	var result ports.DeleteResult
	err := g.query(ctx, "deleteHome", deleteHomeDocument, map[string]any{
		"home": map[string]any{"id": homeID},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateArea adds an area to a home.
func (g *Gateway) CreateArea(ctx context.Context, homeID, name string) (*domain.Area, error) {
	var area domain.Area
	err := g.query(ctx, "createArea", createAreaDocument, map[string]any{
		"input": map[string]any{"homeId": homeID, "name": name},
	}, &area)
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// EditArea renames an area.
func (g *Gateway) EditArea(ctx context.Context, areaID, name string) (*domain.Area, error) {
	var area domain.Area
	err := g.query(ctx, "editArea", editAreaDocument, map[string]any{
		"area": map[string]any{"id": areaID, "name": name},
	}, &area)
	if err != nil {
		return nil, err
	}
	return &area, nil
}

// DeleteArea removes an area; its equipment is detached, not deleted.
func (g *Gateway) DeleteArea(ctx context.Context, areaID string) (*ports.DeleteResult, error) {
	var result ports.DeleteResult
	err := g.query(ctx, "deleteArea", deleteAreaDocument, map[string]any{
		"area": map[string]any{"id": areaID},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// EquipmentDraft carries the fields for creating a device.
type EquipmentDraft struct {
	CategoryID  int    `json:"categoryId"`
	HomeID      string `json:"homeId"`
	AreaID      string `json:"areaId,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TimeStart   string `json:"timeStart,omitempty"`
	TimeEnd     string `json:"timeEnd,omitempty"`
	Cycle       int    `json:"cycle,omitempty"`
	Status      string `json:"status,omitempty"`
}

// CreateEquipment registers a new device.
func (g *Gateway) CreateEquipment(ctx context.Context, draft EquipmentDraft) (*domain.Equipment, error) {
	var equipment domain.Equipment
	err := g.query(ctx, "createEquipment", createEquipmentDocument, map[string]any{
		"equipment": draft,
	}, &equipment)
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

// DeleteEquipment removes a device.
func (g *Gateway) DeleteEquipment(ctx context.Context, equipmentID string) (*ports.DeleteResult, error) {
	var result ports.DeleteResult
	err := g.query(ctx, "deleteEquipment", deleteEquipmentDocument, map[string]any{
		"equipment": map[string]any{"id": equipmentID},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ToggleResult makes the optimistic-update contract explicit: the caller
// flips its local view before the call resolves, and PreviousState is the
// value to restore when Applied is false.
type ToggleResult struct {
	Applied       bool
	PreviousState bool
}

// ToggleDevice commands a device on or off. The equipment's local TurnOn
// field is updated optimistically before the network call and reverted on
// failure; the returned ToggleResult reports what happened either way.
func (g *Gateway) ToggleDevice(ctx context.Context, equipment *domain.Equipment, turnOn bool) (ToggleResult, error) {
	previous := equipment.TurnOn
	equipment.TurnOn = turnOn

	var applied bool
	err := g.query(ctx, "toggleDevice", toggleDeviceDocument, map[string]any{
		"device": map[string]any{"id": equipment.ID, "turnOn": turnOn},
	}, &applied)
	if err != nil {
		equipment.TurnOn = previous
		return ToggleResult{Applied: false, PreviousState: previous}, err
	}

	equipment.TurnOn = applied
	return ToggleResult{Applied: true, PreviousState: previous}, nil
}
