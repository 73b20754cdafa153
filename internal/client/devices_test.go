package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homelink/smarthome-system/internal/core/domain"
)

func TestGetHomes_DecodesNestedStructure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"getHome":[{
			"id":"h1","accountId":"acc_1","homeName":"Main House","location":"Hanoi",
			"area":[{"id":"a1","homeId":"h1","name":"Living Room","equipment":[{
				"id":"e1","categoryId":2,"homeId":"h1","areaId":"a1",
				"title":"Ceiling Light","turnOn":true,"status":"active"}]}]}]}}`))
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)

	homes, err := g.GetHomes(context.Background())
	if err != nil {
		t.Fatalf("get homes: %v", err)
	}
	if len(homes) != 1 {
		t.Fatalf("expected one home, got %d", len(homes))
	}
	home := homes[0]
	if home.HomeName != "Main House" || len(home.Area) != 1 {
		t.Fatalf("unexpected home: %+v", home)
	}
	eq := home.Area[0].Equipment[0]
	if eq.Title != "Ceiling Light" || !eq.TurnOn || eq.Status != domain.StatusActive {
		t.Fatalf("unexpected equipment: %+v", eq)
	}
}

func TestToggleDevice_OptimisticApply(t *testing.T) {
	var sentVars map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]any `json:"variables"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		sentVars = req.Variables
		w.Write([]byte(`{"data":{"toggleDevice":true}}`))
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)
	equipment := &domain.Equipment{ID: "e1", TurnOn: false, Status: domain.StatusActive}

	result, err := g.ToggleDevice(context.Background(), equipment, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !result.Applied {
		t.Fatalf("expected applied result")
	}
	if result.PreviousState {
		t.Fatalf("previous state should be false")
	}
	if !equipment.TurnOn {
		t.Fatalf("equipment state should be on after successful toggle")
	}

	device, _ := sentVars["device"].(map[string]any)
	if device["id"] != "e1" || device["turnOn"] != true {
		t.Fatalf("unexpected variables sent: %v", sentVars)
	}
}

func TestToggleDevice_RevertOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"device unavailable"}]}`))
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)
	equipment := &domain.Equipment{ID: "e1", TurnOn: false, Status: domain.StatusMaintenance}

	result, err := g.ToggleDevice(context.Background(), equipment, true)
	if err == nil {
		t.Fatalf("expected toggle to fail")
	}
	if result.Applied {
		t.Fatalf("failed toggle must not report applied")
	}
	if result.PreviousState {
		t.Fatalf("previous state should be false")
	}
	if equipment.TurnOn {
		t.Fatalf("equipment state must be reverted after failure")
	}
}

func TestToggleDevice_RevertOn401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)
	if err := g.Session().SetSession("abc123", nil); err != nil {
		t.Fatalf("set session: %v", err)
	}
	equipment := &domain.Equipment{ID: "e1", TurnOn: false}

	_, err := g.ToggleDevice(context.Background(), equipment, true)
	if !IsAuthExpired(err) {
		t.Fatalf("expected AuthExpiredError, got %v", err)
	}
	if equipment.TurnOn {
		t.Fatalf("equipment state must be reverted after auth failure")
	}
	if g.Session().IsLoggedIn() {
		t.Fatalf("session must be cleared")
	}
}

func TestDeleteEquipment_ReturnsConfirmation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"deleteEquipment":{"code":200,"msg":"equipment deleted"}}}`))
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)

	result, err := g.DeleteEquipment(context.Background(), "e1")
	if err != nil {
		t.Fatalf("delete equipment: %v", err)
	}
	if result.Code != 200 || result.Msg != "equipment deleted" {
		t.Fatalf("unexpected confirmation: %+v", result)
	}
}
