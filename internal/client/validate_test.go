package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogin_PreflightValidationStopsBeforeWire(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"data":{"LoginAccount":{}}}`))
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)

	_, err := g.Login(context.Background(), "not-an-email", "")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if requests != 0 {
		t.Fatalf("invalid credentials must not reach the backend, got %d requests", requests)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message: %v", err)
	}
	if !strings.Contains(err.Error(), "password is required") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRegister_PreflightValidationStopsBeforeWire(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	g, _ := newGatewayForTest(t, srv.URL)

	err := g.Register(context.Background(), RegisterInput{
		FullName: "Alice",
		Email:    "alice@example.com",
		Password: "short",
	})
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if requests != 0 {
		t.Fatalf("invalid input must not reach the backend, got %d requests", requests)
	}
	if !strings.Contains(err.Error(), "password must be at least 8 characters") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestChangePassword_PreflightValidation(t *testing.T) {
	g, _ := newGatewayForTest(t, "http://127.0.0.1:0")

	err := g.ChangePassword(context.Background(), "", "short")
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
