package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	usersvc "github.com/mrjordantanner/logistics-app-server/internal/users"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
)

type stubUserService struct {
	createFn func(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error)
	updateFn func(ctx context.Context, id uint, input usersvc.UpdateUserInput) (*usersvc.UserDTO, error)
}

func (s stubUserService) CreateUser(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &usersvc.UserDTO{ID: 1}, nil
}

func (s stubUserService) GetUser(ctx context.Context, id uint) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (s stubUserService) ListUsers(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

func (s stubUserService) UpdateUser(ctx context.Context, id uint, input usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, input)
	}
	return &usersvc.UserDTO{ID: id}, nil
}

func (s stubUserService) DeleteUser(ctx context.Context, id uint) error {
	return nil
}

func (s stubUserService) ListDrivers(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

func (s stubUserService) UpdateDriverStatus(ctx context.Context, id uint, status enums.DriverStatus, postalCode *string) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id, Role: enums.UserRoleDriver, Driver: &usersvc.DriverDTO{Status: status}}, nil
}

func TestCreateUserSuccess(t *testing.T) {
	var captured usersvc.CreateUserInput
	svc := stubUserService{
		createFn: func(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
			captured = input
			return &usersvc.UserDTO{ID: 7, Name: input.Name, Email: input.Email}, nil
		},
	}
	handler := CreateUser(svc, nil)

	body := []byte(`{
		"name": "Dana Driver",
		"email": "dana@example.com",
		"phone": "5550001111",
		"password": "supersecret",
		"role": "driver"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if captured.Email != "dana@example.com" {
		t.Fatalf("unexpected captured email: %s", captured.Email)
	}

	var envelope struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != 7 {
		t.Fatalf("expected id 7 got %d", envelope.Data.ID)
	}
}

func TestCreateUserRejectsMissingFields(t *testing.T) {
	handler := CreateUser(stubUserService{}, nil)

	body := []byte(`{"email": "nobody@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code: %s", envelope.Error.Code)
	}
	if _, ok := envelope.Error.Details["name"]; !ok {
		t.Fatalf("expected name detail, got %v", envelope.Error.Details)
	}
}

func TestCreateUserPropagatesConflict(t *testing.T) {
	svc := stubUserService{
		createFn: func(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		},
	}
	handler := CreateUser(svc, nil)

	body := []byte(`{
		"name": "Dana Driver",
		"email": "dana@example.com",
		"phone": "5550001111",
		"password": "supersecret"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}
}

func TestUpdateDriverStatusRejectsUnknownStatus(t *testing.T) {
	router := newParamRouter("/api/driver/{id}/status", http.MethodPut, UpdateDriverStatus(stubUserService{}, nil))

	body := []byte(`{"status": "parked"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/driver/3/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestUpdateDriverStatusAcceptsKnownStatus(t *testing.T) {
	router := newParamRouter("/api/driver/{id}/status", http.MethodPut, UpdateDriverStatus(stubUserService{}, nil))

	body := []byte(`{"status": "available", "current_postal_code": "73102"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/driver/3/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
