package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/mrjordantanner/logistics-app-server/internal/auth"
	deliverysvc "github.com/mrjordantanner/logistics-app-server/internal/deliveries"
	itemsvc "github.com/mrjordantanner/logistics-app-server/internal/items"
	locationsvc "github.com/mrjordantanner/logistics-app-server/internal/locations"
	ordersvc "github.com/mrjordantanner/logistics-app-server/internal/orders"
	usersvc "github.com/mrjordantanner/logistics-app-server/internal/users"
	pkgAuth "github.com/mrjordantanner/logistics-app-server/pkg/auth"
	"github.com/mrjordantanner/logistics-app-server/pkg/config"
	"github.com/mrjordantanner/logistics-app-server/pkg/enums"
	pkgerrors "github.com/mrjordantanner/logistics-app-server/pkg/errors"
	"github.com/mrjordantanner/logistics-app-server/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.LoginResult, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password")
}

type stubUserService struct{}

func (stubUserService) CreateUser(ctx context.Context, input usersvc.CreateUserInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: 1, Name: input.Name, Email: input.Email}, nil
}

func (stubUserService) GetUser(ctx context.Context, id uint) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (stubUserService) ListUsers(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

func (stubUserService) UpdateUser(ctx context.Context, id uint, input usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

func (stubUserService) DeleteUser(ctx context.Context, id uint) error {
	return nil
}

func (stubUserService) ListDrivers(ctx context.Context) ([]usersvc.UserDTO, error) {
	return []usersvc.UserDTO{}, nil
}

func (stubUserService) UpdateDriverStatus(ctx context.Context, id uint, status enums.DriverStatus, postalCode *string) (*usersvc.UserDTO, error) {
	return &usersvc.UserDTO{ID: id}, nil
}

type stubItemService struct{}

func (stubItemService) CreateItems(ctx context.Context, inputs []itemsvc.CreateItemInput) ([]itemsvc.ItemDTO, error) {
	return []itemsvc.ItemDTO{}, nil
}

func (stubItemService) GetItem(ctx context.Context, id uint) (*itemsvc.ItemDTO, error) {
	return &itemsvc.ItemDTO{ID: id}, nil
}

func (stubItemService) GetItemByName(ctx context.Context, name string) (*itemsvc.ItemDTO, error) {
	return &itemsvc.ItemDTO{Name: name}, nil
}

func (stubItemService) ListItems(ctx context.Context) ([]itemsvc.ItemDTO, error) {
	return []itemsvc.ItemDTO{}, nil
}

func (stubItemService) UpdateItem(ctx context.Context, id uint, input itemsvc.UpdateItemInput) (*itemsvc.ItemDTO, error) {
	return &itemsvc.ItemDTO{ID: id}, nil
}

func (stubItemService) DeleteItem(ctx context.Context, id uint) error {
	return nil
}

type stubLocationService struct{}

func (stubLocationService) CreateLocation(ctx context.Context, input locationsvc.CreateLocationInput) (*locationsvc.LocationDTO, error) {
	return &locationsvc.LocationDTO{ID: 1, Name: input.Name}, nil
}

func (stubLocationService) GetLocation(ctx context.Context, id uint) (*locationsvc.LocationDTO, error) {
	return &locationsvc.LocationDTO{ID: id}, nil
}

func (stubLocationService) ListLocations(ctx context.Context) ([]locationsvc.LocationDTO, error) {
	return []locationsvc.LocationDTO{}, nil
}

func (stubLocationService) UpdateLocation(ctx context.Context, id uint, input locationsvc.UpdateLocationInput) (*locationsvc.LocationDTO, error) {
	return &locationsvc.LocationDTO{ID: id}, nil
}

func (stubLocationService) DeleteLocation(ctx context.Context, id uint) error {
	return nil
}

type stubOrderService struct{}

func (stubOrderService) CreateOrderWithItems(ctx context.Context, input ordersvc.CreateOrderInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: 1}, nil
}

func (stubOrderService) GetOrder(ctx context.Context, id uint) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: id}, nil
}

func (stubOrderService) ListOrders(ctx context.Context) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func (stubOrderService) UpdateOrder(ctx context.Context, id uint, input ordersvc.UpdateOrderInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: id}, nil
}

func (stubOrderService) DeleteOrder(ctx context.Context, id uint) error {
	return nil
}

type stubDeliveryService struct{}

func (stubDeliveryService) CreateDelivery(ctx context.Context, input deliverysvc.CreateDeliveryInput) (*deliverysvc.DeliveryDTO, error) {
	return &deliverysvc.DeliveryDTO{ID: 1}, nil
}

func (stubDeliveryService) GetDelivery(ctx context.Context, id uint) (*deliverysvc.DeliveryDTO, error) {
	return &deliverysvc.DeliveryDTO{ID: id}, nil
}

func (stubDeliveryService) ListDeliveries(ctx context.Context) ([]deliverysvc.DeliveryDTO, error) {
	return []deliverysvc.DeliveryDTO{}, nil
}

func (stubDeliveryService) UpdateDelivery(ctx context.Context, id uint, input deliverysvc.UpdateDeliveryInput) (*deliverysvc.DeliveryDTO, error) {
	return &deliverysvc.DeliveryDTO{ID: id}, nil
}

func (stubDeliveryService) DeleteDelivery(ctx context.Context, id uint) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		nil,
		nil,
		Services{
			Auth:       stubAuthService{},
			Users:      stubUserService{},
			Items:      stubItemService{},
			Locations:  stubLocationService{},
			Orders:     stubOrderService{},
			Deliveries: stubDeliveryService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: 42,
		Name:   "Route Tester",
		Email:  "router@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
}

func TestHealthReadyChecksDependencies(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for readiness got %d", resp.Code)
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{"/api/user", "/api/item", "/api/location", "/api/order", "/api/delivery", "/api/driver"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesSucceedWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.UserRoleAdmin)
	for _, path := range []string{"/api/user", "/api/item", "/api/location", "/api/order", "/api/delivery", "/api/driver"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestRegistrationIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"name":"New Driver","email":"new@example.com","phone":"5551234567","password":"supersecret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/user", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for registration got %d", resp.Code)
	}
}

func TestLoginRejectsBadJSON(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestLoginSurfacesUnauthorized(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"email":"nobody@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials got %d", resp.Code)
	}
}

func TestExpiredTokenIsRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: 42,
		Name:   "Expired",
		Email:  "expired@example.com",
		Role:   enums.UserRoleDriver,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token got %d", resp.Code)
	}
}

func TestDeleteReturnsNoContent(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodDelete, "/api/order/7", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for delete got %d", resp.Code)
	}
}
