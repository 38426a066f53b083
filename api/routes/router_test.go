package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/internal/auth"
	"github.com/jpcardenasg/esencia-backend/internal/cart"
	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/custom"
	"github.com/jpcardenasg/esencia-backend/internal/invoices"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	pkgAuth "github.com/jpcardenasg/esencia-backend/pkg/auth"
	"github.com/jpcardenasg/esencia-backend/pkg/config"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	"github.com/jpcardenasg/esencia-backend/pkg/enums"
	"github.com/jpcardenasg/esencia-backend/pkg/logger"
	"github.com/jpcardenasg/esencia-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterInput) (*auth.AuthResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAuthService) Login(context.Context, auth.LoginInput) (*auth.AuthResult, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubUsersService struct{}

func (stubUsersService) GetUser(context.Context, uuid.UUID) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUsersService) ListUsers(context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}

func (stubUsersService) UpdateUser(context.Context, uuid.UUID, users.UpdateUserInput) (*users.UserDTO, error) {
	return &users.UserDTO{}, nil
}

func (stubUsersService) DeleteUser(context.Context, uuid.UUID) error { return nil }

type stubPerfumeService struct{}

func (stubPerfumeService) CreatePerfume(context.Context, catalog.CreatePerfumeInput) (*catalog.PerfumeDTO, error) {
	return &catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) UpdatePerfume(context.Context, uuid.UUID, catalog.UpdatePerfumeInput) (*catalog.PerfumeDTO, error) {
	return &catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) DeletePerfume(context.Context, uuid.UUID) error { return nil }

func (stubPerfumeService) GetPerfume(context.Context, uuid.UUID) (*catalog.PerfumeDTO, error) {
	return &catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) ListPerfumes(context.Context) ([]catalog.PerfumeDTO, error) {
	return []catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) ListByCategory(context.Context, uuid.UUID) ([]catalog.PerfumeDTO, error) {
	return []catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) SearchPerfumes(context.Context, string) ([]catalog.PerfumeDTO, error) {
	return []catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) UpdateCategories(context.Context, uuid.UUID, []uuid.UUID) (*catalog.PerfumeDTO, error) {
	return &catalog.PerfumeDTO{}, nil
}

func (stubPerfumeService) UpdateNotes(context.Context, uuid.UUID, []uuid.UUID) (*catalog.PerfumeDTO, error) {
	return &catalog.PerfumeDTO{}, nil
}

type stubCategoryService struct{}

func (stubCategoryService) CreateCategory(context.Context, string) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCategoryService) UpdateCategory(context.Context, uuid.UUID, string) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCategoryService) DeleteCategory(context.Context, uuid.UUID) error { return nil }

func (stubCategoryService) GetCategory(context.Context, uuid.UUID) (*catalog.CategoryDTO, error) {
	return &catalog.CategoryDTO{}, nil
}

func (stubCategoryService) ListCategories(context.Context) ([]catalog.CategoryDTO, error) {
	return []catalog.CategoryDTO{}, nil
}

type stubNoteService struct{}

func (stubNoteService) CreateNote(context.Context, string, string) (*catalog.NoteDTO, error) {
	return &catalog.NoteDTO{}, nil
}

func (stubNoteService) UpdateNote(context.Context, uuid.UUID, catalog.UpdateNoteInput) (*catalog.NoteDTO, error) {
	return &catalog.NoteDTO{}, nil
}

func (stubNoteService) DeleteNote(context.Context, uuid.UUID) error { return nil }

func (stubNoteService) GetNote(context.Context, uuid.UUID) (*catalog.NoteDTO, error) {
	return &catalog.NoteDTO{}, nil
}

func (stubNoteService) ListNotes(context.Context) ([]catalog.NoteDTO, error) {
	return []catalog.NoteDTO{}, nil
}

type stubCartService struct{}

func (stubCartService) ActiveCart(context.Context, uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (stubCartService) AddItem(context.Context, uuid.UUID, uuid.UUID, int) (*cart.CartItemDTO, error) {
	return &cart.CartItemDTO{}, nil
}

func (stubCartService) RemoveItem(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (stubCartService) UpdateItemQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*cart.CartItemDTO, error) {
	return &cart.CartItemDTO{}, nil
}

func (stubCartService) Checkout(context.Context, uuid.UUID, string, string) (*models.Invoice, error) {
	return &models.Invoice{}, nil
}

type stubInvoiceService struct{}

func (stubInvoiceService) GetInvoice(context.Context, uuid.UUID) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) ListInvoices(context.Context) ([]invoices.InvoiceDTO, error) {
	return []invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) ListByUser(context.Context, uuid.UUID) ([]invoices.InvoiceDTO, error) {
	return []invoices.InvoiceDTO{}, nil
}

func (stubInvoiceService) DeleteInvoice(context.Context, uuid.UUID) error { return nil }

func (stubInvoiceService) ProcessPurchase(context.Context, uuid.UUID, string, string) (*invoices.InvoiceDTO, error) {
	return &invoices.InvoiceDTO{}, nil
}

type stubCustomService struct{}

func (stubCustomService) CreateCustomPerfume(context.Context, custom.CreateInput) (*custom.CustomPerfumeDTO, error) {
	return &custom.CustomPerfumeDTO{}, nil
}

func (stubCustomService) UpdateCustomPerfume(context.Context, uuid.UUID, custom.UpdateInput) (*custom.CustomPerfumeDTO, error) {
	return &custom.CustomPerfumeDTO{}, nil
}

func (stubCustomService) DeleteCustomPerfume(context.Context, uuid.UUID) error { return nil }

func (stubCustomService) GetCustomPerfume(context.Context, uuid.UUID) (*custom.CustomPerfumeDTO, error) {
	return &custom.CustomPerfumeDTO{}, nil
}

func (stubCustomService) ListCustomPerfumes(context.Context) ([]custom.CustomPerfumeDTO, error) {
	return []custom.CustomPerfumeDTO{}, nil
}

func (stubCustomService) ListByUser(context.Context, uuid.UUID) ([]custom.CustomPerfumeDTO, error) {
	return []custom.CustomPerfumeDTO{}, nil
}

func (stubCustomService) ListApproved(context.Context) ([]custom.CustomPerfumeDTO, error) {
	return []custom.CustomPerfumeDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "esencia-api",
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
		(*redis.Client)(nil),
		Services{
			Auth:       stubAuthService{},
			Users:      stubUsersService{},
			Perfumes:   stubPerfumeService{},
			Categories: stubCategoryService{},
			Notes:      stubNoteService{},
			Cart:       stubCartService{},
			Invoices:   stubInvoiceService{},
			Custom:     stubCustomService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	return buildRoleToken(t, cfg, enums.UserRoleCliente)
}

func buildRoleToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("X-Esencia-Env"); got != "test" {
		t.Fatalf("expected env header test got %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAPIGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/perfumes", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAPIGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/perfumes", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestAuthRoutesArePublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code == http.StatusUnauthorized {
		t.Fatalf("login must not require a token, got %d", resp.Code)
	}
}

func TestInvoiceDeleteRequiresAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	target := "/api/facturas/" + uuid.NewString()

	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", "Bearer "+buildRoleToken(t, cfg, enums.UserRoleCliente))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cliente got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set("Authorization", "Bearer "+buildRoleToken(t, cfg, enums.UserRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin got %d", resp.Code)
	}
}

func TestCartRouteRequiresJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/carrito", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}
