package invoices

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent}),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := conn.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.OlfactoryNote{},
		&models.Perfume{},
		&models.CustomPerfume{},
		&models.Cart{},
		&models.CartItem{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return conn
}

type stubCheckouter struct {
	invoice *models.Invoice
	err     error
	lastArg struct {
		userID          uuid.UUID
		shippingAddress string
		paymentMethod   string
	}
}

func (s *stubCheckouter) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Invoice, error) {
	s.lastArg.userID = userID
	s.lastArg.shippingAddress = shippingAddress
	s.lastArg.paymentMethod = paymentMethod
	return s.invoice, s.err
}

func mustCreateTestUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Invoice Tester",
		Email:        fmt.Sprintf("esencia_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestInvoice(t *testing.T, conn *gorm.DB, userID uuid.UUID, total string, issuedAt time.Time) *models.Invoice {
	t.Helper()
	amount := decimal.RequireFromString(total)
	invoice := &models.Invoice{
		UserID:          userID,
		IssuedAt:        issuedAt,
		PaymentMethod:   "tarjeta",
		ShippingAddress: "Calle 1",
		Total:           amount,
		Items: []models.InvoiceItem{{
			ProductName: "Rosa del Desierto",
			Quantity:    1,
			UnitPrice:   amount,
			Subtotal:    amount,
		}},
	}
	if err := conn.Create(invoice).Error; err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return invoice
}

func TestGetInvoiceFlattensItems(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateTestUser(t, conn)
	stored := mustCreateTestInvoice(t, conn, user.ID, "89.99", time.Now())

	svc, err := NewService(NewRepository(conn), &stubCheckouter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.GetInvoice(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("get invoice: %v", err)
	}
	if dto.Total != 89.99 {
		t.Fatalf("expected total 89.99 got %v", dto.Total)
	}
	if len(dto.Detalles) != 1 || dto.Detalles[0].NombreProducto != "Rosa del Desierto" {
		t.Fatalf("unexpected items %+v", dto.Detalles)
	}

	_, err = svc.GetInvoice(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateTestUser(t, conn)
	other := mustCreateTestUser(t, conn)

	old := mustCreateTestInvoice(t, conn, user.ID, "10.00", time.Now().Add(-time.Hour))
	recent := mustCreateTestInvoice(t, conn, user.ID, "20.00", time.Now())
	mustCreateTestInvoice(t, conn, other.ID, "30.00", time.Now())

	svc, err := NewService(NewRepository(conn), &stubCheckouter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	rows, err := svc.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two invoices got %d", len(rows))
	}
	if rows[0].ID != recent.ID || rows[1].ID != old.ID {
		t.Fatalf("expected newest first got %s then %s", rows[0].ID, rows[1].ID)
	}
}

func TestDeleteInvoiceRemovesItems(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateTestUser(t, conn)
	stored := mustCreateTestInvoice(t, conn, user.ID, "89.99", time.Now())

	svc, err := NewService(NewRepository(conn), &stubCheckouter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if err := svc.DeleteInvoice(context.Background(), stored.ID); err != nil {
		t.Fatalf("delete invoice: %v", err)
	}

	var itemCount int64
	if err := conn.Model(&models.InvoiceItem{}).Where("invoice_id = ?", stored.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 0 {
		t.Fatalf("expected invoice items gone got %d", itemCount)
	}

	if err := svc.DeleteInvoice(context.Background(), stored.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on repeat delete got %v", err)
	}
}

func TestProcessPurchaseDelegatesToCheckout(t *testing.T) {
	conn := openTestDB(t)
	user := mustCreateTestUser(t, conn)

	total := decimal.RequireFromString("179.98")
	stub := &stubCheckouter{invoice: &models.Invoice{
		ID:              uuid.New(),
		UserID:          user.ID,
		IssuedAt:        time.Now(),
		PaymentMethod:   "tarjeta",
		ShippingAddress: "Calle 1",
		Total:           total,
	}}

	svc, err := NewService(NewRepository(conn), stub)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.ProcessPurchase(context.Background(), user.ID, "Calle 1", "tarjeta")
	if err != nil {
		t.Fatalf("process purchase: %v", err)
	}
	if dto.Total != 179.98 {
		t.Fatalf("expected total 179.98 got %v", dto.Total)
	}
	if stub.lastArg.userID != user.ID || stub.lastArg.shippingAddress != "Calle 1" || stub.lastArg.paymentMethod != "tarjeta" {
		t.Fatalf("checkout called with %+v", stub.lastArg)
	}
}

func TestProcessPurchasePassesThroughTypedErrors(t *testing.T) {
	conn := openTestDB(t)

	stub := &stubCheckouter{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	svc, err := NewService(NewRepository(conn), stub)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ProcessPurchase(context.Background(), uuid.New(), "Calle 1", "tarjeta")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error passed through got %v", err)
	}
}
