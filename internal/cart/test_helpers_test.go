package cart

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/invoices"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	"github.com/jpcardenasg/esencia-backend/pkg/enums"
)

func mustCreateTestUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Cart Tester",
		Email:        fmt.Sprintf("esencia_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestPerfume(t *testing.T, conn *gorm.DB, name string, price string) *models.Perfume {
	t.Helper()
	perfume := &models.Perfume{
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	if err := conn.Create(perfume).Error; err != nil {
		t.Fatalf("create perfume: %v", err)
	}
	return perfume
}

func mustCreateTestCart(t *testing.T, conn *gorm.DB, userID uuid.UUID, status enums.CartStatus) *models.Cart {
	t.Helper()
	record := &models.Cart{UserID: userID, Status: status}
	if err := conn.Create(record).Error; err != nil {
		t.Fatalf("create cart: %v", err)
	}
	return record
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		users.NewRepository(conn),
		catalog.NewPerfumeRepository(conn),
		invoices.NewRepository(conn),
		db.NewFromConn(conn),
	)
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	return svc
}
