package custom

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

const testDefaultImage = "/images/perfume-personalizado.png"

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

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		users.NewRepository(conn),
		catalog.NewNoteRepository(conn),
		db.NewFromConn(conn),
		testDefaultImage,
	)
	if err != nil {
		t.Fatalf("new custom perfume service: %v", err)
	}
	return svc
}

func mustCreateTestUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Blend Tester",
		Email:        fmt.Sprintf("esencia_test_%s@example.com", uuid.NewString()),
		PasswordHash: "hash",
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustCreateTestNote(t *testing.T, conn *gorm.DB, name string) *models.OlfactoryNote {
	t.Helper()
	note := &models.OlfactoryNote{Name: name}
	if err := conn.Create(note).Error; err != nil {
		t.Fatalf("create note: %v", err)
	}
	return note
}
