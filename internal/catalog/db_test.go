package catalog

import (
	"fmt"
	"io"
	"log"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
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

func newTestPerfumeService(t *testing.T, conn *gorm.DB) PerfumeService {
	t.Helper()
	svc, err := NewPerfumeService(
		NewPerfumeRepository(conn),
		NewCategoryRepository(conn),
		NewNoteRepository(conn),
		db.NewFromConn(conn),
	)
	if err != nil {
		t.Fatalf("new perfume service: %v", err)
	}
	return svc
}

func newTestCategoryService(t *testing.T, conn *gorm.DB) CategoryService {
	t.Helper()
	svc, err := NewCategoryService(NewCategoryRepository(conn), db.NewFromConn(conn))
	if err != nil {
		t.Fatalf("new category service: %v", err)
	}
	return svc
}

func newTestNoteService(t *testing.T, conn *gorm.DB) NoteService {
	t.Helper()
	svc, err := NewNoteService(NewNoteRepository(conn), db.NewFromConn(conn))
	if err != nil {
		t.Fatalf("new note service: %v", err)
	}
	return svc
}

func mustCreateCategory(t *testing.T, conn *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func mustCreateNote(t *testing.T, conn *gorm.DB, name string) *models.OlfactoryNote {
	t.Helper()
	note := &models.OlfactoryNote{Name: name}
	if err := conn.Create(note).Error; err != nil {
		t.Fatalf("create note: %v", err)
	}
	return note
}

func mustCreatePerfume(t *testing.T, conn *gorm.DB, name, price string) *models.Perfume {
	t.Helper()
	perfume := &models.Perfume{Name: name, Price: decimal.RequireFromString(price)}
	if err := conn.Create(perfume).Error; err != nil {
		t.Fatalf("create perfume: %v", err)
	}
	return perfume
}
