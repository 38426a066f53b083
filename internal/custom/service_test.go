package custom

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

func TestCreateCustomPerfumePricesByNoteCount(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)
	bergamota := mustCreateTestNote(t, conn, "Bergamota")
	sandalo := mustCreateTestNote(t, conn, "Sandalo")
	vainilla := mustCreateTestNote(t, conn, "Vainilla")

	dto, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{bergamota.ID, sandalo.ID, vainilla.ID},
	})
	if err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}
	if dto.Precio != 80.0 {
		t.Fatalf("expected price 80.0 for 3 notes got %v", dto.Precio)
	}
	if dto.Aprobado {
		t.Fatal("expected new blend to start unapproved")
	}
	if dto.ImagenURL != testDefaultImage {
		t.Fatalf("expected default image got %q", dto.ImagenURL)
	}
	if len(dto.Notas) != 3 {
		t.Fatalf("expected 3 notes got %d", len(dto.Notas))
	}
}

func TestCreateCustomPerfumeDropsInvalidNotes(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)
	bergamota := mustCreateTestNote(t, conn, "Bergamota")

	// One valid note among unknown ids and a duplicate: price counts the
	// valid distinct set only.
	dto, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{bergamota.ID, bergamota.ID, uuid.New(), uuid.New()},
	})
	if err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}
	if dto.Precio != 60.0 {
		t.Fatalf("expected price 60.0 for one valid note got %v", dto.Precio)
	}
	if len(dto.Notas) != 1 {
		t.Fatalf("expected one note got %d", len(dto.Notas))
	}
}

func TestCreateCustomPerfumeRejectsAllInvalidNotes(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)

	_, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{uuid.New(), uuid.New()},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for all-invalid notes got %v", err)
	}
}

func TestCreateCustomPerfumeUnknownUser(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	note := mustCreateTestNote(t, conn, "Bergamota")

	_, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  uuid.New(),
		NoteIDs: []uuid.UUID{note.ID},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown user got %v", err)
	}
}

func TestUpdateCustomPerfumeReplacingNotesRepricesBlend(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)
	bergamota := mustCreateTestNote(t, conn, "Bergamota")
	sandalo := mustCreateTestNote(t, conn, "Sandalo")

	created, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{bergamota.ID},
	})
	if err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}
	if created.Precio != 60.0 {
		t.Fatalf("expected price 60.0 got %v", created.Precio)
	}

	noteIDs := []uuid.UUID{bergamota.ID, sandalo.ID}
	updated, err := svc.UpdateCustomPerfume(context.Background(), created.ID, UpdateInput{NoteIDs: &noteIDs})
	if err != nil {
		t.Fatalf("update custom perfume: %v", err)
	}
	if updated.Precio != 70.0 {
		t.Fatalf("expected price 70.0 after adding a note got %v", updated.Precio)
	}
	if len(updated.Notas) != 2 {
		t.Fatalf("expected two notes got %d", len(updated.Notas))
	}
}

func TestUpdateCustomPerfumeApproval(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)
	note := mustCreateTestNote(t, conn, "Bergamota")

	created, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{note.ID},
	})
	if err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}

	approved := true
	if _, err := svc.UpdateCustomPerfume(context.Background(), created.ID, UpdateInput{Approved: &approved}); err != nil {
		t.Fatalf("approve blend: %v", err)
	}

	rows, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("list approved: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != created.ID {
		t.Fatalf("expected the approved blend got %+v", rows)
	}
}

func TestDeleteCustomPerfumeClearsReferences(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	user := mustCreateTestUser(t, conn)
	note := mustCreateTestNote(t, conn, "Bergamota")

	created, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
		Name:    "Mi Mezcla",
		UserID:  user.ID,
		NoteIDs: []uuid.UUID{note.ID},
	})
	if err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}

	cart := &models.Cart{UserID: user.ID}
	if err := conn.Create(cart).Error; err != nil {
		t.Fatalf("create cart: %v", err)
	}
	price := models.CustomPerfumePrice(1)
	line := &models.CartItem{CartID: cart.ID, CustomPerfumeID: &created.ID, Quantity: 1, UnitPrice: price, Subtotal: price}
	if err := conn.Create(line).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}

	if err := svc.DeleteCustomPerfume(context.Background(), created.ID); err != nil {
		t.Fatalf("delete custom perfume: %v", err)
	}

	var blendCount int64
	if err := conn.Model(&models.CustomPerfume{}).Where("id = ?", created.ID).Count(&blendCount).Error; err != nil {
		t.Fatalf("count blends: %v", err)
	}
	if blendCount != 0 {
		t.Fatalf("expected blend gone got %d rows", blendCount)
	}

	var stored models.CartItem
	if err := conn.First(&stored, "id = ?", line.ID).Error; err != nil {
		t.Fatalf("load cart item: %v", err)
	}
	if stored.CustomPerfumeID != nil {
		t.Fatalf("expected cart reference cleared got %v", stored.CustomPerfumeID)
	}

	var joinCount int64
	if err := conn.Table("custom_perfume_notes").Where("custom_perfume_id = ?", created.ID).Count(&joinCount).Error; err != nil {
		t.Fatalf("count join rows: %v", err)
	}
	if joinCount != 0 {
		t.Fatalf("expected note links gone got %d", joinCount)
	}
}

func TestListByUserFiltersOwner(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestService(t, conn)
	owner := mustCreateTestUser(t, conn)
	other := mustCreateTestUser(t, conn)
	note := mustCreateTestNote(t, conn, "Bergamota")

	for _, u := range []uuid.UUID{owner.ID, other.ID} {
		if _, err := svc.CreateCustomPerfume(context.Background(), CreateInput{
			Name:    "Mezcla",
			UserID:  u,
			NoteIDs: []uuid.UUID{note.ID},
		}); err != nil {
			t.Fatalf("create custom perfume: %v", err)
		}
	}

	rows, err := svc.ListByUser(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(rows) != 1 || rows[0].UsuarioID != owner.ID {
		t.Fatalf("expected only the owner's blend got %+v", rows)
	}
}
