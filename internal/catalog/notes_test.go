package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

func TestCreateNoteValidatesName(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestNoteService(t, conn)

	dto, err := svc.CreateNote(context.Background(), "Bergamota", "cítrica")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if dto.Nombre != "Bergamota" || dto.Descripcion != "cítrica" {
		t.Fatalf("unexpected note %+v", dto)
	}

	if _, err := svc.CreateNote(context.Background(), "", ""); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestUpdateNotePartial(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestNoteService(t, conn)
	note := mustCreateNote(t, conn, "Sandalo")

	desc := "amaderada"
	dto, err := svc.UpdateNote(context.Background(), note.ID, UpdateNoteInput{Description: &desc})
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if dto.Nombre != "Sandalo" || dto.Descripcion != "amaderada" {
		t.Fatalf("unexpected note %+v", dto)
	}
}

func TestDeleteNoteDetachesEverywhere(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestNoteService(t, conn)
	note := mustCreateNote(t, conn, "Vainilla")
	perfume := mustCreatePerfume(t, conn, "Brisa", "10.00")
	if err := conn.Model(perfume).Association("Notes").Append(note); err != nil {
		t.Fatalf("link perfume note: %v", err)
	}

	user := &models.User{Name: "Creador", Email: fmt.Sprintf("c_%s@example.com", uuid.NewString()), PasswordHash: "hash"}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	blend := &models.CustomPerfume{Name: "Mi Mezcla", Price: models.CustomPerfumePrice(1), UserID: user.ID}
	if err := conn.Create(blend).Error; err != nil {
		t.Fatalf("create custom perfume: %v", err)
	}
	if err := conn.Model(blend).Association("Notes").Append(note); err != nil {
		t.Fatalf("link blend note: %v", err)
	}

	if err := svc.DeleteNote(context.Background(), note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	for _, table := range []string{"perfume_notes", "custom_perfume_notes"} {
		var count int64
		if err := conn.Table(table).Where("olfactory_note_id = ?", note.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s rows gone got %d", table, count)
		}
	}
}

func TestDeleteNoteUnknownIsNotFound(t *testing.T) {
	conn := openTestDB(t)
	svc := newTestNoteService(t, conn)

	err := svc.DeleteNote(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found got %v", err)
	}
}
