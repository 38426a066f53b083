package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

// NoteService exposes olfactory note management.
type NoteService interface {
	CreateNote(ctx context.Context, name, description string) (*NoteDTO, error)
	UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*NoteDTO, error)
	DeleteNote(ctx context.Context, id uuid.UUID) error
	GetNote(ctx context.Context, id uuid.UUID) (*NoteDTO, error)
	ListNotes(ctx context.Context) ([]NoteDTO, error)
}

// UpdateNoteInput holds optional mutation values for a note.
type UpdateNoteInput struct {
	Name        *string
	Description *string
}

type noteService struct {
	repo     *NoteRepository
	dbClient *db.Client
}

// NewNoteService constructs a note service instance.
func NewNoteService(repo *NoteRepository, dbClient *db.Client) (NoteService, error) {
	if repo == nil {
		return nil, fmt.Errorf("note repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &noteService{repo: repo, dbClient: dbClient}, nil
}

func (s *noteService) CreateNote(ctx context.Context, name, description string) (*NoteDTO, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
	}
	created, err := s.repo.Create(ctx, &models.OlfactoryNote{Name: name, Description: description})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "note name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create note")
	}
	dto := noteToDTO(created)
	return &dto, nil
}

func (s *noteService) UpdateNote(ctx context.Context, id uuid.UUID, input UpdateNoteInput) (*NoteDTO, error) {
	note, err := s.loadNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		note.Name = name
	}
	if input.Description != nil {
		note.Description = *input.Description
	}
	updated, err := s.repo.Update(ctx, note)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "note name already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update note")
	}
	dto := noteToDTO(updated)
	return &dto, nil
}

// DeleteNote detaches the note from perfumes and custom blends before
// removing the row, mirroring the category protocol.
func (s *noteService) DeleteNote(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadNote(ctx, id); err != nil {
		return err
	}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DetachEverywhere(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete note")
	}
	return nil
}

func (s *noteService) GetNote(ctx context.Context, id uuid.UUID) (*NoteDTO, error) {
	note, err := s.loadNote(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := noteToDTO(note)
	return &dto, nil
}

func (s *noteService) ListNotes(ctx context.Context) ([]NoteDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notes")
	}
	return notesToDTOs(rows), nil
}

func (s *noteService) loadNote(ctx context.Context, id uuid.UUID) (*models.OlfactoryNote, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "note not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load note")
	}
	return note, nil
}
