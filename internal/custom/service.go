package custom

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

// Service exposes the custom-perfume builder.
type Service interface {
	CreateCustomPerfume(ctx context.Context, input CreateInput) (*CustomPerfumeDTO, error)
	UpdateCustomPerfume(ctx context.Context, id uuid.UUID, input UpdateInput) (*CustomPerfumeDTO, error)
	DeleteCustomPerfume(ctx context.Context, id uuid.UUID) error
	GetCustomPerfume(ctx context.Context, id uuid.UUID) (*CustomPerfumeDTO, error)
	ListCustomPerfumes(ctx context.Context) ([]CustomPerfumeDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CustomPerfumeDTO, error)
	ListApproved(ctx context.Context) ([]CustomPerfumeDTO, error)
}

// CreateInput holds the validated payload to create a custom blend.
type CreateInput struct {
	Name        string
	Description string
	UserID      uuid.UUID
	NoteIDs     []uuid.UUID
	ImageURL    string
}

// UpdateInput holds optional mutation values. A non-nil NoteIDs replaces
// the note set and recomputes the price.
type UpdateInput struct {
	Name        *string
	Description *string
	NoteIDs     *[]uuid.UUID
	ImageURL    *string
	Approved    *bool
}

type service struct {
	repo            *Repository
	userRepo        *users.Repository
	noteRepo        *catalog.NoteRepository
	dbClient        *db.Client
	defaultImageURL string
}

// NewService constructs a custom perfume service instance.
func NewService(repo *Repository, userRepo *users.Repository, noteRepo *catalog.NoteRepository, dbClient *db.Client, defaultImageURL string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("custom perfume repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if noteRepo == nil {
		return nil, fmt.Errorf("note repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:            repo,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		dbClient:        dbClient,
		defaultImageURL: defaultImageURL,
	}, nil
}

// CreateCustomPerfume builds a blend from the valid subset of the requested
// notes. Unknown note ids are dropped silently; only an entirely invalid
// set fails. Price is 50.0 plus 10.0 per note.
func (s *service) CreateCustomPerfume(ctx context.Context, input CreateInput) (*CustomPerfumeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
	}

	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	notes, err := s.resolveNotes(ctx, input.NoteIDs)
	if err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL == "" {
		imageURL = s.defaultImageURL
	}

	perfume := &models.CustomPerfume{
		Name:        name,
		Description: input.Description,
		Price:       models.CustomPerfumePrice(len(notes)),
		Approved:    false,
		ImageURL:    imageURL,
		UserID:      input.UserID,
		Notes:       notes,
	}
	created, err := s.repo.Create(ctx, perfume)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create custom perfume")
	}
	return ToDTO(created), nil
}

// UpdateCustomPerfume applies partial-update semantics: absent fields keep
// their prior values, and a replaced note set recomputes the price.
func (s *service) UpdateCustomPerfume(ctx context.Context, id uuid.UUID, input UpdateInput) (*CustomPerfumeDTO, error) {
	perfume, err := s.loadCustomPerfume(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		perfume.Name = name
	}
	if input.Description != nil {
		perfume.Description = *input.Description
	}
	if input.ImageURL != nil {
		perfume.ImageURL = *input.ImageURL
	}
	if input.Approved != nil {
		perfume.Approved = *input.Approved
	}

	var replacement []models.OlfactoryNote
	if input.NoteIDs != nil {
		replacement, err = s.resolveNotes(ctx, *input.NoteIDs)
		if err != nil {
			return nil, err
		}
		perfume.Price = models.CustomPerfumePrice(len(replacement))
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.Save(ctx, perfume); err != nil {
			return err
		}
		if replacement != nil {
			if err := repo.ReplaceNotes(ctx, perfume, replacement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update custom perfume")
	}

	if replacement != nil {
		perfume.Notes = replacement
	}
	return ToDTO(perfume), nil
}

// DeleteCustomPerfume removes the blend unconditionally, unlike catalog
// perfumes: no invoice-reference check applies here.
func (s *service) DeleteCustomPerfume(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadCustomPerfume(ctx, id); err != nil {
		return err
	}
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete custom perfume")
	}
	return nil
}

func (s *service) GetCustomPerfume(ctx context.Context, id uuid.UUID) (*CustomPerfumeDTO, error) {
	perfume, err := s.loadCustomPerfume(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDTO(perfume), nil
}

func (s *service) ListCustomPerfumes(ctx context.Context) ([]CustomPerfumeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list custom perfumes")
	}
	return ToDTOs(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]CustomPerfumeDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user custom perfumes")
	}
	return ToDTOs(rows), nil
}

func (s *service) ListApproved(ctx context.Context) ([]CustomPerfumeDTO, error) {
	rows, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list approved custom perfumes")
	}
	return ToDTOs(rows), nil
}

// resolveNotes keeps the valid, de-duplicated subset of the requested note
// ids and fails only when nothing valid remains.
func (s *service) resolveNotes(ctx context.Context, noteIDs []uuid.UUID) ([]models.OlfactoryNote, error) {
	seen := make(map[uuid.UUID]struct{}, len(noteIDs))
	distinct := make([]uuid.UUID, 0, len(noteIDs))
	for _, id := range noteIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	notes, err := s.noteRepo.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notes")
	}
	if len(notes) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one valid note is required")
	}
	return notes, nil
}

func (s *service) loadCustomPerfume(ctx context.Context, id uuid.UUID) (*models.CustomPerfume, error) {
	perfume, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "custom perfume not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load custom perfume")
	}
	return perfume, nil
}
