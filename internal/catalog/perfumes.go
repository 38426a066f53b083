package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

// invoiceRefConstraint names the FK that protects invoiced perfumes from
// deletion. Mirrors the migration.
const invoiceRefConstraint = "fk_invoice_items_perfume"

// PerfumeService exposes catalog perfume management.
type PerfumeService interface {
	CreatePerfume(ctx context.Context, input CreatePerfumeInput) (*PerfumeDTO, error)
	UpdatePerfume(ctx context.Context, id uuid.UUID, input UpdatePerfumeInput) (*PerfumeDTO, error)
	DeletePerfume(ctx context.Context, id uuid.UUID) error
	GetPerfume(ctx context.Context, id uuid.UUID) (*PerfumeDTO, error)
	ListPerfumes(ctx context.Context) ([]PerfumeDTO, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]PerfumeDTO, error)
	SearchPerfumes(ctx context.Context, name string) ([]PerfumeDTO, error)
	UpdateCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) (*PerfumeDTO, error)
	UpdateNotes(ctx context.Context, id uuid.UUID, noteIDs []uuid.UUID) (*PerfumeDTO, error)
}

// CreatePerfumeInput holds the validated payload to create a perfume.
type CreatePerfumeInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	CategoryIDs []uuid.UUID
	NoteIDs     []uuid.UUID
}

// UpdatePerfumeInput holds optional mutation values for a perfume.
type UpdatePerfumeInput struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
	ImageURL    *string
}

type perfumeService struct {
	repo         *PerfumeRepository
	categoryRepo *CategoryRepository
	noteRepo     *NoteRepository
	dbClient     *db.Client
}

// NewPerfumeService constructs a perfume service instance.
func NewPerfumeService(repo *PerfumeRepository, categoryRepo *CategoryRepository, noteRepo *NoteRepository, dbClient *db.Client) (PerfumeService, error) {
	if repo == nil {
		return nil, fmt.Errorf("perfume repository required")
	}
	if categoryRepo == nil {
		return nil, fmt.Errorf("category repository required")
	}
	if noteRepo == nil {
		return nil, fmt.Errorf("note repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &perfumeService{
		repo:         repo,
		categoryRepo: categoryRepo,
		noteRepo:     noteRepo,
		dbClient:     dbClient,
	}, nil
}

func (s *perfumeService) CreatePerfume(ctx context.Context, input CreatePerfumeInput) (*PerfumeDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
	}
	if !input.Price.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, input.CategoryIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load categories")
	}
	notes, err := s.noteRepo.FindByIDs(ctx, input.NoteIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notes")
	}

	perfume := &models.Perfume{
		Name:        name,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Categories:  categories,
		Notes:       notes,
	}
	created, err := s.repo.Create(ctx, perfume)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create perfume")
	}
	return perfumeToDTO(created), nil
}

func (s *perfumeService) UpdatePerfume(ctx context.Context, id uuid.UUID, input UpdatePerfumeInput) (*PerfumeDTO, error) {
	perfume, err := s.loadPerfume(ctx, id)
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
	if input.Price != nil {
		if !input.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
		}
		perfume.Price = *input.Price
	}
	if input.Description != nil {
		perfume.Description = *input.Description
	}
	if input.ImageURL != nil {
		perfume.ImageURL = *input.ImageURL
	}

	if _, err := s.repo.Save(ctx, perfume); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update perfume")
	}
	return perfumeToDTO(perfume), nil
}

// DeletePerfume removes a perfume unless an invoice line item still points at
// it. Invoices are immutable history, so that case surfaces as a conflict
// naming the violated constraint and leaves everything untouched.
func (s *perfumeService) DeletePerfume(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadPerfume(ctx, id); err != nil {
		return err
	}

	refs, err := s.repo.CountInvoiceReferences(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count invoice references")
	}
	if refs > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "perfume is referenced by invoices").
			WithDetails(map[string]any{"constraint": invoiceRefConstraint, "references": refs})
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DetachAssociations(ctx, id); err != nil {
			return err
		}
		if err := repo.ClearCartReferences(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		// The count above can lose a race with a concurrent checkout.
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "perfume is referenced by invoices").
				WithDetails(map[string]any{"constraint": invoiceRefConstraint})
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete perfume")
	}
	return nil
}

func (s *perfumeService) GetPerfume(ctx context.Context, id uuid.UUID) (*PerfumeDTO, error) {
	perfume, err := s.loadPerfume(ctx, id)
	if err != nil {
		return nil, err
	}
	return perfumeToDTO(perfume), nil
}

func (s *perfumeService) ListPerfumes(ctx context.Context) ([]PerfumeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list perfumes")
	}
	return perfumesToDTOs(rows), nil
}

func (s *perfumeService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]PerfumeDTO, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load category")
	}
	rows, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list perfumes by category")
	}
	return perfumesToDTOs(rows), nil
}

func (s *perfumeService) SearchPerfumes(ctx context.Context, name string) ([]PerfumeDTO, error) {
	rows, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search perfumes")
	}
	return perfumesToDTOs(rows), nil
}

func (s *perfumeService) UpdateCategories(ctx context.Context, id uuid.UUID, categoryIDs []uuid.UUID) (*PerfumeDTO, error) {
	perfume, err := s.loadPerfume(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.FindByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load categories")
	}
	if err := s.repo.ReplaceCategories(ctx, perfume, categories); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace categories")
	}
	perfume.Categories = categories
	return perfumeToDTO(perfume), nil
}

func (s *perfumeService) UpdateNotes(ctx context.Context, id uuid.UUID, noteIDs []uuid.UUID) (*PerfumeDTO, error) {
	perfume, err := s.loadPerfume(ctx, id)
	if err != nil {
		return nil, err
	}
	notes, err := s.noteRepo.FindByIDs(ctx, noteIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notes")
	}
	if err := s.repo.ReplaceNotes(ctx, perfume, notes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replace notes")
	}
	perfume.Notes = notes
	return perfumeToDTO(perfume), nil
}

func (s *perfumeService) loadPerfume(ctx context.Context, id uuid.UUID) (*models.Perfume, error) {
	perfume, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "perfume not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load perfume")
	}
	return perfume, nil
}
