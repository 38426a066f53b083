package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
)

// NoteRepository exposes persistence operations for olfactory notes.
type NoteRepository struct {
	db *gorm.DB
}

// NewNoteRepository constructs a note repository bound to the provided DB.
func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *NoteRepository) WithTx(tx *gorm.DB) *NoteRepository {
	if tx == nil {
		return r
	}
	return &NoteRepository{db: tx}
}

// Create inserts a new note.
func (r *NoteRepository) Create(ctx context.Context, note *models.OlfactoryNote) (*models.OlfactoryNote, error) {
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// Update saves the provided note.
func (r *NoteRepository) Update(ctx context.Context, note *models.OlfactoryNote) (*models.OlfactoryNote, error) {
	if err := r.db.WithContext(ctx).Save(note).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// FindByID loads a note by id.
func (r *NoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.OlfactoryNote, error) {
	var note models.OlfactoryNote
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&note).Error; err != nil {
		return nil, err
	}
	return &note, nil
}

// FindByIDs loads the notes matching the given ids. Unknown ids are simply
// absent from the result.
func (r *NoteRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.OlfactoryNote, error) {
	var rows []models.OlfactoryNote
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// List returns all notes ordered by name.
func (r *NoteRepository) List(ctx context.Context) ([]models.OlfactoryNote, error) {
	var rows []models.OlfactoryNote
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DetachEverywhere removes the note from catalog perfumes and custom blends.
// Must run before Delete to keep both m2m edges consistent.
func (r *NoteRepository) DetachEverywhere(ctx context.Context, noteID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Exec("DELETE FROM perfume_notes WHERE olfactory_note_id = ?", noteID).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM custom_perfume_notes WHERE olfactory_note_id = ?", noteID).Error
}

// Delete removes a note row.
func (r *NoteRepository) Delete(ctx context.Context, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", noteID).Delete(&models.OlfactoryNote{}).Error
}
