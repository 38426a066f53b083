package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

// checkouter runs the cart-to-invoice transaction. Satisfied by the cart
// service; declared here so wiring stays one-directional.
type checkouter interface {
	Checkout(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Invoice, error)
}

// Service exposes invoice queries plus the purchase entry point that drives
// checkout for the authenticated user.
type Service interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error)
	ListInvoices(ctx context.Context) ([]InvoiceDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]InvoiceDTO, error)
	DeleteInvoice(ctx context.Context, id uuid.UUID) error
	ProcessPurchase(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*InvoiceDTO, error)
}

type service struct {
	repo     *Repository
	checkout checkouter
}

// NewService constructs an invoice service instance.
func NewService(repo *Repository, checkout checkouter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout dependency required")
	}
	return &service{repo: repo, checkout: checkout}, nil
}

func (s *service) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceDTO, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
	}
	return ToDTO(invoice), nil
}

func (s *service) ListInvoices(ctx context.Context) ([]InvoiceDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list invoices")
	}
	return ToDTOs(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]InvoiceDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list user invoices")
	}
	return ToDTOs(rows), nil
}

func (s *service) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load invoice")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete invoice")
	}
	return nil
}

// ProcessPurchase checks out the authenticated user's active cart.
func (s *service) ProcessPurchase(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*InvoiceDTO, error) {
	invoice, err := s.checkout.Checkout(ctx, userID, shippingAddress, paymentMethod)
	if err != nil {
		return nil, err
	}
	return ToDTO(invoice), nil
}
