package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jpcardenasg/esencia-backend/internal/catalog"
	"github.com/jpcardenasg/esencia-backend/internal/invoices"
	"github.com/jpcardenasg/esencia-backend/internal/users"
	"github.com/jpcardenasg/esencia-backend/pkg/db"
	"github.com/jpcardenasg/esencia-backend/pkg/db/models"
	"github.com/jpcardenasg/esencia-backend/pkg/enums"
	pkgerrors "github.com/jpcardenasg/esencia-backend/pkg/errors"
)

// Service exposes the cart engine: one ACTIVO cart per user, line-item
// mutations with price snapshots, and the checkout transaction.
type Service interface {
	ActiveCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	AddItem(ctx context.Context, userID, perfumeID uuid.UUID, quantity int) (*CartItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartItemDTO, error)
	Checkout(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Invoice, error)
}

type service struct {
	repo        *Repository
	userRepo    *users.Repository
	perfumeRepo *catalog.PerfumeRepository
	invoiceRepo *invoices.Repository
	dbClient    *db.Client
	now         func() time.Time
}

// NewService constructs a cart service instance.
func NewService(repo *Repository, userRepo *users.Repository, perfumeRepo *catalog.PerfumeRepository, invoiceRepo *invoices.Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if perfumeRepo == nil {
		return nil, fmt.Errorf("perfume repository required")
	}
	if invoiceRepo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:        repo,
		userRepo:    userRepo,
		perfumeRepo: perfumeRepo,
		invoiceRepo: invoiceRepo,
		dbClient:    dbClient,
		now:         time.Now,
	}, nil
}

// ActiveCart returns the user's ACTIVO cart, creating an empty one on first
// access. Duplicate ACTIVO carts are demoted to INACTIVO as a persisted side
// effect of the read; the repair is idempotent, so racing readers converge.
func (s *service) ActiveCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart, err := s.activeCartModel(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	return cartToDTO(cart, user), nil
}

func (s *service) activeCartModel(ctx context.Context, repo *Repository, userID uuid.UUID) (*models.Cart, error) {
	carts, err := repo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list active carts")
	}

	switch len(carts) {
	case 0:
		created, err := repo.Create(ctx, &models.Cart{UserID: userID, Status: enums.CartStatusActivo})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
		}
		return created, nil
	case 1:
		return &carts[0], nil
	}

	// Self-repair: keep the oldest, demote the rest.
	extras := make([]uuid.UUID, 0, len(carts)-1)
	for _, extra := range carts[1:] {
		extras = append(extras, extra.ID)
	}
	if err := repo.DemoteToInactive(ctx, extras); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "demote duplicate carts")
	}
	return &carts[0], nil
}

func (s *service) AddItem(ctx context.Context, userID, perfumeID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := s.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	perfume, err := s.perfumeRepo.FindByID(ctx, perfumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "perfume not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load perfume")
	}

	cart, err := s.activeCartModel(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		PerfumeID: &perfume.ID,
		Quantity:  quantity,
		UnitPrice: perfume.Price,
		Subtotal:  perfume.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}
	created.Perfume = perfume
	dto := itemToDTO(created)
	return &dto, nil
}

// RemoveItem deletes the line item when it belongs to the user's active
// cart. An absent item is a no-op success.
func (s *service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	cart, err := s.activeCartModel(ctx, s.repo, userID)
	if err != nil {
		return err
	}

	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			if err := s.repo.DeleteItem(ctx, itemID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
			}
			return nil
		}
	}
	return nil
}

// UpdateItemQuantity recomputes the subtotal from the snapshotted unit
// price. The item must belong to a cart owned by userID.
func (s *service) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*CartItemDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	item, err := s.repo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart item")
	}

	owner, err := s.repo.FindByID(ctx, item.CartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if owner.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "cart item belongs to another user")
	}

	item.Quantity = quantity
	item.Subtotal = item.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	updated, err := s.repo.SaveItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	dto := itemToDTO(updated)
	return &dto, nil
}

// Checkout converts the active cart into an invoice inside one transaction:
// snapshot every line into invoice items, mark the cart PROCESADO with its
// items retained as history, and spawn a fresh empty ACTIVO cart. Any
// failure rolls the whole sequence back.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress, paymentMethod string) (*models.Invoice, error) {
	shippingAddress = strings.TrimSpace(shippingAddress)
	paymentMethod = strings.TrimSpace(paymentMethod)
	if shippingAddress == "" || paymentMethod == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address and payment method are required")
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var invoice *models.Invoice
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.activeCartModel(ctx, repo, userID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		total := decimal.Zero
		items := make([]models.InvoiceItem, 0, len(cart.Items))
		for i := range cart.Items {
			line := &cart.Items[i]
			snapshot := models.InvoiceItem{
				PerfumeID:       line.PerfumeID,
				CustomPerfumeID: line.CustomPerfumeID,
				Quantity:        line.Quantity,
				UnitPrice:       line.UnitPrice,
				Subtotal:        line.Subtotal,
			}
			switch {
			case line.Perfume != nil:
				snapshot.ProductName = line.Perfume.Name
			case line.CustomPerfume != nil:
				snapshot.ProductName = line.CustomPerfume.Name + customNameSuffix
			}
			total = total.Add(line.Subtotal)
			items = append(items, snapshot)
		}

		created, err := s.invoiceRepo.WithTx(tx).Create(ctx, &models.Invoice{
			UserID:          user.ID,
			IssuedAt:        s.now(),
			PaymentMethod:   paymentMethod,
			ShippingAddress: shippingAddress,
			Total:           total,
			Items:           items,
		})
		if err != nil {
			return fmt.Errorf("create invoice: %w", err)
		}

		if err := repo.UpdateStatus(ctx, cart.ID, enums.CartStatusProcesado); err != nil {
			return fmt.Errorf("mark cart processed: %w", err)
		}

		if _, err := repo.Create(ctx, &models.Cart{UserID: userID, Status: enums.CartStatusActivo}); err != nil {
			return fmt.Errorf("spawn fresh cart: %w", err)
		}

		invoice = created
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checkout")
	}

	invoice.User = user
	return invoice, nil
}

func (s *service) loadUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
