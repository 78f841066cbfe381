package ports

import (
	"context"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// CartRepository persists one cart per owner.
type CartRepository interface {
	// FindByOwner returns the owner's cart, or nil when none exists yet.
	FindByOwner(ctx context.Context, ownerID string) (*domain.Cart, error)
	// Save upserts the whole cart document.
	Save(ctx context.Context, cart *domain.Cart) error
	// Clear empties the owner's cart.
	Clear(ctx context.Context, ownerID string) error
}

// AddItemInput carries a product being added to the cart.
type AddItemInput struct {
	OwnerID    string
	ProductID  string
	SupplierID string
	Name       string
	Origin     string
	InStock    bool
	Quantity   int
	Image      string
}

// CartView is the cart plus its derived supplier grouping.
type CartView struct {
	Cart   *domain.Cart
	Groups []domain.SupplierGroup
}

// CartService exposes the cart mutations. Every failed mutation leaves the
// persisted cart unchanged.
type CartService interface {
	Get(ctx context.Context, ownerID string) (*CartView, error)
	AddItem(ctx context.Context, input AddItemInput) (*CartView, error)
	UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, ownerID, productID string) (*CartView, error)
	Clear(ctx context.Context, ownerID string) error
}
