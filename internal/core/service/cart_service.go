package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// CartService owns the buyer's pending RFQ draft. Mutations load the cart,
// apply the domain operation, and persist the whole aggregate; a rejected
// operation never reaches the repository.
type CartService struct {
	repo ports.CartRepository
	log  zerolog.Logger
}

func NewCartService(repo ports.CartRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

// Get returns the owner's cart, creating an empty one lazily on first fetch.
func (s *CartService) Get(ctx context.Context, ownerID string) (*ports.CartView, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return view(cart), nil
}

func (s *CartService) AddItem(ctx context.Context, input ports.AddItemInput) (*ports.CartView, error) {
	cart, err := s.load(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := cart.Add(domain.CartItem{
		ProductID:  input.ProductID,
		SupplierID: input.SupplierID,
		Name:       input.Name,
		Origin:     input.Origin,
		InStock:    input.InStock,
		Quantity:   input.Quantity,
		Image:      input.Image,
	}); err != nil {
		return nil, err
	}

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	s.log.Debug().Str("owner_id", input.OwnerID).Str("product_id", input.ProductID).Msg("cart item added")
	return view(cart), nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, ownerID, productID string, quantity int) (*ports.CartView, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

func (s *CartService) RemoveItem(ctx context.Context, ownerID, productID string) (*ports.CartView, error) {
	cart, err := s.load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(productID); err != nil {
		return nil, err
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

func (s *CartService) Clear(ctx context.Context, ownerID string) error {
	return s.repo.Clear(ctx, ownerID)
}

func (s *CartService) load(ctx context.Context, ownerID string) (*domain.Cart, error) {
	cart, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = domain.NewCart(ownerID)
	}
	return cart, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	return s.repo.Save(ctx, cart)
}

func view(cart *domain.Cart) *ports.CartView {
	return &ports.CartView{Cart: cart, Groups: cart.GroupBySupplier()}
}
