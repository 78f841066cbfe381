package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

const collectionCarts = "carts"

// CartRepository keeps one cart document per owner, keyed by owner id.
type CartRepository struct {
	col *mongo.Collection
}

func NewCartRepository(db *mongo.Database) *CartRepository {
	return &CartRepository{col: db.Collection(collectionCarts)}
}

func (r *CartRepository) FindByOwner(ctx context.Context, ownerID string) (*domain.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var cart domain.Cart
	if err := r.col.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}
	return &cart, nil
}

func (r *CartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"owner_id": cart.OwnerID}, cart, opts); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique owner index on the carts collection.
func (r *CartRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
