package domain

import "time"

// CartItem is one pending line in a buyer's cart. Items are keyed uniquely
// by product; the supplier is fixed at creation, so switching supplier means
// remove and re-add.
type CartItem struct {
	ProductID  string `json:"product_id" bson:"product_id"`
	SupplierID string `json:"supplier_id" bson:"supplier_id"`
	Name       string `json:"name" bson:"name"`
	Origin     string `json:"origin,omitempty" bson:"origin,omitempty"`
	InStock    bool   `json:"in_stock" bson:"in_stock"`
	Quantity   int    `json:"quantity" bson:"quantity"`
	Image      string `json:"image,omitempty" bson:"image,omitempty"`
}

// Cart is the buyer's pending RFQ draft: an ordered sequence of items,
// created lazily on first fetch and emptied on successful checkout dispatch.
type Cart struct {
	OwnerID   string     `json:"owner_id" bson:"owner_id"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewCart returns the empty cart for an owner.
func NewCart(ownerID string) *Cart {
	return &Cart{OwnerID: ownerID, Items: []CartItem{}}
}

// Add merges an item into the cart. Re-adding a product accumulates the
// quantity; a re-add that names a different supplier violates supplier
// immutability and is rejected.
func (c *Cart) Add(item CartItem) error {
	if item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			if c.Items[i].SupplierID != item.SupplierID {
				return ErrSupplierImmutable
			}
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// SetQuantity updates the quantity of an existing item.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return ErrCartItemNotFound
}

// Remove deletes an item, preserving the order of the rest.
func (c *Cart) Remove(productID string) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrCartItemNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// SupplierGroup is one supplier's slice of the cart.
type SupplierGroup struct {
	SupplierID string     `json:"supplier_id"`
	Items      []CartItem `json:"items"`
}

// GroupBySupplier partitions the items by supplier, preserving item order
// within each group and group order by first appearance. The grouping is a
// derived view used for the checkout payload shape, never stored.
func (c *Cart) GroupBySupplier() []SupplierGroup {
	index := make(map[string]int)
	var groups []SupplierGroup
	for _, item := range c.Items {
		i, ok := index[item.SupplierID]
		if !ok {
			i = len(groups)
			index[item.SupplierID] = i
			groups = append(groups, SupplierGroup{SupplierID: item.SupplierID})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}
