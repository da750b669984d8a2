package cart

import (
	"context"

	"github.com/openmart/shop-api/models"
)

// Principal is the authenticated identity for one request. It is derived
// from a verified credential and never persisted.
type Principal struct {
	SubjectID string
	Role      string
}

// Authenticator verifies a bearer credential. The cart core takes it as an
// interface so it carries no dependency on a token format or signing scheme.
type Authenticator interface {
	Verify(ctx context.Context, credential string) (Principal, error)
}

// CartStore is the persistence contract for per-user cart records.
//
// AppendItem upserts: it creates the cart if absent, else appends. Both
// calls must be implemented so concurrent AppendItem calls for the same
// owner never lose an update, and calls for different owners never block
// each other. FindByOwner returns apperr.ErrNoCart for a user who has
// never added anything.
type CartStore interface {
	FindByOwner(ctx context.Context, ownerID string) (models.Cart, error)
	AppendItem(ctx context.Context, ownerID string, item models.CartItem) (models.Cart, error)
}

// ProductCatalog resolves product prices in minor units. A missing product
// is reported as apperr.ErrNotFound, never as a zero price.
type ProductCatalog interface {
	GetPrice(ctx context.Context, productID uint) (int64, error)
}
