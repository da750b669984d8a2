package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/logger"
	"github.com/openmart/shop-api/models"
)

const (
	defaultOpTimeout        = 5 * time.Second
	defaultPriceLookupLimit = 10
)

// Service implements the cart operations. Cart access is always bound to
// the principal's subject id, never to a client-supplied user id.
type Service struct {
	store   CartStore
	catalog ProductCatalog
	log     *logger.Logger

	opTimeout        time.Duration
	priceLookupLimit int
}

func NewService(store CartStore, catalog ProductCatalog, log *logger.Logger, opTimeout time.Duration, priceLookupLimit int) *Service {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	if priceLookupLimit <= 0 {
		priceLookupLimit = defaultPriceLookupLimit
	}
	return &Service{
		store:            store,
		catalog:          catalog,
		log:              log.With("service", "cart"),
		opTimeout:        opTimeout,
		priceLookupLimit: priceLookupLimit,
	}
}

// AddToCart appends a line item to the principal's cart, creating the cart
// on first use. Repeat adds of the same product append a new line each time.
// The append is never retried here: on an ambiguous failure a silent retry
// could double-add, so the caller decides.
func (s *Service) AddToCart(ctx context.Context, p Principal, productID uint, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return models.Cart{}, fmt.Errorf("%w: quantity must be a positive integer", apperr.ErrInvalid)
	}
	if productID == 0 {
		return models.Cart{}, fmt.Errorf("%w: product id is required", apperr.ErrInvalid)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	updated, err := s.store.AppendItem(ctx, p.SubjectID, models.CartItem{
		ProductID: productID,
		Quantity:  quantity,
		AddedAt:   time.Now(),
	})
	if err != nil {
		s.log.Error("append item failed", "user_id", p.SubjectID, "product_id", productID, "err", err)
		return models.Cart{}, storeErr(err)
	}
	return updated, nil
}

// GetCart returns the principal's cart. A user who never added anything
// gets apperr.ErrNoCart, which is an outcome, not a storage failure.
func (s *Service) GetCart(ctx context.Context, p Principal) (models.Cart, error) {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	found, err := s.store.FindByOwner(ctx, p.SubjectID)
	if err != nil {
		if errors.Is(err, apperr.ErrNoCart) {
			return models.Cart{}, err
		}
		s.log.Error("find cart failed", "user_id", p.SubjectID, "err", err)
		return models.Cart{}, storeErr(err)
	}
	return found, nil
}

// CalculateTotal resolves every line's price concurrently and sums in minor
// units. If any line fails to resolve the whole computation fails; a total
// that silently skipped an unpriceable item would be wrong, not approximate.
// The errgroup context cancels outstanding lookups on the first failure.
func (s *Service) CalculateTotal(ctx context.Context, p Principal) (Total, error) {
	userCart, err := s.GetCart(ctx, p)
	if err != nil {
		return Total{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	lineTotals := make([]int64, len(userCart.Items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.priceLookupLimit)

	for idx := range userCart.Items {
		idx := idx
		g.Go(func() error {
			item := userCart.Items[idx]
			price, err := s.catalog.GetPrice(gctx, item.ProductID)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return fmt.Errorf("product %d: %w", item.ProductID, err)
				}
				return fmt.Errorf("price lookup for product %d: %w", item.ProductID, apperr.ErrDependency)
			}
			lineTotals[idx] = price * int64(item.Quantity)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Warn("total computation failed", "user_id", p.SubjectID, "err", err)
		return Total{}, err
	}

	var sum int64
	for _, lt := range lineTotals {
		sum += lt
	}
	return Total{Cents: sum}, nil
}

// storeErr folds storage errors, including timeouts, into the dependency
// failure kind while keeping the cause in the chain.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperr.ErrDependency, err)
}
