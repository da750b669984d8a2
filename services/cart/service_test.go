package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/openmart/shop-api/apperr"
	"github.com/openmart/shop-api/logger"
	"github.com/openmart/shop-api/models"
	"github.com/openmart/shop-api/services/cart"
)

// fakeStore keeps carts in memory with a per-call mutex, mirroring the
// store contract: append upserts, different owners never interfere.
type fakeStore struct {
	mu      sync.Mutex
	carts   map[string]*models.Cart
	nextID  uint
	appends int
}

func newFakeStore() *fakeStore {
	return &fakeStore{carts: map[string]*models.Cart{}}
}

func (f *fakeStore) FindByOwner(_ context.Context, ownerID string) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owned, ok := f.carts[ownerID]
	if !ok {
		return models.Cart{}, apperr.ErrNoCart
	}
	return copyCart(owned), nil
}

func (f *fakeStore) AppendItem(_ context.Context, ownerID string, item models.CartItem) (models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	owned, ok := f.carts[ownerID]
	if !ok {
		f.nextID++
		owned = &models.Cart{CartID: f.nextID, UserID: ownerID}
		f.carts[ownerID] = owned
	}
	f.nextID++
	item.ID = f.nextID
	item.CartID = owned.CartID
	owned.Items = append(owned.Items, item)
	return copyCart(owned), nil
}

func copyCart(c *models.Cart) models.Cart {
	out := *c
	out.Items = append([]models.CartItem(nil), c.Items...)
	return out
}

// catalogFunc adapts a function to the ProductCatalog port.
type catalogFunc func(ctx context.Context, productID uint) (int64, error)

func (f catalogFunc) GetPrice(ctx context.Context, productID uint) (int64, error) {
	return f(ctx, productID)
}

func mapCatalog(prices map[uint]int64) catalogFunc {
	return func(_ context.Context, productID uint) (int64, error) {
		price, ok := prices[productID]
		if !ok {
			return 0, apperr.ErrNotFound
		}
		return price, nil
	}
}

func newTestService(t *testing.T, store cart.CartStore, catalog cart.ProductCatalog) *cart.Service {
	t.Helper()
	log, err := logger.New("debug")
	require.NoError(t, err)
	return cart.NewService(store, catalog, log, 2*time.Second, 4)
}

func TestAddToCart_RejectsNonPositiveQuantity(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(t, store, mapCatalog(nil))
	p := cart.Principal{SubjectID: "u1", Role: models.RoleCustomer}

	for _, qty := range []int{0, -3} {
		_, err := svc.AddToCart(context.Background(), p, 1, qty)
		require.ErrorIs(t, err, apperr.ErrInvalid)
	}

	// Cart must be unchanged: the user still has no cart at all.
	_, err := svc.GetCart(context.Background(), p)
	require.ErrorIs(t, err, apperr.ErrNoCart)
	assert.Zero(t, store.appends)
}

func TestAddToCart_RejectsMissingProductID(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(nil))
	p := cart.Principal{SubjectID: "u1"}

	_, err := svc.AddToCart(context.Background(), p, 0, 1)
	require.ErrorIs(t, err, apperr.ErrInvalid)
}

func TestAddToCart_AppendsRepeatProductAsNewLine(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(nil))
	p := cart.Principal{SubjectID: "u1"}

	_, err := svc.AddToCart(context.Background(), p, 7, 1)
	require.NoError(t, err)
	updated, err := svc.AddToCart(context.Background(), p, 7, 2)
	require.NoError(t, err)

	// Append-only: two lines for the same product, no quantity merge.
	require.Len(t, updated.Items, 2)
	assert.Equal(t, 1, updated.Items[0].Quantity)
	assert.Equal(t, 2, updated.Items[1].Quantity)
}

func TestGetCart_NoCartForNewUser(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(nil))

	_, err := svc.GetCart(context.Background(), cart.Principal{SubjectID: "never-added"})
	require.ErrorIs(t, err, apperr.ErrNoCart)
}

func TestAddToCart_ConcurrentAddsBothPresent(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(nil))
	p := cart.Principal{SubjectID: "u1"}

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		_, err := svc.AddToCart(ctx, p, 1, 2)
		return err
	})
	g.Go(func() error {
		_, err := svc.AddToCart(ctx, p, 2, 1)
		return err
	})
	require.NoError(t, g.Wait())

	updated, err := svc.GetCart(context.Background(), p)
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)

	got := map[uint]bool{}
	for _, item := range updated.Items {
		got[item.ProductID] = true
	}
	assert.True(t, got[1] && got[2], "expected both concurrent adds present, got %+v", updated.Items)
}

func TestCalculateTotal_NoCartIsNotZero(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(nil))

	_, err := svc.CalculateTotal(context.Background(), cart.Principal{SubjectID: "never-added"})
	require.ErrorIs(t, err, apperr.ErrNoCart)
}

func TestCalculateTotal_SumsPriceTimesQuantity(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(map[uint]int64{
		1: 1000, // 10.00
		2: 500,  // 5.00
	}))
	p := cart.Principal{SubjectID: "u1"}

	_, err := svc.AddToCart(context.Background(), p, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), p, 2, 1)
	require.NoError(t, err)

	total, err := svc.CalculateTotal(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), total.Cents)
	assert.Equal(t, "25.00", total.String())
}

func TestCalculateTotal_CommutativeOverItemOrder(t *testing.T) {
	prices := map[uint]int64{1: 199, 2: 2350, 3: 99}
	lines := []struct {
		productID uint
		qty       int
	}{{1, 3}, {2, 1}, {3, 7}}

	totalFor := func(order []int) int64 {
		svc := newTestService(t, newFakeStore(), mapCatalog(prices))
		p := cart.Principal{SubjectID: "u1"}
		for _, i := range order {
			_, err := svc.AddToCart(context.Background(), p, lines[i].productID, lines[i].qty)
			require.NoError(t, err)
		}
		total, err := svc.CalculateTotal(context.Background(), p)
		require.NoError(t, err)
		return total.Cents
	}

	assert.Equal(t, totalFor([]int{0, 1, 2}), totalFor([]int{2, 0, 1}))
}

func TestCalculateTotal_FailsWholeOnUnresolvableProduct(t *testing.T) {
	svc := newTestService(t, newFakeStore(), mapCatalog(map[uint]int64{1: 1000}))
	p := cart.Principal{SubjectID: "u1"}

	_, err := svc.AddToCart(context.Background(), p, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), p, 99, 1) // never in catalog
	require.NoError(t, err)

	_, err = svc.CalculateTotal(context.Background(), p)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCalculateTotal_CancelsSiblingLookupsOnFailure(t *testing.T) {
	var sawCancel sync.WaitGroup
	sawCancel.Add(1)

	catalog := catalogFunc(func(ctx context.Context, productID uint) (int64, error) {
		if productID == 1 {
			return 0, apperr.ErrNotFound
		}
		// Sibling lookup: block until the group cancels us.
		<-ctx.Done()
		sawCancel.Done()
		return 0, ctx.Err()
	})

	svc := newTestService(t, newFakeStore(), catalog)
	p := cart.Principal{SubjectID: "u1"}
	_, err := svc.AddToCart(context.Background(), p, 1, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(context.Background(), p, 2, 1)
	require.NoError(t, err)

	_, err = svc.CalculateTotal(context.Background(), p)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	sawCancel.Wait()
}

func TestCalculateTotal_CatalogOutageIsDependencyFailure(t *testing.T) {
	catalog := catalogFunc(func(context.Context, uint) (int64, error) {
		return 0, context.DeadlineExceeded
	})
	svc := newTestService(t, newFakeStore(), catalog)
	p := cart.Principal{SubjectID: "u1"}

	_, err := svc.AddToCart(context.Background(), p, 1, 1)
	require.NoError(t, err)

	_, err = svc.CalculateTotal(context.Background(), p)
	require.ErrorIs(t, err, apperr.ErrDependency)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "25.00", cart.FormatCents(2500))
	assert.Equal(t, "0.05", cart.FormatCents(5))
	assert.Equal(t, "0.00", cart.FormatCents(0))
	assert.Equal(t, "-1.50", cart.FormatCents(-150))
}
