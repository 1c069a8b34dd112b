package records

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/store"
)

func seedProduct(t *testing.T, svc *Service, price int64) models.Product {
	t.Helper()

	p, err := svc.AddProduct(context.Background(), models.Product{
		Name:        "amuse SUNDAY",
		Description: "星期天",
		Price:       price,
	})
	require.NoError(t, err)
	return p
}

func TestPurchaseDebitsAndLogs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, svc, 4490)
	_, err := svc.SaveCoins(ctx, 5000)
	require.NoError(t, err)

	rec, remaining, err := svc.Purchase(ctx, product.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(510), remaining)
	assert.Equal(t, product.ID, rec.ProductID)
	assert.Equal(t, "amuse SUNDAY", rec.ProductName)
	assert.Equal(t, int64(4490), rec.Price)

	ledger, err := svc.GetCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(510), ledger.Coins)

	log, err := svc.ListPurchases(ctx)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, rec.ID, log[0].ID)
}

func TestPurchaseExactBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, svc, 100)
	_, err := svc.SaveCoins(ctx, 100)
	require.NoError(t, err)

	_, remaining, err := svc.Purchase(ctx, product.ID, nil)
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, svc, 4490)
	_, err := svc.SaveCoins(ctx, 4489)
	require.NoError(t, err)

	_, _, err = svc.Purchase(ctx, product.ID, nil)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// nothing changed: balance intact, log empty
	ledger, err := svc.GetCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4489), ledger.Coins)

	log, err := svc.ListPurchases(ctx)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestPurchaseUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SaveCoins(ctx, 10000)
	require.NoError(t, err)

	_, _, err = svc.Purchase(ctx, 999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchasePriceCrossCheck(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, svc, 4490)
	_, err := svc.SaveCoins(ctx, 10000)
	require.NoError(t, err)

	// an offered price below the catalog price is rejected, not honored
	offered := int64(1)
	_, _, err = svc.Purchase(ctx, product.ID, &offered)
	require.ErrorIs(t, err, store.ErrValidation)

	ledger, err := svc.GetCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), ledger.Coins)

	// a matching offered price goes through
	offered = 4490
	_, remaining, err := svc.Purchase(ctx, product.ID, &offered)
	require.NoError(t, err)
	assert.Equal(t, int64(5510), remaining)
}

func TestConcurrentPurchasesCannotOverspend(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product := seedProduct(t, svc, 60)
	_, err := svc.SaveCoins(ctx, 100)
	require.NoError(t, err)

	// two 60-coin purchases against a 100-coin balance: exactly one may
	// succeed, no matter the interleaving
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, errs[i] = svc.Purchase(ctx, product.ID, nil)
		}()
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, ErrInsufficientFunds)
			rejected++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	ledger, err := svc.GetCoins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), ledger.Coins)

	log, err := svc.ListPurchases(ctx)
	require.NoError(t, err)
	assert.Len(t, log, 1)
}
