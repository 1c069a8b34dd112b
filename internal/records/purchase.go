package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/store"
)

// Purchase debits the ledger by the catalog price of productID and appends
// a record to the purchase log, returning the record and the remaining
// balance.
//
// The price is always resolved from the catalog. offeredPrice is only a
// cross-check: when non-nil it must equal the catalog price or the
// purchase is rejected as a validation error. A caller-supplied price is
// never charged.
//
// The sufficiency check and the debit run inside the ledger's write lock,
// so two concurrent purchases cannot both pass the check against a stale
// balance. The ledger commit happens before the log append; if the append
// then fails, the debit is re-credited under the same lock.
func (s *Service) Purchase(ctx context.Context, productID int64, offeredPrice *int64) (models.Purchase, int64, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return models.Purchase{}, 0, err
	}

	var product *models.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return models.Purchase{}, 0, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	price := product.Price
	if offeredPrice != nil && *offeredPrice != price {
		return models.Purchase{}, 0, fmt.Errorf(
			"%w: offered price %d does not match catalog price %d",
			store.ErrValidation, *offeredPrice, price,
		)
	}

	var remaining int64
	_, err = s.store.Mutate(store.Coins, func(current json.RawMessage) (any, error) {
		var ledger models.CoinLedger
		if err := json.Unmarshal(current, &ledger); err != nil {
			return nil, fmt.Errorf("%w: decode coins: %v", store.ErrStorage, err)
		}
		if ledger.Coins < price {
			return nil, fmt.Errorf("%w: balance %d, need %d", ErrInsufficientFunds, ledger.Coins, price)
		}

		ledger.Coins -= price
		ledger.LastUpdated = s.now().UTC()
		remaining = ledger.Coins
		return ledger, nil
	})
	if err != nil {
		return models.Purchase{}, 0, err
	}

	rec := models.Purchase{
		ID:          s.now().UnixMilli(),
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       price,
		Timestamp:   s.now().UTC(),
	}

	_, err = s.store.Mutate(store.Purchases, func(current json.RawMessage) (any, error) {
		var list []models.Purchase
		if err := json.Unmarshal(current, &list); err != nil {
			return nil, fmt.Errorf("%w: decode purchases: %v", store.ErrStorage, err)
		}
		return append(list, rec), nil
	})
	if err != nil {
		s.refund(ctx, price)
		return models.Purchase{}, 0, err
	}

	s.logger.InfoContext(ctx, "product purchased",
		slog.Int64("product_id", product.ID),
		slog.Int64("price", price),
		slog.Int64("remaining", remaining),
	)
	return rec, remaining, nil
}

// refund re-credits a committed debit after the purchase-log append failed.
func (s *Service) refund(ctx context.Context, price int64) {
	_, err := s.store.Mutate(store.Coins, func(current json.RawMessage) (any, error) {
		var ledger models.CoinLedger
		if err := json.Unmarshal(current, &ledger); err != nil {
			return nil, fmt.Errorf("%w: decode coins: %v", store.ErrStorage, err)
		}
		ledger.Coins += price
		ledger.LastUpdated = s.now().UTC()
		return ledger, nil
	})
	if err != nil {
		// The debit is on disk without a purchase record. Nothing more can
		// be done here beyond making the inconsistency loud.
		s.logger.ErrorContext(ctx, "refund after failed purchase append did not commit",
			slog.Int64("price", price),
			slog.Any("error", err),
		)
	}
}
