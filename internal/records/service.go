// Package records exposes the typed operations of the record store:
// feelings, coins, todos, bookmarks, the product catalog and the purchase
// log. It is the only writer of those collections.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/store"
)

// Service implements the record operations over a *store.Store.
type Service struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a records service.
func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// SaveFeelings replaces the feelings collection. Records arriving in
// plaintext are re-encoded first so plaintext never reaches disk.
func (s *Service) SaveFeelings(ctx context.Context, feelings []models.Feeling) error {
	if feelings == nil {
		return fmt.Errorf("%w: feelings must be an array", store.ErrValidation)
	}

	encoded := EncodeFeelings(feelings)
	if err := s.store.Save(store.Feelings, encoded); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "feelings saved", slog.Int("count", len(encoded)))
	return nil
}

// GetFeelings returns the stored (encoded) feelings collection.
func (s *Service) GetFeelings(ctx context.Context) ([]models.Feeling, error) {
	raw, err := s.store.Load(store.Feelings)
	if err != nil {
		return nil, err
	}

	var feelings []models.Feeling
	if err := json.Unmarshal(raw, &feelings); err != nil {
		return nil, fmt.Errorf("%w: decode feelings: %v", store.ErrStorage, err)
	}
	return feelings, nil
}

// SaveCoins replaces the coin ledger with the given balance.
func (s *Service) SaveCoins(ctx context.Context, coins int64) (models.CoinLedger, error) {
	ledger := models.CoinLedger{
		Coins:       coins,
		LastUpdated: s.now().UTC(),
	}
	if err := s.store.Save(store.Coins, ledger); err != nil {
		return models.CoinLedger{}, err
	}

	s.logger.InfoContext(ctx, "coins saved", slog.Int64("coins", coins))
	return ledger, nil
}

// GetCoins returns the coin ledger, defaulting to a zero balance while no
// ledger file exists.
func (s *Service) GetCoins(ctx context.Context) (models.CoinLedger, error) {
	raw, err := s.store.Load(store.Coins)
	if err != nil {
		return models.CoinLedger{}, err
	}

	var ledger models.CoinLedger
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return models.CoinLedger{}, fmt.Errorf("%w: decode coins: %v", store.ErrStorage, err)
	}
	return ledger, nil
}

// SaveTodos replaces the todo collection. Item shape is opaque.
func (s *Service) SaveTodos(ctx context.Context, todos []json.RawMessage) (models.TodoList, error) {
	if todos == nil {
		return models.TodoList{}, fmt.Errorf("%w: todos must be an array", store.ErrValidation)
	}

	list := models.TodoList{
		Todos:       todos,
		LastUpdated: s.now().UTC(),
	}
	if err := s.store.Save(store.Todos, list); err != nil {
		return models.TodoList{}, err
	}

	s.logger.InfoContext(ctx, "todos saved", slog.Int("count", len(todos)))
	return list, nil
}

// GetTodos returns the todo collection, defaulting to an empty list.
func (s *Service) GetTodos(ctx context.Context) (models.TodoList, error) {
	raw, err := s.store.Load(store.Todos)
	if err != nil {
		return models.TodoList{}, err
	}

	var list models.TodoList
	if err := json.Unmarshal(raw, &list); err != nil {
		return models.TodoList{}, fmt.Errorf("%w: decode todos: %v", store.ErrStorage, err)
	}
	return list, nil
}

// UpsertBookmark replaces the bookmark for bookID or appends a new one,
// keeping at most one bookmark per book. The stored record is returned.
func (s *Service) UpsertBookmark(ctx context.Context, bookID string, page int, title string, lastRead time.Time) (models.Bookmark, error) {
	if bookID == "" {
		return models.Bookmark{}, fmt.Errorf("%w: bookId is required", store.ErrValidation)
	}
	if title == "" {
		title = fmt.Sprintf("Unnamed bookmark %d", page)
	}
	if lastRead.IsZero() {
		lastRead = s.now().UTC()
	}

	bm := models.Bookmark{
		BookID:   bookID,
		Page:     page,
		Title:    title,
		LastRead: lastRead,
	}

	_, err := s.store.Mutate(store.Bookmarks, func(current json.RawMessage) (any, error) {
		var list []models.Bookmark
		if err := json.Unmarshal(current, &list); err != nil {
			return nil, fmt.Errorf("%w: decode bookmarks: %v", store.ErrStorage, err)
		}

		replaced := false
		for i := range list {
			if list[i].BookID == bookID {
				list[i] = bm
				replaced = true
				break
			}
		}
		if !replaced {
			list = append(list, bm)
		}
		return list, nil
	})
	if err != nil {
		return models.Bookmark{}, err
	}

	s.logger.InfoContext(ctx, "bookmark saved",
		slog.String("book_id", bookID),
		slog.Int("page", page),
	)
	return bm, nil
}

// GetBookmark returns the bookmark for bookID, or ErrNotFound.
func (s *Service) GetBookmark(ctx context.Context, bookID string) (models.Bookmark, error) {
	list, err := s.ListBookmarks(ctx)
	if err != nil {
		return models.Bookmark{}, err
	}

	for _, bm := range list {
		if bm.BookID == bookID {
			return bm, nil
		}
	}
	return models.Bookmark{}, fmt.Errorf("%w: bookmark for book %q", ErrNotFound, bookID)
}

// ListBookmarks returns all bookmarks, defaulting to an empty list.
func (s *Service) ListBookmarks(ctx context.Context) ([]models.Bookmark, error) {
	raw, err := s.store.Load(store.Bookmarks)
	if err != nil {
		return nil, err
	}

	var list []models.Bookmark
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode bookmarks: %v", store.ErrStorage, err)
	}
	return list, nil
}

// AddProduct appends a product to the catalog. The id defaults to the
// creation time in milliseconds and the price must be positive.
func (s *Service) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Name == "" || p.Description == "" {
		return models.Product{}, fmt.Errorf("%w: product name and description are required", store.ErrValidation)
	}
	if p.Price <= 0 {
		return models.Product{}, fmt.Errorf("%w: product price must be positive, got %d", store.ErrValidation, p.Price)
	}
	if p.ID == 0 {
		p.ID = s.now().UnixMilli()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}

	_, err := s.store.Mutate(store.Products, func(current json.RawMessage) (any, error) {
		var list []models.Product
		if err := json.Unmarshal(current, &list); err != nil {
			return nil, fmt.Errorf("%w: decode products: %v", store.ErrStorage, err)
		}
		return append(list, p), nil
	})
	if err != nil {
		return models.Product{}, err
	}

	s.logger.InfoContext(ctx, "product added",
		slog.Int64("id", p.ID),
		slog.String("name", p.Name),
		slog.Int64("price", p.Price),
	)
	return p, nil
}

// ListProducts returns the catalog, defaulting to an empty list.
func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	raw, err := s.store.Load(store.Products)
	if err != nil {
		return nil, err
	}

	var list []models.Product
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode products: %v", store.ErrStorage, err)
	}
	return list, nil
}

// ListPurchases returns the purchase log, defaulting to an empty list.
func (s *Service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	raw, err := s.store.Load(store.Purchases)
	if err != nil {
		return nil, err
	}

	var list []models.Purchase
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("%w: decode purchases: %v", store.ErrStorage, err)
	}
	return list, nil
}

// EnsureDefaultCatalog seeds the shipped catalog once, only while no
// products file exists yet.
func (s *Service) EnsureDefaultCatalog(ctx context.Context) error {
	exists, err := s.store.Exists(store.Products)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	defaults := []models.Product{
		{
			ID:          1,
			Name:        "amuse SUNDAY",
			Description: "星期天",
			Price:       4490,
			CreatedAt:   s.now().UTC(),
		},
	}
	if err := s.store.Save(store.Products, defaults); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "default catalog created", slog.Int("products", len(defaults)))
	return nil
}
