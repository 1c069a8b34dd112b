package handlers

import (
	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/pkg/api"
)

// Conversions between wire types and internal models. The shapes match
// field for field; keeping them separate lets the wire format evolve
// without leaking into storage.

func feelingsFromAPI(in []api.Feeling) []models.Feeling {
	out := make([]models.Feeling, len(in))
	for i, f := range in {
		out[i] = models.Feeling{
			UserID:    f.UserID,
			Message:   f.Message,
			Encrypted: f.Encrypted,
		}
	}
	return out
}

func feelingsToAPI(in []models.Feeling) []api.Feeling {
	out := make([]api.Feeling, len(in))
	for i, f := range in {
		out[i] = api.Feeling{
			UserID:    f.UserID,
			Message:   f.Message,
			Encrypted: f.Encrypted,
		}
	}
	return out
}

func coinsToAPI(in models.CoinLedger) api.CoinData {
	return api.CoinData{
		Coins:       in.Coins,
		LastUpdated: in.LastUpdated,
	}
}

func todosToAPI(in models.TodoList) api.TodoData {
	return api.TodoData{
		Todos:       in.Todos,
		LastUpdated: in.LastUpdated,
	}
}

func bookmarkToAPI(in models.Bookmark) api.Bookmark {
	return api.Bookmark{
		BookID:   in.BookID,
		Page:     in.Page,
		Title:    in.Title,
		LastRead: in.LastRead,
	}
}

func bookmarksToAPI(in []models.Bookmark) []api.Bookmark {
	out := make([]api.Bookmark, len(in))
	for i, bm := range in {
		out[i] = bookmarkToAPI(bm)
	}
	return out
}

func productToAPI(in models.Product) api.Product {
	return api.Product{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   in.CreatedAt,
	}
}

func productsToAPI(in []models.Product) []api.Product {
	out := make([]api.Product, len(in))
	for i, p := range in {
		out[i] = productToAPI(p)
	}
	return out
}

func purchaseToAPI(in models.Purchase) api.Purchase {
	return api.Purchase{
		ID:          in.ID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Price:       in.Price,
		Timestamp:   in.Timestamp,
	}
}

func purchasesToAPI(in []models.Purchase) []api.Purchase {
	out := make([]api.Purchase, len(in))
	for i, p := range in {
		out[i] = purchaseToAPI(p)
	}
	return out
}
