package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/validation"
	"github.com/roach88/nysm/pkg/api"
)

// RecordsService defines the record operations the HTTP layer exposes.
type RecordsService interface {
	SaveFeelings(ctx context.Context, feelings []models.Feeling) error
	GetFeelings(ctx context.Context) ([]models.Feeling, error)
	SaveCoins(ctx context.Context, coins int64) (models.CoinLedger, error)
	GetCoins(ctx context.Context) (models.CoinLedger, error)
	SaveTodos(ctx context.Context, todos []json.RawMessage) (models.TodoList, error)
	GetTodos(ctx context.Context) (models.TodoList, error)
	UpsertBookmark(ctx context.Context, bookID string, page int, title string, lastRead time.Time) (models.Bookmark, error)
	GetBookmark(ctx context.Context, bookID string) (models.Bookmark, error)
	ListBookmarks(ctx context.Context) ([]models.Bookmark, error)
	AddProduct(ctx context.Context, p models.Product) (models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	Purchase(ctx context.Context, productID int64, offeredPrice *int64) (models.Purchase, int64, error)
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
}

// RecordsHandler serves the record store endpoints.
type RecordsHandler struct {
	logger  *slog.Logger
	records RecordsService
}

// NewRecordsHandler creates a records handler.
func NewRecordsHandler(logger *slog.Logger, records RecordsService) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		records: records,
	}
}

// SaveFeelings handles POST /api/save-feelings
func (h *RecordsHandler) SaveFeelings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.SaveFeelingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid feelings payload")
		return
	}
	if req.Feelings == nil {
		sendError(h.logger, w, http.StatusBadRequest, "feelings must be an array")
		return
	}

	if err := h.records.SaveFeelings(ctx, feelingsFromAPI(req.Feelings)); err != nil {
		sendServiceError(h.logger, w, r, err, "save feelings")
		return
	}

	sendSuccess(h.logger, w, nil, "feelings saved")
}

// GetFeelings handles GET /api/get-feelings
func (h *RecordsHandler) GetFeelings(w http.ResponseWriter, r *http.Request) {
	feelings, err := h.records.GetFeelings(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get feelings")
		return
	}

	sendSuccess(h.logger, w, feelingsToAPI(feelings), "feelings retrieved")
}

// SaveCoins handles POST /api/save-coins
func (h *RecordsHandler) SaveCoins(w http.ResponseWriter, r *http.Request) {
	var req api.SaveCoinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid coins payload")
		return
	}
	if req.Coins == nil {
		sendError(h.logger, w, http.StatusBadRequest, "coins is required and must be an integer")
		return
	}

	ledger, err := h.records.SaveCoins(r.Context(), *req.Coins)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "save coins")
		return
	}

	sendSuccess(h.logger, w, coinsToAPI(ledger), "coins saved")
}

// GetCoins handles GET /api/get-coins
func (h *RecordsHandler) GetCoins(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.records.GetCoins(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get coins")
		return
	}

	sendSuccess(h.logger, w, coinsToAPI(ledger), "coins retrieved")
}

// SaveTodos handles POST /api/save-todos
func (h *RecordsHandler) SaveTodos(w http.ResponseWriter, r *http.Request) {
	var req api.SaveTodosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid todos payload")
		return
	}
	if req.Todos == nil {
		sendError(h.logger, w, http.StatusBadRequest, "todos must be an array")
		return
	}

	list, err := h.records.SaveTodos(r.Context(), req.Todos)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "save todos")
		return
	}

	sendSuccess(h.logger, w, todosToAPI(list), "todos saved")
}

// GetTodos handles GET /api/get-todos
func (h *RecordsHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.GetTodos(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get todos")
		return
	}

	sendSuccess(h.logger, w, todosToAPI(list), "todos retrieved")
}

// SaveBookmark handles POST /api/save-bookmark
func (h *RecordsHandler) SaveBookmark(w http.ResponseWriter, r *http.Request) {
	var req api.SaveBookmarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid bookmark payload")
		return
	}
	if req.BookID == "" {
		sendError(h.logger, w, http.StatusBadRequest, "bookId is required")
		return
	}

	page, err := validation.Page(req.Page)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	var lastRead time.Time
	if req.Timestamp != "" {
		lastRead, err = time.Parse(time.RFC3339, req.Timestamp)
		if err != nil {
			sendError(h.logger, w, http.StatusBadRequest, "timestamp must be RFC3339")
			return
		}
	}

	bm, err := h.records.UpsertBookmark(r.Context(), req.BookID, page, req.Title, lastRead)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "save bookmark")
		return
	}

	sendSuccess(h.logger, w, bookmarkToAPI(bm), "bookmark saved")
}

// GetBookmark handles GET /api/get-bookmark/{bookId}
func (h *RecordsHandler) GetBookmark(w http.ResponseWriter, r *http.Request) {
	bookID := r.PathValue("bookId")
	if bookID == "" {
		sendError(h.logger, w, http.StatusBadRequest, "bookId is required")
		return
	}

	bm, err := h.records.GetBookmark(r.Context(), bookID)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get bookmark")
		return
	}

	sendSuccess(h.logger, w, bookmarkToAPI(bm), "bookmark retrieved")
}

// GetAllBookmarks handles GET /api/get-all-bookmarks
func (h *RecordsHandler) GetAllBookmarks(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.ListBookmarks(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get bookmarks")
		return
	}

	sendSuccess(h.logger, w, bookmarksToAPI(list), "bookmarks retrieved")
}

// GetProducts handles GET /api/get-products
func (h *RecordsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.ListProducts(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get products")
		return
	}

	sendSuccess(h.logger, w, productsToAPI(list), "products retrieved")
}

// AddProduct handles POST /api/add-product
func (h *RecordsHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req api.AddProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid product payload")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
	if req.ID != nil {
		product.ID = *req.ID
	}

	created, err := h.records.AddProduct(r.Context(), product)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "add product")
		return
	}

	sendSuccess(h.logger, w, productToAPI(created), "product added")
}

// PurchaseProduct handles POST /api/purchase-product
func (h *RecordsHandler) PurchaseProduct(w http.ResponseWriter, r *http.Request) {
	var req api.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, http.StatusBadRequest, "invalid purchase payload")
		return
	}

	productID, err := validation.ProductID(req.ProductID)
	if err != nil {
		sendError(h.logger, w, http.StatusBadRequest, err.Error())
		return
	}

	rec, remaining, err := h.records.Purchase(r.Context(), productID, req.Price)
	if err != nil {
		sendServiceError(h.logger, w, r, err, "purchase product")
		return
	}

	result := api.PurchaseResult{
		Purchase:       purchaseToAPI(rec),
		RemainingCoins: remaining,
	}
	sendSuccess(h.logger, w, result, "purchase completed")
}

// GetPurchases handles GET /api/get-purchases
func (h *RecordsHandler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	list, err := h.records.ListPurchases(r.Context())
	if err != nil {
		sendServiceError(h.logger, w, r, err, "get purchases")
		return
	}

	sendSuccess(h.logger, w, purchasesToAPI(list), "purchases retrieved")
}
