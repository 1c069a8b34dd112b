package api

import (
	"encoding/json"
	"time"
)

// Response is the envelope returned by every endpoint.
type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// Feeling represents one feelings entry on the wire. UserID and Message
// carry obfuscated hex blobs when Encrypted is true.
type Feeling struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Encrypted bool   `json:"encrypted"`
}

// SaveFeelingsRequest represents POST /api/save-feelings
type SaveFeelingsRequest struct {
	Feelings []Feeling `json:"feelings"`
}

// SaveCoinsRequest represents POST /api/save-coins
type SaveCoinsRequest struct {
	Coins *int64 `json:"coins"`
}

// CoinData is the ledger as returned to clients
type CoinData struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Coins       int64     `json:"coins"`
}

// SaveTodosRequest represents POST /api/save-todos.
// Todo items are opaque to the server and stored as-is.
type SaveTodosRequest struct {
	Todos []json.RawMessage `json:"todos"`
}

// TodoData is the todo collection as returned to clients
type TodoData struct {
	LastUpdated time.Time         `json:"lastUpdated"`
	Todos       []json.RawMessage `json:"todos"`
}

// SaveBookmarkRequest represents POST /api/save-bookmark.
// Page is accepted as a JSON number or a numeric string and coerced once
// at the boundary. Timestamp is optional RFC3339; empty means "now".
type SaveBookmarkRequest struct {
	BookID    string          `json:"bookId"`
	Page      json.RawMessage `json:"page"`
	Title     string          `json:"title"`
	Timestamp string          `json:"timestamp"`
}

// Bookmark is a reading bookmark on the wire
type Bookmark struct {
	LastRead time.Time `json:"lastRead"`
	BookID   string    `json:"bookId"`
	Title    string    `json:"title"`
	Page     int       `json:"page"`
}

// AddProductRequest represents POST /api/add-product
type AddProductRequest struct {
	ID          *int64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
}

// Product is a catalog entry on the wire
type Product struct {
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ID          int64     `json:"id"`
	Price       int64     `json:"price"`
}

// PurchaseRequest represents POST /api/purchase-product.
// ProductID is accepted as a JSON number or a numeric string. Price is
// optional; when present it must match the catalog price.
type PurchaseRequest struct {
	ProductID json.RawMessage `json:"productId"`
	Price     *int64          `json:"price"`
}

// Purchase is one purchase-log entry on the wire
type Purchase struct {
	Timestamp   time.Time `json:"timestamp"`
	ProductName string    `json:"productName"`
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	Price       int64     `json:"price"`
}

// PurchaseResult represents the response of a successful purchase
type PurchaseResult struct {
	Purchase       Purchase `json:"purchase"`
	RemainingCoins int64    `json:"remainingCoins"`
}

// IntegrityStatus represents GET /api/check-integrity
type IntegrityStatus struct {
	Intact bool `json:"intact"`
}
