package models

import (
	"encoding/json"
	"time"
)

// Feeling represents one entry of the feelings collection.
// When Encrypted is true, UserID and Message hold obfuscated hex blobs;
// otherwise they are plaintext and must be re-encoded before persisting.
type Feeling struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Encrypted bool   `json:"encrypted"`
}

// CoinLedger is the singleton record holding the user's coin balance.
// The balance never goes negative through a committed purchase.
type CoinLedger struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Coins       int64     `json:"coins"`
}

// TodoList is the singleton todo collection. Item shape is opaque to the
// server; items are stored and returned verbatim.
type TodoList struct {
	LastUpdated time.Time         `json:"lastUpdated"`
	Todos       []json.RawMessage `json:"todos"`
}

// Bookmark is a per-book reading position. The collection holds at most
// one bookmark per BookID.
type Bookmark struct {
	LastRead time.Time `json:"lastRead"`
	BookID   string    `json:"bookId"`
	Title    string    `json:"title"`
	Page     int       `json:"page"`
}

// Product is one catalog entry. IDs default to the creation time in
// milliseconds when the caller does not supply one.
type Product struct {
	CreatedAt   time.Time `json:"createdAt"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ID          int64     `json:"id"`
	Price       int64     `json:"price"`
}

// Purchase is one entry of the append-only purchase log.
type Purchase struct {
	Timestamp   time.Time `json:"timestamp"`
	ProductName string    `json:"productName"`
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	Price       int64     `json:"price"`
}
