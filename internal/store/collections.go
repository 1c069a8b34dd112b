package store

import (
	"encoding/json"
	"fmt"
)

// Registered collection names.
const (
	Feelings  = "feelings"
	Coins     = "coins"
	Todos     = "todos"
	Bookmarks = "bookmarks"
	Products  = "products"
	Purchases = "purchases"
)

// collection describes one named JSON document: its backing file, the
// default returned while the file does not exist, and the shape check run
// before every write.
type collection struct {
	validate    func(raw json.RawMessage) error
	file        string
	defaultJSON string
}

// File names are part of the external contract and kept from the original
// data directory layout.
func defaultCollections() map[string]collection {
	return map[string]collection{
		Feelings:  {file: "encrypted-feelings.json", defaultJSON: `[]`, validate: validateFeelings},
		Coins:     {file: "user-coins.json", defaultJSON: `{"coins":0}`, validate: validateCoins},
		Todos:     {file: "user-todos.json", defaultJSON: `{"todos":[]}`, validate: validateTodos},
		Bookmarks: {file: "reading-bookmarks.json", defaultJSON: `[]`, validate: validateBookmarks},
		Products:  {file: "products.json", defaultJSON: `[]`, validate: validateProducts},
		Purchases: {file: "purchases.json", defaultJSON: `[]`, validate: validatePurchases},
	}
}

func validateFeelings(raw json.RawMessage) error {
	var items []struct {
		UserID  *string `json:"userId"`
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: feelings must be an array of records: %v", ErrValidation, err)
	}
	for i, it := range items {
		if it.UserID == nil || it.Message == nil {
			return fmt.Errorf("%w: feelings[%d] is missing userId or message", ErrValidation, i)
		}
	}
	return nil
}

func validateCoins(raw json.RawMessage) error {
	var ledger struct {
		Coins *int64 `json:"coins"`
	}
	if err := json.Unmarshal(raw, &ledger); err != nil {
		return fmt.Errorf("%w: coins must be an object with an integer coins field: %v", ErrValidation, err)
	}
	if ledger.Coins == nil {
		return fmt.Errorf("%w: coins field is required", ErrValidation)
	}
	if *ledger.Coins < 0 {
		return fmt.Errorf("%w: coins must not be negative, got %d", ErrValidation, *ledger.Coins)
	}
	return nil
}

func validateTodos(raw json.RawMessage) error {
	var list struct {
		Todos *[]json.RawMessage `json:"todos"`
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("%w: todos must be an object with a todos array: %v", ErrValidation, err)
	}
	if list.Todos == nil {
		return fmt.Errorf("%w: todos array is required", ErrValidation)
	}
	return nil
}

func validateBookmarks(raw json.RawMessage) error {
	var items []struct {
		BookID string `json:"bookId"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: bookmarks must be an array of records: %v", ErrValidation, err)
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if it.BookID == "" {
			return fmt.Errorf("%w: bookmarks[%d] is missing bookId", ErrValidation, i)
		}
		if _, dup := seen[it.BookID]; dup {
			return fmt.Errorf("%w: duplicate bookmark for book %q", ErrValidation, it.BookID)
		}
		seen[it.BookID] = struct{}{}
	}
	return nil
}

func validateProducts(raw json.RawMessage) error {
	var items []struct {
		Name  string `json:"name"`
		Price int64  `json:"price"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: products must be an array of records: %v", ErrValidation, err)
	}
	for i, it := range items {
		if it.Name == "" {
			return fmt.Errorf("%w: products[%d] is missing a name", ErrValidation, i)
		}
		if it.Price <= 0 {
			return fmt.Errorf("%w: products[%d] must have a positive price", ErrValidation, i)
		}
	}
	return nil
}

func validatePurchases(raw json.RawMessage) error {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("%w: purchases must be an array of records: %v", ErrValidation, err)
	}
	return nil
}
