package integrity

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketOverrides = []byte("overrides")

// Override keys, kept from the original client storage layout.
var (
	keyOverrideFeelings  = []byte("encrypted-user-feelings")
	keyOverrideSignature = []byte("user-feelings-signature")
)

// OverrideStore persists the user's local override of the baseline
// document: an obfuscated feelings blob and its signature. It lives apart
// from the record store on purpose — resetting overrides must never touch
// the regular collections.
type OverrideStore struct {
	db *bbolt.DB
}

// OpenOverrides opens (or creates) the override database at path.
func OpenOverrides(path string) (*OverrideStore, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open override store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketOverrides)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize override bucket: %w", err)
	}

	return &OverrideStore{db: db}, nil
}

// Close closes the database.
func (o *OverrideStore) Close() error {
	if o.db == nil {
		return nil
	}
	return o.db.Close()
}

// Save stores the user's override document and its signature.
func (o *OverrideStore) Save(ctx context.Context, ciphertext, signature string) error {
	return o.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOverrides)
		if bucket == nil {
			return fmt.Errorf("override bucket not found")
		}

		if err := bucket.Put(keyOverrideFeelings, []byte(ciphertext)); err != nil {
			return fmt.Errorf("save override document: %w", err)
		}
		if err := bucket.Put(keyOverrideSignature, []byte(signature)); err != nil {
			return fmt.Errorf("save override signature: %w", err)
		}
		return nil
	})
}

// Get returns the stored override document and signature, or
// ErrOverrideNotFound when no override document exists.
func (o *OverrideStore) Get(ctx context.Context) (ciphertext, signature string, err error) {
	err = o.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOverrides)
		if bucket == nil {
			return fmt.Errorf("override bucket not found")
		}

		doc := bucket.Get(keyOverrideFeelings)
		if doc == nil {
			return ErrOverrideNotFound
		}
		ciphertext = string(doc)
		signature = string(bucket.Get(keyOverrideSignature))
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return ciphertext, signature, nil
}

// Reset deletes both override keys. Deleting keys that were never stored
// is not an error.
func (o *OverrideStore) Reset(ctx context.Context) error {
	return o.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOverrides)
		if bucket == nil {
			return fmt.Errorf("override bucket not found")
		}

		if err := bucket.Delete(keyOverrideFeelings); err != nil {
			return fmt.Errorf("delete override document: %w", err)
		}
		if err := bucket.Delete(keyOverrideSignature); err != nil {
			return fmt.Errorf("delete override signature: %w", err)
		}
		return nil
	})
}
