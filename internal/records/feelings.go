package records

import (
	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/obfuscate"
)

// EncodeFeeling obfuscates the user id and message of a plaintext record
// with the content key. Records already marked encrypted pass through
// unchanged.
func EncodeFeeling(f models.Feeling) models.Feeling {
	if f.Encrypted {
		return f
	}
	f.UserID = obfuscate.EncodeHex(f.UserID, obfuscate.ContentKey)
	f.Message = obfuscate.EncodeHex(f.Message, obfuscate.ContentKey)
	f.Encrypted = true
	return f
}

// DecodeFeeling reverses EncodeFeeling. Malformed blobs surface as
// obfuscate.ErrFormat.
func DecodeFeeling(f models.Feeling) (models.Feeling, error) {
	if !f.Encrypted {
		return f, nil
	}

	userID, err := obfuscate.DecodeHex(f.UserID, obfuscate.ContentKey)
	if err != nil {
		return models.Feeling{}, err
	}
	message, err := obfuscate.DecodeHex(f.Message, obfuscate.ContentKey)
	if err != nil {
		return models.Feeling{}, err
	}

	return models.Feeling{UserID: userID, Message: message, Encrypted: false}, nil
}

// EncodeFeelings encodes every plaintext record of a collection.
func EncodeFeelings(feelings []models.Feeling) []models.Feeling {
	encoded := make([]models.Feeling, len(feelings))
	for i, f := range feelings {
		encoded[i] = EncodeFeeling(f)
	}
	return encoded
}

// DecodeFeelings decodes every encoded record of a collection.
func DecodeFeelings(feelings []models.Feeling) ([]models.Feeling, error) {
	decoded := make([]models.Feeling, len(feelings))
	for i, f := range feelings {
		d, err := DecodeFeeling(f)
		if err != nil {
			return nil, err
		}
		decoded[i] = d
	}
	return decoded, nil
}
