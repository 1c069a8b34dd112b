// Package integrity validates the feelings baseline shipped with the
// program and restores it when local copies are corrupted or tampered
// with. Detection relies on the obfuscation layer's checksum, which is a
// deterrent, not a security boundary.
package integrity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/roach88/nysm/internal/models"
	"github.com/roach88/nysm/internal/obfuscate"
)

// Service checks the embedded baseline and manages user overrides of it.
type Service struct {
	overrides *OverrideStore
	logger    *slog.Logger
}

// NewService creates an integrity service over the given override store.
func NewService(overrides *OverrideStore, logger *slog.Logger) *Service {
	return &Service{
		overrides: overrides,
		logger:    logger,
	}
}

// decodeBaseline decodes, parses and verifies the embedded baseline.
func decodeBaseline() ([]models.Feeling, error) {
	plaintext := obfuscate.DecodeText(baselineCiphertext, obfuscate.DocumentKey)

	var feelings []models.Feeling
	if err := json.Unmarshal([]byte(plaintext), &feelings); err != nil {
		return nil, fmt.Errorf("parse baseline document: %w", err)
	}
	if !obfuscate.Verify(feelings, baselineSignature) {
		return nil, ErrIntegrity
	}
	return feelings, nil
}

// Check reports whether the embedded baseline still matches its reference
// signature.
func (s *Service) Check(ctx context.Context) bool {
	if _, err := decodeBaseline(); err != nil {
		s.logger.WarnContext(ctx, "baseline integrity check failed", slog.Any("error", err))
		return false
	}
	return true
}

// RestoreBaseline returns the trusted baseline document, or an empty
// collection when the baseline cannot be validated.
func (s *Service) RestoreBaseline(ctx context.Context) []models.Feeling {
	feelings, err := decodeBaseline()
	if err != nil {
		s.logger.ErrorContext(ctx, "baseline restore failed", slog.Any("error", err))
		return []models.Feeling{}
	}
	return feelings
}

// ResetUserOverrides drops only the locally persisted override keys for
// the baseline. Regular collections are untouched.
func (s *Service) ResetUserOverrides(ctx context.Context) error {
	if err := s.overrides.Reset(ctx); err != nil {
		return fmt.Errorf("reset user overrides: %w", err)
	}
	s.logger.InfoContext(ctx, "user overrides reset")
	return nil
}
