package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/repository"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/worker"
	"github.com/rs/zerolog"
)

// PreferenceService manages per-user display preferences stored as raw
// key-value entries: the dark-mode flag ("true"/"false" strings) and the
// legacy profile object kept for older clients.
type PreferenceService struct {
	repo      repository.StateRepository
	persister *worker.StatePersister
	log       zerolog.Logger
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(repo repository.StateRepository, persister *worker.StatePersister, log zerolog.Logger) *PreferenceService {
	return &PreferenceService{
		repo:      repo,
		persister: persister,
		log:       log.With().Str("component", "preference_service").Logger(),
	}
}

// DarkMode returns the user's dark-mode flag, defaulting to false when the
// entry is absent or not a recognizable boolean.
func (s *PreferenceService) DarkMode(ctx context.Context, userID int) bool {
	raw, ok, err := s.repo.Get(ctx, config.StoreKey.DarkModeKey(userID))
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to load dark-mode flag")
		return false
	}
	if !ok {
		return false
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return enabled
}

// SetDarkMode stores the flag as the literal strings "true"/"false".
func (s *PreferenceService) SetDarkMode(ctx context.Context, userID int, enabled bool) {
	s.persister.Enqueue(worker.PersistJob{
		Key:   config.StoreKey.DarkModeKey(userID),
		Value: strconv.FormatBool(enabled),
	})
}

// Profile returns the legacy profile object, or nil when absent or corrupt.
func (s *PreferenceService) Profile(ctx context.Context, userID int) *model.Profile {
	raw, ok, err := s.repo.Get(ctx, config.StoreKey.ProfileKey(userID))
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Failed to load profile")
		return nil
	}
	if !ok {
		return nil
	}
	var p model.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Corrupt profile entry")
		return nil
	}
	return &p
}

// SetProfile stores the legacy profile object.
func (s *PreferenceService) SetProfile(ctx context.Context, userID int, p model.Profile) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.persister.Enqueue(worker.PersistJob{
		Key:   config.StoreKey.ProfileKey(userID),
		Value: string(payload),
	})
	return nil
}
