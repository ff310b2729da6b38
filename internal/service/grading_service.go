package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/grading"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Sentinel errors for evaluation uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEvaluationInFlight  = errors.New("evaluation already in progress")
)

// GradingService forwards answer sheets to the external grading service.
// One evaluation per user may be outstanding at a time; the in-flight lock
// is always released on the way out, so a failed upstream call can never
// leave a user stuck in a processing state.
type GradingService struct {
	cfg    *config.Config
	client *grading.Client
	rdb    *redis.Client
	log    zerolog.Logger
}

// NewGradingService creates a new GradingService.
func NewGradingService(cfg *config.Config, client *grading.Client, rdb *redis.Client, log zerolog.Logger) *GradingService {
	return &GradingService{
		cfg:    cfg,
		client: client,
		rdb:    rdb,
		log:    log.With().Str("component", "grading_service").Logger(),
	}
}

// Evaluate validates both uploads, takes the per-user in-flight lock, and
// relays the files to the grading service.
func (s *GradingService) Evaluate(ctx context.Context, userID int, studentPDF, keyPDF *multipart.FileHeader) (*model.GradeResult, error) {
	for _, header := range []*multipart.FileHeader{studentPDF, keyPDF} {
		if err := s.validateUpload(header); err != nil {
			return nil, err
		}
	}

	lockKey := config.StoreKey.GradingLockKey(userID)
	// TTL guards against a crashed instance leaving the lock behind.
	lockTTL := s.cfg.GradingTimeout + 30*time.Second

	acquired, err := s.rdb.SetNX(ctx, lockKey, "1", lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire grading lock: %w", err)
	}
	if !acquired {
		return nil, ErrEvaluationInFlight
	}
	defer func() {
		if err := s.rdb.Del(context.Background(), lockKey).Err(); err != nil {
			s.log.Error().Err(err).Int("user_id", userID).Msg("Failed to release grading lock")
		}
	}()

	studentFile, err := studentPDF.Open()
	if err != nil {
		return nil, fmt.Errorf("open student pdf: %w", err)
	}
	defer studentFile.Close()

	keyFile, err := keyPDF.Open()
	if err != nil {
		return nil, fmt.Errorf("open key pdf: %w", err)
	}
	defer keyFile.Close()

	started := time.Now()
	result, err := s.client.Grade(ctx, studentFile, studentPDF.Filename, keyFile, keyPDF.Filename)
	if err != nil {
		s.log.Error().Err(err).Int("user_id", userID).Msg("Evaluation failed")
		return nil, err
	}

	s.log.Info().
		Int("user_id", userID).
		Str("student", result.StudentInfo.Name).
		Int("answers", len(result.Answers)).
		Dur("elapsed", time.Since(started)).
		Msg("Evaluation complete")

	return result, nil
}

// validateUpload checks type and size limits for a single file.
func (s *GradingService) validateUpload(header *multipart.FileHeader) error {
	if contentType := header.Header.Get("Content-Type"); contentType != "application/pdf" {
		return fmt.Errorf("%w: %s (allowed: application/pdf)", ErrUnsupportedFileType, contentType)
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}
	return nil
}
