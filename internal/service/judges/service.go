// Package judges handles judge access tokens, validation and the voting
// lifecycle.
package judges

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/startup-demoday/jurado/internal/apierr"
	"github.com/startup-demoday/jurado/internal/models"
	"github.com/startup-demoday/jurado/internal/repository"
	"github.com/startup-demoday/jurado/pkg/logger"
)

// ErrVotingClosed is returned by Validate when the presented token belongs to
// a revoked judge. The HTTP layer maps it to 403 so clients can distinguish
// "voting ended" from "bad token".
var ErrVotingClosed = errors.New("voting is closed for this judge")

// JudgeRepository interface for judge persistence.
type JudgeRepository interface {
	Create(judge *models.Judge) error
	GetByID(id string) (*models.Judge, error)
	GetByToken(token string) (*models.Judge, error)
	List() ([]models.Judge, error)
	Update(judge *models.Judge) error
	Delete(id string) error
	DisableAll() (int64, error)
	CountDisabled() (int64, error)
	CountAll() (int64, error)
}

// Service manages judges and their access tokens.
type Service struct {
	judgeRepo JudgeRepository
	log       *logger.Logger
}

// NewService creates a new judge service.
func NewService(judgeRepo *repository.JudgeRepository, log *logger.Logger) *Service {
	return &Service{judgeRepo: judgeRepo, log: log}
}

// NewServiceWithInterfaces creates a new judge service with interface dependencies (useful for testing).
func NewServiceWithInterfaces(judgeRepo JudgeRepository, log *logger.Logger) *Service {
	return &Service{judgeRepo: judgeRepo, log: log}
}

// GenerateToken returns a new random access token.
func GenerateToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Validate resolves an access token to its judge. A token carrying the legacy
// revocation prefix, or resolving to a revoked judge, yields ErrVotingClosed.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Validate(ctx context.Context, token string) (*models.Judge, error) {
	if token == "" {
		return nil, apierr.Constraint("token is required")
	}
	// A client re-presenting an already-prefixed token is telling us the
	// judge was revoked; no lookup needed to know voting is over for them.
	if strings.HasPrefix(token, models.DisabledTokenPrefix) {
		return nil, ErrVotingClosed
	}

	judge, err := s.judgeRepo.GetByToken(token)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apierr.NotFound("invalid token")
		}
		return nil, apierr.Upstream(err, "failed to validate token")
	}

	if judge.IsDisabled() {
		return nil, ErrVotingClosed
	}

	return judge, nil
}

// CloseVoting revokes every active judge, ending the evaluation phase.
// Idempotent: a second call affects zero judges and still succeeds.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) CloseVoting(ctx context.Context) (int64, error) {
	affected, err := s.judgeRepo.DisableAll()
	if err != nil {
		return 0, apierr.Upstream(err, "failed to close voting")
	}

	s.log.Info().Int64("judges_disabled", affected).Msg("Voting closed")
	return affected, nil
}

// Create registers a judge, generating an access token when none is supplied.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Create(ctx context.Context, judge *models.Judge) error {
	if judge.Name == "" {
		return apierr.Constraint("judge name is required")
	}
	if judge.Token == "" {
		token, err := GenerateToken()
		if err != nil {
			return apierr.Upstream(err, "failed to generate token")
		}
		judge.Token = token
	}
	if judge.Status == "" {
		judge.Status = models.JudgeStatusActive
	}

	if err := s.judgeRepo.Create(judge); err != nil {
		return apierr.Upstream(err, "failed to create judge")
	}
	return nil
}

// List returns all judges.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) List(ctx context.Context) ([]models.Judge, error) {
	judges, err := s.judgeRepo.List()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to list judges")
	}
	return judges, nil
}

// VotingStatus reports how many judges are revoked versus total.
type VotingStatus struct {
	TotalJudges    int64 `json:"total_judges"`
	DisabledJudges int64 `json:"disabled_judges"`
	Closed         bool  `json:"closed"`
}

// Status summarizes the voting lifecycle. Voting counts as closed once every
// judge is revoked.
//
//nolint:revive // ctx reserved for future context-aware store operations
func (s *Service) Status(ctx context.Context) (*VotingStatus, error) {
	total, err := s.judgeRepo.CountAll()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count judges")
	}
	disabled, err := s.judgeRepo.CountDisabled()
	if err != nil {
		return nil, apierr.Upstream(err, "failed to count disabled judges")
	}

	return &VotingStatus{
		TotalJudges:    total,
		DisabledJudges: disabled,
		Closed:         total > 0 && disabled >= total,
	}, nil
}
