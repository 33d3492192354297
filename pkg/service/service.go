// Package service provides unified access to repositories for the pipeline, the scheduler and the server
package service

import (
	"context"
	"time"

	"github.com/umputun/eventscope/pkg/domain"
	"github.com/umputun/eventscope/pkg/repository"
)

// Service delegates to the individual repositories
type Service struct {
	sourceRepo  *repository.SourceRepository
	userRepo    *repository.UserRepository
	pendingRepo *repository.PendingRepository
	eventRepo   *repository.EventRepository
	settingRepo *repository.SettingRepository
	leaseRepo   *repository.LeaseRepository
}

// New creates a service over the repository bundle
func New(repos *repository.Repositories) *Service {
	return &Service{
		sourceRepo:  repos.Source,
		userRepo:    repos.User,
		pendingRepo: repos.Pending,
		eventRepo:   repos.Event,
		settingRepo: repos.Setting,
		leaseRepo:   repos.Lease,
	}
}

// Source methods

func (s *Service) CreateSource(ctx context.Context, src *domain.Source) error {
	return s.sourceRepo.CreateSource(ctx, src)
}

func (s *Service) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	return s.sourceRepo.GetSource(ctx, id)
}

func (s *Service) ListSources(ctx context.Context, userID int64) ([]domain.Source, error) {
	return s.sourceRepo.ListSources(ctx, userID)
}

func (s *Service) GetSchedulableSources(ctx context.Context) ([]domain.Source, error) {
	return s.sourceRepo.GetSchedulableSources(ctx)
}

func (s *Service) UpdateSourceScraped(ctx context.Context, id int64, at time.Time, eventCount int) error {
	return s.sourceRepo.UpdateSourceScraped(ctx, id, at, eventCount)
}

func (s *Service) UpdateSourceError(ctx context.Context, id int64, at time.Time, errMsg string) error {
	return s.sourceRepo.UpdateSourceError(ctx, id, at, errMsg)
}

func (s *Service) UpdateSource(ctx context.Context, id int64, upd domain.SourceUpdate) error {
	return s.sourceRepo.UpdateSource(ctx, id, upd)
}

func (s *Service) SetSourceActive(ctx context.Context, id int64, active bool) error {
	return s.sourceRepo.SetSourceActive(ctx, id, active)
}

func (s *Service) DeleteSource(ctx context.Context, id int64) error {
	return s.sourceRepo.DeleteSource(ctx, id)
}

// Queue methods

func (s *Service) GetQueueKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error) {
	return s.pendingRepo.GetQueueKeys(ctx, scope)
}

func (s *Service) GetPublishedKeys(ctx context.Context, scope domain.DedupScope) ([]domain.DedupKey, error) {
	return s.eventRepo.GetPublishedKeys(ctx, scope)
}

func (s *Service) CreatePending(ctx context.Context, p *domain.PendingEvent) error {
	return s.pendingRepo.CreatePending(ctx, p)
}

// Moderation methods

func (s *Service) GetPending(ctx context.Context, id int64) (*domain.PendingEvent, error) {
	return s.pendingRepo.GetPending(ctx, id)
}

func (s *Service) ListPending(ctx context.Context, filter domain.PendingFilter) ([]domain.PendingEvent, error) {
	return s.pendingRepo.ListPending(ctx, filter)
}

func (s *Service) UpdatePending(ctx context.Context, id int64, upd domain.PendingUpdate) error {
	return s.pendingRepo.UpdatePending(ctx, id, upd)
}

func (s *Service) RejectPending(ctx context.Context, id int64) error {
	return s.pendingRepo.RejectPending(ctx, id, time.Now())
}

// ApprovePending promotes the entry and returns the published event
func (s *Service) ApprovePending(ctx context.Context, id int64) (*domain.Event, error) {
	eventID, err := s.pendingRepo.ApprovePending(ctx, id, time.Now())
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetEvent(ctx, eventID)
}

// Entitlement and lease methods

func (s *Service) GrantMonthlyCredits(ctx context.Context, month string, amount int) (int, error) {
	return s.settingRepo.GrantMonthlyCredits(ctx, month, amount)
}

func (s *Service) AcquireLease(ctx context.Context, sourceID int64, owner string, now time.Time, ttl time.Duration) (bool, error) {
	return s.leaseRepo.AcquireLease(ctx, sourceID, owner, now, ttl)
}

func (s *Service) ReleaseLease(ctx context.Context, sourceID int64, owner string) error {
	return s.leaseRepo.ReleaseLease(ctx, sourceID, owner)
}

func (s *Service) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.GetUser(ctx, id)
}
