package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/eventscope/pkg/domain"
	"github.com/umputun/eventscope/pkg/repository"
)

func setupService(t *testing.T) (*Service, *repository.Repositories) {
	t.Helper()
	repos, err := repository.NewRepositories(context.Background(), repository.Config{
		DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxLifetime: time.Hour,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return New(repos), repos
}

func TestService_ModerationFlow(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()

	u := &domain.User{Name: "mod", Email: "mod@example.com"}
	require.NoError(t, repos.User.CreateUser(ctx, u))
	src := &domain.Source{URL: "https://example.com/events", Name: "example", UserID: u.ID, IsActive: true}
	require.NoError(t, svc.CreateSource(ctx, src))

	approve := &domain.PendingEvent{SourceID: src.ID, UserID: u.ID, Category: domain.CategoryConcert,
		CandidateEvent: domain.CandidateEvent{Title: "Jazz Night", SourceURL: "https://example.com/jazz"}}
	require.NoError(t, svc.CreatePending(ctx, approve))
	reject := &domain.PendingEvent{SourceID: src.ID, UserID: u.ID, Category: domain.CategoryOther,
		CandidateEvent: domain.CandidateEvent{Title: "Spam", SourceURL: "https://example.com/spam"}}
	require.NoError(t, svc.CreatePending(ctx, reject))

	ev, err := svc.ApprovePending(ctx, approve.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Night", ev.Title)
	assert.Equal(t, approve.ID, ev.PendingEventID)
	assert.Equal(t, domain.CategoryConcert, ev.Category)

	_, err = svc.ApprovePending(ctx, approve.ID)
	require.ErrorIs(t, err, repository.ErrNotPending)

	require.NoError(t, svc.RejectPending(ctx, reject.ID))
	got, err := svc.GetPending(ctx, reject.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, got.Status)

	keys, err := svc.GetPublishedKeys(ctx, domain.ScopeFor(src))
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "Jazz Night", keys[0].Title)

	pending, err := svc.ListPending(ctx, domain.PendingFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestService_GrantMonthlyCredits(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()

	partner := &domain.User{Name: "partner", Email: "p@example.com", IsPartner: true}
	require.NoError(t, repos.User.CreateUser(ctx, partner))
	regular := &domain.User{Name: "regular", Email: "r@example.com"}
	require.NoError(t, repos.User.CreateUser(ctx, regular))

	granted, err := svc.GrantMonthlyCredits(ctx, "2025-03", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, granted)

	granted, err = svc.GrantMonthlyCredits(ctx, "2025-03", 2)
	require.NoError(t, err)
	assert.Zero(t, granted, "second grant in the same month is a no-op")

	u, err := svc.GetUser(ctx, partner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, u.Credits)
	u, err = svc.GetUser(ctx, regular.ID)
	require.NoError(t, err)
	assert.Zero(t, u.Credits)
}

func TestService_Leases(t *testing.T) {
	svc, repos := setupService(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	u := &domain.User{Name: "owner", Email: "o@example.com"}
	require.NoError(t, repos.User.CreateUser(ctx, u))
	src := &domain.Source{URL: "https://example.com/a", Name: "a", UserID: u.ID, IsActive: true}
	require.NoError(t, svc.CreateSource(ctx, src))

	ok, err := svc.AcquireLease(ctx, src.ID, "one", now, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.AcquireLease(ctx, src.ID, "two", now, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held by another owner")

	require.NoError(t, svc.ReleaseLease(ctx, src.ID, "one"))
	ok, err = svc.AcquireLease(ctx, src.ID, "two", now, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
