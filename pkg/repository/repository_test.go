package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/eventscope/pkg/domain"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func createUser(t *testing.T, repos *Repositories, name string, partner bool) *domain.User {
	t.Helper()
	u := &domain.User{Name: name, Email: name + "@example.com", IsPartner: partner}
	require.NoError(t, repos.User.CreateUser(context.Background(), u))
	return u
}

func createSource(t *testing.T, repos *Repositories, userID int64, global bool) *domain.Source {
	t.Helper()
	src := &domain.Source{URL: "https://example.com/events", Name: "example", UserID: userID, IsGlobal: global, IsActive: true}
	require.NoError(t, repos.Source.CreateSource(context.Background(), src))
	return src
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	require.NoError(t, repos.Ping(context.Background()))

	u := createUser(t, repos, "alice", true)
	assert.NotZero(t, u.ID)

	got, err := repos.User.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
	assert.True(t, got.IsPartner)
	assert.Zero(t, got.Credits)

	_, err = repos.User.GetUser(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repos.User.SetPartner(context.Background(), u.ID, false))
	got, err = repos.User.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPartner)
}

func TestSourceRepository_CRUD(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u := createUser(t, repos, "bob", false)

	src := &domain.Source{URL: "https://theater.example.com/spielplan", Name: "theater", UserID: u.ID,
		IsActive: true, DefaultCategory: domain.CategoryTheater, DefaultCity: "Wien"}
	require.NoError(t, repos.Source.CreateSource(ctx, src))
	require.NotZero(t, src.ID)

	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, src.URL, got.URL)
	assert.Equal(t, domain.CategoryTheater, got.DefaultCategory)
	assert.Equal(t, "Wien", got.DefaultCity)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.LastScrapedAt)
	assert.Zero(t, got.ErrorCount)
	assert.False(t, got.OwnerIsPartner)

	other := createUser(t, repos, "carol", false)
	createSource(t, repos, other.ID, false)
	global := createSource(t, repos, other.ID, true)

	all, err := repos.Source.ListSources(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repos.Source.ListSources(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2, "own source plus global source")
	assert.Equal(t, src.ID, mine[0].ID)
	assert.Equal(t, global.ID, mine[1].ID)

	require.NoError(t, repos.Source.DeleteSource(ctx, src.ID))
	_, err = repos.Source.GetSource(ctx, src.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, repos.Source.DeleteSource(ctx, src.ID), ErrNotFound)
}

func TestSourceRepository_UpdateSource(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u := createUser(t, repos, "edna", false)
	src := &domain.Source{URL: "https://oper.example.com/spielplan", Name: "oper", UserID: u.ID, IsActive: true,
		DefaultCategory: domain.CategoryTheater, DefaultCity: "Graz"}
	require.NoError(t, repos.Source.CreateSource(ctx, src))
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Source.UpdateSourceError(ctx, src.ID, at, "timeout"))

	name, cat, city := "Oper Graz", domain.CategoryOpera, ""
	require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, domain.SourceUpdate{Name: &name, DefaultCategory: &cat, DefaultCity: &city}))

	got, err := repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oper Graz", got.Name)
	assert.Equal(t, domain.CategoryOpera, got.DefaultCategory)
	assert.Empty(t, got.DefaultCity)
	assert.Equal(t, "https://oper.example.com/spielplan", got.URL, "url untouched")
	assert.Equal(t, 1, got.ErrorCount, "health fields untouched")
	assert.Equal(t, "timeout", got.LastError)

	newURL := "https://oper.example.com/programm"
	require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, domain.SourceUpdate{URL: &newURL}))
	got, err = repos.Source.GetSource(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, newURL, got.URL)

	require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, domain.SourceUpdate{}), "empty update on existing source")
	require.ErrorIs(t, repos.Source.UpdateSource(ctx, 999, domain.SourceUpdate{}), ErrNotFound)
	require.ErrorIs(t, repos.Source.UpdateSource(ctx, 999, domain.SourceUpdate{Name: &name}), ErrNotFound)
}

func TestSourceRepository_Health(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u := createUser(t, repos, "dave", true)
	src := createSource(t, repos, u.ID, false)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("errors accumulate", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateSourceError(ctx, src.ID, now, "timeout"))
		require.NoError(t, repos.Source.UpdateSourceError(ctx, src.ID, now.Add(time.Hour), "connection refused"))
		got, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.ErrorCount)
		assert.Equal(t, "connection refused", got.LastError)
		require.NotNil(t, got.LastScrapedAt)
		assert.True(t, got.LastScrapedAt.Equal(now.Add(time.Hour)))
	})

	t.Run("success resets errors", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateSourceScraped(ctx, src.ID, now.Add(2*time.Hour), 7))
		got, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ErrorCount)
		assert.Empty(t, got.LastError)
		assert.Equal(t, 7, got.LastEventCount)
		assert.True(t, got.LastScrapedAt.Equal(now.Add(2*time.Hour)))
	})

	t.Run("re-enable clears errors", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateSourceError(ctx, src.ID, now, "boom"))
		require.NoError(t, repos.Source.SetSourceActive(ctx, src.ID, false))
		got, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.Equal(t, 1, got.ErrorCount, "disable keeps error state")

		require.NoError(t, repos.Source.SetSourceActive(ctx, src.ID, true))
		got, err = repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.True(t, got.IsActive)
		assert.Zero(t, got.ErrorCount)
		assert.Empty(t, got.LastError)
	})

	t.Run("missing source", func(t *testing.T) {
		require.ErrorIs(t, repos.Source.UpdateSourceError(ctx, 999, now, "x"), ErrNotFound)
		require.ErrorIs(t, repos.Source.UpdateSourceScraped(ctx, 999, now, 0), ErrNotFound)
		require.ErrorIs(t, repos.Source.SetSourceActive(ctx, 999, true), ErrNotFound)
	})
}

func TestSourceRepository_GetSchedulableSources(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	partner := createUser(t, repos, "partner", true)
	regular := createUser(t, repos, "regular", false)

	partnerSrc := createSource(t, repos, partner.ID, false)
	regularSrc := createSource(t, repos, regular.ID, false)
	globalSrc := createSource(t, repos, regular.ID, true)
	inactive := createSource(t, repos, partner.ID, false)
	require.NoError(t, repos.Source.SetSourceActive(ctx, inactive.ID, false))

	sources, err := repos.Source.GetSchedulableSources(ctx)
	require.NoError(t, err)
	ids := make([]int64, 0, len(sources))
	for _, s := range sources {
		ids = append(ids, s.ID)
		assert.True(t, s.Schedulable())
	}
	assert.ElementsMatch(t, []int64{partnerSrc.ID, globalSrc.ID}, ids)
	assert.NotContains(t, ids, regularSrc.ID, "downgraded owner skipped")

	// downgrade the partner, the source is skipped but stays active
	require.NoError(t, repos.User.SetPartner(ctx, partner.ID, false))
	sources, err = repos.Source.GetSchedulableSources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, globalSrc.ID, sources[0].ID)
	got, err := repos.Source.GetSource(ctx, partnerSrc.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestPendingRepository_CreateAndList(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u := createUser(t, repos, "erin", false)
	src := createSource(t, repos, u.ID, false)

	start := time.Date(2025, 5, 1, 19, 30, 0, 0, time.UTC)
	p := &domain.PendingEvent{
		SourceID: src.ID,
		UserID:   u.ID,
		Category: domain.CategoryConcert,
		CandidateEvent: domain.CandidateEvent{
			Title:     "Jazz Night",
			StartAt:   &start,
			City:      "Graz",
			Tags:      []string{"jazz", "live"},
			SourceURL: "https://example.com/events/jazz",
		},
	}
	require.NoError(t, repos.Pending.CreatePending(ctx, p))
	require.NotZero(t, p.ID)

	got, err := repos.Pending.GetPending(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, src.ID, got.SourceID)
	assert.Equal(t, "Jazz Night", got.Title)
	assert.Equal(t, []string{"jazz", "live"}, got.Tags)
	require.NotNil(t, got.StartAt)
	assert.True(t, got.StartAt.Equal(start))
	assert.Nil(t, got.EndAt)

	other := createUser(t, repos, "frank", false)
	require.NoError(t, repos.Pending.CreatePending(ctx, &domain.PendingEvent{UserID: other.ID, Category: domain.CategoryOther,
		CandidateEvent: domain.CandidateEvent{Title: "Flohmarkt"}}))

	list, err := repos.Pending.ListPending(ctx, domain.PendingFilter{UserID: u.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)

	list, err = repos.Pending.ListPending(ctx, domain.PendingFilter{Status: domain.StatusPending})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, err = repos.Pending.ListPending(ctx, domain.PendingFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repos.Pending.GetPending(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPendingRepository_Moderation(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u := createUser(t, repos, "gina", false)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	newEntry := func(title string) *domain.PendingEvent {
		p := &domain.PendingEvent{UserID: u.ID, Category: domain.CategoryOther,
			CandidateEvent: domain.CandidateEvent{Title: title, SourceURL: "https://example.com/" + title}}
		require.NoError(t, repos.Pending.CreatePending(ctx, p))
		return p
	}

	t.Run("edit while pending", func(t *testing.T) {
		p := newEntry("draft")
		title, cat := "Final Title", domain.CategoryReading
		require.NoError(t, repos.Pending.UpdatePending(ctx, p.ID, domain.PendingUpdate{Title: &title, Category: &cat}))
		got, err := repos.Pending.GetPending(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final Title", got.Title)
		assert.Equal(t, domain.CategoryReading, got.Category)
	})

	t.Run("approve creates one event", func(t *testing.T) {
		p := newEntry("approve-me")
		eventID, err := repos.Pending.ApprovePending(ctx, p.ID, now)
		require.NoError(t, err)
		require.NotZero(t, eventID)

		ev, err := repos.Event.GetEvent(ctx, eventID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, ev.PendingEventID)
		assert.Equal(t, "approve-me", ev.Title)
		assert.Equal(t, u.ID, ev.UserID)

		got, err := repos.Pending.GetPending(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusApproved, got.Status)
		require.NotNil(t, got.ReviewedAt)

		_, err = repos.Pending.ApprovePending(ctx, p.ID, now)
		require.ErrorIs(t, err, ErrNotPending, "double approval rejected")

		var count int
		require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM events WHERE pending_event_id = ?", p.ID))
		assert.Equal(t, 1, count)

		title := "changed"
		require.ErrorIs(t, repos.Pending.UpdatePending(ctx, p.ID, domain.PendingUpdate{Title: &title}), ErrNotPending)
		require.ErrorIs(t, repos.Pending.RejectPending(ctx, p.ID, now), ErrNotPending)
	})

	t.Run("reject is terminal", func(t *testing.T) {
		p := newEntry("reject-me")
		require.NoError(t, repos.Pending.RejectPending(ctx, p.ID, now))
		got, err := repos.Pending.GetPending(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, got.Status)

		_, err = repos.Pending.ApprovePending(ctx, p.ID, now)
		require.ErrorIs(t, err, ErrNotPending)
		require.ErrorIs(t, repos.Pending.UpdatePending(ctx, p.ID, domain.PendingUpdate{}), ErrNotPending)
	})

	t.Run("missing entry", func(t *testing.T) {
		_, err := repos.Pending.ApprovePending(ctx, 999, now)
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, repos.Pending.RejectPending(ctx, 999, now), ErrNotFound)
	})
}

func TestDedupKeys_Scopes(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	u1 := createUser(t, repos, "u1", false)
	u2 := createUser(t, repos, "u2", false)

	add := func(userID int64, title, url string) *domain.PendingEvent {
		p := &domain.PendingEvent{UserID: userID, Category: domain.CategoryOther,
			CandidateEvent: domain.CandidateEvent{Title: title, SourceURL: url}}
		require.NoError(t, repos.Pending.CreatePending(ctx, p))
		return p
	}
	add(u1.ID, "Mine", "https://a/1")
	add(u2.ID, "Theirs", "https://b/1")
	rejected := add(u1.ID, "Rejected", "https://a/2")
	require.NoError(t, repos.Pending.RejectPending(ctx, rejected.ID, time.Now()))
	require.NoError(t, repos.Event.CreateEvent(ctx, &domain.Event{UserID: u2.ID, Category: domain.CategoryOther,
		CandidateEvent: domain.CandidateEvent{Title: "Published"}}))

	userKeys, err := repos.Pending.GetQueueKeys(ctx, domain.DedupScope{UserID: u1.ID})
	require.NoError(t, err)
	assert.Equal(t, []domain.DedupKey{{Title: "Mine", SourceURL: "https://a/1"}}, userKeys)

	globalKeys, err := repos.Pending.GetQueueKeys(ctx, domain.DedupScope{UserID: u1.ID, Global: true})
	require.NoError(t, err)
	assert.Len(t, globalKeys, 2, "rejected entries excluded")

	pub, err := repos.Event.GetPublishedKeys(ctx, domain.DedupScope{UserID: u1.ID})
	require.NoError(t, err)
	assert.Empty(t, pub)

	pub, err = repos.Event.GetPublishedKeys(ctx, domain.DedupScope{UserID: u1.ID, Global: true})
	require.NoError(t, err)
	require.Len(t, pub, 1)
	assert.Equal(t, "Published", pub[0].Title)
}

func TestSettingRepository_GrantMonthlyCredits(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	p1 := createUser(t, repos, "p1", true)
	p2 := createUser(t, repos, "p2", true)
	regular := createUser(t, repos, "r", false)

	n, err := repos.Setting.GrantMonthlyCredits(ctx, "2025-03", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repos.Setting.GrantMonthlyCredits(ctx, "2025-03", 2)
	require.NoError(t, err)
	assert.Zero(t, n, "same month granted once")

	n, err = repos.Setting.GrantMonthlyCredits(ctx, "2025-04", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	for _, tc := range []struct {
		id      int64
		credits int
	}{{p1.ID, 4}, {p2.ID, 4}, {regular.ID, 0}} {
		u, err := repos.User.GetUser(ctx, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.credits, u.Credits, "user %d", tc.id)
	}

	month, err := repos.Setting.GetSetting(ctx, SettingCreditGrantMonth)
	require.NoError(t, err)
	assert.Equal(t, "2025-04", month)

	val, err := repos.Setting.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestLeaseRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	ok, err := repos.Lease.AcquireLease(ctx, 1, "a", now, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repos.Lease.AcquireLease(ctx, 1, "b", now.Add(30*time.Second), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "held by a")

	ok, err = repos.Lease.AcquireLease(ctx, 2, "b", now, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "other source is independent")

	ok, err = repos.Lease.AcquireLease(ctx, 1, "b", now.Add(2*time.Minute), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lease taken over")

	require.NoError(t, repos.Lease.ReleaseLease(ctx, 1, "a"), "release by stale owner is a no-op")
	ok, err = repos.Lease.AcquireLease(ctx, 1, "c", now.Add(2*time.Minute), time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repos.Lease.ReleaseLease(ctx, 1, "b"))
	ok, err = repos.Lease.AcquireLease(ctx, 1, "c", now.Add(2*time.Minute), time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestTagsSQL(t *testing.T) {
	v, err := tagsSQL(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	var tags tagsSQL
	require.NoError(t, tags.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, tagsSQL{"a", "b"}, tags)
	require.NoError(t, tags.Scan(nil))
	assert.Empty(t, tags)
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(assert.AnError))
	assert.True(t, isLockError(errString("database is locked (5) (SQLITE_BUSY)")))
}

type errString string

func (e errString) Error() string { return string(e) }
