package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tempizhere/shortdash/internal/client"
	"github.com/tempizhere/shortdash/internal/config"
	"github.com/tempizhere/shortdash/internal/models"
	"github.com/tempizhere/shortdash/internal/repository"
	"github.com/tempizhere/shortdash/internal/view"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	svc       *Service
	api       *MockLinkAPI
	repo      *repository.MemoryRepository
	snapshots *repository.MemorySnapshotStore
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := NewMockLinkAPI(ctrl)
	repo := repository.NewMemoryRepository()
	snapshots := repository.NewMemorySnapshotStore()

	cfg := config.Default()
	cfg.JWTSecret = "test_secret"
	cfg.CookieTTL = time.Hour

	svc, err := NewService(api, repo, snapshots, cfg, zap.NewNop())
	require.NoError(t, err)
	svc.now = func() time.Time { return testNow }

	return testEnv{svc: svc, api: api, repo: repo, snapshots: snapshots}
}

func testSession() models.Session {
	return models.Session{
		ID:       "sess-1",
		User:     models.User{ID: "u1", Email: "user@example.com"},
		APIToken: "api-token",
	}
}

func testLinks() []models.LinkRecord {
	past := testNow.Add(-24 * time.Hour)
	return []models.LinkRecord{
		{ID: "1", OriginalURL: "https://golang.org", ShortURL: "https://sho.rt/go", CreatedAt: testNow.Add(-72 * time.Hour), Tags: []string{"dev"}, Clicks: 10},
		{ID: "2", OriginalURL: "https://example.com", ShortURL: "https://sho.rt/ex", CreatedAt: testNow.Add(-48 * time.Hour), ExpiresAt: &past, Clicks: 3},
		{ID: "3", OriginalURL: "https://secret.example.com", ShortURL: "https://sho.rt/pr", CreatedAt: testNow.Add(-24 * time.Hour), IsPrivate: true, Tags: []string{"dev", "private"}, Clicks: 1},
	}
}

func TestNewService_InvalidTimezone(t *testing.T) {
	cfg := config.Default()
	cfg.ExportTimezone = "Mars/Olympus"
	_, err := NewService(nil, repository.NewMemoryRepository(), repository.NewMemorySnapshotStore(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := newTestEnv(t)
		creds := models.Credentials{Email: "user@example.com", Password: "pass"}
		env.api.EXPECT().Login(gomock.Any(), creds).Return("api-token", nil)
		env.api.EXPECT().Me(gomock.Any(), "api-token").Return(models.User{ID: "u1", Email: "user@example.com"}, nil)

		res, err := env.svc.Login(ctx, creds)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Session.ID)
		assert.Equal(t, "api-token", res.Session.APIToken)
		assert.Equal(t, models.DefaultThemeSettings(), res.Settings)

		sessionID, err := env.svc.ParseJWT(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.Session.ID, sessionID)

		stored, err := env.svc.Session(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, "u1", stored.User.ID)
	})

	t.Run("Loads saved settings", func(t *testing.T) {
		env := newTestEnv(t)
		saved := models.DefaultThemeSettings()
		saved.Theme = models.ThemeDark
		require.NoError(t, env.repo.SaveSettings(ctx, "u1", saved))

		env.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return("api-token", nil)
		env.api.EXPECT().Me(gomock.Any(), "api-token").Return(models.User{ID: "u1"}, nil)

		res, err := env.svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "p"})
		require.NoError(t, err)
		assert.Equal(t, saved, res.Settings)
	})

	t.Run("Empty credentials", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.Login(ctx, models.Credentials{Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrEmptyCredentials)
	})

	t.Run("Rejected by API", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return("", &client.APIError{StatusCode: 401, Message: "Invalid credentials"})

		_, err := env.svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "bad"})
		assert.ErrorIs(t, err, client.ErrUnauthorized)
		count, _ := env.svc.SessionCount(ctx)
		assert.Zero(t, count)
	})
}

func TestService_RegisterAndLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	creds := models.Credentials{Email: "new@example.com", Password: "pass", Name: "New"}
	env.api.EXPECT().Register(gomock.Any(), creds).Return("new-token", nil)
	env.api.EXPECT().Me(gomock.Any(), "new-token").Return(models.User{ID: "u2", Email: "new@example.com", Name: "New"}, nil)

	res, err := env.svc.Register(ctx, creds)
	require.NoError(t, err)

	count, err := env.svc.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, env.svc.Logout(ctx, res.Session.ID))
	_, err = env.svc.Session(ctx, res.Session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_JWT(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Round trip", func(t *testing.T) {
		token, err := env.svc.GenerateJWT("sess-1")
		require.NoError(t, err)
		id, err := env.svc.ParseJWT(token)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", id)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := env.svc.ParseJWT("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Foreign secret", func(t *testing.T) {
		other := newTestEnv(t)
		other.svc.jwtSecret = []byte("another_secret")
		token, err := other.svc.GenerateJWT("sess-1")
		require.NoError(t, err)
		_, err = env.svc.ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		old := newTestEnv(t)
		old.svc.now = func() time.Time { return testNow.Add(-2 * time.Hour) }
		token, err := old.svc.GenerateJWT("sess-1")
		require.NoError(t, err)
		_, err = env.svc.ParseJWT(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_Links(t *testing.T) {
	ctx := context.Background()
	session := testSession()

	t.Run("Fresh links are stored as snapshot", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.EXPECT().ListLinks(gomock.Any(), "api-token").Return(testLinks(), nil)

		set, err := env.svc.Links(ctx, session)
		require.NoError(t, err)
		assert.False(t, set.Stale)
		assert.Len(t, set.Links, 3)

		cached, ok, err := env.snapshots.Get(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, testLinks(), cached)
	})

	t.Run("Fallback to last known collection", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.snapshots.Put(ctx, "u1", testLinks()))
		env.api.EXPECT().ListLinks(gomock.Any(), "api-token").Return(nil, errors.New("connection refused"))

		set, err := env.svc.Links(ctx, session)
		require.NoError(t, err)
		assert.True(t, set.Stale)
		assert.Len(t, set.Links, 3)
	})

	t.Run("Fallback without snapshot is empty", func(t *testing.T) {
		env := newTestEnv(t)
		env.api.EXPECT().ListLinks(gomock.Any(), "api-token").
			Return(nil, &client.PayloadError{Endpoint: "/urls", Err: errors.New("bad json")})

		set, err := env.svc.Links(ctx, session)
		require.NoError(t, err)
		assert.True(t, set.Stale)
		assert.NotNil(t, set.Links)
		assert.Empty(t, set.Links)
	})

	t.Run("Unauthorized is not masked", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.snapshots.Put(ctx, "u1", testLinks()))
		env.api.EXPECT().ListLinks(gomock.Any(), "api-token").
			Return(nil, &client.APIError{StatusCode: 401, Message: "token expired"})

		_, err := env.svc.Links(ctx, session)
		assert.ErrorIs(t, err, client.ErrUnauthorized)
	})
}

func TestService_View(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.api.EXPECT().ListLinks(gomock.Any(), "api-token").Return(testLinks(), nil).Times(3)

	q := view.DefaultQuery()
	res, err := env.svc.View(ctx, testSession(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.False(t, res.Stale)
	require.Len(t, res.Links, 3)
	assert.Equal(t, "3", res.Links[0].ID)
	assert.Equal(t, "2", res.Links[1].ID)
	assert.Equal(t, "1", res.Links[2].ID)

	// Истёкшая ссылка скрывается, потому что сервис подставляет текущее время
	q.Filter.ShowExpired = false
	res, err = env.svc.View(ctx, testSession(), q)
	require.NoError(t, err)
	require.Len(t, res.Links, 2)
	assert.Equal(t, "3", res.Links[0].ID)
	assert.Equal(t, "1", res.Links[1].ID)

	q.Search = "GOLANG"
	res, err = env.svc.View(ctx, testSession(), q)
	require.NoError(t, err)
	require.Len(t, res.Links, 1)
	assert.Equal(t, "1", res.Links[0].ID)
}

func TestService_Export(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.api.EXPECT().ListLinks(gomock.Any(), "api-token").Return(testLinks(), nil)

	q := view.DefaultQuery()
	q.Tags = []string{"dev"}
	q.Sort = models.SortConfig{Key: models.SortByClicks, Direction: models.Descending}

	var buf bytes.Buffer
	filename, err := env.svc.Export(ctx, testSession(), q, &buf)
	require.NoError(t, err)
	assert.Equal(t, "urls-export-2024-06-15.csv", filename)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Original URL,Short URL,Created At,Expires At,Clicks,Tags", lines[0])
	assert.Equal(t, "https://golang.org,https://sho.rt/go,2024-06-12 10:30:00,,10,dev", lines[1])
	assert.Equal(t, `https://secret.example.com,https://sho.rt/pr,2024-06-14 10:30:00,,1,"dev, private"`, lines[2])
}

func TestService_CreateLink(t *testing.T) {
	ctx := context.Background()
	session := testSession()

	t.Run("Prepends to snapshot", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.snapshots.Put(ctx, "u1", testLinks()))
		req := models.CreateLinkRequest{OriginalURL: " https://new.example.com "}
		created := models.LinkRecord{ID: "4", OriginalURL: "https://new.example.com", ShortURL: "https://sho.rt/new", CreatedAt: testNow}
		env.api.EXPECT().CreateLink(gomock.Any(), "api-token", models.CreateLinkRequest{OriginalURL: "https://new.example.com"}).
			Return(created, nil)

		link, err := env.svc.CreateLink(ctx, session, req)
		require.NoError(t, err)
		assert.Equal(t, created, link)

		cached, _, err := env.snapshots.Get(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, cached, 4)
		assert.Equal(t, "4", cached[0].ID)
	})

	t.Run("Validation", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.svc.CreateLink(ctx, session, models.CreateLinkRequest{})
		assert.ErrorIs(t, err, ErrEmptyURL)
		_, err = env.svc.CreateLink(ctx, session, models.CreateLinkRequest{OriginalURL: "ftp://example.com"})
		assert.ErrorIs(t, err, ErrInvalidURL)
		_, err = env.svc.CreateLink(ctx, session, models.CreateLinkRequest{OriginalURL: "not a url"})
		assert.ErrorIs(t, err, ErrInvalidURL)
	})
}

func TestService_TagsAndStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.api.EXPECT().ListLinks(gomock.Any(), "api-token").Return(testLinks(), nil).Times(2)

	tags, err := env.svc.Tags(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, []models.TagCount{{Name: "dev", URLCount: 2}, {Name: "private", URLCount: 1}}, tags)

	stats, err := env.svc.Stats(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{TotalURLs: 3, TotalClicks: 14, ActiveLinks: 2}, stats)
}

func TestService_Analytics(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	dash := models.DashboardAnalytics{TotalURLs: 3, TotalClicks: 14}
	link := models.Analytics{Browsers: []models.NamedCount{{Name: "Firefox", Count: 2}}}
	env.api.EXPECT().DashboardAnalytics(gomock.Any(), "api-token").Return(dash, nil)
	env.api.EXPECT().LinkAnalytics(gomock.Any(), "api-token", "1").Return(link, nil)

	gotDash, err := env.svc.Analytics(ctx, testSession())
	require.NoError(t, err)
	assert.Equal(t, dash, gotDash)

	gotLink, err := env.svc.LinkAnalytics(ctx, testSession(), "1")
	require.NoError(t, err)
	assert.Equal(t, link, gotLink)

	_, err = env.svc.LinkAnalytics(ctx, testSession(), "")
	assert.ErrorIs(t, err, repository.ErrEmptyID)
}

func TestService_Settings(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	settings, err := env.svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultThemeSettings(), settings)

	dark := models.ThemeDark
	reduced := true
	updated, err := env.svc.UpdateSettings(ctx, "u1", models.ThemeSettingsPatch{Theme: &dark, ReducedMotion: &reduced})
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, updated.Theme)
	assert.True(t, updated.ReducedMotion)
	assert.Equal(t, models.ColorIndigo, updated.ColorScheme)

	settings, err = env.svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, updated, settings)

	bad := models.Theme("neon")
	_, err = env.svc.UpdateSettings(ctx, "u1", models.ThemeSettingsPatch{Theme: &bad})
	var verr *models.ValidationError
	assert.ErrorAs(t, err, &verr)

	settings, err = env.svc.Settings(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, settings.Theme, "неверное обновление не должно сохраняться")
}

func TestService_SessionExpiry(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.api.EXPECT().Login(gomock.Any(), gomock.Any()).Return("api-token", nil)
	env.api.EXPECT().Me(gomock.Any(), "api-token").Return(models.User{ID: "u1"}, nil)

	res, err := env.svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(time.Hour), res.Session.ExpiresAt)

	count, err := env.svc.SessionCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	env.svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }

	count, err = env.svc.SessionCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = env.svc.Session(ctx, res.Session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func newMockRepoService(t *testing.T) (*Service, *MockLinkAPI, *repository.MockRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	api := NewMockLinkAPI(ctrl)
	repo := repository.NewMockRepository(ctrl)

	cfg := config.Default()
	cfg.JWTSecret = "test_secret"
	cfg.CookieTTL = time.Hour
	svc, err := NewService(api, repo, repository.NewMemorySnapshotStore(), cfg, zap.NewNop())
	require.NoError(t, err)
	svc.now = func() time.Time { return testNow }
	return svc, api, repo
}

func TestService_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("db unavailable")

	t.Run("Login fails to save session", func(t *testing.T) {
		svc, api, repo := newMockRepoService(t)
		api.EXPECT().Login(gomock.Any(), gomock.Any()).Return("api-token", nil)
		api.EXPECT().Me(gomock.Any(), "api-token").Return(models.User{ID: "u1"}, nil)
		repo.EXPECT().SaveSession(gomock.Any(), gomock.Any()).Return(dbErr)

		_, err := svc.Login(ctx, models.Credentials{Email: "a@b.c", Password: "p"})
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Expired session is deleted", func(t *testing.T) {
		svc, _, repo := newMockRepoService(t)
		expired := testSession()
		expired.ExpiresAt = testNow.Add(-time.Minute)
		repo.EXPECT().GetSession(gomock.Any(), "sess-1").Return(expired, true, nil)
		repo.EXPECT().DeleteSession(gomock.Any(), "sess-1").Return(nil)

		_, err := svc.Session(ctx, "sess-1")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Session lookup error", func(t *testing.T) {
		svc, _, repo := newMockRepoService(t)
		repo.EXPECT().GetSession(gomock.Any(), "sess-1").Return(models.Session{}, false, dbErr)

		_, err := svc.Session(ctx, "sess-1")
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Purge error stops count", func(t *testing.T) {
		svc, _, repo := newMockRepoService(t)
		repo.EXPECT().DeleteExpiredSessions(gomock.Any(), testNow).Return(0, dbErr)

		_, err := svc.SessionCount(ctx)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Count after purge", func(t *testing.T) {
		svc, _, repo := newMockRepoService(t)
		gomock.InOrder(
			repo.EXPECT().DeleteExpiredSessions(gomock.Any(), testNow).Return(3, nil),
			repo.EXPECT().CountSessions(gomock.Any()).Return(5, nil),
		)

		count, err := svc.SessionCount(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
	})

	t.Run("Settings load error", func(t *testing.T) {
		svc, _, repo := newMockRepoService(t)
		repo.EXPECT().GetSettings(gomock.Any(), "u1").Return(models.ThemeSettings{}, false, dbErr)

		_, err := svc.UpdateSettings(ctx, "u1", models.ThemeSettingsPatch{})
		assert.ErrorIs(t, err, dbErr)
	})
}
