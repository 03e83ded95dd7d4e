package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/casamaria/storefront-backend/internal/auth"
	cartsvc "github.com/casamaria/storefront-backend/internal/cart"
	catalogsvc "github.com/casamaria/storefront-backend/internal/catalog"
	checkoutsvc "github.com/casamaria/storefront-backend/internal/checkout"
	mediasvc "github.com/casamaria/storefront-backend/internal/media"
	reviewsvc "github.com/casamaria/storefront-backend/internal/reviews"
	settingssvc "github.com/casamaria/storefront-backend/internal/settings"
	"github.com/casamaria/storefront-backend/pkg/auth/session"
	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (s *memStore) Read(_ context.Context, key string, dest any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *memStore) Write(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "development", Port: "8080"},
		Store: config.StoreConfig{
			SiteName:       "Casa María Burguer",
			CurrencyPrefix: "$ ",
			Locale:         "es-CO",
			WhatsAppPhone:  "573213131109",
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret",
			Issuer:            "casamaria-storefront",
			ExpirationMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Admin: config.AdminConfig{
			BootstrapEmail:    "admin@casamaria.com",
			BootstrapPassword: "admin123",
		},
		Media: config.MediaConfig{
			MaxUploadMB:   8,
			ItemImageSize: 600,
			HeroWidth:     1920,
			HeroHeight:    1080,
			JPEGQuality:   85,
		},
		Cart: config.CartConfig{TTL: 6 * time.Hour},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	store := newMemStore()
	cfg := testRouterConfig()

	sessions, err := session.NewManager(store)
	require.NoError(t, err)
	catalogService, err := catalogsvc.NewService(ctx, store, nil)
	require.NoError(t, err)
	reviewService, err := reviewsvc.NewService(ctx, store, nil)
	require.NoError(t, err)
	settingsService, err := settingssvc.NewService(ctx, store, nil)
	require.NoError(t, err)
	authService, err := authsvc.NewService(ctx, store, sessions, cfg, nil)
	require.NoError(t, err)
	moneyFmt, err := money.NewFormatter(cfg.Store.Locale, cfg.Store.CurrencyPrefix)
	require.NoError(t, err)
	checkoutFormatter, err := checkoutsvc.NewFormatter(cfg.Store.SiteName, cfg.Store.WhatsAppPhone, moneyFmt)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:   cfg,
		DB:       okPinger{},
		Sessions: sessions,
		Catalog:  catalogService,
		Carts:    cartsvc.NewManager(cfg.Cart.TTL),
		Checkout: checkoutFormatter,
		Money:    moneyFmt,
		Reviews:  reviewService,
		Settings: settingsService,
		Auth:     authService,
		Media:    mediasvc.NewNormalizer(cfg.Media),
	})
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@casamaria.com",
		"password": "admin123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicMenuIsOpen(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/menu", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Clásica María")
}

func TestAdminMenuRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/menu/reset", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := loginToken(t, router)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/menu/reset", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCartToCheckoutFlow(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/carts", "", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	cartID := created.Data.ID

	rec = doJSON(t, router, http.MethodPost, "/api/v1/carts/"+cartID+"/items", "", map[string]string{"item_id": "seed-1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/checkout", "", map[string]any{
		"cart_id":         cartID,
		"delivery_method": "pickup",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "wa.me/573213131109")
}

func TestLogoutInvalidatesToken(t *testing.T) {
	router := newTestRouter(t)
	token := loginToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/admin/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNavResolveRedirectsDashboard(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/nav/resolve?route=/admin/dashboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"route":"/admin"`)

	token := loginToken(t, router)
	rec = doJSON(t, router, http.MethodGet, "/api/v1/nav/resolve?route=/admin/dashboard", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"route":"/admin/dashboard"`)
}
