package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideagauge/ideagauge/internal/store"
	"github.com/ideagauge/ideagauge/pkg/models"
)

type fakeStore struct {
	pingErr error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CreateUser(context.Context, *models.User) error { return nil }
func (f *fakeStore) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeStore) GetUserByID(context.Context, uuid.UUID) (*models.User, error) {
	return nil, store.ErrNotFound
}
func (f *fakeStore) MarkUserVerified(context.Context, string) error             { return nil }
func (f *fakeStore) UpdateUserPassword(context.Context, uuid.UUID, string) error { return nil }
func (f *fakeStore) UpdateUserProfile(context.Context, uuid.UUID, string, string) error {
	return nil
}
func (f *fakeStore) CreateFeasibilityResult(context.Context, *models.FeasibilityResult) error {
	return nil
}
func (f *fakeStore) GetFeasibilityResult(context.Context, uuid.UUID) (*models.FeasibilityResult, error) {
	return nil, store.ErrNotFound
}

type fakeCache struct {
	pingErr error
}

func (f *fakeCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (f *fakeCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (f *fakeCache) GetDel(context.Context, string) ([]byte, bool, error)     { return nil, false, nil }
func (f *fakeCache) Delete(context.Context, string) error                     { return nil }
func (f *fakeCache) Ping(context.Context) error                               { return f.pingErr }
func (f *fakeCache) IncrWithExpiry(context.Context, string, time.Duration) (int64, error) {
	return 1, nil
}

func TestHealthHandlerOK(t *testing.T) {
	h := healthHandler(&fakeStore{}, &fakeCache{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Status   string            `json:"status"`
			Services map[string]string `json:"services"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "ok", body.Data.Services["database"])
	assert.Equal(t, "ok", body.Data.Services["cache"])
}

func TestHealthHandlerDegraded(t *testing.T) {
	h := healthHandler(&fakeStore{pingErr: errors.New("down")}, &fakeCache{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "DEGRADED")
	assert.Contains(t, rec.Body.String(), `"database":"degraded"`)
}

func TestHealthHandlerCacheDegraded(t *testing.T) {
	h := healthHandler(&fakeStore{}, &fakeCache{pingErr: errors.New("down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cache":"degraded"`)
}
