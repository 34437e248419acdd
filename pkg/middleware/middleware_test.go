package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"review-api/internal/data/entity"
	"review-api/internal/policy"
	"review-api/pkg/token"
	"review-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubUsers map[uuid.UUID]*entity.User

func (s stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s[id], nil
}

type failingUsers struct{}

func (failingUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, errors.New("db down")
}

const testSecret = "middleware-test-secret-0123456789"

func captureActor(got *policy.Actor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = utils.GetActor(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	issuer := token.NewJWTIssuer(testSecret, time.Hour, 24*time.Hour)

	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "reader", Role: entity.RoleUser}
	pair, err := issuer.Issue(user)
	require.NoError(t, err)

	// role changed after the token was issued
	stored := *user
	stored.Role = entity.RoleModerator
	users := stubUsers{user.ID: &stored}

	ghost := &entity.User{Base: entity.Base{ID: uuid.New()}, Username: "ghost"}
	ghostPair, err := issuer.Issue(ghost)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantActor  bool
	}{
		{"anonymous", "", http.StatusOK, false},
		{"valid access token", "Bearer " + pair.Access, http.StatusOK, true},
		{"lowercase scheme", "bearer " + pair.Access, http.StatusOK, true},
		{"refresh token", "Bearer " + pair.Refresh, http.StatusUnauthorized, false},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, false},
		{"missing token", "Bearer", http.StatusUnauthorized, false},
		{"deleted user", "Bearer " + ghostPair.Access, http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var actor policy.Actor
			h := Authenticate(issuer, users, zap.NewNop())(captureActor(&actor))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/titles", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantActor, actor.Authenticated())
			if tt.wantActor {
				assert.Equal(t, user.ID, actor.UserID)
				assert.Equal(t, entity.RoleModerator, actor.Role)
			}
		})
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	issuer := token.NewJWTIssuer(testSecret, time.Hour, 24*time.Hour)
	pair, err := issuer.Issue(&entity.User{Base: entity.Base{ID: uuid.New()}, Username: "x"})
	require.NoError(t, err)

	h := Authenticate(issuer, failingUsers{}, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRecover(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := Recover(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":false`)
	assert.Equal(t, 1, logs.FilterMessage("PANIC recovered").Len())
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("nope"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, int64(http.StatusNotFound), fields["status"])
	assert.Equal(t, int64(4), fields["bytes"])
	assert.Equal(t, "/missing", fields["path"])
	assert.Equal(t, "x=1", fields["query"])
}
