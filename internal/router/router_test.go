package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hillcrest/activities-backend/internal/cache"
	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/handler"
	"github.com/hillcrest/activities-backend/internal/model"
	"github.com/hillcrest/activities-backend/internal/repository/memory"
	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
	"github.com/hillcrest/activities-backend/internal/validator"
)

// envelope mirrors the response wrapper for decoding in assertions.
type envelope struct {
	Data     map[string]json.RawMessage `json:"data"`
	Error    *response.ErrorBody        `json:"error"`
	Metadata response.Metadata          `json:"metadata"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{GinMode: gin.TestMode, BcryptCost: 4}
	log := zerolog.Nop()
	c := cache.New(nil, 0, log)

	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Activities().Create(ctx, &model.Activity{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in tournaments",
		Schedule:        "Fridays, 3:30 PM - 5:00 PM",
		MaxParticipants: 2,
	}))
	require.NoError(t, store.Activities().Create(ctx, &model.Activity{
		Name:            "Art Club",
		Description:     "Explore painting and drawing",
		Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
		MaxParticipants: 15,
	}))

	authService := service.NewAuthService(cfg, store.Teachers())
	hash, err := authService.HashPassword("chess-rocks")
	require.NoError(t, err)
	require.NoError(t, store.Teachers().Create(ctx, &model.Teacher{
		Username:     "mchen",
		DisplayName:  "Mr. Chen",
		PasswordHash: hash,
		Role:         model.RoleTeacher,
	}))

	activityService := service.NewActivityService(store.Activities(), store.Students(), c, log)
	announcementService := service.NewAnnouncementService(store.Announcements(), c, log)

	handlers := &Handlers{
		Activity:     handler.NewActivityHandler(activityService),
		Auth:         handler.NewAuthHandler(authService),
		Announcement: handler.NewAnnouncementHandler(announcementService),
		WS:           handler.NewWSHandler(c, log, nil),
	}
	return SetupRouter(authService, handlers, cfg)
}

func do(t *testing.T, r *gin.Engine, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func TestHealth(t *testing.T) {
	r := newTestServer(t)
	code, env := do(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, env.Error)
	assert.NotEmpty(t, env.Metadata.RequestID)
}

func TestActivitiesEndpoint(t *testing.T) {
	r := newTestServer(t)

	code, env := do(t, r, http.MethodGet, "/activities", "")
	require.Equal(t, http.StatusOK, code)

	var activities []model.Activity
	require.NoError(t, json.Unmarshal(env.Data["activities"], &activities))
	require.Len(t, activities, 2)
}

func TestSignupFlow(t *testing.T) {
	r := newTestServer(t)

	t.Run("missing email", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/activities/Chess%20Club/signup", "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrValidation, env.Error.Code)
		assert.Contains(t, env.Error.Fields, "email")
	})

	t.Run("unknown activity", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/activities/Knitting%20Circle/signup?email=a@x.edu", "")
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrNotFound, env.Error.Code)
	})

	t.Run("fills to capacity", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=a@x.edu", "")
		assert.Equal(t, http.StatusOK, code)

		code, _ = do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=b@x.edu", "")
		assert.Equal(t, http.StatusOK, code)

		code, env := do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=c@x.edu", "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrCapacityExceeded, env.Error.Code)
	})

	t.Run("duplicate signup", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=a@x.edu", "")
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrAlreadyRegistered, env.Error.Code)
	})

	t.Run("participant counts are visible", func(t *testing.T) {
		code, env := do(t, r, http.MethodGet, "/activities", "")
		require.Equal(t, http.StatusOK, code)

		var activities []model.Activity
		require.NoError(t, json.Unmarshal(env.Data["activities"], &activities))
		for _, a := range activities {
			if a.Name == "Chess Club" {
				assert.Equal(t, 2, a.ParticipantCount)
				assert.Equal(t, []string{"a@x.edu", "b@x.edu"}, a.Participants)
			}
		}
	})

	t.Run("unregister frees the spot", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/activities/Chess%20Club/unregister?email=a@x.edu", "")
		assert.Equal(t, http.StatusOK, code)

		code, env := do(t, r, http.MethodPost, "/activities/Chess%20Club/unregister?email=a@x.edu", "")
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrNotRegistered, env.Error.Code)

		code, _ = do(t, r, http.MethodPost, "/activities/Chess%20Club/signup?email=c@x.edu", "")
		assert.Equal(t, http.StatusOK, code)
	})
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestServer(t)

	t.Run("login ok", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/auth/login?username=mchen&password=chess-rocks", "")
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, env.Error)

		var displayName string
		require.NoError(t, json.Unmarshal(env.Data["display_name"], &displayName))
		assert.Equal(t, "Mr. Chen", displayName)
	})

	t.Run("login wrong password", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/auth/login?username=mchen&password=nope", "")
		assert.Equal(t, http.StatusUnauthorized, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrInvalidCredentials, env.Error.Code)
	})

	t.Run("login missing credentials", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/auth/login", "")
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("check-session", func(t *testing.T) {
		code, _ := do(t, r, http.MethodGet, "/auth/check-session?username=mchen", "")
		assert.Equal(t, http.StatusOK, code)

		code, env := do(t, r, http.MethodGet, "/auth/check-session?username=ghost", "")
		assert.Equal(t, http.StatusUnauthorized, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrUnauthenticated, env.Error.Code)
	})
}

func TestAnnouncementEndpoints(t *testing.T) {
	r := newTestServer(t)
	future := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)

	t.Run("create requires teacher gate", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/announcements",
			`{"title":"Bake Sale","body":"Friday","expiration_date":"`+future+`"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrUnauthenticated, env.Error.Code)

		code, _ = do(t, r, http.MethodPost, "/announcements?teacher_username=ghost",
			`{"title":"Bake Sale","body":"Friday","expiration_date":"`+future+`"}`)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	var created model.Announcement

	t.Run("create ok", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/announcements?teacher_username=mchen",
			`{"title":"Bake Sale","body":"Friday in the gym","expiration_date":"`+future+`"}`)
		require.Equal(t, http.StatusCreated, code, "error: %+v", env.Error)

		require.NoError(t, json.Unmarshal(env.Data["announcement"], &created))
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "mchen", created.CreatedBy)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		code, env := do(t, r, http.MethodPost, "/announcements?teacher_username=mchen",
			`{"title":"No body"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrValidation, env.Error.Code)
	})

	t.Run("create rejects bad dates", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/announcements?teacher_username=mchen",
			`{"title":"x","body":"y","expiration_date":"not-a-date"}`)
		assert.Equal(t, http.StatusBadRequest, code)

		code, env := do(t, r, http.MethodPost, "/announcements?teacher_username=mchen",
			`{"title":"x","body":"y","start_date":"`+future+`","expiration_date":"`+past+`"}`)
		assert.Equal(t, http.StatusBadRequest, code)
		require.NotNil(t, env.Error)
		assert.Contains(t, env.Error.Fields, "start_date")
	})

	t.Run("expired hidden from public, present in manage", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/announcements?teacher_username=mchen",
			`{"title":"Old News","body":"expired","expiration_date":"`+past+`"}`)
		require.Equal(t, http.StatusCreated, code)

		code, env := do(t, r, http.MethodGet, "/announcements", "")
		require.Equal(t, http.StatusOK, code)
		var public []model.Announcement
		require.NoError(t, json.Unmarshal(env.Data["announcements"], &public))
		require.Len(t, public, 1)
		assert.Equal(t, "Bake Sale", public[0].Title)

		code, env = do(t, r, http.MethodGet, "/announcements/manage?teacher_username=mchen", "")
		require.Equal(t, http.StatusOK, code)
		var all []model.Announcement
		require.NoError(t, json.Unmarshal(env.Data["announcements"], &all))
		assert.Len(t, all, 2)
	})

	t.Run("update", func(t *testing.T) {
		code, env := do(t, r, http.MethodPut, "/announcements/"+created.ID+"?teacher_username=mchen",
			`{"title":"Bake Sale Moved"}`)
		require.Equal(t, http.StatusOK, code, "error: %+v", env.Error)

		var updated model.Announcement
		require.NoError(t, json.Unmarshal(env.Data["announcement"], &updated))
		assert.Equal(t, "Bake Sale Moved", updated.Title)
		assert.Equal(t, "Friday in the gym", updated.Body)

		code, env = do(t, r, http.MethodPut, "/announcements/no-such-id?teacher_username=mchen", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, response.ErrNotFound, env.Error.Code)
	})

	t.Run("delete", func(t *testing.T) {
		code, _ := do(t, r, http.MethodDelete, "/announcements/"+created.ID+"?teacher_username=mchen", "")
		assert.Equal(t, http.StatusOK, code)

		code, _ = do(t, r, http.MethodDelete, "/announcements/"+created.ID+"?teacher_username=mchen", "")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestAnnouncementStreamWithoutRedis(t *testing.T) {
	r := newTestServer(t)
	code, env := do(t, r, http.MethodGet, "/ws/announcements/stream", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, response.ErrUnavailable, env.Error.Code)
}
