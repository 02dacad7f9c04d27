package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/kitaplik/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarathon struct {
	endsAt   time.Time
	startErr error
}

func (f *fakeMarathon) Active(context.Context) (bool, error) { return !f.endsAt.IsZero(), nil }

func (f *fakeMarathon) Start(_ context.Context, d time.Duration) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.endsAt = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC).Add(d)
	return nil
}

func (f *fakeMarathon) Stop(context.Context) error {
	f.endsAt = time.Time{}
	return nil
}

func (f *fakeMarathon) EndsAt(context.Context) (time.Time, error) { return f.endsAt, nil }

func router(m MarathonControl) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAdminHandler(m, logger.NewNop())
	r := gin.New()
	r.POST("/marathon", h.StartMarathon)
	r.DELETE("/marathon", h.StopMarathon)
	r.GET("/marathon", h.MarathonStatus)
	return r
}

func do(r http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/marathon", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMarathonLifecycle(t *testing.T) {
	m := &fakeMarathon{}
	r := router(m)

	w := do(r, http.MethodPost, `{"hours": 48}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Active bool       `json:"active"`
			EndsAt *time.Time `json:"ends_at"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Data.Active)
	require.NotNil(t, body.Data.EndsAt)
	assert.Equal(t, m.endsAt, body.Data.EndsAt.UTC())

	w = do(r, http.MethodDelete, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)
}

func TestStartMarathonValidation(t *testing.T) {
	r := router(&fakeMarathon{})

	w := do(r, http.MethodPost, `{"hours": 500}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Süre en fazla 168 olmalıdır")

	r = router(&fakeMarathon{startErr: errors.New("marathon requires redis")})
	w = do(r, http.MethodPost, `{"hours": 2}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Maraton başlatılamadı")
}
