package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubStorage struct {
	storage.Storage
	updateErr error
}

func (s *stubStorage) UpdateCaseStatus(id, from, to string) error {
	return s.updateErr
}

type noDirectory struct{}

func (noDirectory) FindVictimIDForUser(userID string) (string, error) {
	return "", scope.ErrNoVictim
}

func transitionRouter(store *stubStorage, profile *models.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{Tracker: tracker.NewService(store, scope.NewResolver(noDirectory{}))}

	r := gin.New()
	r.POST("/api/transitions", func(c *gin.Context) {
		c.Set(profileContextKey, profile)
	}, h.RequestTransition)
	return r
}

func postTransition(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/transitions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRequestTransitionStatusMapping(t *testing.T) {
	officer := &models.Profile{ID: "o-1", Role: models.RoleDistrictOfficer}
	legalMove := `{"entity":"case","entity_id":"c-1","from_status":"registered","to_status":"under_investigation"}`

	tests := []struct {
		name     string
		storeErr error
		body     string
		want     int
		wantErr  string
	}{
		{"applied", nil, legalMove, http.StatusOK, ""},
		{"illegal pair", nil,
			`{"entity":"case","entity_id":"c-1","from_status":"registered","to_status":"in_trial"}`,
			http.StatusForbidden, "illegal_transition"},
		{"stale from status", storage.ErrConflict, legalMove, http.StatusConflict, "state_changed_refresh"},
		{"missing entity", storage.ErrNotFound, legalMove, http.StatusNotFound, "not_found"},
		{"storage failure", assert.AnError, legalMove, http.StatusInternalServerError, "internal_error"},
		{"unknown entity", nil,
			`{"entity":"ledger","entity_id":"x","from_status":"a","to_status":"b"}`,
			http.StatusBadRequest, "unknown_entity"},
		{"incomplete payload", nil,
			`{"entity":"case"}`,
			http.StatusBadRequest, "invalid_payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := transitionRouter(&stubStorage{updateErr: tt.storeErr}, officer)
			w := postTransition(t, r, tt.body)
			assert.Equal(t, tt.want, w.Code)
			if tt.wantErr != "" {
				assert.Contains(t, w.Body.String(), tt.wantErr)
			}
		})
	}
}

// TestRequestTransitionUserRoleGate verifies a user-role caller is turned
// away at the lifecycle check with nothing written.
func TestRequestTransitionUserRoleGate(t *testing.T) {
	user := &models.Profile{ID: "u-1", Role: models.RoleUser}
	store := &stubStorage{}
	r := transitionRouter(store, user)

	w := postTransition(t, r,
		`{"entity":"case","entity_id":"c-1","from_status":"registered","to_status":"under_investigation"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "illegal_transition")
}
