// component_test.go - HTTP tests for the public gallery and voting

package handlers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestSubmitRequiresAuth(t *testing.T) {
	s := setupServer(t)

	w := s.do(http.MethodPost, "/components/", "", map[string]string{"category": "Button"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmit_StartsInReviewAndStaysHidden(t *testing.T) {
	s := setupServer(t)
	_, token := s.registerUser("bob@test.com")

	w := s.do(http.MethodPost, "/components/", token, map[string]string{
		"category":  "Button",
		"html_code": "<button>Go</button>",
		"css_code":  "",
		"status":    "ACCEPTED",
	})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[map[string]interface{}](t, w)
	assert.Equal(t, "IN_REVIEW", view["status"])
	assert.Equal(t, float64(0), view["rating"])
	assert.Equal(t, float64(0), view["review_count"])
	assert.Equal(t, "bob", view["owner"].(map[string]interface{})["username"])

	w = s.do(http.MethodGet, "/components/", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]map[string]interface{}](t, w))
}

func TestListFilters(t *testing.T) {
	s := setupServer(t)
	_, token := s.registerUser("bob@test.com")
	admin := s.token(adminEmail, adminPassword)

	ids := []uint{
		s.submit(token, "Button", "<button>Primary</button>"),
		s.submit(token, "Card", "<div class=card>Profile</div>"),
		s.submit(token, "Button", "<button>50%_off</button>"),
	}
	for _, id := range ids {
		w := s.do(http.MethodPatch, "/admin/components/"+itoa(id)+"/status", admin, map[string]string{"status": "ACCEPTED"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"category", "?category=Button", 2},
		{"category All", "?category=All", 3},
		{"search markup", "?search=primary", 1},
		{"search category", "?search=card", 1},
		{"search literal percent", "?search=%25_", 1},
		{"skip and limit", "?skip=1&limit=1", 1},
		{"skip past end", "?skip=10", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, "/components/"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, decode[[]map[string]interface{}](t, w), tt.want)
		})
	}

	w := s.do(http.MethodGet, "/components/?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetComponent(t *testing.T) {
	s := setupServer(t)
	_, token := s.registerUser("bob@test.com")
	id := s.submit(token, "Input", "<input/>")

	w := s.do(http.MethodGet, "/components/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "IN_REVIEW", decode[map[string]interface{}](t, w)["status"])

	w = s.do(http.MethodGet, "/components/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Component not found", decode[map[string]string](t, w)["detail"])

	w = s.do(http.MethodGet, "/components/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRate(t *testing.T) {
	s := setupServer(t)
	_, alice := s.registerUser("alice@test.com")
	_, bob := s.registerUser("bob@test.com")
	_, carol := s.registerUser("carol@test.com")
	admin := s.token(adminEmail, adminPassword)
	id := s.submit(alice, "Button", "<button/>")
	require.Equal(t, http.StatusOK, s.do(http.MethodPatch, "/admin/components/"+itoa(id)+"/status?status=ACCEPTED", admin, nil).Code)

	path := "/components/" + itoa(id) + "/rate"
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, path, "", map[string]int{"score": 5}).Code)

	for _, vote := range []struct {
		token string
		score int
	}{{alice, 1}, {alice, 5}, {bob, 4}, {carol, 4}} {
		w := s.do(http.MethodPost, path, vote.token, map[string]int{"score": vote.score})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := s.do(http.MethodGet, "/components/"+itoa(id), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[map[string]interface{}](t, w)
	assert.Equal(t, 4.3, view["rating"])
	assert.Equal(t, float64(3), view["review_count"])

	w = s.do(http.MethodPost, "/components/999/rate", alice, map[string]int{"score": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_MarkupFieldsRequired(t *testing.T) {
	s := setupServer(t)
	_, token := s.registerUser("bob@test.com")

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"category only", map[string]string{"category": "Button"}, http.StatusBadRequest},
		{"missing css", map[string]string{"category": "Button", "html_code": "<b/>"}, http.StatusBadRequest},
		{"missing html", map[string]string{"category": "Button", "css_code": "b{}"}, http.StatusBadRequest},
		{"empty markup is allowed", map[string]string{"category": "Button", "html_code": "", "css_code": ""}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/components/", token, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := s.do(http.MethodGet, "/users/me/components", token, nil)
	assert.Len(t, decode[[]map[string]interface{}](t, w), 1)
}

func TestRate_ScoreRequired(t *testing.T) {
	s := setupServer(t)
	_, alice := s.registerUser("alice@test.com")
	_, bob := s.registerUser("bob@test.com")
	id := s.submit(alice, "Button", "<button/>")
	path := "/components/" + itoa(id) + "/rate"

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, path, alice, map[string]int{"score": 5}).Code)

	w := s.do(http.MethodPost, path, bob, map[string]int{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/components/"+itoa(id), "", nil)
	view := decode[map[string]interface{}](t, w)
	assert.Equal(t, 5.0, view["rating"])
	assert.Equal(t, float64(1), view["review_count"])

	// zero is a score like any other
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, path, bob, map[string]int{"score": 0}).Code)
	w = s.do(http.MethodGet, "/components/"+itoa(id), "", nil)
	view = decode[map[string]interface{}](t, w)
	assert.Equal(t, 2.5, view["rating"])
	assert.Equal(t, float64(2), view["review_count"])
}
