package forms_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/halgorm/halgorm/pkg/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workoutForm struct {
	Title           string `json:"title" validate:"required,min=3,max=120"`
	Kind            string `json:"kind" validate:"required,oneof=run ride swim"`
	DurationSeconds int    `json:"duration_seconds" validate:"omitempty,gte=0,lte=86400"`
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func newRouter(form *forms.Form) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handle := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"payload": forms.Payload[workoutForm](c),
			"clean":   forms.Clean(c),
		})
	}
	r.POST("/workouts", form.Validated(), handle)
	r.PATCH("/workouts/:id", form.Validated(), handle)
	r.OPTIONS("/workouts", form.Options)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var got errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	return got
}

func TestPostValidPayloadPassesThrough(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	w := doJSON(t, r, http.MethodPost, "/workouts",
		`{"title": "morning run", "kind": "run", "duration_seconds": 1800}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Payload workoutForm    `json:"payload"`
		Clean   map[string]any `json:"clean"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "morning run", got.Payload.Title)
	assert.Equal(t, 1800, got.Payload.DurationSeconds)
	assert.Contains(t, got.Clean, "title")
	assert.Contains(t, got.Clean, "duration_seconds")
}

func TestPostMissingRequiredField(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	w := doJSON(t, r, http.MethodPost, "/workouts", `{"kind": "run"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	got := decodeErrors(t, w)
	assert.Equal(t, "Validation error", got.Message)
	assert.Equal(t, "this field is required", got.Errors["title"])
	assert.NotContains(t, got.Errors, "kind")
}

func TestPostCollectsAllFieldErrors(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	w := doJSON(t, r, http.MethodPost, "/workouts",
		`{"title": "ab", "kind": "crawl", "duration_seconds": 100000}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	got := decodeErrors(t, w)
	assert.Equal(t, "must be at least 3 characters long", got.Errors["title"])
	assert.Equal(t, "must be one of: run, ride, swim", got.Errors["kind"])
	assert.Equal(t, "must be less than or equal to 86400", got.Errors["duration_seconds"])
}

func TestPatchValidatesOnlyPresentFields(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	// Title and kind absent: required rules must not fire on PATCH.
	w := doJSON(t, r, http.MethodPatch, "/workouts/1", `{"duration_seconds": 600}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Clean map[string]any `json:"clean"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Clean, 1)
	assert.Contains(t, got.Clean, "duration_seconds")
}

func TestPatchStillValidatesPresentFields(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	w := doJSON(t, r, http.MethodPatch, "/workouts/1", `{"title": "ab"}`)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	got := decodeErrors(t, w)
	assert.Equal(t, "must be at least 3 characters long", got.Errors["title"])
	assert.Len(t, got.Errors, 1)
}

func TestEmptyBodyRejected(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	for _, payload := range []string{"", "{}", "null", "not json"} {
		w := doJSON(t, r, http.MethodPost, "/workouts", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code, "payload %q", payload)
	}
}

func TestUndeclaredFieldsDroppedFromClean(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	w := doJSON(t, r, http.MethodPost, "/workouts",
		`{"title": "evening swim", "kind": "swim", "is_admin": true}`)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Clean map[string]any `json:"clean"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotContains(t, got.Clean, "is_admin")
}

func TestOptionsAdvertisesAcceptPatch(t *testing.T) {
	r := newRouter(forms.New(workoutForm{}))

	req := httptest.NewRequest(http.MethodOptions, "/workouts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json;charset=utf-8", w.Header().Get("Accept-Patch"))
	assert.Contains(t, w.Header().Get("Allow"), "PATCH")
}
