package forms_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/halgorm/halgorm/pkg/forms"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schemaForm struct {
	Title   string          `json:"title" validate:"required,min=3,max=120"`
	Email   string          `json:"email" validate:"omitempty,email"`
	Kind    string          `json:"kind" validate:"required,oneof=run ride swim"`
	Score   decimal.Decimal `json:"score" validate:"required"`
	Reps    int             `json:"reps" validate:"omitempty,gte=1,lte=500"`
	Done    bool            `json:"done"`
	Tags    []string        `json:"tags" validate:"omitempty,max=10"`
	DueDate time.Time       `json:"due_date"`
}

func TestSchemaShape(t *testing.T) {
	s := forms.New(schemaForm{}).Schema()

	assert.Equal(t, "object", s.Type)
	assert.ElementsMatch(t, []string{"title", "kind", "score"}, s.Required)

	title := s.Properties["title"]
	require.NotNil(t, title)
	assert.Equal(t, "string", title.Type)
	require.NotNil(t, title.MinLength)
	assert.Equal(t, 3, *title.MinLength)
	require.NotNil(t, title.MaxLength)
	assert.Equal(t, 120, *title.MaxLength)

	assert.Equal(t, "email", s.Properties["email"].Format)
	assert.Equal(t, []string{"run", "ride", "swim"}, s.Properties["kind"].Enum)
	assert.Equal(t, "number", s.Properties["score"].Type)
	assert.Equal(t, "boolean", s.Properties["done"].Type)
	assert.Equal(t, "date-time", s.Properties["due_date"].Format)

	reps := s.Properties["reps"]
	assert.Equal(t, "integer", reps.Type)
	require.NotNil(t, reps.Minimum)
	assert.Equal(t, float64(1), *reps.Minimum)
	require.NotNil(t, reps.Maximum)
	assert.Equal(t, float64(500), *reps.Maximum)

	tags := s.Properties["tags"]
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)
	require.NotNil(t, tags.MaxItems)
	assert.Equal(t, 10, *tags.MaxItems)
}

func TestSchemaHandlerContentType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/workouts/schema", forms.New(schemaForm{}).SchemaHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/workouts/schema", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/schema+json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"properties"`)
}
