package workouts

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/halgorm/halgorm/pkg/forms"
	"github.com/halgorm/halgorm/pkg/hal"
	"github.com/halgorm/halgorm/pkg/halerrors"
	"github.com/halgorm/halgorm/pkg/views"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const resourcePath = "/workouts/:id"

// Handler exposes the workout routes.
type Handler struct {
	store   *Store
	form    *forms.Form
	logger  *zap.Logger
	perPage int
}

func NewHandler(store *Store, logger *zap.Logger, perPage int) *Handler {
	return &Handler{
		store:   store,
		form:    forms.New(Form{}),
		logger:  logger,
		perPage: perPage,
	}
}

// Register mounts the workout routes on the given router group.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/workouts", views.Index[Workout](views.IndexConfig{
		Collection:      "workouts",
		PerPage:         h.perPage,
		SubresourcePath: resourcePath,
	}, func(c *gin.Context) *gorm.DB {
		return h.store.Query().WithContext(c.Request.Context())
	}))

	r.GET(resourcePath, views.Resource(h.lookup))
	r.POST("/workouts", h.form.Validated(), h.create)
	r.PATCH(resourcePath, h.form.Validated(), h.patch)
	r.OPTIONS("/workouts", h.form.Options)
	r.GET("/workouts/schema", h.form.SchemaHandler)
}

func (h *Handler) lookup(c *gin.Context) (any, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, halerrors.NotFound
	}
	return h.store.Get(c.Request.Context(), id)
}

func (h *Handler) create(c *gin.Context) {
	form := forms.Payload[Form](c)
	w, err := h.store.Create(c.Request.Context(), form)
	if err != nil {
		h.logger.Error("Failed to create workout", zap.Error(err))
		halerrors.Respond(c, err)
		return
	}

	h.logger.Info("Workout created",
		zap.String("id", w.ID.String()),
		zap.String("kind", w.Kind))

	res := hal.NewFrom(*w)
	if href, err := views.ResolvePath(resourcePath, w); err == nil {
		res.WithSelf(href)
		c.Header("Location", href)
	}
	raw, err := json.Marshal(res)
	if err != nil {
		halerrors.Respond(c, err)
		return
	}
	c.Data(http.StatusCreated, hal.ContentType, raw)
}

func (h *Handler) patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		halerrors.Respond(c, halerrors.NotFound)
		return
	}

	w, err := h.store.Patch(c.Request.Context(), id, forms.Clean(c))
	if err != nil {
		halerrors.Respond(c, err)
		return
	}

	res := hal.NewFrom(*w).WithSelf(c.Request.URL.Path)
	raw, err := json.Marshal(res)
	if err != nil {
		halerrors.Respond(c, err)
		return
	}
	c.Data(http.StatusOK, hal.ContentType, raw)
}
