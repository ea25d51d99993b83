// Package views assembles gin handlers that render models and paginated
// queries as application/hal+json.
package views

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/halgorm/halgorm/pkg/hal"
	"github.com/halgorm/halgorm/pkg/halerrors"
	"github.com/halgorm/halgorm/pkg/pagination"
	"gorm.io/gorm"
)

// Query loads the model a resource request renders.
type Query func(c *gin.Context) (any, error)

// Resource returns a GET handler that renders one model as hal+json with
// a self link pointing at the request path.
func Resource(query Query) gin.HandlerFunc {
	return func(c *gin.Context) {
		model, err := query(c)
		if err != nil {
			halerrors.Respond(c, err)
			return
		}
		writeHAL(c, hal.NewFrom(model).WithSelf(c.Request.URL.Path))
	}
}

// IndexConfig configures a paginated collection view.
type IndexConfig struct {
	// Collection is the _embedded key the items appear under.
	Collection string
	// PerPage is the upper ?per_page limit and its default.
	PerPage int
	// SubresourcePath is the route pattern of the item resource view,
	// e.g. "/workouts/:id". When set, each embedded item carries a self
	// link resolved from its own fields. When empty items embed bare.
	SubresourcePath string
	// FindTemplate, when set, is exposed as a templated find link.
	FindTemplate string
}

// Index returns a GET handler that renders one page of T as hal+json:
// pagination links, total and per_page in the body, and the page items
// embedded under the collection name.
func Index[T any](cfg IndexConfig, query func(c *gin.Context) *gorm.DB) gin.HandlerFunc {
	if cfg.Collection == "" {
		panic("views: IndexConfig.Collection is required")
	}
	perPage := cfg.PerPage
	if perPage < 1 {
		perPage = pagination.DefaultPerPage
	}
	return func(c *gin.Context) {
		params := pagination.ParseParams(c, perPage)
		page, err := pagination.Paginate[T](query(c), params)
		if err != nil {
			halerrors.Respond(c, err)
			return
		}

		items := make([]*hal.Resource, 0, len(page.Items))
		for _, item := range page.Items {
			r := hal.NewFrom(item)
			if cfg.SubresourcePath != "" {
				if href, err := ResolvePath(cfg.SubresourcePath, item); err == nil {
					r.WithSelf(href)
				}
			}
			items = append(items, r)
		}

		links := page.Links(c.Request.URL.Path)
		if cfg.FindTemplate != "" {
			links["find"] = hal.Link{Href: cfg.FindTemplate, Templated: true}
		}

		writeHAL(c, hal.New(map[string]any{
			"total":    page.Total,
			"per_page": page.PerPage,
		}).WithLinks(links).Embed(cfg.Collection, items))
	}
}

func writeHAL(c *gin.Context, res *hal.Resource) {
	raw, err := json.Marshal(res)
	if err != nil {
		halerrors.Respond(c, err)
		return
	}
	c.Data(http.StatusOK, hal.ContentType, raw)
}
