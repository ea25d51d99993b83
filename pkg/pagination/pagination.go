// Package pagination runs LIMIT/OFFSET pagination over GORM queries and
// turns the result into hal+json pagination links.
package pagination

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/halgorm/halgorm/pkg/dbutil"
	"github.com/halgorm/halgorm/pkg/hal"
	"gorm.io/gorm"
)

// DefaultPerPage is the page size views fall back to when not configured.
const DefaultPerPage = 40

// Params are the sanitized query arguments of one index request.
type Params struct {
	Page    int
	PerPage int
}

// ParseParams reads ?page and ?per_page from the request. Pages are
// 1-based; per_page is clamped to maxPerPage as an upper limit and
// malformed values fall back to the defaults.
func ParseParams(c *gin.Context, maxPerPage int) Params {
	if maxPerPage < 1 {
		maxPerPage = DefaultPerPage
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(maxPerPage)))
	if err != nil || perPage < 1 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Page is one page of query results plus the counts needed for links.
type Page[T any] struct {
	Items   []T
	Number  int
	PerPage int
	Total   int64
	Pages   int
}

// Paginate counts the query and loads the requested page.
func Paginate[T any](db *gorm.DB, p Params) (*Page[T], error) {
	var total int64
	count := db.Session(&gorm.Session{}).Model(new(T))
	if err := count.Count(&total).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}

	items := make([]T, 0, p.PerPage)
	offset := (p.Page - 1) * p.PerPage
	if err := db.Offset(offset).Limit(p.PerPage).Find(&items).Error; err != nil {
		return nil, dbutil.WrapError(err)
	}

	pages := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	return &Page[T]{
		Items:   items,
		Number:  p.Page,
		PerPage: p.PerPage,
		Total:   total,
		Pages:   pages,
	}, nil
}

func (p *Page[T]) HasNext() bool { return p.Number < p.Pages }
func (p *Page[T]) HasPrev() bool { return p.Number > 1 }
func (p *Page[T]) NextNum() int  { return p.Number + 1 }
func (p *Page[T]) PrevNum() int  { return p.Number - 1 }

// Links builds the pagination relations for the page. self points at the
// bare collection path; last collapses onto self when the current page is
// the final one.
func (p *Page[T]) Links(path string) hal.Links {
	links := hal.Links{"self": {Href: path}}
	if p.Pages > 0 {
		if p.Number >= p.Pages {
			links["last"] = links["self"]
		} else {
			links["last"] = hal.Link{Href: pageURL(path, p.Pages)}
		}
	}
	if p.HasNext() {
		links["next"] = hal.Link{Href: pageURL(path, p.NextNum())}
	}
	if p.HasPrev() {
		links["previous"] = hal.Link{Href: pageURL(path, p.PrevNum())}
	}
	return links
}

func pageURL(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}
