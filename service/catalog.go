package service

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-satmeta/catalog"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/util"
	"github.com/venicegeo/geojson-go/geojson"
)

// Catalog is the read side of the product catalog
type Catalog interface {
	Discover(q catalog.Query) ([]*catalog.Product, error)
	GetByTitle(title string) (*catalog.Product, error)
}

// DiscoverHandler is a handler for /catalog/discover
// @Title catalogDiscoverHandler
// @Description discovers products in the catalog
// @Accept  plain
// @Param   bbox            query   string  false        "The bounding box, as a GeoJSON Bounding box (x1,y1,x2,y2)"
// @Param   spacecraft      query   string  false        "The spacecraft, e.g. L8 or S2A"
// @Param   format          query   string  false        "The product format, e.g. sentinel2"
// @Param   acquiredDate    query   string  false        "The minimum (earliest) acquired date, as RFC 3339"
// @Param   maxAcquiredDate query   string  false        "The maximum acquired date, as RFC 3339"
// @Param   limit           query   int     false        "The maximum number of products returned"
// @Success 200 {object}  geojson.FeatureCollection
// @Failure 400 {object}  string
// @Router /catalog/discover [get]
type DiscoverHandler struct {
	Context Context
	Catalog Catalog
}

// NewDiscoverHandler creates a new handler reading from c
func NewDiscoverHandler(c Catalog) *DiscoverHandler {
	return &DiscoverHandler{Catalog: c}
}

func parseDate(r *http.Request, name string) (time.Time, error) {
	value := r.FormValue(name)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("Acquired date value of %v is invalid.", value)
	}
	return t, nil
}

func parseQuery(r *http.Request) (catalog.Query, error) {
	q := catalog.Query{
		Spacecraft: r.FormValue("spacecraft"),
		Format:     r.FormValue("format"),
	}
	var err error
	if bbox := r.FormValue("bbox"); bbox != "" {
		if q.BBox, err = geojson.NewBoundingBox(bbox); err != nil {
			return q, fmt.Errorf("The bbox value of %v is invalid", bbox)
		}
	}
	if q.From, err = parseDate(r, "acquiredDate"); err != nil {
		return q, err
	}
	if q.To, err = parseDate(r, "maxAcquiredDate"); err != nil {
		return q, err
	}
	if limit := r.FormValue("limit"); limit != "" {
		if q.Limit, err = strconv.Atoi(limit); err != nil || q.Limit < 1 {
			return q, fmt.Errorf("Limit value of %v is invalid.", limit)
		}
	}
	return q, nil
}

// ServeHTTP implements the http.Handler interface for the DiscoverHandler type
func (h DiscoverHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		util.LogSimpleErr(&h.Context, err.Error(), err)
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := h.Catalog.Discover(q)
	if err != nil {
		message := fmt.Sprintf("Error searching for products: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	multiResult := model.MultiResult{FeatureCreators: make([]model.GeoJSONFeatureCreator, len(products))}
	for i, product := range products {
		multiResult.FeatureCreators[i] = product
	}
	featureCollection, err := multiResult.GeoJSONFeatureCollection()
	if err != nil {
		message := fmt.Sprintf("Error converting to feature collection: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write([]byte(featureCollection.String()))
}

// ProductHandler is a handler for /catalog/{title}
// @Title catalogProductHandler
// @Description returns one product of the catalog
// @Accept  plain
// @Param   title         path   string  true        "The title of the requested product"
// @Success 200 {object}  geojson.Feature
// @Failure 404 {object}  string
// @Router /catalog/{title} [get]
type ProductHandler struct {
	Context Context
	Catalog Catalog
}

// NewProductHandler creates a new handler reading from c
func NewProductHandler(c Catalog) *ProductHandler {
	return &ProductHandler{Catalog: c}
}

func (h ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	title, ok := mux.Vars(r)["title"]
	if !ok {
		message := "No product title found in URL"
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	product, err := h.Catalog.GetByTitle(title)
	if errors.Is(err, sql.ErrNoRows) {
		message := fmt.Sprintf("Product not found: %s", title)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}
	if err != nil {
		message := fmt.Sprintf("Server error searching for product: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}

	feature, err := product.GeoJSONFeature()
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write([]byte(feature.String()))
}
