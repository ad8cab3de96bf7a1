package service

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/util"
)

// MetadataHandler is a handler for /metadata
// @Title metadataHandler
// @Description parses the metadata of a product below the data root
// @Accept  plain
// @Param   path          query   string  true         "The product path, relative to the data root"
// @Param   format        query   string  false        "The product format; detected from the name when omitted"
// @Param   annotations   query   bool    false        "True: read Sentinel-1 annotation files"
// @Param   flatten       query   bool    false        "True: merge a single Sentinel-2 granule into the product"
// @Success 200 {object}  geojson.Feature
// @Failure 400 {object}  string
// @Failure 404 {object}  string
// @Router /metadata [get]
type MetadataHandler struct {
	Context Context
	Root    string
	Metrics *satmeta.Metrics
	cache   *lru.Cache[string, []byte]
}

// NewMetadataHandler creates a handler serving products below root, caching up to cacheSize
// parsed features
func NewMetadataHandler(root string, cacheSize int, metrics *satmeta.Metrics) (*MetadataHandler, error) {
	if root == "" {
		return nil, errors.New("no data root configured")
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &MetadataHandler{Root: root, Metrics: metrics, cache: cache}, nil
}

// resolve maps a client path to a path below the root
func (h *MetadataHandler) resolve(relative string) string {
	return filepath.Join(h.Root, filepath.Clean("/"+relative))
}

// errorStatus picks the HTTP status reported for a parse error
func errorStatus(err error) int {
	var (
		unsupported *model.UnsupportedInputError
		missingFile *model.MissingFileError
		ambiguous   *model.AmbiguousFieldError
		missing     *model.MissingFieldError
		coercion    *model.CoercionError
		malformed   *model.MalformedArchiveError
		granule     *model.GranuleError
		format      *model.FormatError
		bandCount   *model.BandCountError
		index       *model.IndexError
	)
	switch {
	case errors.Is(err, os.ErrNotExist), errors.As(err, &missingFile):
		return http.StatusNotFound
	case errors.As(err, &unsupported):
		return http.StatusBadRequest
	case errors.As(err, &ambiguous), errors.As(err, &missing), errors.As(err, &coercion),
		errors.As(err, &malformed), errors.As(err, &granule), errors.As(err, &format),
		errors.As(err, &bandCount), errors.As(err, &index):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// ServeHTTP implements the http.Handler interface for the MetadataHandler type
func (h *MetadataHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	relative := r.FormValue("path")
	if relative == "" {
		util.HTTPError(r, w, &h.Context, "No product path given", http.StatusBadRequest)
		return
	}

	format := satmeta.Unknown
	if r.FormValue("format") != "" {
		var err error
		if format, err = satmeta.ParseFormat(r.FormValue("format")); err != nil {
			util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
			return
		}
	}
	opts := satmeta.Options{}
	opts.Annotations, _ = strconv.ParseBool(r.FormValue("annotations"))
	opts.FlattenSingleGranule, _ = strconv.ParseBool(r.FormValue("flatten"))

	p := h.resolve(relative)
	info, err := os.Stat(p)
	if err != nil {
		message := fmt.Sprintf("Product not found: %s", relative)
		util.LogInfo(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusNotFound)
		return
	}

	key := fmt.Sprintf("%s|%d|%s|%t|%t", p, info.ModTime().UnixNano(), format, opts.Annotations, opts.FlattenSingleGranule)
	if body, ok := h.cache.Get(key); ok {
		h.Metrics.ObserveCache(true)
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(body)
		return
	}
	h.Metrics.ObserveCache(false)

	if format == satmeta.Unknown {
		if format, err = satmeta.DetectFormat(p); err != nil {
			util.WriteHTTPErr(r, w, &h.Context, util.HTTPErr{Status: errorStatus(err), Message: err.Error()})
			return
		}
	}

	started := time.Now()
	record, err := satmeta.ParseWithOptions(r.Context(), format, p, opts)
	h.Metrics.ObserveParse(format, time.Since(started), err)
	if err != nil {
		failure := util.HTTPErr{Status: errorStatus(err), Message: fmt.Sprintf("Error parsing %s: %v", relative, err)}
		util.LogSimpleErr(&h.Context, failure.Message, err)
		util.WriteHTTPErr(r, w, &h.Context, failure)
		return
	}

	feature, err := model.NewRecordFeature(record, model.SourceLocation{Path: relative, Format: format.String()})
	if err != nil {
		message := fmt.Sprintf("Error converting metadata to geojson: %v", err)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusInternalServerError)
		return
	}
	body := []byte(feature.String())
	h.cache.Add(key, body)
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(body)
}
