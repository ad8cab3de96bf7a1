package service

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/util"
)

// Config collects what the router serves. A nil Catalog or an empty Root leaves the matching
// routes out.
type Config struct {
	Root      string
	CacheSize int
	Catalog   Catalog
	Metrics   *satmeta.Metrics
	// MetricsHandler serves /metrics; defaults to the default Prometheus registry
	MetricsHandler http.Handler
}

// NewRouter creates the HTTP routes of the service
func NewRouter(ctx util.LogContext, config Config) (*mux.Router, error) {
	router := mux.NewRouter()
	router.HandleFunc("/", func(writer http.ResponseWriter, request *http.Request) {
		_, _ = writer.Write([]byte("OK"))
	})

	metricsHandler := config.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.Handle("/metrics", metricsHandler)

	if config.Root != "" {
		metadataHandler, err := NewMetadataHandler(config.Root, config.CacheSize, config.Metrics)
		if err != nil {
			return nil, err
		}
		router.Handle("/metadata", metadataHandler).Methods(http.MethodGet)
	} else {
		util.LogAlert(ctx, "No data root configured, not serving /metadata")
	}

	if config.Catalog != nil {
		router.Handle("/catalog/discover", NewDiscoverHandler(config.Catalog)).Methods(http.MethodGet)
		router.Handle("/catalog/{title}", NewProductHandler(config.Catalog)).Methods(http.MethodGet)
	} else {
		util.LogAlert(ctx, "No catalog configured, not serving /catalog")
	}
	return router, nil
}
