// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/venicegeo/bf-satmeta/catalog"
	"github.com/venicegeo/bf-satmeta/satmeta"
	"github.com/venicegeo/bf-satmeta/service"
	"github.com/venicegeo/bf-satmeta/util"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	metricsOnce sync.Once
	metrics     *satmeta.Metrics
)

// getMetrics registers the parsing metrics with the default registry on first use
func getMetrics() *satmeta.Metrics {
	metricsOnce.Do(func() {
		metrics = satmeta.NewMetrics()
	})
	return metrics
}

func createRouter(ctx util.LogContext) (*mux.Router, error) {
	config := service.Config{
		Root:      util.GetDataRoot(),
		CacheSize: util.GetCacheSize(),
		Metrics:   getMetrics(),
	}

	if util.GetDatabaseURL() != "" {
		store, err := catalog.NewStore(getDbConnectionFunc)
		if err != nil {
			return nil, err
		}
		config.Catalog = store
	}

	return service.NewRouter(ctx, config)
}

func serveAction(*cli.Context) error {
	logContext := &(util.BasicLogContext{})

	router, err := createRouter(logContext)
	if err != nil {
		util.LogSimpleErr(logContext, "Failed to create router: ", err)
		return err
	}
	launchServerFunc(util.GetPortStr(), router)
	return nil
}

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
