// Copyright 2016, RadiantBlue Technologies, Inc.
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

package util

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	DATABASE_URL       = "DATABASE_URL"
	PORT               = "PORT"
	SATMETA_STRATEGY   = "SATMETA_STRATEGY"
	SATMETA_WORKERS    = "SATMETA_WORKERS"
	SATMETA_CACHE_SIZE = "SATMETA_CACHE_SIZE"
	SATMETA_LOG_LEVEL  = "SATMETA_LOG_LEVEL"
	SATMETA_ROOT       = "SATMETA_ROOT"
)

const (
	defaultPort      = "8080"
	defaultStrategy  = "sequential"
	defaultCacheSize = 256
)

// LoadEnvFile reads a .env file into the environment if one exists.
// Variables already set in the environment take precedence.
func LoadEnvFile(filenames ...string) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err == nil {
			LogInfo(&BasicLogContext{}, "Loaded environment from "+name)
		}
	}
}

// GetDatabaseURL returns a string for the DATABASE_URL environment variable
func GetDatabaseURL() string {
	dbURL, ok := os.LookupEnv(DATABASE_URL)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get a database URL from the environment. The catalog will not be available.")
	}
	return dbURL
}

// GetPortStr returns the listen address built from the PORT environment variable
func GetPortStr() string {
	if port, ok := os.LookupEnv(PORT); ok && port != "" {
		return ":" + port
	}
	return ":" + defaultPort
}

// GetStrategy returns the batch parse strategy name from SATMETA_STRATEGY
func GetStrategy() string {
	strategy, ok := os.LookupEnv(SATMETA_STRATEGY)
	if !ok || strategy == "" {
		return defaultStrategy
	}
	return strings.ToLower(strategy)
}

// GetWorkers returns the worker count from SATMETA_WORKERS, defaulting to the CPU count
func GetWorkers() (int, error) {
	workers, ok := os.LookupEnv(SATMETA_WORKERS)
	if !ok || workers == "" {
		return runtime.NumCPU(), nil
	}
	n, err := strconv.Atoi(workers)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", SATMETA_WORKERS, workers, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid %s %q: must be at least 1", SATMETA_WORKERS, workers)
	}
	return n, nil
}

// GetCacheSize returns the parse cache capacity from SATMETA_CACHE_SIZE
func GetCacheSize() int {
	size, ok := os.LookupEnv(SATMETA_CACHE_SIZE)
	if !ok || size == "" {
		return defaultCacheSize
	}
	n, err := strconv.Atoi(size)
	if err != nil || n < 1 {
		LogAlert(&BasicLogContext{}, fmt.Sprintf("Ignoring invalid %s %q, using %d", SATMETA_CACHE_SIZE, size, defaultCacheSize))
		return defaultCacheSize
	}
	return n
}

// GetDataRoot returns the directory products are served from (SATMETA_ROOT)
func GetDataRoot() string {
	root, ok := os.LookupEnv(SATMETA_ROOT)
	if !ok {
		LogAlert(&BasicLogContext{}, "Did not get a data root from the environment. On-demand parsing will not be available.")
	}
	return root
}
