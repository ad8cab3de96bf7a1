package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	_ "github.com/lib/pq"
	"github.com/venicegeo/bf-satmeta/util"
)

// getDbConnection opens a new database connection.
func getDbConnection(ctx util.LogContext) (*sql.DB, error) {
	connStr := util.GetDatabaseURL()
	if connStr == "" {
		return nil, errors.New("Could not get DB connection: DATABASE_URL is not set")
	}

	dbURI, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("Could not parse DATABASE_URL: %w", err)
	}
	// pq expects SSL to be enabled if not explicitly disabled
	params := dbURI.Query()
	if params.Get("sslmode") == "" {
		params.Set("sslmode", "disable")
	}
	dbURI.RawQuery = params.Encode()

	util.LogInfo(ctx, fmt.Sprintf("Creating database connection at: `%s`", dbURI.Redacted()))
	db, err := sql.Open("postgres", dbURI.String())
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, util.Error{
			LogMsg:    fmt.Sprintf("Failed to ping database: %v", err),
			SimpleMsg: "Could not reach the catalog database",
			URL:       dbURI.Redacted(),
		}.Log(ctx, "getDbConnection")
	}

	return db, nil
}

var getDbConnectionFunc = getDbConnection
