package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

// Up00001 creates the products table
func Up00001(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE public.products
	(
		title text COLLATE pg_catalog."default" NOT NULL,
		format text NOT NULL,
		spacecraft text NOT NULL,
		sensing_time timestamp without time zone NOT NULL,
		path text NOT NULL,
		footprint geometry(Polygon, 4326) NOT NULL,
		metadata jsonb NOT NULL DEFAULT '{}'::jsonb,
		CONSTRAINT products_pk_title PRIMARY KEY (title)
	)
	WITH (
		OIDS = FALSE
	);
	`)
	return err
}

// Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.products;`)
	return err
}
