package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00002, Down00002)
}

// Up00002 adds the indexes used by catalog discovery.
func Up00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_products_footprint
		ON public.products USING gist
		(footprint);

		CREATE INDEX IF NOT EXISTS idx_products_sensing_time ON public.products (sensing_time DESC);
		CREATE INDEX IF NOT EXISTS idx_products_spacecraft ON public.products (spacecraft);
		`)
	return err
}

// Down00002 removes the indexes.
func Down00002(tx *sql.Tx) error {
	_, err := tx.Exec(`
		DROP INDEX IF EXISTS public.idx_products_footprint;
		DROP INDEX IF EXISTS public.idx_products_sensing_time;
		DROP INDEX IF EXISTS public.idx_products_spacecraft;
		`)
	return err
}
