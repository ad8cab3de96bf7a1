package catalog

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

const defaultLimit = 1000

const upsertSQL = `
	INSERT INTO public.products
	(title, format, spacecraft, sensing_time, path, footprint, metadata)
	VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_GeomFromGeoJSON($6), 4326), $7)
	ON CONFLICT (title) DO UPDATE SET
		format = EXCLUDED.format,
		spacecraft = EXCLUDED.spacecraft,
		sensing_time = EXCLUDED.sensing_time,
		path = EXCLUDED.path,
		footprint = EXCLUDED.footprint,
		metadata = EXCLUDED.metadata`

const selectColumns = `title, format, spacecraft, sensing_time, path, ST_AsGeoJSON(footprint), metadata`

// upsertArgs returns the positional arguments of upsertSQL
func upsertArgs(p *Product) ([]interface{}, error) {
	if p.Footprint == nil {
		return nil, fmt.Errorf("product %s has no footprint", p.Title)
	}
	footprint, err := json.Marshal(p.Footprint)
	if err != nil {
		return nil, err
	}
	metadata, err := json.Marshal(p.Metadata)
	if err != nil {
		return nil, err
	}
	return []interface{}{p.Title, p.Format, p.Spacecraft, p.SensingTime.UTC(), p.Path, string(footprint), string(metadata)}, nil
}

// discoverSQL builds the search statement of q together with its arguments
func discoverSQL(q Query) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(q.BBox) == 4 {
		conditions = append(conditions, fmt.Sprintf("footprint && ST_MakeEnvelope(%s, %s, %s, %s, 4326)",
			arg(q.BBox[0]), arg(q.BBox[1]), arg(q.BBox[2]), arg(q.BBox[3])))
	}
	if q.Spacecraft != "" {
		conditions = append(conditions, "spacecraft = "+arg(q.Spacecraft))
	}
	if q.Format != "" {
		conditions = append(conditions, "format = "+arg(q.Format))
	}
	if !q.From.IsZero() {
		conditions = append(conditions, "sensing_time >= "+arg(q.From.UTC()))
	}
	if !q.To.IsZero() {
		conditions = append(conditions, "sensing_time <= "+arg(q.To.UTC()))
	}

	var b strings.Builder
	b.WriteString("SELECT " + selectColumns + " FROM public.products")
	if len(conditions) > 0 {
		b.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	b.WriteString(" ORDER BY sensing_time DESC LIMIT " + arg(limit))
	return b.String(), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var footprint, metadata []byte
	p := Product{}
	if err := row.Scan(&p.Title, &p.Format, &p.Spacecraft, &p.SensingTime, &p.Path, &footprint, &metadata); err != nil {
		return nil, err
	}
	return decodeProduct(p, footprint, metadata)
}

func decodeProduct(p Product, footprint, metadata []byte) (*Product, error) {
	parsed, err := geojson.Parse(footprint)
	if err != nil {
		return nil, fmt.Errorf("decoding footprint of %s: %w", p.Title, err)
	}
	polygon, ok := parsed.(*geojson.Polygon)
	if !ok {
		return nil, fmt.Errorf("footprint of %s is a %T, not a polygon", p.Title, parsed)
	}
	p.Footprint = polygon
	if len(metadata) > 0 {
		if err = json.Unmarshal(metadata, &p.Metadata); err != nil {
			return nil, fmt.Errorf("decoding metadata of %s: %w", p.Title, err)
		}
	}
	return &p, nil
}

// Upsert inserts a product, replacing the row with the same title
func Upsert(tx *sql.Tx, p *Product) error {
	args, err := upsertArgs(p)
	if err != nil {
		return err
	}
	_, err = tx.Exec(upsertSQL, args...)
	return err
}

// GetByTitle returns one product, or sql.ErrNoRows
func GetByTitle(tx *sql.Tx, title string) (*Product, error) {
	row := tx.QueryRow(`SELECT `+selectColumns+` FROM public.products WHERE title=$1 LIMIT 1`, title)
	return scanProduct(row)
}

// Discover returns the products matching q, most recent first
func Discover(tx *sql.Tx, q Query) ([]*Product, error) {
	statement, args := discoverSQL(q)
	rows, err := tx.Query(statement, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
