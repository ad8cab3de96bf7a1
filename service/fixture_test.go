package service

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-satmeta/catalog"
	"github.com/venicegeo/geojson-go/geojson"
)

const mockProductID = "LC08_L1TP_006052_20170417_20170501_01_T1"

const mockMTL = `GROUP = L1_METADATA_FILE
    LANDSAT_PRODUCT_ID = "%s"
    SPACECRAFT_ID = "LANDSAT_8"
    DATE_ACQUIRED = 2017-04-17
    SCENE_CENTER_TIME = "15:05:33.1234560Z"
    CLOUD_COVER = 12.34
    CORNER_UL_LAT_PRODUCT = 10.0
    CORNER_UL_LON_PRODUCT = -70.0
    CORNER_UR_LAT_PRODUCT = 10.0
    CORNER_UR_LON_PRODUCT = -68.0
    CORNER_LL_LAT_PRODUCT = 8.0
    CORNER_LL_LON_PRODUCT = -70.0
    CORNER_LR_LAT_PRODUCT = 8.0
    CORNER_LR_LON_PRODUCT = -68.0
    CORNER_UL_PROJECTION_X_PRODUCT = 281700.000
    CORNER_UL_PROJECTION_Y_PRODUCT = 1106100.000
    CORNER_UR_PROJECTION_X_PRODUCT = 510900.000
    CORNER_UR_PROJECTION_Y_PRODUCT = 1106100.000
    CORNER_LL_PROJECTION_X_PRODUCT = 281700.000
    CORNER_LL_PROJECTION_Y_PRODUCT = 873600.000
    CORNER_LR_PROJECTION_X_PRODUCT = 510900.000
    CORNER_LR_PROJECTION_Y_PRODUCT = 873600.000
END_GROUP = L1_METADATA_FILE
`

// writeMockRoot creates a data root holding one Landsat MTL file and returns the root
func writeMockRoot(t *testing.T) string {
	root := t.TempDir()
	content := []byte(fmt.Sprintf(mockMTL, mockProductID))
	require.Nil(t, os.WriteFile(filepath.Join(root, mockProductID+"_MTL.txt"), content, 0644))
	return root
}

var mockProduct = &catalog.Product{
	Title:       mockProductID,
	Format:      "landsat8",
	Spacecraft:  "L8",
	SensingTime: time.Date(2017, 4, 17, 15, 5, 33, 0, time.UTC),
	Path:        "/data/" + mockProductID + ".tar.gz",
	Footprint: geojson.NewPolygon([][][]float64{{
		{-70, 10}, {-68, 10}, {-68, 8}, {-70, 8}, {-70, 10},
	}}),
	Metadata: map[string]interface{}{"cloud_cover": 12.34},
}

type mockCatalog struct {
	lastQuery catalog.Query
	err       error
}

func (c *mockCatalog) Discover(q catalog.Query) ([]*catalog.Product, error) {
	c.lastQuery = q
	if c.err != nil {
		return nil, c.err
	}
	return []*catalog.Product{mockProduct}, nil
}

func (c *mockCatalog) GetByTitle(title string) (*catalog.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	if title != mockProduct.Title {
		return nil, sql.ErrNoRows
	}
	return mockProduct, nil
}
