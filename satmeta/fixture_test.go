package satmeta

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mockMTL = `GROUP = L1_METADATA_FILE
  GROUP = METADATA_FILE_INFO
    LANDSAT_PRODUCT_ID = "%s"
  END_GROUP = METADATA_FILE_INFO
  GROUP = PRODUCT_METADATA
    SPACECRAFT_ID = "LANDSAT_8"
    DATE_ACQUIRED = 2017-04-17
    SCENE_CENTER_TIME = "15:05:33.1234560Z"
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
  END_GROUP = PRODUCT_METADATA
END_GROUP = L1_METADATA_FILE
`

// writeMockMTL writes a plain Landsat MTL file named after productID into dir
func writeMockMTL(t *testing.T, dir, productID string) string {
	p := filepath.Join(dir, productID+"_MTL.txt")
	require.Nil(t, os.WriteFile(p, []byte(fmt.Sprintf(mockMTL, productID)), 0644))
	return p
}

func mockProductID(day int) string {
	return fmt.Sprintf("LC08_L1TP_006052_201704%02d_20170501_01_T1", day)
}
