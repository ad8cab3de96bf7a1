package landsat

import (
	"fmt"
	"strings"
)

// mockMTL builds a minimal MTL document. radianceBands and reflectanceBands control how many
// rescaling lines are written per operation.
func mockMTL(radianceBands, reflectanceBands int) string {
	var b strings.Builder
	b.WriteString("GROUP = L1_METADATA_FILE\n")
	b.WriteString("  GROUP = METADATA_FILE_INFO\n")
	b.WriteString("    LANDSAT_SCENE_ID = \"LC80060522017107LGN00\"\n")
	b.WriteString("    LANDSAT_PRODUCT_ID = \"LC08_L1TP_x\"\n")
	b.WriteString("  END_GROUP = METADATA_FILE_INFO\n")
	b.WriteString("  GROUP = PRODUCT_METADATA\n")
	b.WriteString("    SPACECRAFT_ID = \"LANDSAT_8\"\n")
	b.WriteString("    SENSOR_ID = \"OLI_TIRS\"\n")
	b.WriteString("    WRS_PATH = 6\n")
	b.WriteString("    WRS_ROW = 52\n")
	b.WriteString("    DATE_ACQUIRED = 2017-04-17\n")
	b.WriteString("    SCENE_CENTER_TIME = \"15:05:33.1234560Z\"\n")
	b.WriteString("    CORNER_UL_LAT_PRODUCT = 10.0\n")
	b.WriteString("    CORNER_UL_LON_PRODUCT = -70.0\n")
	b.WriteString("    CORNER_UR_LAT_PRODUCT = 10.0\n")
	b.WriteString("    CORNER_UR_LON_PRODUCT = -68.0\n")
	b.WriteString("    CORNER_LL_LAT_PRODUCT = 8.0\n")
	b.WriteString("    CORNER_LL_LON_PRODUCT = -70.0\n")
	b.WriteString("    CORNER_LR_LAT_PRODUCT = 8.0\n")
	b.WriteString("    CORNER_LR_LON_PRODUCT = -68.0\n")
	b.WriteString("    CORNER_UL_PROJECTION_X_PRODUCT = 281700.000\n")
	b.WriteString("    CORNER_UL_PROJECTION_Y_PRODUCT = 1106100.000\n")
	b.WriteString("    CORNER_UR_PROJECTION_X_PRODUCT = 510900.000\n")
	b.WriteString("    CORNER_UR_PROJECTION_Y_PRODUCT = 1106100.000\n")
	b.WriteString("    CORNER_LL_PROJECTION_X_PRODUCT = 281700.000\n")
	b.WriteString("    CORNER_LL_PROJECTION_Y_PRODUCT = 873600.000\n")
	b.WriteString("    CORNER_LR_PROJECTION_X_PRODUCT = 510900.000\n")
	b.WriteString("    CORNER_LR_PROJECTION_Y_PRODUCT = 873600.000\n")
	b.WriteString("  END_GROUP = PRODUCT_METADATA\n")
	b.WriteString("  GROUP = IMAGE_ATTRIBUTES\n")
	b.WriteString("    CLOUD_COVER = 12.34\n")
	b.WriteString("    CLOUD_COVER_LAND = 5.67\n")
	b.WriteString("    SUN_AZIMUTH = 87.12\n")
	b.WriteString("    SUN_ELEVATION = 63.5\n")
	b.WriteString("    EARTH_SUN_DISTANCE = 1.0045\n")
	b.WriteString("  END_GROUP = IMAGE_ATTRIBUTES\n")
	b.WriteString("  GROUP = RADIOMETRIC_RESCALING\n")
	for band := radianceBands; band >= 1; band-- {
		fmt.Fprintf(&b, "    RADIANCE_MULT_BAND_%d = %.4E\n", band, float64(band)*1e-2)
	}
	for band := 1; band <= radianceBands; band++ {
		fmt.Fprintf(&b, "    RADIANCE_ADD_BAND_%d = -%d.5\n", band, band)
	}
	for band := 1; band <= reflectanceBands; band++ {
		fmt.Fprintf(&b, "    REFLECTANCE_MULT_BAND_%d = 2.0000E-05\n", band)
		fmt.Fprintf(&b, "    REFLECTANCE_ADD_BAND_%d = -0.100000\n", band)
	}
	b.WriteString("  END_GROUP = RADIOMETRIC_RESCALING\n")
	b.WriteString("END_GROUP = L1_METADATA_FILE\n")
	b.WriteString("END\n")
	return b.String()
}
