package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/geojson-go/geojson"
)

var mockFootprint = geojson.NewPolygon([][][]float64{{
	{-70, 10}, {-68, 10}, {-68, 8}, {-70, 8}, {-70, 10},
}})

type mockRecord struct {
	model.BasicRecord
	cloudCover float64
}

func (r *mockRecord) Fields() map[string]interface{} {
	fields := r.CommonFields()
	fields["cloud_cover"] = r.cloudCover
	return fields
}

func (r *mockRecord) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(r)
}

func newMockRecord() *mockRecord {
	return &mockRecord{
		BasicRecord: model.BasicRecord{
			ID:           "LC08_L1TP_006052_20170417_20170501_01_T1",
			SensorName:   "L8",
			AcquiredDate: time.Date(2017, 4, 17, 15, 5, 33, 0, time.UTC),
			Geometry:     mockFootprint,
			Source:       model.Landsat8,
		},
		cloudCover: 12.5,
	}
}

const mockMTL = `GROUP = L1_METADATA_FILE
    LANDSAT_PRODUCT_ID = "%s"
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
END_GROUP = L1_METADATA_FILE
`

// writeMockRoot lays out good Landsat MTL products, one broken product and files to be skipped
func writeMockRoot(t *testing.T, good int) string {
	root := t.TempDir()
	for day := 1; day <= good; day++ {
		id := fmt.Sprintf("LC08_L1TP_006052_201704%02d_20170501_01_T1", day)
		require.Nil(t, os.WriteFile(filepath.Join(root, id+"_MTL.txt"), []byte(fmt.Sprintf(mockMTL, id)), 0644))
	}
	require.Nil(t, os.WriteFile(filepath.Join(root, "LC08_broken_MTL.txt"), []byte("not metadata"), 0644))
	require.Nil(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("hello"), 0644))
	require.Nil(t, os.WriteFile(filepath.Join(root, ".LC08_hidden_MTL.txt"), []byte("hidden"), 0644))
	return root
}

type mockWriter struct {
	saved chan []*Product
	err   error
}

func newMockWriter() *mockWriter {
	return &mockWriter{saved: make(chan []*Product, 8)}
}

func (w *mockWriter) SaveProducts(products []*Product) error {
	if w.err != nil {
		return w.err
	}
	w.saved <- products
	return nil
}

const mockS2Title = "S2A_MSIL1C_20170205T105221_N0204_R051_T32UPF_20170205T105426.SAFE"

// mockS2ProductXML is a product document without the optional global footprint
const mockS2ProductXML = `<?xml version="1.0" encoding="UTF-8"?>
<n1:Level-1C_User_Product xmlns:n1="https://psd-14.sentinel2.eo.esa.int/PSD/User_Product_Level-1C.xsd">
  <n1:General_Info>
    <Product_Info>
      <PRODUCT_START_TIME>2017-02-05T10:52:21.026Z</PRODUCT_START_TIME>
      <PRODUCT_URI>` + mockS2Title + `</PRODUCT_URI>
      <PROCESSING_LEVEL>Level-1C</PROCESSING_LEVEL>
      <Datatake datatakeIdentifier="GS2A_20170205T105221_008536_N02.04">
        <SPACECRAFT_NAME>Sentinel-2A</SPACECRAFT_NAME>
        <SENSING_ORBIT_DIRECTION>DESCENDING</SENSING_ORBIT_DIRECTION>
      </Datatake>
    </Product_Info>
    <Product_Image_Characteristics>
      <QUANTIFICATION_VALUE unit="none">10000</QUANTIFICATION_VALUE>
      <Reflectance_Conversion>
        <U>1.02763689829235</U>
        <Solar_Irradiance_List>
          <SOLAR_IRRADIANCE bandId="0">1913.57</SOLAR_IRRADIANCE>
        </Solar_Irradiance_List>
      </Reflectance_Conversion>
    </Product_Image_Characteristics>
  </n1:General_Info>
</n1:Level-1C_User_Product>`

// writeMockS2Product adds a Sentinel-2 product folder without a footprint to root
func writeMockS2Product(t *testing.T, root string) {
	dir := filepath.Join(root, mockS2Title)
	require.Nil(t, os.MkdirAll(dir, 0755))
	require.Nil(t, os.WriteFile(filepath.Join(dir, "MTD_MSIL1C.xml"), []byte(mockS2ProductXML), 0644))
}
