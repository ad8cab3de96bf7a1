package sentinel2

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mockProductURI = "S2A_MSIL1C_20170205T105221_N0204_R051_T32UPF_20170205T105426.SAFE"

const mockProductXML = `<?xml version="1.0" encoding="UTF-8"?>
<n1:Level-1C_User_Product xmlns:n1="https://psd-14.sentinel2.eo.esa.int/PSD/User_Product_Level-1C.xsd">
  <n1:General_Info>
    <Product_Info>
      <PRODUCT_START_TIME>2017-02-05T10:52:21.026Z</PRODUCT_START_TIME>
      <PRODUCT_STOP_TIME>2017-02-05T10:52:21.026Z</PRODUCT_STOP_TIME>
      <PRODUCT_URI>` + mockProductURI + `</PRODUCT_URI>
      <PROCESSING_LEVEL>Level-1C</PROCESSING_LEVEL>
      <Datatake datatakeIdentifier="GS2A_20170205T105221_008536_N02.04">
        <SPACECRAFT_NAME>Sentinel-2A</SPACECRAFT_NAME>
        <SENSING_ORBIT_NUMBER>51</SENSING_ORBIT_NUMBER>
        <SENSING_ORBIT_DIRECTION>DESCENDING</SENSING_ORBIT_DIRECTION>
      </Datatake>
    </Product_Info>
    <Product_Image_Characteristics>
      <QUANTIFICATION_VALUE unit="none">10000</QUANTIFICATION_VALUE>
      <Reflectance_Conversion>
        <U>1.02763689829235</U>
        <Solar_Irradiance_List>
          <SOLAR_IRRADIANCE bandId="0" unit="W/m²/µm">1913.57</SOLAR_IRRADIANCE>
          <SOLAR_IRRADIANCE bandId="1" unit="W/m²/µm">1941.63</SOLAR_IRRADIANCE>
          <SOLAR_IRRADIANCE bandId="2" unit="W/m²/µm">1822.61</SOLAR_IRRADIANCE>
        </Solar_Irradiance_List>
      </Reflectance_Conversion>
    </Product_Image_Characteristics>
  </n1:General_Info>
  <n1:Geometric_Info>
    <Product_Footprint>
      <Product_Footprint>
        <Global_Footprint>
          <EXT_POS_LIST>48.65 10.35 48.67 11.85 47.68 11.87 47.66 10.38 48.65 10.35 </EXT_POS_LIST>
        </Global_Footprint>
      </Product_Footprint>
    </Product_Footprint>
  </n1:Geometric_Info>
</n1:Level-1C_User_Product>`

// mockGranuleXML builds a granule document for one tile. The viewing incidence grid of band 0
// is split over two detectors with NaN gaps.
func mockGranuleXML(tileName string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<n1:Level-1C_Tile_ID xmlns:n1="https://psd-14.sentinel2.eo.esa.int/PSD/S2_PDI_Level-1C_Tile_Metadata.xsd">
  <n1:General_Info>
    <TILE_ID metadataLevel="Brief">S2A_OPER_MSI_L1C_TL_SGS__20170205T105426_A008536_T%s_N02.04</TILE_ID>
    <SENSING_TIME metadataLevel="Standard">2017-02-05T10:54:05.456Z</SENSING_TIME>
  </n1:General_Info>
  <n1:Geometric_Info>
    <Tile_Geocoding metadataLevel="Brief">
      <HORIZONTAL_CS_NAME>WGS84 / UTM zone 32N</HORIZONTAL_CS_NAME>
      <HORIZONTAL_CS_CODE>EPSG:32632</HORIZONTAL_CS_CODE>
      <Size resolution="10"><NROWS>10980</NROWS><NCOLS>10980</NCOLS></Size>
      <Size resolution="20"><NROWS>5490</NROWS><NCOLS>5490</NCOLS></Size>
      <Size resolution="60"><NROWS>1830</NROWS><NCOLS>1830</NCOLS></Size>
      <Geoposition resolution="10"><ULX>600000</ULX><ULY>5400000</ULY><XDIM>10</XDIM><YDIM>-10</YDIM></Geoposition>
      <Geoposition resolution="20"><ULX>600000</ULX><ULY>5400000</ULY><XDIM>20</XDIM><YDIM>-20</YDIM></Geoposition>
      <Geoposition resolution="60"><ULX>600000</ULX><ULY>5400000</ULY><XDIM>60</XDIM><YDIM>-60</YDIM></Geoposition>
    </Tile_Geocoding>
    <Tile_Angles metadataLevel="Standard">
      <Sun_Angles_Grid>
        <Zenith>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>67.1 67.2 67.3</VALUES>
            <VALUES>67.4 67.5 67.6</VALUES>
          </Values_List>
        </Zenith>
        <Azimuth>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>163.1 163.2 163.3</VALUES>
            <VALUES>163.4 163.5 163.6</VALUES>
          </Values_List>
        </Azimuth>
      </Sun_Angles_Grid>
      <Mean_Sun_Angle>
        <ZENITH_ANGLE unit="deg">67.4</ZENITH_ANGLE>
        <AZIMUTH_ANGLE unit="deg">163.4</AZIMUTH_ANGLE>
      </Mean_Sun_Angle>
      <Viewing_Incidence_Angles_Grids bandId="0" detectorId="1">
        <Zenith>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>5.1 5.2 NaN</VALUES>
            <VALUES>5.4 NaN NaN</VALUES>
          </Values_List>
        </Zenith>
        <Azimuth>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>100.1 100.2 NaN</VALUES>
            <VALUES>100.4 NaN NaN</VALUES>
          </Values_List>
        </Azimuth>
      </Viewing_Incidence_Angles_Grids>
      <Viewing_Incidence_Angles_Grids bandId="0" detectorId="2">
        <Zenith>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>NaN 9.2 9.3</VALUES>
            <VALUES>NaN 9.5 NaN</VALUES>
          </Values_List>
        </Zenith>
        <Azimuth>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>NaN 280.2 280.3</VALUES>
            <VALUES>NaN 280.5 NaN</VALUES>
          </Values_List>
        </Azimuth>
      </Viewing_Incidence_Angles_Grids>
      <Viewing_Incidence_Angles_Grids bandId="1" detectorId="1">
        <Zenith>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>6.1 6.2 6.3</VALUES>
            <VALUES>6.4 6.5 6.6</VALUES>
          </Values_List>
        </Zenith>
        <Azimuth>
          <COL_STEP unit="m">5000</COL_STEP>
          <ROW_STEP unit="m">5000</ROW_STEP>
          <Values_List>
            <VALUES>101.1 101.2 101.3</VALUES>
            <VALUES>101.4 101.5 101.6</VALUES>
          </Values_List>
        </Azimuth>
      </Viewing_Incidence_Angles_Grids>
      <Mean_Viewing_Incidence_Angle_List>
        <Mean_Viewing_Incidence_Angle bandId="0">
          <ZENITH_ANGLE unit="deg">7.1</ZENITH_ANGLE>
          <AZIMUTH_ANGLE unit="deg">190.1</AZIMUTH_ANGLE>
        </Mean_Viewing_Incidence_Angle>
        <Mean_Viewing_Incidence_Angle bandId="1">
          <ZENITH_ANGLE unit="deg">6.3</ZENITH_ANGLE>
          <AZIMUTH_ANGLE unit="deg">101.3</AZIMUTH_ANGLE>
        </Mean_Viewing_Incidence_Angle>
      </Mean_Viewing_Incidence_Angle_List>
    </Tile_Angles>
  </n1:Geometric_Info>
  <n1:Quality_Indicators_Info metadataLevel="Standard">
    <Image_Content_QI>
      <CLOUDY_PIXEL_PERCENTAGE>12.5</CLOUDY_PIXEL_PERCENTAGE>
      <DEGRADED_MSI_DATA_PERCENTAGE>0</DEGRADED_MSI_DATA_PERCENTAGE>
    </Image_Content_QI>
  </n1:Quality_Indicators_Info>
</n1:Level-1C_Tile_ID>`, tileName)
}

func granuleDir(tileName string) string {
	return "L1C_T" + tileName + "_A008536_20170205T105426"
}

// writeMockSAFE writes a .SAFE folder holding one granule per tile name and returns its path
func writeMockSAFE(t *testing.T, tileNames ...string) string {
	safe := filepath.Join(t.TempDir(), mockProductURI)
	require.Nil(t, os.MkdirAll(safe, 0755))
	require.Nil(t, os.WriteFile(filepath.Join(safe, "MTD_MSIL1C.xml"), []byte(mockProductXML), 0644))
	require.Nil(t, os.WriteFile(filepath.Join(safe, "INSPIRE.xml"), []byte("<inspire/>"), 0644))
	for _, tile := range tileNames {
		dir := filepath.Join(safe, "GRANULE", granuleDir(tile))
		require.Nil(t, os.MkdirAll(filepath.Join(dir, "QI_DATA"), 0755))
		require.Nil(t, os.WriteFile(filepath.Join(dir, "MTD_TL.xml"), []byte(mockGranuleXML(tile)), 0644))
		require.Nil(t, os.WriteFile(filepath.Join(dir, "QI_DATA", "MSK_CLOUDS_B00.gml"), []byte("<gml/>"), 0644))
	}
	return safe
}

// writeMockZip writes a zipped product holding one granule per tile name and returns its path
func writeMockZip(t *testing.T, tileNames ...string) string {
	p := filepath.Join(t.TempDir(), "S2A_MSIL1C_20170205T105221_N0204_R051_T32UPF_20170205T105426.zip")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, content string) {
		w, err := zw.Create(name)
		require.Nil(t, err)
		_, err = w.Write([]byte(content))
		require.Nil(t, err)
	}
	write(mockProductURI+"/INSPIRE.xml", "<inspire/>")
	write(mockProductURI+"/MTD_MSIL1C.xml", mockProductXML)
	for _, tile := range tileNames {
		write(mockProductURI+"/GRANULE/"+granuleDir(tile)+"/MTD_TL.xml", mockGranuleXML(tile))
		write(mockProductURI+"/GRANULE/"+granuleDir(tile)+"/QI_DATA/MSK_CLOUDS_B00.xml", "<mask/>")
	}
	require.Nil(t, zw.Close())
	require.Nil(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}
