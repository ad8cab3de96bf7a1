package pleiades

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mockSourceID = "DS_PHR1A_201905081045284_FR1_PX_E010N55_0512_01234"

func mockLocatedValues(location string, sunAzimuth, incidence float64) string {
	return fmt.Sprintf(`
      <Located_Geometric_Values>
        <LOCATION_TYPE>%s</LOCATION_TYPE>
        <Acquisition_Angles>
          <AZIMUTH_ANGLE>180.5</AZIMUTH_ANGLE>
          <INCIDENCE_ANGLE>%g</INCIDENCE_ANGLE>
          <INCIDENCE_ANGLE_ALONG_TRACK>-3.1</INCIDENCE_ANGLE_ALONG_TRACK>
        </Acquisition_Angles>
        <Solar_Incidences>
          <SUN_AZIMUTH>%g</SUN_AZIMUTH>
          <SUN_ELEVATION>52.25</SUN_ELEVATION>
        </Solar_Incidences>
      </Located_Geometric_Values>`, location, incidence, sunAzimuth)
}

func mockDIM(instrument, index string) string {
	return `<?xml version="1.0" encoding="ISO-8859-1"?>
<Dimap_Document>
  <Dataset_Identification>
    <DATASET_NAME>` + mockSourceID + `</DATASET_NAME>
  </Dataset_Identification>
  <Dataset_Content>
    <Dataset_Extent>
      <Vertex><LON>10.1</LON><LAT>55.2</LAT><COL>1</COL><ROW>1</ROW></Vertex>
      <Vertex><LON>10.3</LON><LAT>55.2</LAT><COL>100</COL><ROW>1</ROW></Vertex>
      <Vertex><LON>10.3</LON><LAT>55.0</LAT><COL>100</COL><ROW>100</ROW></Vertex>
      <Vertex><LON>10.1</LON><LAT>55.0</LAT><COL>1</COL><ROW>100</ROW></Vertex>
    </Dataset_Extent>
  </Dataset_Content>
  <Raster_Data>
    <Raster_Dimensions>
      <NROWS>9876</NROWS>
      <NCOLS>8765</NCOLS>
      <NBANDS>4</NBANDS>
      <Tile_Set><NTILES>2</NTILES></Tile_Set>
    </Raster_Dimensions>
    <Raster_Display>
      <Band_Display_Order>
        <RED_CHANNEL>B2</RED_CHANNEL>
        <GREEN_CHANNEL>B1</GREEN_CHANNEL>
        <BLUE_CHANNEL>B0</BLUE_CHANNEL>
        <ALPHA_CHANNEL>B3</ALPHA_CHANNEL>
      </Band_Display_Order>
    </Raster_Display>
  </Raster_Data>
  <Radiometric_Data>
    <Radiometric_Calibration>
      <Instrument_Calibration>
        <Band_Measurement_List>
          <Band_Radiance><BAND_ID>B0</BAND_ID><GAIN>10.0</GAIN><BIAS>0</BIAS></Band_Radiance>
          <Band_Radiance><BAND_ID>B1</BAND_ID><GAIN>11.0</GAIN><BIAS>0.1</BIAS></Band_Radiance>
          <Band_Radiance><BAND_ID>B2</BAND_ID><GAIN>12.0</GAIN><BIAS>0.2</BIAS></Band_Radiance>
          <Band_Radiance><BAND_ID>B3</BAND_ID><GAIN>13.0</GAIN><BIAS>0.3</BIAS></Band_Radiance>
          <Band_Solar_Irradiance><BAND_ID>B0</BAND_ID><VALUE>1915</VALUE></Band_Solar_Irradiance>
        </Band_Measurement_List>
      </Instrument_Calibration>
    </Radiometric_Calibration>
  </Radiometric_Data>
  <Dataset_Sources>
    <Source_Identification>
      <SOURCE_ID>` + mockSourceID + `</SOURCE_ID>
      <Strip_Source>
        <MISSION>PLEIADES</MISSION>
        <INSTRUMENT>` + instrument + `</INSTRUMENT>
        <INSTRUMENT_INDEX>` + index + `</INSTRUMENT_INDEX>
        <IMAGING_DATE>2019-05-08</IMAGING_DATE>
        <IMAGING_TIME>10:45:28.4Z</IMAGING_TIME>
      </Strip_Source>
    </Source_Identification>
  </Dataset_Sources>
  <Geometric_Data>
    <Use_Area>` +
		mockLocatedValues("Top Center", 150.1, 9.9) +
		mockLocatedValues("Center", 151.75, 10.5) +
		mockLocatedValues("Bottom Center", 152.3, 11.1) + `
    </Use_Area>
  </Geometric_Data>
</Dimap_Document>
`
}

// writeMockProduct lays out a product folder holding one DIM file in folder
func writeMockProduct(t *testing.T, folder string) (string, string) {
	dir := t.TempDir()
	imgDir := filepath.Join(dir, folder)
	require.Nil(t, os.MkdirAll(imgDir, 0755))
	dim := filepath.Join(imgDir, "DIM_PHR1A_MS_201905081045284_SEN_1234567101-1.XML")
	require.Nil(t, os.WriteFile(dim, []byte(mockDIM("PHR", "1A")), 0644))
	return dir, dim
}
