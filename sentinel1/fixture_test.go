package sentinel1

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mockTitle = "S1A_IW_GRDH_1SDV_20170203T174158_20170203T174223_015112_018B0E_8C25"

func mockManifest(startOrbit, stopOrbit int) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<xfdu:XFDU xmlns:xfdu="urn:ccsds:schema:xfdu:1"
    xmlns:safe="http://www.esa.int/safe/sentinel-1.0"
    xmlns:s1="http://www.esa.int/safe/sentinel-1.0/sentinel-1"
    xmlns:s1sarl1="http://www.esa.int/safe/sentinel-1.0/sentinel-1/sar/level-1"
    xmlns:gml="http://www.opengis.net/gml">
  <informationPackageMap>
    <xfdu:contentUnit unitType="SAFE Archive Information Package"/>
  </informationPackageMap>
  <metadataSection>
    <metadataObject ID="generalProductInformation">
      <metadataWrap><xmlData>
        <s1sarl1:standAloneProductInformation>
          <s1sarl1:productType>GRD</s1sarl1:productType>
          <s1sarl1:transmitterReceiverPolarisation>VV</s1sarl1:transmitterReceiverPolarisation>
          <s1sarl1:transmitterReceiverPolarisation>VH</s1sarl1:transmitterReceiverPolarisation>
        </s1sarl1:standAloneProductInformation>
      </xmlData></metadataWrap>
    </metadataObject>
    <metadataObject ID="platform">
      <metadataWrap><xmlData>
        <safe:platform>
          <safe:instrument>
            <safe:extension>
              <s1sarl1:instrumentMode><s1sarl1:mode>IW</s1sarl1:mode></s1sarl1:instrumentMode>
            </safe:extension>
          </safe:instrument>
        </safe:platform>
      </xmlData></metadataWrap>
    </metadataObject>
    <metadataObject ID="measurementOrbitReference">
      <metadataWrap><xmlData>
        <safe:orbitReference>
          <safe:orbitNumber type="start">15112</safe:orbitNumber>
          <safe:orbitNumber type="stop">15112</safe:orbitNumber>
          <safe:relativeOrbitNumber type="start">%d</safe:relativeOrbitNumber>
          <safe:relativeOrbitNumber type="stop">%d</safe:relativeOrbitNumber>
          <safe:extension>
            <s1:orbitProperties><s1:pass>ASCENDING</s1:pass></s1:orbitProperties>
          </safe:extension>
        </safe:orbitReference>
      </xmlData></metadataWrap>
    </metadataObject>
    <metadataObject ID="acquisitionPeriod">
      <metadataWrap><xmlData>
        <safe:acquisitionPeriod>
          <safe:startTime>2017-02-03T17:41:58.123456</safe:startTime>
          <safe:stopTime>2017-02-03T17:42:23.122185</safe:stopTime>
        </safe:acquisitionPeriod>
      </xmlData></metadataWrap>
    </metadataObject>
    <metadataObject ID="measurementFrameSet">
      <metadataWrap><xmlData>
        <safe:frameSet><safe:frame><safe:footPrint>
          <gml:coordinates>55.1,10.5 55.5,14.4 57.0,14.0 56.6,10.0</gml:coordinates>
        </safe:footPrint></safe:frame></safe:frameSet>
      </xmlData></metadataWrap>
    </metadataObject>
  </metadataSection>
  <dataObjectSection>
    <dataObject ID="productAnnotation"/>
  </dataObjectSection>
  <safe:resource name="%s" role="product"/>
  <safe:resource name="annotation" role="annotation"/>
</xfdu:XFDU>`, startOrbit, stopOrbit, mockTitle)
}

func mockAnnotation(polarisation string, angle float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<product>
  <adsHeader>
    <missionId>S1A</missionId>
    <productType>GRD</productType>
    <polarisation>%s</polarisation>
    <mode>IW</mode>
    <swath>IW</swath>
  </adsHeader>
  <imageAnnotation>
    <imageInformation>
      <incidenceAngleMidSwath>%g</incidenceAngleMidSwath>
    </imageInformation>
  </imageAnnotation>
</product>`, polarisation, angle)
}

func annotationName(polarisation string) string {
	return fmt.Sprintf("s1a-iw-grd-%s-20170203t174158-20170203t174223-015112-018b0e-001.xml", polarisation)
}

// writeMockSAFE writes a .SAFE folder product and returns its path
func writeMockSAFE(t *testing.T, withAnnotations bool) string {
	safe := filepath.Join(t.TempDir(), mockTitle+".SAFE")
	require.Nil(t, os.MkdirAll(filepath.Join(safe, "annotation", "calibration"), 0755))
	require.Nil(t, os.WriteFile(filepath.Join(safe, manifestName), []byte(mockManifest(117, 117)), 0644))
	if withAnnotations {
		require.Nil(t, os.WriteFile(filepath.Join(safe, "annotation", annotationName("vh")), []byte(mockAnnotation("VH", 38.9)), 0644))
		require.Nil(t, os.WriteFile(filepath.Join(safe, "annotation", annotationName("vv")), []byte(mockAnnotation("VV", 39.1)), 0644))
		require.Nil(t, os.WriteFile(filepath.Join(safe, "annotation", "calibration", "calibration-"+annotationName("vv")), []byte("<calibration/>"), 0644))
	}
	return safe
}

// writeMockZip writes a zipped SAFE product and returns its path
func writeMockZip(t *testing.T, members map[string]string) string {
	p := filepath.Join(t.TempDir(), mockTitle+".zip")
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create(mockTitle + ".SAFE/")
	require.Nil(t, err)
	for name, content := range members {
		w, err := zw.Create(mockTitle + ".SAFE/" + name)
		require.Nil(t, err)
		_, err = w.Write([]byte(content))
		require.Nil(t, err)
	}
	require.Nil(t, zw.Close())
	require.Nil(t, os.WriteFile(p, buf.Bytes(), 0644))
	return p
}
