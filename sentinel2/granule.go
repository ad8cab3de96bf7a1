package sentinel2

import (
	"fmt"

	"github.com/venicegeo/bf-satmeta/geometry"
	"github.com/venicegeo/bf-satmeta/model"
	"github.com/venicegeo/bf-satmeta/xmldoc"
	"github.com/venicegeo/geojson-go/geojson"
)

// Resolutions are the pixel sizes, in meters, of the granule rasters
var Resolutions = []int{10, 20, 60}

// Size is the raster size at one resolution
type Size struct {
	NRows int `json:"NROWS"`
	NCols int `json:"NCOLS"`
}

// Geoposition is the upper-left corner of the raster at one resolution
type Geoposition struct {
	ULX int `json:"ULX"`
	ULY int `json:"ULY"`
}

// GranuleMetadata is a parsed Sentinel-2 granule (tile) document
type GranuleMetadata struct {
	model.BasicRecord

	TileID               string
	TileName             string
	SunZenith            float64
	SunAzimuth           float64
	SensorZenith         []float64
	SensorAzimuth        []float64
	Projection           string
	CloudCoverPercentage float64

	ImageSize        map[int]Size
	ImageGeoposition map[int]Geoposition
	ImageTransform   map[int]geometry.Affine
	ImageShape       map[int][]int
	ImageBounds      map[int]geometry.Bounds
}

func (g *GranuleMetadata) granuleFields() map[string]interface{} {
	return map[string]interface{}{
		"tile_ID":                g.TileID,
		"tile_name":              g.TileName,
		"sun_zenith":             g.SunZenith,
		"sun_azimuth":            g.SunAzimuth,
		"sensor_zenith":          g.SensorZenith,
		"sensor_azimuth":         g.SensorAzimuth,
		"projection":             g.Projection,
		"cloud_cover_percentage": g.CloudCoverPercentage,
		"image_size":             g.ImageSize,
		"image_geoposition":      g.ImageGeoposition,
		"image_transform":        g.ImageTransform,
		"image_shape":            g.ImageShape,
		"image_bounds":           g.ImageBounds,
	}
}

// Fields implements model.Record
func (g *GranuleMetadata) Fields() map[string]interface{} {
	fields := g.granuleFields()
	for key, value := range g.CommonFields() {
		fields[key] = value
	}
	return fields
}

// GeoJSONFeature implements the GeoJSONFeatureCreator interface
func (g *GranuleMetadata) GeoJSONFeature() (*geojson.Feature, error) {
	return model.NewRecordFeature(g)
}

// ParseGranuleMetadata parses a granule-level document (MTD_TL.xml)
func ParseGranuleMetadata(doc *xmldoc.Document) (*GranuleMetadata, error) {
	g := &GranuleMetadata{}
	g.Source = model.Sentinel2
	var err error

	if g.TileID, err = doc.GetSingle("TILE_ID", ""); err != nil {
		return nil, err
	}
	if g.SunZenith, err = doc.GetSingleFloat("Mean_Sun_Angle/ZENITH_ANGLE"); err != nil {
		return nil, err
	}
	if g.SunAzimuth, err = doc.GetSingleFloat("Mean_Sun_Angle/AZIMUTH_ANGLE"); err != nil {
		return nil, err
	}
	if g.SensorZenith, err = doc.GetAllFloat("Mean_Viewing_Incidence_Angle_List/Mean_Viewing_Incidence_Angle/ZENITH_ANGLE"); err != nil {
		return nil, err
	}
	if g.SensorAzimuth, err = doc.GetAllFloat("Mean_Viewing_Incidence_Angle_List/Mean_Viewing_Incidence_Angle/AZIMUTH_ANGLE"); err != nil {
		return nil, err
	}
	if g.Projection, err = doc.GetSingle("HORIZONTAL_CS_CODE", ""); err != nil {
		return nil, err
	}
	if g.CloudCoverPercentage, err = doc.GetSingleFloat("CLOUDY_PIXEL_PERCENTAGE"); err != nil {
		return nil, err
	}
	if g.TileName, err = tileNameFromTileID(g.TileID); err != nil {
		return nil, err
	}
	// SENSING_TIME is optional
	if sensing, err := doc.GetSingleDate("SENSING_TIME"); err == nil {
		g.AcquiredDate = sensing
	}
	g.ID = g.TileID

	g.ImageSize = map[int]Size{}
	g.ImageGeoposition = map[int]Geoposition{}
	g.ImageTransform = map[int]geometry.Affine{}
	g.ImageShape = map[int][]int{}
	g.ImageBounds = map[int]geometry.Bounds{}
	for _, res := range Resolutions {
		var size Size
		var pos Geoposition
		if size.NRows, err = doc.GetInstanceInt(fmt.Sprintf("Size[@resolution='%d']/NROWS", res), 0); err != nil {
			return nil, err
		}
		if size.NCols, err = doc.GetInstanceInt(fmt.Sprintf("Size[@resolution='%d']/NCOLS", res), 0); err != nil {
			return nil, err
		}
		if pos.ULX, err = doc.GetInstanceInt(fmt.Sprintf("Geoposition[@resolution='%d']/ULX", res), 0); err != nil {
			return nil, err
		}
		if pos.ULY, err = doc.GetInstanceInt(fmt.Sprintf("Geoposition[@resolution='%d']/ULY", res), 0); err != nil {
			return nil, err
		}
		transform := geometry.NewAffine(float64(res), float64(res), float64(pos.ULX), float64(pos.ULY))
		g.ImageSize[res] = size
		g.ImageGeoposition[res] = pos
		g.ImageTransform[res] = transform
		g.ImageShape[res] = []int{size.NRows, size.NCols}
		g.ImageBounds[res] = geometry.BoundsFromShape(transform, size.NRows, size.NCols)
	}
	return g, nil
}

// ParseGranuleMetadataBytes parses a granule document held in memory
func ParseGranuleMetadataBytes(data []byte) (*GranuleMetadata, error) {
	doc, err := xmldoc.Parse(data)
	if err != nil {
		return nil, err
	}
	return ParseGranuleMetadata(doc)
}
