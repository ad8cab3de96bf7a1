package model

// Keys present in every normalized record
const (
	KeySensingTime = "sensing_time"
	KeyTitle       = "title"
	KeySpacecraft  = "spacecraft"
	KeyFootprint   = "footprint"
)

// CommonKeys lists the keys every adapter guarantees
var CommonKeys = []string{KeySensingTime, KeyTitle, KeySpacecraft}

// Family names the satellite family a record was parsed from
type Family string

// Supported families
const (
	Landsat8    Family = "landsat8"
	Sentinel1   Family = "sentinel1"
	Sentinel2   Family = "sentinel2"
	Pleiades    Family = "pleiades"
	PleiadesNeo Family = "pleiades_neo"
)
