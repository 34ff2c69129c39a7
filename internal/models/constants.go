package models

// NoiseZoneID is the catch-all zone for points DBSCAN could not cluster.
const NoiseZoneID = 0

// Model-name tags recorded on output rows so downstream consumers can tell
// which estimation method produced them.
const (
	ModelHoltWinters = "HW_Additive_Weekly"
	ModelNaiveMean   = "NaiveMean"
	ModelDBSCAN      = "DBSCAN_haversine"
	ModelStaffing    = "HW_or_Naive"
)

// Hotspot write modes.
const (
	HotspotWriteAppend  = "append"
	HotspotWriteReplace = "replace"
)

var (
	RoadTypes       = []string{"HIGHWAY", "URBAN", "RURAL"}
	RoadTypeWeights = []float64{0.6, 0.3, 0.1}

	IssueTypes       = []string{"TOW", "JUMP", "LOCKOUT", "TIRE", "OUT_OF_FUEL"}
	IssueTypeWeights = []float64{0.4, 0.2, 0.15, 0.2, 0.05}

	CallSources       = []string{"PHONE", "APP", "WEB", "PARTNER"}
	CallSourceWeights = []float64{0.6, 0.25, 0.1, 0.05}
)

// DefaultZones is the synthetic service territory used when the config file
// does not declare its own zone centers.
var DefaultZones = []ZoneConfig{
	{
		City:      "Fall River",
		State:     "MA",
		ZipCodes:  []string{"02720", "02721", "02723", "02724"},
		CenterLat: 41.700,
		CenterLon: -71.155,
	},
	{
		City:      "Providence",
		State:     "RI",
		ZipCodes:  []string{"02903", "02904", "02905", "02908"},
		CenterLat: 41.823,
		CenterLon: -71.412,
	},
	{
		City:      "Warwick",
		State:     "RI",
		ZipCodes:  []string{"02886", "02888", "02889"},
		CenterLat: 41.700,
		CenterLon: -71.416,
	},
}
