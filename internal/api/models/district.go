package models

// District is one catalog entry.
type District struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	BnName     string  `json:"bn_name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"long"`
	DivisionID int64   `json:"division_id"`
}

// DistrictList is the catalog listing response.
type DistrictList struct {
	Districts []District `json:"districts"`
}

// RankedDistrict is one entry of the top-districts response.
type RankedDistrict struct {
	Rank          int       `json:"rank"`
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	AvgTemp2PM7D  float64   `json:"avg_temp_2pm_7day"`
	AvgPM257D     float64   `json:"avg_pm25_7day"`
	LastUpdatedAt Timestamp `json:"last_updated_at"`
}

// TopDistricts is the top-districts response.
type TopDistricts struct {
	Districts []RankedDistrict `json:"districts"`
}
