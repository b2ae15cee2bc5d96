package models

// TravelRecommendationRequest is the POST /v1/travel-recommendation body.
// Coordinates are pointers so a missing field is distinguishable from zero.
type TravelRecommendationRequest struct {
	CurrentLat            *float64 `json:"current_lat" validate:"required,gte=-90,lte=90"`
	CurrentLon            *float64 `json:"current_lon" validate:"required,gte=-180,lte=180"`
	DestinationDistrictID int64    `json:"destination_district_id" validate:"required,gt=0"`
	TravelDate            string   `json:"travel_date" validate:"required,datetime=2006-01-02"`
}

// InstantReading is one location's 2 PM snapshot in a recommendation.
type InstantReading struct {
	Temperature2PM float64 `json:"temperature_2pm"`
	PM252PM        float64 `json:"pm25_2pm"`
}

// DestinationReading is the destination's snapshot with its identity.
type DestinationReading struct {
	DistrictID int64  `json:"district_id"`
	District   string `json:"district"`
	InstantReading
}

// TravelRecommendation is the recommendation response.
type TravelRecommendation struct {
	Status      string             `json:"status"`
	Reason      string             `json:"reason"`
	TravelDate  string             `json:"travel_date"`
	Current     InstantReading     `json:"current"`
	Destination DestinationReading `json:"destination"`
}
