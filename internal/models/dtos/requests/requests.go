package requests

// SelectFlightRequest selects a flight; a null or empty id clears the selection.
type SelectFlightRequest struct {
	FlightID *string `json:"flight_id"`
}

type FiltersRequest struct {
	Class         string  `json:"class"`
	Operator      string  `json:"operator"`
	MinAltitudeFt float64 `json:"min_altitude_ft"`
	MinSpeedKt    float64 `json:"min_speed_kt"`
}

type SearchRequest struct {
	Text string `json:"text"`
}

type AnalyzeRequest struct {
	FlightID string `json:"flight_id"`
}
