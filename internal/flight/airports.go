package flight

// Airport describes one airport the demo serves.
type Airport struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Timezone string `json:"timezone,omitempty"`
}

// defaultAirports is the static airport table. A real system would back
// this with a database or an external feed.
func defaultAirports() map[string]Airport {
	return map[string]Airport{
		"HYD": {Code: "HYD", Name: "Rajiv Gandhi International", City: "Hyderabad", Country: "India", Timezone: "Asia/Kolkata"},
		"DEL": {Code: "DEL", Name: "Indira Gandhi International", City: "Delhi", Country: "India", Timezone: "Asia/Kolkata"},
		"BOM": {Code: "BOM", Name: "Chhatrapati Shivaji Maharaj International", City: "Mumbai", Country: "India", Timezone: "Asia/Kolkata"},
		"LHR": {Code: "LHR", Name: "London Heathrow", City: "London", Country: "UK", Timezone: "Europe/London"},
		"SFO": {Code: "SFO", Name: "San Francisco International", City: "San Francisco", Country: "USA", Timezone: "America/Los_Angeles"},
		"ORD": {Code: "ORD", Name: "O'Hare International", City: "Chicago", Country: "USA", Timezone: "America/Chicago"},
		"DFW": {Code: "DFW", Name: "Dallas/Fort Worth International", City: "Dallas", Country: "USA", Timezone: "America/Chicago"},
		"CDG": {Code: "CDG", Name: "Charles de Gaulle", City: "Paris", Country: "France", Timezone: "Europe/Paris"},
	}
}
