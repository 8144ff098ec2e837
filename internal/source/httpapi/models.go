package httpapi

import "encoding/json"

// apiResponse is the generic observation feed envelope.
type apiResponse struct {
	Observations []observation `json:"observations"`
}

type observation struct {
	ID         string             `json:"id"`
	Timestamp  string             `json:"timestamp"` // RFC3339
	Parameters map[string]float64 `json:"parameters"`
	Units      map[string]string  `json:"units"`
	Latitude   *float64           `json:"latitude"`
	Longitude  *float64           `json:"longitude"`
	Elevation  *float64           `json:"elevation"`
	Instrument string             `json:"instrument"`
	Quality    string             `json:"quality"`
	Payload    json.RawMessage    `json:"payload"`
}

type parametersResponse struct {
	Parameters []string `json:"parameters"`
}
