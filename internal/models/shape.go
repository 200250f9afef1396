package models

// ShapeEntry represents a shape entry for the API response
type ShapeEntry struct {
	ID     string `json:"id"`
	Points string `json:"points"`
	Length int    `json:"length"`
	Levels string `json:"levels"`
}
