package utils

import "fmt"

// ValidCoordinates rejects positions outside the WGS84 range.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// MapsLink builds the shareable Google Maps search link for a position.
func MapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v,%v", lat, lng)
}

// CprfCoordinates formats the lat/long pair the way the rural-property
// registry expects it.
func CprfCoordinates(lat, lng float64) string {
	return fmt.Sprintf("%.6f, %.6f", lat, lng)
}
