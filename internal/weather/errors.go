package weather

import "errors"

var (
	// ErrRateLimited is returned when the data source rejects a call with HTTP 429.
	ErrRateLimited = errors.New("rate limited")

	// ErrLocationNotFound is returned when the data source does not know the place.
	ErrLocationNotFound = errors.New("location not found")

	// ErrInvalidLocation is returned for a blank city or out-of-range coordinates.
	ErrInvalidLocation = errors.New("invalid location")
)

// User-facing failure messages. Only rate limiting is told apart from everything else.
const (
	MsgRateLimited     = "API rate limit exceeded. Please try again later."
	MsgFetchFailed     = "Failed to fetch weather data. Please check the city name and try again."
	msgFallbackPattern = "Failed to fetch weather data for your location. Defaulting to %s."
)

// UserMessage maps an error to the message shown on the dashboard.
func UserMessage(err error) string {
	if errors.Is(err, ErrRateLimited) {
		return MsgRateLimited
	}
	return MsgFetchFailed
}
