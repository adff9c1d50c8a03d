package weather

// DayNightImage holds the background image pair for one condition category.
type DayNightImage struct {
	Day   string
	Night string
}

// Backgrounds maps condition categories (e.g. "Clear", "Rain") to images.
type Backgrounds struct {
	Default    string
	ByCategory map[string]DayNightImage
}

// Image picks the background for a category and time of day. Categories
// without an image, and a missing day or night variant, get Default.
func (b Backgrounds) Image(category string, isDay bool) string {
	img, ok := b.ByCategory[category]
	if !ok {
		return b.Default
	}

	url := img.Night
	if isDay {
		url = img.Day
	}
	if url == "" {
		return b.Default
	}
	return url
}
