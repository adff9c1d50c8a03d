package weather

// Life index thresholds. Temperatures are Celsius, wind m/s, visibility metres.
const (
	extremeHeatC    = 30
	hotC            = 25
	freezingC       = 0
	coldC           = 10
	strongWindMS    = 10
	highHumidityPct = 80
	lowHumidityPct  = 30
	poorVisibilityM = 1000
)

// LifeIndex derives advisory messages from current conditions.
// Exactly one temperature message is always present; the rest are optional.
func LifeIndex(w CurrentWeather) []string {
	var msgs []string

	switch t := w.Temperature; {
	case t > extremeHeatC:
		msgs = append(msgs, "🥵 Extreme heat - stay hydrated and avoid direct sun.")
	case t > hotC:
		msgs = append(msgs, "🌡️ Hot weather - consider light clothing and sun protection.")
	case t < freezingC:
		msgs = append(msgs, "❄️ Freezing temperatures - dress warmly in layers.")
	case t < coldC:
		msgs = append(msgs, "🧣 Cold weather - a jacket is recommended.")
	default:
		msgs = append(msgs, "🌤️ Comfortable temperature for outdoor activities.")
	}

	if w.Rain1h > 0 {
		msgs = append(msgs, "☔ Rain expected - carry an umbrella.")
	}
	if w.Snow1h > 0 {
		msgs = append(msgs, "🌨️ Snow expected - be careful on roads and walkways.")
	}

	if w.WindSpeed > strongWindMS {
		msgs = append(msgs, "💨 Strong winds - secure loose items outdoors.")
	}

	if w.Humidity > highHumidityPct {
		msgs = append(msgs, "💧 High humidity - may feel warmer than actual temperature.")
	} else if w.Humidity < lowHumidityPct {
		msgs = append(msgs, "🏜️ Low humidity - stay hydrated.")
	}

	if w.Visibility < poorVisibilityM {
		msgs = append(msgs, "🌫️ Poor visibility - drive carefully.")
	}

	return msgs
}
