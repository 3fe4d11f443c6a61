package models

// Apertures lists the standard full and third stops offered by the
// capture pickers. Lens maximum apertures must be one of these.
var Apertures = []string{
	"f/1.0", "f/1.2", "f/1.4", "f/1.8", "f/2", "f/2.8", "f/3.5", "f/4",
	"f/4.5", "f/5.6", "f/6.3", "f/8", "f/11", "f/16", "f/22", "f/32",
}

// ShutterSpeeds lists the standard shutter speed picker values, longest
// first.
var ShutterSpeeds = []string{
	"30s", "15s", "8s", "4s", "2s", "1s",
	"1/2", "1/4", "1/8", "1/15", "1/30", "1/60", "1/125", "1/250",
	"1/500", "1/1000", "1/2000", "1/4000", "1/8000",
}

// IsValidAperture reports whether value is a recognized aperture stop.
func IsValidAperture(value string) bool {
	for _, a := range Apertures {
		if a == value {
			return true
		}
	}
	return false
}
