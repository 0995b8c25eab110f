package info

// Tier is a coarse quality classification derived from pixel dimensions.
// Values are ordered so that a larger Tier means a larger resolution.
type Tier int

const (
	TierUnknown Tier = iota
	TierSD
	TierHD
	TierFHD
	TierTwoK
	TierFourK
)

// Height thresholds for each tier. Intervals are half-open: a height maps to
// the highest threshold it reaches.
const (
	heightFourK = 2160
	heightTwoK  = 1440
	heightFHD   = 1080
	heightHD    = 720
)

// Classify maps pixel dimensions to a quality tier. It is total and
// deterministic; non-positive dimensions yield TierUnknown.
func Classify(width, height int) Tier {
	if width <= 0 || height <= 0 {
		return TierUnknown
	}
	switch {
	case height >= heightFourK:
		return TierFourK
	case height >= heightTwoK:
		return TierTwoK
	case height >= heightFHD:
		return TierFHD
	case height >= heightHD:
		return TierHD
	default:
		return TierSD
	}
}

func (t Tier) String() string {
	switch t {
	case TierFourK:
		return "4K"
	case TierTwoK:
		return "2K"
	case TierFHD:
		return "FHD"
	case TierHD:
		return "HD"
	case TierSD:
		return "SD"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as their
// display labels in JSON output.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for the labels produced
// by MarshalText. Unrecognized labels map to TierUnknown.
func (t *Tier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "4K":
		*t = TierFourK
	case "2K":
		*t = TierTwoK
	case "FHD":
		*t = TierFHD
	case "HD":
		*t = TierHD
	case "SD":
		*t = TierSD
	default:
		*t = TierUnknown
	}
	return nil
}
