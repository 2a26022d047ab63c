package domain

import "encoding/json"

// Feature is a single corridor segment in GeoJSON form. Geometry is carried
// opaquely so the payload round-trips byte-for-byte; only properties are
// touched at read time.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// ID returns the stable segment identifier, or "" when absent
func (f Feature) ID() string {
	if v, ok := f.Properties["id"].(string); ok {
		return v
	}
	return ""
}

// SetCongestion sets the per-segment congestion property, allocating the
// properties map when the source feature carried none
func (f *Feature) SetCongestion(v float64) {
	if f.Properties == nil {
		f.Properties = make(map[string]interface{})
	}
	f.Properties["congestion"] = v
}

// Congestion returns the congestion property, or 0 when unset
func (f Feature) Congestion() float64 {
	if v, ok := f.Properties["congestion"].(float64); ok {
		return v
	}
	return 0
}

// FeatureCollection is the corridor map payload
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Clone deep-copies the feature list and property maps so annotation never
// mutates the loaded copy. Geometry is shared; it is never written.
func (fc *FeatureCollection) Clone() *FeatureCollection {
	out := &FeatureCollection{
		Type:     fc.Type,
		Features: make([]Feature, len(fc.Features)),
	}
	for i, f := range fc.Features {
		props := make(map[string]interface{}, len(f.Properties)+1)
		for k, v := range f.Properties {
			props[k] = v
		}
		out.Features[i] = Feature{
			Type:       f.Type,
			Properties: props,
			Geometry:   f.Geometry,
		}
	}
	return out
}
