package service

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/8endit/city-ops/internal/domain"
	"github.com/8endit/city-ops/pkg/utils"
)

const (
	baselineCongestion = 0.2
	hotspotBaseDefault = 0.8
	// Construction zones read slightly cooler on the overlay
	hotspotBaseConstruction = 0.7
)

// CorridorService loads the corridor map and annotates it with congestion.
// The file is read fresh on every call, never cached.
type CorridorService struct {
	path string
}

// NewCorridorService creates a corridor service reading from path
func NewCorridorService(path string) *CorridorService {
	return &CorridorService{path: path}
}

// Segments loads the corridor map and returns it annotated for the given
// state. A missing or corrupt map file is an error for the caller to surface.
func (s *CorridorService) Segments(snap domain.StateSnapshot) (*domain.FeatureCollection, error) {
	fc, err := s.load()
	if err != nil {
		return nil, err
	}
	return AnnotateSegments(fc, snap), nil
}

func (s *CorridorService) load() (*domain.FeatureCollection, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("corridor: failed to read map file: %w", err)
	}

	var fc domain.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, fmt.Errorf("corridor: failed to parse map file: %w", err)
	}
	return &fc, nil
}

// AnnotateSegments overwrites each feature's congestion property based on the
// current state. The input collection is cloned, never mutated; an empty
// feature list is returned verbatim.
func AnnotateSegments(fc *domain.FeatureCollection, snap domain.StateSnapshot) *domain.FeatureCollection {
	if len(fc.Features) == 0 {
		return fc
	}

	out := fc.Clone()

	if !snap.EventActive {
		for i := range out.Features {
			out.Features[i].SetCongestion(baselineCongestion)
		}
		return out
	}

	focusIndex := 0
	if snap.FocusNodeID != nil {
		for i, f := range out.Features {
			if f.ID() == *snap.FocusNodeID {
				focusIndex = i
				break
			}
		}
	}

	hotspotTarget := utils.ClampInt(1+snap.Severity/2, 1, 3)
	hotspotCap := hotspotTarget
	if hotspotCap > len(out.Features) {
		hotspotCap = len(out.Features)
	}

	value := hotspotCongestion(snap.EventType, snap.Severity)

	// Window extends forward from the focus segment; indices clamp at the
	// end of the corridor, so the window collapses rather than wrapping.
	hotspots := make(map[int]bool, hotspotCap)
	for offset := 0; offset < hotspotCap; offset++ {
		hotspots[utils.ClampInt(focusIndex+offset, 0, len(out.Features)-1)] = true
	}

	for i := range out.Features {
		if hotspots[i] {
			out.Features[i].SetCongestion(value)
		} else {
			out.Features[i].SetCongestion(baselineCongestion)
		}
	}
	return out
}

func hotspotCongestion(t domain.EventType, severity int) float64 {
	base := hotspotBaseDefault
	if t == domain.EventConstruction {
		base = hotspotBaseConstruction
	}
	bump := 0.05 * float64(severity-1)
	if bump < 0 {
		bump = 0
	}
	return utils.Clamp(base+bump, 0, 1)
}
