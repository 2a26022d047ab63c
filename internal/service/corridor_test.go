package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8endit/city-ops/internal/domain"
)

func strPtr(s string) *string { return &s }

func testCollection(ids ...string) *domain.FeatureCollection {
	fc := &domain.FeatureCollection{Type: "FeatureCollection"}
	for _, id := range ids {
		fc.Features = append(fc.Features, domain.Feature{
			Type:       "Feature",
			Properties: map[string]interface{}{"id": id},
		})
	}
	return fc
}

func congestions(fc *domain.FeatureCollection) []float64 {
	out := make([]float64, len(fc.Features))
	for i, f := range fc.Features {
		out[i] = f.Congestion()
	}
	return out
}

func TestAnnotateSegments_InactiveSetsBaseline(t *testing.T) {
	fc := testCollection("n1", "n2", "n3")
	out := AnnotateSegments(fc, domain.StateSnapshot{EventActive: false})

	assert.Equal(t, []float64{0.2, 0.2, 0.2}, congestions(out))
}

func TestAnnotateSegments_EmptyCollectionVerbatim(t *testing.T) {
	fc := &domain.FeatureCollection{Type: "FeatureCollection"}
	out := AnnotateSegments(fc, domain.StateSnapshot{EventActive: true, EventType: domain.EventAccident, Severity: 5})

	assert.Same(t, fc, out)
	assert.Empty(t, out.Features)
}

func TestAnnotateSegments_DoesNotMutateInput(t *testing.T) {
	fc := testCollection("n1", "n2")
	AnnotateSegments(fc, domain.StateSnapshot{EventActive: true, EventType: domain.EventAccident, Severity: 3})

	for _, f := range fc.Features {
		_, set := f.Properties["congestion"]
		assert.False(t, set)
	}
}

func TestAnnotateSegments_AccidentSeverity3DefaultFocus(t *testing.T) {
	fc := testCollection("n1", "n2", "n3", "n4", "n5")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventAccident,
		Severity:    3,
	})

	// hotspot window is the first two segments, 0.8 + 0.05*2 each
	got := congestions(out)
	assert.InDelta(t, 0.9, got[0], 1e-9)
	assert.InDelta(t, 0.9, got[1], 1e-9)
	for _, c := range got[2:] {
		assert.InDelta(t, 0.2, c, 1e-9)
	}
}

func TestAnnotateSegments_WindowFollowsFocus(t *testing.T) {
	fc := testCollection("n1", "n2", "n3", "n4", "n5", "n6", "n7", "n8")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventClosure,
		Severity:    5,
		FocusNodeID: strPtr("n4"),
	})

	// severity 5 caps the window at three segments starting at the focus
	got := congestions(out)
	for i, c := range got {
		if i >= 3 && i <= 5 {
			assert.InDelta(t, 1.0, c, 1e-9, "index %d", i)
		} else {
			assert.InDelta(t, 0.2, c, 1e-9, "index %d", i)
		}
	}
}

func TestAnnotateSegments_WindowCollapsesAtCorridorEnd(t *testing.T) {
	fc := testCollection("n1", "n2", "n3", "n4")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventAccident,
		Severity:    5,
		FocusNodeID: strPtr("n4"),
	})

	got := congestions(out)
	assert.InDelta(t, 1.0, got[3], 1e-9)
	for _, c := range got[:3] {
		assert.InDelta(t, 0.2, c, 1e-9)
	}
}

func TestAnnotateSegments_UnknownFocusDefaultsToFirst(t *testing.T) {
	fc := testCollection("n1", "n2", "n3")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventAccident,
		Severity:    1,
		FocusNodeID: strPtr("missing"),
	})

	got := congestions(out)
	assert.InDelta(t, 0.8, got[0], 1e-9)
	assert.InDelta(t, 0.2, got[1], 1e-9)
	assert.InDelta(t, 0.2, got[2], 1e-9)
}

func TestAnnotateSegments_ConstructionUsesLowerBase(t *testing.T) {
	fc := testCollection("n1", "n2")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventConstruction,
		Severity:    1,
	})

	assert.InDelta(t, 0.7, congestions(out)[0], 1e-9)
}

func TestAnnotateSegments_CongestionCappedAtOne(t *testing.T) {
	fc := testCollection("n1", "n2", "n3")
	out := AnnotateSegments(fc, domain.StateSnapshot{
		EventActive: true,
		EventType:   domain.EventClosure,
		Severity:    5,
	})

	// 0.8 + 0.05*4 exactly hits the cap
	assert.InDelta(t, 1.0, congestions(out)[0], 1e-9)
}

func TestCorridorService_SegmentsLoadsAndAnnotates(t *testing.T) {
	path := writeCorridor(t, `{
		"type": "FeatureCollection",
		"features": [
			{"type": "Feature", "properties": {"id": "n1"}, "geometry": {"type": "LineString", "coordinates": [[0,0],[1,1]]}},
			{"type": "Feature", "properties": {"id": "n2"}, "geometry": {"type": "LineString", "coordinates": [[1,1],[2,2]]}}
		]
	}`)

	svc := NewCorridorService(path)
	fc, err := svc.Segments(domain.StateSnapshot{EventActive: false})
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)
	assert.Equal(t, []float64{0.2, 0.2}, congestions(fc))
	assert.Equal(t, "n1", fc.Features[0].ID())
	assert.NotEmpty(t, fc.Features[0].Geometry)
}

func TestCorridorService_MissingFile(t *testing.T) {
	svc := NewCorridorService(filepath.Join(t.TempDir(), "nope.geojson"))

	_, err := svc.Segments(domain.StateSnapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read map file")
}

func TestCorridorService_CorruptFile(t *testing.T) {
	svc := NewCorridorService(writeCorridor(t, "{not json"))

	_, err := svc.Segments(domain.StateSnapshot{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse map file")
}

func writeCorridor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corridor.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
