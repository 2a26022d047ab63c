package service

import (
	"github.com/8endit/city-ops/internal/domain"
)

// BaseETA is the free-flow EMS arrival estimate in seconds
const BaseETA = 340

// typeFactors scales the travel-time delta per event type
var typeFactors = map[domain.EventType]float64{
	domain.EventAccident:     0.8,
	domain.EventClosure:      1.0,
	domain.EventConstruction: 0.6,
	domain.EventEMS:          0.4,
	domain.EventClear:        0.0,
}

// ComputeKPI derives the corridor metrics from a state snapshot. The delta
// is computed in floating point and truncated toward zero at the end.
func ComputeKPI(snap domain.StateSnapshot) domain.KPI {
	if !snap.EventActive {
		return domain.KPI{
			ETAEMS:           BaseETA,
			TravelTimeDelta:  0,
			QueueLenEstimate: 120,
		}
	}

	factor, ok := typeFactors[snap.EventType]
	if !ok {
		factor = typeFactors[domain.EventAccident]
	}
	multiplier := 0.2 + 0.05*float64(snap.Severity-1)
	delta := int(float64(BaseETA) * multiplier * factor)

	queue := 300
	if delta == 0 {
		queue = 120
	}

	return domain.KPI{
		ETAEMS:           BaseETA + delta,
		TravelTimeDelta:  delta,
		QueueLenEstimate: queue,
	}
}
