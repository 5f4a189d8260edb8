// Package roommetrics derives component counts and cable lengths from room
// geometry. All functions are pure; missing or non-numeric questionnaire
// answers coerce to fixed defaults so an incomplete questionnaire still
// produces a best-effort design.
package roommetrics

import (
	"math"

	"avboq/internal/boq"
)

// Fallback constants applied when a geometry answer is absent or
// non-numeric.
const (
	DefaultLength       = 20
	DefaultWidth        = 15
	DefaultHeight       = 10
	DefaultTableLength  = 12
	DefaultRackDistance = 30
	DefaultCapacity     = 10
)

// Coverage divisors and allowances. Area per ceiling mic and per ceiling
// speaker follow AVIXA-style coverage guidance; the 1.4 factor on cable
// runs covers service loops and vertical drops.
const (
	areaPerCeilingMic     = 700
	areaPerCeilingSpeaker = 175
	seatsPerTableMic      = 4
	cableSlackFactor      = 1.4
	displayDropAllowance  = 15
)

// Metrics holds every derived number the generation directive embeds.
type Metrics struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	TableLength  float64 `json:"tableLength"`
	RackDistance float64 `json:"rackDistance"`
	Capacity     float64 `json:"capacity"`

	Area             float64 `json:"area"`
	Volume           float64 `json:"volume"`
	CableRunEstimate float64 `json:"cableRunEstimate"`
	DisplayTotalRun  float64 `json:"displayTotalRun"`

	CeilingMicCount     int `json:"ceilingMicCount"`
	TableMicCount       int `json:"tableMicCount"`
	CeilingSpeakerCount int `json:"ceilingSpeakerCount"`
}

// Compute derives all metrics from the questionnaire answers.
func Compute(req boq.RoomRequirements) Metrics {
	m := Metrics{
		Length:       req.Number(boq.KeyRoomLength, DefaultLength),
		Width:        req.Number(boq.KeyRoomWidth, DefaultWidth),
		Height:       req.Number(boq.KeyRoomHeight, DefaultHeight),
		TableLength:  req.Number(boq.KeyTableLength, DefaultTableLength),
		RackDistance: req.Number(boq.KeyRackDistance, DefaultRackDistance),
		Capacity:     req.Number(boq.KeyCapacity, DefaultCapacity),
	}
	m.Area = m.Length * m.Width
	m.Volume = m.Area * m.Height
	m.CableRunEstimate = (m.Length + m.Width + m.RackDistance) * cableSlackFactor
	m.DisplayTotalRun = m.RackDistance + m.TableLength + displayDropAllowance
	m.CeilingMicCount = ceilDiv(m.Area, areaPerCeilingMic)
	m.TableMicCount = ceilDiv(m.Capacity, seatsPerTableMic)
	m.CeilingSpeakerCount = ceilDiv(m.Area, areaPerCeilingSpeaker)
	return m
}

func ceilDiv(v, per float64) int {
	if per <= 0 {
		return 0
	}
	return int(math.Ceil(v / per))
}
