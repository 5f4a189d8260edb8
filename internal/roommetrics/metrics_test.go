package roommetrics

import (
	"reflect"
	"testing"

	"avboq/internal/boq"
)

func TestCompute_Defaults(t *testing.T) {
	m := Compute(boq.RoomRequirements{})
	if m.Length != DefaultLength || m.Width != DefaultWidth || m.Height != DefaultHeight {
		t.Fatalf("expected default geometry, got %+v", m)
	}
	if m.Area != DefaultLength*DefaultWidth {
		t.Fatalf("area = %v", m.Area)
	}
	if m.Volume != m.Area*DefaultHeight {
		t.Fatalf("volume = %v", m.Volume)
	}
}

func TestCompute_NonNumericCoercesToDefaults(t *testing.T) {
	m := Compute(boq.RoomRequirements{
		boq.KeyRoomLength: "not a number",
		boq.KeyCapacity:   nil,
	})
	if m.Length != DefaultLength {
		t.Fatalf("length = %v, want default %v", m.Length, DefaultLength)
	}
	if m.Capacity != DefaultCapacity {
		t.Fatalf("capacity = %v, want default %v", m.Capacity, DefaultCapacity)
	}
}

func TestCompute_Formulas(t *testing.T) {
	m := Compute(boq.RoomRequirements{
		boq.KeyRoomLength:   20.0,
		boq.KeyRoomWidth:    15.0,
		boq.KeyRackDistance: 30.0,
		boq.KeyTableLength:  12.0,
		boq.KeyCapacity:     10.0,
	})
	if m.Area != 300 {
		t.Fatalf("area = %v", m.Area)
	}
	if m.CableRunEstimate != (20+15+30)*1.4 {
		t.Fatalf("cableRunEstimate = %v", m.CableRunEstimate)
	}
	if m.DisplayTotalRun != 30+12+15 {
		t.Fatalf("displayTotalRun = %v", m.DisplayTotalRun)
	}
	if m.CeilingSpeakerCount != 2 { // ceil(300/175)
		t.Fatalf("ceilingSpeakerCount = %d", m.CeilingSpeakerCount)
	}
	if m.TableMicCount != 3 { // ceil(10/4)
		t.Fatalf("tableMicCount = %d", m.TableMicCount)
	}
}

func TestCompute_CeilingMicBoundary(t *testing.T) {
	at700 := Compute(boq.RoomRequirements{boq.KeyRoomLength: 28.0, boq.KeyRoomWidth: 25.0})
	if at700.Area != 700 || at700.CeilingMicCount != 1 {
		t.Fatalf("area %v -> %d ceiling mics, want 1", at700.Area, at700.CeilingMicCount)
	}
	at701 := Compute(boq.RoomRequirements{boq.KeyRoomLength: 701.0, boq.KeyRoomWidth: 1.0})
	if at701.Area != 701 || at701.CeilingMicCount != 2 {
		t.Fatalf("area %v -> %d ceiling mics, want 2", at701.Area, at701.CeilingMicCount)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	req := boq.RoomRequirements{
		boq.KeyRoomLength: 33.0,
		boq.KeyRoomWidth:  "21.5",
		boq.KeyCapacity:   14,
	}
	first := Compute(req)
	second := Compute(req)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("compute is not idempotent:\n%+v\n%+v", first, second)
	}
}
