package boq

import "strconv"

// Requirement keys supplied by the external questionnaire collaborator.
const (
	KeyRoomLength   = "roomLength"
	KeyRoomWidth    = "roomWidth"
	KeyRoomHeight   = "roomHeight"
	KeyTableLength  = "tableLength"
	KeyRackDistance = "rackDistance"
	KeyCapacity     = "capacity"

	KeyRequiredSystems = "requiredSystems"

	KeyDisplayBrands      = "displayBrands"
	KeyMountBrands        = "mountBrands"
	KeyMicrophoneBrands   = "microphoneBrands"
	KeyDSPBrands          = "dspBrands"
	KeySpeakerBrands      = "speakerBrands"
	KeyVCBrands           = "vcBrands"
	KeyConnectivityBrands = "connectivityBrands"
	KeyControlBrands      = "controlBrands"
	KeyRackBrands         = "rackBrands"
)

// RoomRequirements maps questionnaire keys to scalar, enum, or list values.
// The engine treats it as read-only; values are coerced, never rejected.
type RoomRequirements map[string]any

// Number returns the value for key as a float64, or fallback when the key
// is absent or not numeric. Strings holding numbers are accepted because
// questionnaire answers arrive as loosely typed JSON.
func (r RoomRequirements) Number(key string, fallback float64) float64 {
	v, ok := r[key]
	if !ok || v == nil {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	}
	return fallback
}

// String returns the value for key as a string, or "" when absent.
func (r RoomRequirements) String(key string) string {
	if v, ok := r[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Strings returns the value for key as a string list. Scalar strings are
// promoted to a one-element list; anything else yields nil.
func (r RoomRequirements) Strings(key string) []string {
	v, ok := r[key]
	if !ok || v == nil {
		return nil
	}
	switch list := v.(type) {
	case []string:
		out := make([]string, 0, len(list))
		for _, s := range list {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if list == "" {
			return nil
		}
		return []string{list}
	}
	return nil
}

// BrandPreferences collects the declared brand preferences keyed by
// sub-category. Sub-categories with no declared preference are absent.
func (r RoomRequirements) BrandPreferences() map[string][]string {
	keys := map[string]string{
		SubDisplay:      KeyDisplayBrands,
		SubMount:        KeyMountBrands,
		SubMicrophone:   KeyMicrophoneBrands,
		SubDSPAmplifier: KeyDSPBrands,
		SubSpeaker:      KeySpeakerBrands,
		SubVC:           KeyVCBrands,
		SubConnectivity: KeyConnectivityBrands,
		SubControl:      KeyControlBrands,
		SubRack:         KeyRackBrands,
	}
	prefs := make(map[string][]string)
	for sub, key := range keys {
		if brands := r.Strings(key); len(brands) > 0 {
			prefs[sub] = brands
		}
	}
	return prefs
}
