package records

import (
	"encoding/json"
	"fmt"
	"strings"
)

// payload es la forma plana que viaja por HTTP y se guarda como jsonb.
// value es número para weight/walk y texto para health/note.
type payload struct {
	Value       json.RawMessage `json:"value"`
	DurationMin int             `json:"duration_min,omitempty"`
}

// EncodeData serializa la variante a su payload jsonb.
func EncodeData(d Data) ([]byte, error) {
	var v any
	p := payload{}
	switch x := d.(type) {
	case Weight:
		v = x.Kg
	case Walk:
		v = x.DistanceKm
		p.DurationMin = x.DurationMin
	case Health:
		v = string(x.Event)
	case Note:
		v = x.Text
	default:
		return nil, fmt.Errorf("%w: unsupported record data %T", ErrInvalidInput, d)
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	p.Value = raw
	return json.Marshal(p)
}

// DecodeData reconstruye la variante a partir de kind + payload.
func DecodeData(kind Kind, raw []byte) (Data, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return FromValue(kind, p.Value, p.DurationMin)
}

// FromValue arma la variante de kind a partir de un value JSON crudo.
func FromValue(kind Kind, value json.RawMessage, durationMin int) (Data, error) {
	switch kind {
	case KindWeight, KindWalk:
		var n float64
		if err := json.Unmarshal(value, &n); err != nil {
			return nil, fmt.Errorf("%w: %s value must be a number", ErrInvalidInput, kind)
		}
		if kind == KindWeight {
			return Weight{Kg: n}, nil
		}
		return Walk{DistanceKm: n, DurationMin: durationMin}, nil

	case KindHealth, KindNote:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: %s value must be a string", ErrInvalidInput, kind)
		}
		if kind == KindHealth {
			return Health{Event: HealthEvent(strings.ToLower(strings.TrimSpace(s)))}, nil
		}
		return Note{Text: strings.TrimSpace(s)}, nil
	}
	return nil, fmt.Errorf("%w: unknown record kind %q", ErrInvalidInput, kind)
}

// Value devuelve el valor plano de la variante para respuestas JSON.
func Value(d Data) any {
	switch x := d.(type) {
	case Weight:
		return x.Kg
	case Walk:
		return x.DistanceKm
	case Health:
		return string(x.Event)
	case Note:
		return x.Text
	}
	return nil
}
