// Package calendar arma las marcas de días (puntos de colores por mascota) que pinta el calendario.
// Las marcas son derivadas: se recalculan en cada render y nunca se guardan.
package calendar

// DateLayout es la clave de agrupación de todo el calendario.
const DateLayout = "2006-01-02"

// Event es un recordatorio reducido a lo que importa para marcar: su día y su mascota.
type Event struct {
	Date  string
	PetID string
}

type Dot struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

type Mark struct {
	Dots     []Dot `json:"dots"`
	Selected bool  `json:"selected"`
}

// Marks va de "YYYY-MM-DD" a la marca del día.
type Marks map[string]Mark

// BuildMarks agrupa por fecha, traduce petID a color, descarta mascotas sin color
// y deduplica por color dentro del mismo día (la key del punto es el color).
// selected siempre queda con entrada, aunque ese día no tenga eventos.
func BuildMarks(events []Event, colors map[string]string, selected string) Marks {
	out := Marks{}
	seen := map[string]map[string]struct{}{}

	for _, ev := range events {
		if ev.Date == "" {
			continue
		}
		color, ok := colors[ev.PetID]
		if !ok || color == "" {
			continue
		}

		if seen[ev.Date] == nil {
			seen[ev.Date] = map[string]struct{}{}
		}
		if _, dup := seen[ev.Date][color]; dup {
			continue
		}
		seen[ev.Date][color] = struct{}{}

		m := out[ev.Date]
		m.Dots = append(m.Dots, Dot{Key: color, Color: color})
		out[ev.Date] = m
	}

	return out.Select(selected)
}

// Select devuelve una copia con el resaltado movido a date.
// Los puntos del día se conservan; la entrada del seleccionado anterior
// desaparece si solo existía por el resaltado.
func (m Marks) Select(date string) Marks {
	out := make(Marks, len(m)+1)
	for k, v := range m {
		if len(v.Dots) == 0 && k != date {
			continue
		}
		v.Selected = false
		out[k] = v
	}

	if date == "" {
		return out
	}

	cur := out[date]
	cur.Selected = true
	out[date] = cur
	return out
}
