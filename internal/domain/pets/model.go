package pets

import "time"

// Species es texto libre en la app; estas son las que la UI ofrece por defecto.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Collar vincula la mascota con un collar físico (código impreso en el collar).
type Collar struct {
	Code     string
	LinkedAt *time.Time
	Active   bool
}

// Pet representa el perfil de una mascota de un owner.
type Pet struct {
	ID          string
	OwnerUserID string

	Name     string
	Species  Species
	Breed    string
	AgeYears *int

	PhotoURL string

	// Color del punto en el calendario (hex).
	Color string

	Collar Collar

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Palette se asigna en orden de creación cuando el owner no elige color.
var Palette = []string{
	"#F4A261",
	"#2A9D8F",
	"#E76F51",
	"#264653",
	"#E9C46A",
	"#8AB17D",
	"#9B5DE5",
	"#00BBF9",
}
