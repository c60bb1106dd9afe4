package records

import "context"

type Repository interface {
	Append(ctx context.Context, r Record) error
	// ListRecent devuelve hasta limit registros de la mascota, más nuevos primero.
	// kind vacío = todos los tipos.
	ListRecent(ctx context.Context, petID string, kind Kind, limit int) ([]Record, error)
	DeleteByPet(ctx context.Context, petID string) error
}
