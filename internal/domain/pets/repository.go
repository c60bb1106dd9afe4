package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
}

// Dependent es cualquier módulo que guarda datos referenciando un petID.
// Se usa para el borrado en cascada sin que pets importe reminders/records.
type Dependent interface {
	DeleteByPet(ctx context.Context, petID string) error
}
