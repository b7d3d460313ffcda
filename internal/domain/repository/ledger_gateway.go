package repository

import (
	"context"

	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// Gateway puerto de persistencia del libro (tablas users y entries).
//
// Contrato:
//   - ListUsers / ListEntries leen la tabla completa, sin paginación; fallan con domain.ErrFetch.
//   - UpsertUser / UpsertEntry insertan o reemplazan por id; fallan con domain.ErrWrite.
//   - DeleteUser borra primero todos los registros del usuario (domain.ErrCascade si falla, el
//     usuario queda intacto) y luego la fila del usuario (domain.ErrDelete si afecta 0 filas).
//   - DeleteEntry / DeleteEntriesByTypeAndDate: 0 filas afectadas es domain.ErrDelete.
//   - WipeAll borra todos los registros y todos los usuarios salvo keepUserID.
type Gateway interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	ListEntries(ctx context.Context) ([]entity.Entry, error)
	UpsertUser(ctx context.Context, user entity.User) error
	UpsertEntry(ctx context.Context, entry entity.Entry) error
	DeleteUser(ctx context.Context, id string) error
	DeleteEntry(ctx context.Context, id string) error
	DeleteEntriesByTypeAndDate(ctx context.Context, typ entity.EntryType, date string) error
	WipeAll(ctx context.Context, keepUserID string) error
}
