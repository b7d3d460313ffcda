package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// UserTable acceso a la tabla users (usable con pool o tx).
type UserTable struct {
	q Querier
}

// NewUserTable construye el adaptador. Pasar pool o tx (Querier).
func NewUserTable(q Querier) *UserTable {
	return &UserTable{q: q}
}

// List lee la tabla completa en orden de alta.
func (t *UserTable) List(ctx context.Context) ([]entity.User, error) {
	query := `
		SELECT id, name, role, hourly_rate, avatar
		FROM users ORDER BY created_at, id`
	rows, err := t.q.Query(ctx, query)
	if err != nil {
		return nil, domain.FetchError(pgMessage(err), pgCode(err), err)
	}
	defer rows.Close()

	var out []entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, domain.FetchError("no se pudo leer un usuario", pgCode(err), err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.FetchError(pgMessage(err), pgCode(err), err)
	}
	return out, nil
}

// Upsert inserta o reemplaza por id.
func (t *UserTable) Upsert(ctx context.Context, u entity.User) error {
	query := `
		INSERT INTO users (id, name, role, hourly_rate, avatar)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			role = EXCLUDED.role,
			hourly_rate = EXCLUDED.hourly_rate,
			avatar = EXCLUDED.avatar`
	_, err := t.q.Exec(ctx, query, u.ID, u.Name, string(u.Role), u.HourlyRate, nullString(u.Avatar))
	if err != nil {
		return domain.WriteError(pgMessage(err), pgCode(err), err)
	}
	return nil
}

// Delete borra la fila; 0 filas afectadas (RLS o inexistente) es DeleteError.
func (t *UserTable) Delete(ctx context.Context, id string) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return domain.DeleteError(pgMessage(err), pgCode(err), err)
	}
	if tag.RowsAffected() == 0 {
		return domain.DeleteError(fmt.Sprintf("no se borró el usuario %s: sin permiso o inexistente", id), domain.CodeNoRowsAffected, nil)
	}
	return nil
}

// DeleteAllExcept borra todos los usuarios salvo keepID y devuelve cuántos borró.
func (t *UserTable) DeleteAllExcept(ctx context.Context, keepID string) (int64, error) {
	tag, err := t.q.Exec(ctx, `DELETE FROM users WHERE id <> $1`, keepID)
	if err != nil {
		return 0, domain.DeleteError(pgMessage(err), pgCode(err), err)
	}
	return tag.RowsAffected(), nil
}

func scanUser(row pgxScanner) (entity.User, error) {
	var (
		u      entity.User
		role   string
		avatar *string
	)
	if err := row.Scan(&u.ID, &u.Name, &role, &u.HourlyRate, &avatar); err != nil {
		return entity.User{}, err
	}
	u.Role = entity.Role(role)
	if avatar != nil {
		u.Avatar = *avatar
	}
	return u, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
