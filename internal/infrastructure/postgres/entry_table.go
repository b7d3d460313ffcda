package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// EntryTable acceso a la tabla entries (usable con pool o tx).
type EntryTable struct {
	q Querier
}

// NewEntryTable construye el adaptador. Pasar pool o tx (Querier).
func NewEntryTable(q Querier) *EntryTable {
	return &EntryTable{q: q}
}

// List lee la tabla completa.
func (t *EntryTable) List(ctx context.Context) ([]entity.Entry, error) {
	query := `
		SELECT id, user_id, type, amount, date, note, hours
		FROM entries ORDER BY date, created_at, id`
	rows, err := t.q.Query(ctx, query)
	if err != nil {
		return nil, domain.FetchError(pgMessage(err), pgCode(err), err)
	}
	defer rows.Close()

	var out []entity.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, domain.FetchError("no se pudo leer un registro", pgCode(err), err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.FetchError(pgMessage(err), pgCode(err), err)
	}
	return out, nil
}

// Upsert inserta o reemplaza por id.
func (t *EntryTable) Upsert(ctx context.Context, e entity.Entry) error {
	date, err := entity.ParseDate(e.Date)
	if err != nil {
		return domain.WriteError(err.Error(), "", err)
	}
	hours := decimal.NullDecimal{}
	if e.Hours != nil {
		hours = decimal.NewNullDecimal(*e.Hours)
	}
	query := `
		INSERT INTO entries (id, user_id, type, amount, date, note, hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			type = EXCLUDED.type,
			amount = EXCLUDED.amount,
			date = EXCLUDED.date,
			note = EXCLUDED.note,
			hours = EXCLUDED.hours`
	_, err = t.q.Exec(ctx, query, e.ID, e.UserID, string(e.Type), e.Amount, date, nullString(e.Note), hours)
	if err != nil {
		return domain.WriteError(pgMessage(err), pgCode(err), err)
	}
	return nil
}

// DeleteByUser borra todos los registros de un usuario (paso previo a borrar el usuario).
// Que no haya filas no es error.
func (t *EntryTable) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := t.q.Exec(ctx, `DELETE FROM entries WHERE user_id = $1`, userID)
	if err != nil {
		return 0, domain.CascadeError(pgMessage(err), pgCode(err), err)
	}
	return tag.RowsAffected(), nil
}

// Delete borra un registro; 0 filas es DeleteError.
func (t *EntryTable) Delete(ctx context.Context, id string) error {
	tag, err := t.q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	return rowsDeleted(tag.RowsAffected(), err, "no se borró el registro "+id)
}

// DeleteByTypeAndDate borra los registros de ese tipo y fecha; 0 filas es DeleteError.
func (t *EntryTable) DeleteByTypeAndDate(ctx context.Context, typ entity.EntryType, date string) error {
	d, err := entity.ParseDate(date)
	if err != nil {
		return domain.Validation("INVALID_DATE", "%s", err.Error())
	}
	tag, err := t.q.Exec(ctx, `DELETE FROM entries WHERE type = $1 AND date = $2`, string(typ), d)
	return rowsDeleted(tag.RowsAffected(), err, fmt.Sprintf("no se borraron registros %s del %s", typ, date))
}

// DeleteAll vacía la tabla.
func (t *EntryTable) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := t.q.Exec(ctx, `DELETE FROM entries`)
	if err != nil {
		return 0, domain.DeleteError(pgMessage(err), pgCode(err), err)
	}
	return tag.RowsAffected(), nil
}

func rowsDeleted(n int64, err error, msg string) error {
	if err != nil {
		return domain.DeleteError(pgMessage(err), pgCode(err), err)
	}
	if n == 0 {
		return domain.DeleteError(msg+": sin permiso o inexistente", domain.CodeNoRowsAffected, nil)
	}
	return nil
}

func scanEntry(row pgxScanner) (entity.Entry, error) {
	var (
		e     entity.Entry
		typ   string
		date  time.Time
		note  *string
		hours decimal.NullDecimal
	)
	if err := row.Scan(&e.ID, &e.UserID, &typ, &e.Amount, &date, &note, &hours); err != nil {
		return entity.Entry{}, err
	}
	t, err := entity.ParseEntryType(typ)
	if err != nil {
		return entity.Entry{}, err
	}
	e.Type = t
	e.Date = date.Format(entity.DateLayout)
	if note != nil {
		e.Note = *note
	}
	if hours.Valid {
		h := hours.Decimal
		e.Hours = &h
	}
	return e, nil
}
