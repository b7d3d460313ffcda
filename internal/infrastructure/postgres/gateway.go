package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

var _ repository.Gateway = (*Gateway)(nil)

// Gateway implementación del puerto repository.Gateway sobre PostgreSQL (Supabase).
// Cada llamada es una sentencia independiente salvo WipeAll, que va en una transacción.
type Gateway struct {
	users   *UserTable
	entries *EntryTable
	tx      *TxRunner
	log     *logger.Logger
}

// NewGateway construye el gateway con el pool.
func NewGateway(pool *pgxpool.Pool, log *logger.Logger) *Gateway {
	return &Gateway{
		users:   NewUserTable(pool),
		entries: NewEntryTable(pool),
		tx:      NewTxRunner(pool),
		log:     log.Component("gateway"),
	}
}

func (g *Gateway) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := g.users.List(ctx)
	if err != nil {
		g.log.Error().Err(err).Msg("select users")
		return nil, err
	}
	g.log.Debug().Int("rows", len(users)).Msg("select users")
	return users, nil
}

func (g *Gateway) ListEntries(ctx context.Context) ([]entity.Entry, error) {
	entries, err := g.entries.List(ctx)
	if err != nil {
		g.log.Error().Err(err).Msg("select entries")
		return nil, err
	}
	g.log.Debug().Int("rows", len(entries)).Msg("select entries")
	return entries, nil
}

func (g *Gateway) UpsertUser(ctx context.Context, user entity.User) error {
	if err := g.users.Upsert(ctx, user); err != nil {
		g.log.Error().Err(err).Str("user_id", user.ID).Msg("upsert user")
		return err
	}
	g.log.Debug().Str("user_id", user.ID).Msg("upsert user")
	return nil
}

func (g *Gateway) UpsertEntry(ctx context.Context, e entity.Entry) error {
	if err := g.entries.Upsert(ctx, e); err != nil {
		g.log.Error().Err(err).Str("entry_id", e.ID).Msg("upsert entry")
		return err
	}
	g.log.Debug().Str("entry_id", e.ID).Str("type", string(e.Type)).Msg("upsert entry")
	return nil
}

// DeleteUser borra primero los registros del usuario y después el usuario, en dos
// sentencias sin transacción: si la segunda falla, los registros ya no están.
func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	n, err := g.entries.DeleteByUser(ctx, id)
	if err != nil {
		g.log.Error().Err(err).Str("user_id", id).Msg("delete entries by user")
		return err
	}
	if err := g.users.Delete(ctx, id); err != nil {
		g.log.Error().Err(err).Str("user_id", id).Int64("entries_deleted", n).Msg("delete user")
		return err
	}
	g.log.Debug().Str("user_id", id).Int64("entries_deleted", n).Msg("delete user")
	return nil
}

func (g *Gateway) DeleteEntry(ctx context.Context, id string) error {
	if err := g.entries.Delete(ctx, id); err != nil {
		g.log.Error().Err(err).Str("entry_id", id).Msg("delete entry")
		return err
	}
	g.log.Debug().Str("entry_id", id).Msg("delete entry")
	return nil
}

func (g *Gateway) DeleteEntriesByTypeAndDate(ctx context.Context, typ entity.EntryType, date string) error {
	if err := g.entries.DeleteByTypeAndDate(ctx, typ, date); err != nil {
		g.log.Error().Err(err).Str("type", string(typ)).Str("date", date).Msg("delete entries by type and date")
		return err
	}
	g.log.Debug().Str("type", string(typ)).Str("date", date).Msg("delete entries by type and date")
	return nil
}

// WipeAll vacía entries y deja solo keepUserID en users, en una única transacción.
func (g *Gateway) WipeAll(ctx context.Context, keepUserID string) error {
	var entriesDeleted, usersDeleted int64
	err := g.tx.Run(ctx, func(users *UserTable, entries *EntryTable) error {
		var err error
		if entriesDeleted, err = entries.DeleteAll(ctx); err != nil {
			return err
		}
		usersDeleted, err = users.DeleteAllExcept(ctx, keepUserID)
		return err
	})
	if err != nil {
		g.log.Error().Err(err).Msg("wipe all")
		if _, ok := domain.AsLedgerError(err); ok {
			return err
		}
		return domain.DeleteError("no se pudo reiniciar el libro", pgCode(err), err)
	}
	g.log.Warn().Int64("entries", entriesDeleted).Int64("users", usersDeleted).Str("kept", keepUserID).Msg("wipe all")
	return nil
}
