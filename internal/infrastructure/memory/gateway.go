// Package memory implementa el gateway del libro en memoria del proceso
// (modo desarrollo LEDGER_GATEWAY=memory y tests). Mismo contrato que postgres.Gateway.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
)

var _ repository.Gateway = (*Gateway)(nil)

// Gateway tablas users y entries en memoria, en orden de inserción.
type Gateway struct {
	mu      sync.RWMutex
	users   []entity.User
	entries []entity.Entry
}

// NewGateway crea un gateway, opcionalmente con datos iniciales.
func NewGateway(users []entity.User, entries []entity.Entry) *Gateway {
	g := &Gateway{users: append([]entity.User(nil), users...)}
	for _, e := range entries {
		g.entries = append(g.entries, cloneEntry(e))
	}
	return g
}

func (g *Gateway) ListUsers(ctx context.Context) ([]entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.FetchError("no se pudieron leer los usuarios", "", err)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]entity.User(nil), g.users...), nil
}

func (g *Gateway) ListEntries(ctx context.Context) ([]entity.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.FetchError("no se pudieron leer los registros", "", err)
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]entity.Entry, 0, len(g.entries))
	for _, e := range g.entries {
		out = append(out, cloneEntry(e))
	}
	return out, nil
}

func (g *Gateway) UpsertUser(ctx context.Context, user entity.User) error {
	if err := ctx.Err(); err != nil {
		return domain.WriteError("no se pudo guardar el usuario", "", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.users {
		if g.users[i].ID == user.ID {
			g.users[i] = user
			return nil
		}
	}
	g.users = append(g.users, user)
	return nil
}

func (g *Gateway) UpsertEntry(ctx context.Context, e entity.Entry) error {
	if err := ctx.Err(); err != nil {
		return domain.WriteError("no se pudo guardar el registro", "", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	e = cloneEntry(e)
	for i := range g.entries {
		if g.entries[i].ID == e.ID {
			g.entries[i] = e
			return nil
		}
	}
	g.entries = append(g.entries, e)
	return nil
}

// DeleteUser borra los registros del usuario y luego el usuario; 0 filas es DeleteError.
func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return domain.CascadeError("no se pudieron borrar los registros del usuario", "", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = removeEntries(g.entries, func(e entity.Entry) bool { return e.UserID == id })

	before := len(g.users)
	kept := g.users[:0]
	for _, u := range g.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	g.users = kept
	if len(g.users) == before {
		return domain.DeleteError("no se borró ninguna fila de users", domain.CodeNoRowsAffected, nil)
	}
	return nil
}

func (g *Gateway) DeleteEntry(ctx context.Context, id string) error {
	return g.deleteEntries(ctx, func(e entity.Entry) bool { return e.ID == id })
}

func (g *Gateway) DeleteEntriesByTypeAndDate(ctx context.Context, typ entity.EntryType, date string) error {
	return g.deleteEntries(ctx, func(e entity.Entry) bool { return e.Type == typ && e.Date == date })
}

// WipeAll vacía entries y deja solo keepUserID en users.
func (g *Gateway) WipeAll(ctx context.Context, keepUserID string) error {
	if err := ctx.Err(); err != nil {
		return domain.DeleteError("reinicio cancelado", "", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.entries = nil
	kept := g.users[:0]
	for _, u := range g.users {
		if u.ID == keepUserID {
			kept = append(kept, u)
		}
	}
	g.users = kept
	return nil
}

func (g *Gateway) deleteEntries(ctx context.Context, match func(entity.Entry) bool) error {
	if err := ctx.Err(); err != nil {
		return domain.DeleteError("borrado cancelado", "", err)
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	before := len(g.entries)
	g.entries = removeEntries(g.entries, match)
	if len(g.entries) == before {
		return domain.DeleteError("no se borró ninguna fila de entries", domain.CodeNoRowsAffected, nil)
	}
	return nil
}

func removeEntries(in []entity.Entry, match func(entity.Entry) bool) []entity.Entry {
	out := in[:0]
	for _, e := range in {
		if !match(e) {
			out = append(out, e)
		}
	}
	return out
}

func cloneEntry(e entity.Entry) entity.Entry {
	if e.Hours != nil {
		h := *e.Hours
		e.Hours = &h
	}
	return e
}
