package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

// AdminSeed datos del administrador que se crea cuando la tabla de usuarios está vacía.
type AdminSeed struct {
	ID     string
	Name   string
	Avatar string
}

// User entidad del administrador inicial (rol ADMIN, tarifa 0).
func (a AdminSeed) User() entity.User {
	return entity.User{ID: a.ID, Name: a.Name, Role: entity.RoleAdmin, HourlyRate: decimal.Zero, Avatar: a.Avatar}
}

// SyncUseCase carga (y recarga) la instantánea del libro desde el gateway.
type SyncUseCase struct {
	gw    repository.Gateway
	store *ledger.Store
	admin AdminSeed
	log   *logger.Logger
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(gw repository.Gateway, store *ledger.Store, admin AdminSeed, log *logger.Logger) *SyncUseCase {
	return &SyncUseCase{gw: gw, store: store, admin: admin, log: log.Component("sync")}
}

// Load lee usuarios y registros en paralelo y reemplaza la instantánea. Si no hay usuarios,
// crea el administrador inicial antes de publicar nada.
func (uc *SyncUseCase) Load(ctx context.Context) (*dto.SyncResponse, error) {
	var (
		users   []entity.User
		entries []entity.Entry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = uc.gw.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = uc.gw.ListEntries(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cargar libro: %w", err)
	}

	if len(users) == 0 {
		admin := uc.admin.User()
		if err := uc.gw.UpsertUser(ctx, admin); err != nil {
			return nil, fmt.Errorf("crear administrador inicial: %w", err)
		}
		uc.log.Info().Str("user_id", admin.ID).Msg("tabla de usuarios vacía: administrador creado")
		users = []entity.User{admin}
	}

	uc.store.Replace(users, entries)
	uc.log.Info().Int("users", len(users)).Int("entries", len(entries)).Msg("libro cargado")
	return &dto.SyncResponse{Users: len(users), Entries: len(entries)}, nil
}

// Reload vuelve a leer todo desde el gateway. Si falla, la instantánea anterior queda intacta.
func (uc *SyncUseCase) Reload(ctx context.Context) (*dto.SyncResponse, error) {
	return uc.Load(ctx)
}

// WipeAll borra todos los registros y todos los usuarios salvo el administrador.
// Solo se usa desde la herramienta de línea de comandos.
func (uc *SyncUseCase) WipeAll(ctx context.Context) error {
	if err := uc.gw.WipeAll(ctx, uc.admin.ID); err != nil {
		return fmt.Errorf("reinicio completo: %w", err)
	}
	uc.store.KeepOnlyUser(uc.admin.ID)
	uc.log.Warn().Str("kept", uc.admin.ID).Msg("reinicio completo del libro")
	return nil
}
