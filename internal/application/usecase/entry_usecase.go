package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

// EntryUseCase alta, baja y consulta de registros manuales.
type EntryUseCase struct {
	gw    repository.Gateway
	store *ledger.Store
	log   *logger.Logger
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(gw repository.Gateway, store *ledger.Store, log *logger.Logger) *EntryUseCase {
	return &EntryUseCase{gw: gw, store: store, log: log.Component("entries")}
}

// Create registra una línea para un usuario existente. TIP se rechaza: solo lo escribe el reparto.
func (uc *EntryUseCase) Create(ctx context.Context, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	typ, err := entity.ParseEntryType(in.Type)
	if err != nil {
		return nil, domain.Validation("INVALID_TYPE", "%s", err.Error())
	}
	if typ == entity.EntryTypeTip {
		return nil, domain.Validation("INVALID_TYPE", "las propinas solo se registran con el reparto semanal")
	}
	if _, ok := uc.store.User(in.UserID); !ok {
		return nil, domain.ErrUserNotFound
	}
	if _, err := entity.ParseDate(in.Date); err != nil {
		return nil, domain.Validation("INVALID_DATE", "%s", err.Error())
	}
	if in.Amount == nil {
		return nil, domain.Validation("INVALID_AMOUNT", "el importe es obligatorio")
	}
	if in.Hours != nil && in.Hours.IsNegative() {
		return nil, domain.Validation("INVALID_HOURS", "las horas no pueden ser negativas")
	}

	entry := entity.Entry{
		ID:     uuid.New().String(),
		UserID: in.UserID,
		Type:   typ,
		Amount: *in.Amount,
		Date:   in.Date,
		Hours:  in.Hours,
		Note:   in.Note,
	}
	if err := uc.gw.UpsertEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("crear registro: %w", err)
	}
	uc.store.PutEntries(entry)
	uc.log.Debug().Str("entry_id", entry.ID).Str("user_id", entry.UserID).Str("type", string(typ)).Msg("registro creado")
	out := dto.NewEntryResponse(entry)
	return &out, nil
}

// Delete borra un registro por id.
func (uc *EntryUseCase) Delete(ctx context.Context, id string) error {
	if _, ok := uc.find(id); !ok {
		return domain.ErrNotFound
	}
	if err := uc.gw.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("borrar registro: %w", err)
	}
	uc.store.RemoveEntry(id)
	return nil
}

// List filtra por usuario y por fecha exacta o rango (inclusive). Sin filtros devuelve todo.
func (uc *EntryUseCase) List(f dto.EntryFilter) (*dto.EntryListResponse, error) {
	for _, d := range []string{f.Date, f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := entity.ParseDate(d); err != nil {
			return nil, domain.Validation("INVALID_DATE", "%s", err.Error())
		}
	}
	if f.UserID != "" {
		if _, ok := uc.store.User(f.UserID); !ok {
			return nil, domain.ErrUserNotFound
		}
	}
	return &dto.EntryListResponse{Items: dto.NewEntryResponses(uc.selectEntries(f))}, nil
}

// Límites para rangos abiertos; las fechas ISO se comparan como texto.
const (
	minDate = "0000-01-01"
	maxDate = "9999-12-31"
)

func (uc *EntryUseCase) selectEntries(f dto.EntryFilter) []entity.Entry {
	if f.Date != "" {
		if (f.From != "" && f.Date < f.From) || (f.To != "" && f.Date > f.To) {
			return nil
		}
		return uc.store.EntriesOnDate(f.UserID, f.Date)
	}
	if f.From == "" && f.To == "" {
		if f.UserID == "" {
			return uc.store.Entries()
		}
		return uc.store.EntriesFor(f.UserID)
	}
	from, to := f.From, f.To
	if from == "" {
		from = minDate
	}
	if to == "" {
		to = maxDate
	}
	return uc.store.EntriesInRange(f.UserID, from, to)
}

func (uc *EntryUseCase) find(id string) (entity.Entry, bool) {
	for _, e := range uc.store.Entries() {
		if e.ID == id {
			return e, true
		}
	}
	return entity.Entry{}, false
}
