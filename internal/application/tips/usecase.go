// Package tips orquesta el reparto semanal de propinas sobre el libro: vista previa,
// escritura de una ronda de registros TIP y reinicio protegido de una semana.
package tips

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	domtips "github.com/jhoicas/puantaj-api/internal/domain/tips"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

// UseCase casos de uso de propinas.
type UseCase struct {
	gw          repository.Gateway
	store       *ledger.Store
	guards      *guard.Registry
	resetPhrase string
	now         func() time.Time
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(gw repository.Gateway, store *ledger.Store, guards *guard.Registry, resetPhrase string, log *logger.Logger) *UseCase {
	return &UseCase{
		gw:          gw,
		store:       store,
		guards:      guards,
		resetPhrase: resetPhrase,
		now:         time.Now,
		log:         log.Component("tips"),
	}
}

// WithClock sustituye el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Anchor devuelve anchor o, si está vacío, el domingo por defecto.
func (uc *UseCase) Anchor(anchor string) string {
	if anchor == "" {
		return domtips.DefaultAnchor(uc.now())
	}
	return anchor
}

// Preview calcula horas, tasa y partes previstas de la semana que termina en anchor.
// pool es opcional; sin bote la tasa se infiere de las propinas ya repartidas.
func (uc *UseCase) Preview(anchor string, pool *decimal.Decimal) (*dto.TipPreviewResponse, error) {
	anchor = uc.Anchor(anchor)
	week, err := domtips.WeekEnding(anchor)
	if err != nil {
		return nil, err
	}
	hours, total := domtips.HoursByUser(uc.store.Users(), uc.store.Entries(), week)
	existing := uc.store.EntriesOfTypeOnDate(entity.EntryTypeTip, anchor)

	out := &dto.TipPreviewResponse{
		Anchor:     anchor,
		WeekStart:  week.Start,
		WeekEnd:    week.End,
		TotalHours: total,
		Rate:       domtips.DisplayRate(pool, existing, total),
		Pool:       pool,
		Existing:   dto.NewEntryResponses(existing),
		Staff:      make([]dto.StaffHoursResponse, 0, len(hours)),
	}

	shares := map[string]decimal.Decimal{}
	if pool != nil {
		if plan, err := domtips.Distribute(*pool, hours); err == nil {
			for _, s := range plan.Shares {
				shares[s.UserID] = s.Amount
			}
			out.Distributed = &plan.Distributed
			out.Unallocated = &plan.Unallocated
			out.CanDistribute = true
		}
	}
	for _, h := range hours {
		item := dto.StaffHoursResponse{UserID: h.UserID, Name: h.Name, Hours: h.Hours}
		if s, ok := shares[h.UserID]; ok {
			item.Share = &s
		}
		out.Staff = append(out.Staff, item)
	}
	return out, nil
}

// Distribute escribe una ronda de registros TIP (uno por usuario con horas) con fecha anchor.
//
// Si ya hay propinas para anchor hace falta ConfirmAppend: la nueva ronda se suma a la
// anterior. Las escrituras son secuenciales y sin transacción; si una falla, las ya
// escritas quedan persistidas y reflejadas en el store y se devuelve el error junto con
// la respuesta parcial.
func (uc *UseCase) Distribute(ctx context.Context, actor, anchor string, in dto.DistributeTipsRequest) (*dto.DistributeTipsResponse, error) {
	anchor = uc.Anchor(anchor)
	week, err := domtips.WeekEnding(anchor)
	if err != nil {
		return nil, err
	}
	if existing := uc.store.EntriesOfTypeOnDate(entity.EntryTypeTip, anchor); len(existing) > 0 && !in.ConfirmAppend {
		return nil, domain.Validation(domain.CodeTipsAlreadyDistributed,
			"ya hay %d propinas repartidas para %s; confirme para añadir otra ronda", len(existing), anchor)
	}
	hours, _ := domtips.HoursByUser(uc.store.Users(), uc.store.Entries(), week)
	plan, err := domtips.Distribute(in.Pool, hours)
	if err != nil {
		return nil, err
	}

	out := &dto.DistributeTipsResponse{
		Anchor:      anchor,
		Entries:     make([]dto.EntryResponse, 0, len(plan.Shares)),
		Distributed: plan.Distributed,
		Unallocated: plan.Unallocated,
	}
	for _, s := range plan.Shares {
		entry := entity.Entry{
			ID:     uuid.New().String(),
			UserID: s.UserID,
			Type:   entity.EntryTypeTip,
			Amount: s.Amount,
			Date:   anchor,
			Note:   fmt.Sprintf("%s - %s propina semanal (%s h)", week.Start, week.End, s.Hours.String()),
		}
		if err := uc.gw.UpsertEntry(ctx, entry); err != nil {
			uc.log.Error().Err(err).Str("actor", actor).Str("anchor", anchor).
				Int("written", out.Written).Int("planned", len(plan.Shares)).Msg("reparto de propinas incompleto")
			return out, fmt.Errorf("reparto incompleto (%d de %d escritos): %w", out.Written, len(plan.Shares), err)
		}
		uc.store.PutEntries(entry)
		out.Entries = append(out.Entries, dto.NewEntryResponse(entry))
		out.Written++
	}

	uc.log.Info().Str("actor", actor).Str("anchor", anchor).Str("pool", in.Pool.String()).
		Int("written", out.Written).Str("unallocated", plan.Unallocated.String()).Msg("propinas repartidas")
	return out, nil
}

// RequestReset abre la confirmación de reinicio de las propinas de anchor.
func (uc *UseCase) RequestReset(actor, anchor string) (*dto.GuardStateResponse, error) {
	anchor = uc.Anchor(anchor)
	if _, err := domtips.WeekEnding(anchor); err != nil {
		return nil, err
	}
	if len(uc.store.EntriesOfTypeOnDate(entity.EntryTypeTip, anchor)) == 0 {
		return nil, domain.Validation("NO_TIPS", "no hay propinas repartidas para %s", anchor)
	}
	flow := uc.guards.For(guard.OpTipReset, actor)
	if err := flow.Request(anchor); err != nil {
		return nil, err
	}
	return uc.resetState(flow), nil
}

// AcceptReset confirma el primer paso; la respuesta incluye la frase a escribir.
func (uc *UseCase) AcceptReset(actor, anchor string) (*dto.GuardStateResponse, error) {
	flow := uc.guards.For(guard.OpTipReset, actor)
	if err := flow.Accept(uc.Anchor(anchor)); err != nil {
		return nil, err
	}
	return uc.resetState(flow), nil
}

// ConfirmReset borra todos los registros TIP con fecha anchor si la frase coincide.
func (uc *UseCase) ConfirmReset(ctx context.Context, actor, anchor, typed string) error {
	anchor = uc.Anchor(anchor)
	if len(uc.store.EntriesOfTypeOnDate(entity.EntryTypeTip, anchor)) == 0 {
		return domain.Validation("NO_TIPS", "no hay propinas repartidas para %s", anchor)
	}
	flow := uc.guards.For(guard.OpTipReset, actor)
	var removed int
	err := flow.Execute(ctx, anchor, typed, uc.resetPhrase, func(ctx context.Context) error {
		if err := uc.gw.DeleteEntriesByTypeAndDate(ctx, entity.EntryTypeTip, anchor); err != nil {
			return err
		}
		removed = uc.store.RemoveEntriesByTypeAndDate(entity.EntryTypeTip, anchor)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("actor", actor).Str("anchor", anchor).Msg("reinicio de propinas rechazado")
		return err
	}
	uc.log.Info().Str("actor", actor).Str("anchor", anchor).Int("removed", removed).Msg("propinas reiniciadas")
	return nil
}

// CancelReset descarta la confirmación pendiente de actor.
func (uc *UseCase) CancelReset(actor string) (*dto.GuardStateResponse, error) {
	flow := uc.guards.For(guard.OpTipReset, actor)
	if err := flow.Cancel(); err != nil {
		return nil, err
	}
	return uc.resetState(flow), nil
}

func (uc *UseCase) resetState(flow *guard.Workflow) *dto.GuardStateResponse {
	out := dto.NewGuardStateResponse(flow.Snapshot(), uc.resetPhrase)
	return &out
}
