// Package tips reparte un bote de propinas en efectivo entre el personal, en proporción
// a las horas trabajadas en la semana que termina en la fecha ancla (domingo).
//
//	tasa     = bote / horasTotales
//	parte_i  = floor(horas_i * bote / horasTotales)
//
// El redondeo hacia abajo garantiza Σparte_i <= bote; el resto queda sin repartir.
package tips

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// Week semana de reparto: los 6 días anteriores al ancla más el ancla (7 días, inclusive).
type Week struct {
	Anchor string
	Start  string
	End    string
}

// Contains indica si la fecha ISO cae dentro de la semana.
func (w Week) Contains(date string) bool {
	return date >= w.Start && date <= w.End
}

// WeekEnding calcula la semana que termina en anchor.
func WeekEnding(anchor string) (Week, error) {
	end, err := entity.ParseDate(anchor)
	if err != nil {
		return Week{}, domain.Validation("INVALID_DATE", "%s", err.Error())
	}
	return Week{
		Anchor: anchor,
		Start:  end.AddDate(0, 0, -6).Format(entity.DateLayout),
		End:    end.Format(entity.DateLayout),
	}, nil
}

// DefaultAnchor devuelve hoy si es domingo, si no el próximo domingo.
func DefaultAnchor(now time.Time) string {
	offset := (7 - int(now.Weekday())) % 7
	return now.AddDate(0, 0, offset).Format(entity.DateLayout)
}

// StaffHours horas elegibles de un usuario en la semana.
type StaffHours struct {
	UserID string
	Name   string
	Hours  decimal.Decimal
}

// HoursByUser suma, por usuario y en el orden recibido, las horas de los registros de la
// semana que informan horas, sea cual sea su tipo. Los registros sin horas no participan.
// El reparto escribe sus TIP sin horas, así que una ronda nunca pondera la siguiente.
func HoursByUser(users []entity.User, entries []entity.Entry, w Week) ([]StaffHours, decimal.Decimal) {
	byUser := make(map[string]decimal.Decimal, len(users))
	for _, e := range entries {
		if !e.HasHours() || !w.Contains(e.Date) {
			continue
		}
		byUser[e.UserID] = byUser[e.UserID].Add(*e.Hours)
	}

	out := make([]StaffHours, 0, len(users))
	total := decimal.Zero
	for _, u := range users {
		h := byUser[u.ID]
		out = append(out, StaffHours{UserID: u.ID, Name: u.Name, Hours: h})
		total = total.Add(h)
	}
	return out, total
}

// Share parte asignada a un usuario.
type Share struct {
	UserID string
	Name   string
	Hours  decimal.Decimal
	Amount decimal.Decimal
}

// Plan resultado de un reparto (todavía sin persistir).
type Plan struct {
	Pool        decimal.Decimal
	TotalHours  decimal.Decimal
	Rate        decimal.Decimal
	Shares      []Share
	Distributed decimal.Decimal
	Unallocated decimal.Decimal
}

// Distribute calcula las partes. Bloqueado si el bote no es positivo o no hay horas.
func Distribute(pool decimal.Decimal, hours []StaffHours) (Plan, error) {
	if !pool.IsPositive() {
		return Plan{}, domain.Validation("INVALID_POOL", "el bote debe ser mayor que cero")
	}
	total := decimal.Zero
	for _, h := range hours {
		total = total.Add(h.Hours)
	}
	if !total.IsPositive() {
		return Plan{}, domain.Validation(domain.CodeNoEligibleHours, "no hay horas registradas en la semana")
	}

	plan := Plan{
		Pool:        pool,
		TotalHours:  total,
		Rate:        pool.Div(total),
		Distributed: decimal.Zero,
	}
	for _, h := range hours {
		if !h.Hours.IsPositive() {
			continue
		}
		amount := h.Hours.Mul(pool).Div(total).Floor()
		plan.Shares = append(plan.Shares, Share{UserID: h.UserID, Name: h.Name, Hours: h.Hours, Amount: amount})
		plan.Distributed = plan.Distributed.Add(amount)
	}
	plan.Unallocated = pool.Sub(plan.Distributed)
	return plan, nil
}

// DisplayRate tasa a mostrar: con bote, bote/horas; sin bote pero con propinas ya
// repartidas para el ancla, Σpropinas/horas (tasa inferida, solo lectura); si no, cero.
func DisplayRate(pool *decimal.Decimal, existing []entity.Entry, totalHours decimal.Decimal) decimal.Decimal {
	if !totalHours.IsPositive() {
		return decimal.Zero
	}
	if pool != nil {
		return pool.Div(totalHours)
	}
	if len(existing) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, e := range existing {
		sum = sum.Add(e.Amount)
	}
	return sum.Div(totalHours)
}
