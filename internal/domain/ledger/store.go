// Package ledger contiene el Store: la instantánea en memoria de usuarios y registros
// y las derivaciones puras sobre ella (saldos, totales mensuales, filtros por fecha, ranking).
//
// El Store solo se modifica después de que el gateway confirma la escritura.
package ledger

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/domain/entity"
)

// EntryFilter selecciona registros para una agregación. Sin filtros, cuentan todos.
type EntryFilter func(entity.Entry) bool

// ExcludeTips deja fuera los registros cuyo tipo no cuenta para el saldo (TIP).
func ExcludeTips(e entity.Entry) bool { return e.Type.CountsTowardBalance() }

// OnlyTips selecciona solo los registros TIP.
func OnlyTips(e entity.Entry) bool { return e.Type == entity.EntryTypeTip }

// Standing posición de un usuario en el ranking de saldos.
type Standing struct {
	User    entity.User
	Balance decimal.Decimal
}

// Store instantánea de usuarios y registros. Un único escritor lógico; el RWMutex solo
// evita que los lectores concurrentes del servidor HTTP vean estados a medias.
type Store struct {
	mu      sync.RWMutex
	users   []entity.User
	entries []entity.Entry
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{}
}

// Replace sustituye la instantánea completa (carga inicial o recarga).
func (s *Store) Replace(users []entity.User, entries []entity.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]entity.User(nil), users...)
	s.entries = append([]entity.Entry(nil), entries...)
}

// Users devuelve una copia de los usuarios en su orden original.
func (s *Store) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.User(nil), s.users...)
}

// User busca un usuario por id.
func (s *Store) User(id string) (entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}

// Entries devuelve una copia de todos los registros.
func (s *Store) Entries() []entity.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Entry(nil), s.entries...)
}

// EntriesFor devuelve los registros de un usuario.
func (s *Store) EntriesFor(userID string) []entity.Entry {
	return s.selectEntries(func(e entity.Entry) bool { return e.UserID == userID })
}

// EntriesOnDate registros del usuario con fecha exactamente igual a date.
// userID vacío = todos los usuarios.
func (s *Store) EntriesOnDate(userID, date string) []entity.Entry {
	return s.selectEntries(func(e entity.Entry) bool {
		return ownedBy(e, userID) && e.Date == date
	})
}

// EntriesInRange registros del usuario con start <= fecha <= end (ambos inclusive).
// Las fechas ISO se comparan como texto. userID vacío = todos los usuarios.
func (s *Store) EntriesInRange(userID, start, end string) []entity.Entry {
	return s.selectEntries(func(e entity.Entry) bool {
		return ownedBy(e, userID) && e.Date >= start && e.Date <= end
	})
}

func ownedBy(e entity.Entry, userID string) bool {
	return userID == "" || e.UserID == userID
}

// EntriesOfTypeOnDate registros de cualquier usuario con ese tipo y fecha.
func (s *Store) EntriesOfTypeOnDate(typ entity.EntryType, date string) []entity.Entry {
	return s.selectEntries(func(e entity.Entry) bool {
		return e.Type == typ && e.Date == date
	})
}

// BalanceOf suma los importes de todos los registros del usuario que pasan los filtros.
func (s *Store) BalanceOf(userID string, filters ...EntryFilter) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balanceLocked(userID, filters)
}

// MonthlyCredit suma los importes positivos del usuario en el mes indicado.
func (s *Store) MonthlyCredit(userID string, year, month int, filters ...EntryFilter) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.monthEntries(userID, year, month, filters) {
		if e.Amount.IsPositive() {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// MonthlyDebit suma el valor absoluto de los importes negativos del usuario en el mes indicado.
func (s *Store) MonthlyDebit(userID string, year, month int, filters ...EntryFilter) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.monthEntries(userID, year, month, filters) {
		if e.Amount.IsNegative() {
			sum = sum.Add(e.Amount.Abs())
		}
	}
	return sum
}

// Ranking ordena todos los usuarios por saldo descendente; en empate se conserva el orden original.
func (s *Store) Ranking(filters ...EntryFilter) []Standing {
	s.mu.RLock()
	out := make([]Standing, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, Standing{User: u, Balance: s.balanceLocked(u.ID, filters)})
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Balance.GreaterThan(out[j].Balance)
	})
	return out
}

// PutUser inserta o reemplaza un usuario por id, manteniendo su posición.
func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == u.ID {
			s.users[i] = u
			return
		}
	}
	s.users = append(s.users, u)
}

// RemoveUser quita al usuario y todos sus registros.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = filterUsers(s.users, func(u entity.User) bool { return u.ID != id })
	s.entries = filterEntries(s.entries, func(e entity.Entry) bool { return e.UserID != id })
}

// PutEntries inserta o reemplaza registros por id.
func (s *Store) PutEntries(entries ...entity.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
next:
	for _, e := range entries {
		for i := range s.entries {
			if s.entries[i].ID == e.ID {
				s.entries[i] = e
				continue next
			}
		}
		s.entries = append(s.entries, e)
	}
}

// RemoveEntry quita un registro por id.
func (s *Store) RemoveEntry(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = filterEntries(s.entries, func(e entity.Entry) bool { return e.ID != id })
}

// RemoveEntriesByTypeAndDate quita los registros de ese tipo y fecha y devuelve cuántos quitó.
func (s *Store) RemoveEntriesByTypeAndDate(typ entity.EntryType, date string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.entries)
	s.entries = filterEntries(s.entries, func(e entity.Entry) bool {
		return !(e.Type == typ && e.Date == date)
	})
	return before - len(s.entries)
}

// KeepOnlyUser refleja un WipeAll: sin registros y solo el usuario superviviente.
func (s *Store) KeepOnlyUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = filterUsers(s.users, func(u entity.User) bool { return u.ID == id })
	s.entries = nil
}

func (s *Store) balanceLocked(userID string, filters []EntryFilter) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range s.entries {
		if e.UserID == userID && matches(e, filters) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

func (s *Store) monthEntries(userID string, year, month int, filters []EntryFilter) []entity.Entry {
	prefix := monthPrefix(year, month)
	return s.selectEntries(func(e entity.Entry) bool {
		return e.UserID == userID && strings.HasPrefix(e.Date, prefix) && matches(e, filters)
	})
}

func (s *Store) selectEntries(keep func(entity.Entry) bool) []entity.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.Entry
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e entity.Entry, filters []EntryFilter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

func filterUsers(in []entity.User, keep func(entity.User) bool) []entity.User {
	out := in[:0]
	for _, u := range in {
		if keep(u) {
			out = append(out, u)
		}
	}
	return out
}

func filterEntries(in []entity.Entry, keep func(entity.Entry) bool) []entity.Entry {
	out := in[:0]
	for _, e := range in {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func monthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d-", year, month)
}
