// Package reports deriva del libro los resúmenes, calendarios, ranking y extractos.
// Todos los saldos de reporte excluyen las propinas, que se informan aparte.
package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
)

// UseCase reportes sobre la instantánea del libro.
type UseCase struct {
	store    *ledger.Store
	pdf      StatementPDFGenerator
	currency string
	now      func() time.Time
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se sirven extractos.
func NewUseCase(store *ledger.Store, pdf StatementPDFGenerator, currency string) *UseCase {
	return &UseCase{store: store, pdf: pdf, currency: currency, now: time.Now}
}

// WithClock sustituye el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Summary saldo y totales del mes de un usuario. year/month en cero = mes actual.
func (uc *UseCase) Summary(userID string, year, month int) (*dto.SummaryResponse, error) {
	user, ok := uc.store.User(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	year, month, err := uc.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{
		User:        dto.NewUserResponse(user),
		Year:        year,
		Month:       month,
		Balance:     uc.store.BalanceOf(userID, ledger.ExcludeTips),
		TipsTotal:   uc.store.BalanceOf(userID, ledger.OnlyTips),
		MonthCredit: uc.store.MonthlyCredit(userID, year, month, ledger.ExcludeTips),
		MonthDebit:  uc.store.MonthlyDebit(userID, year, month, ledger.ExcludeTips),
		MonthTips:   uc.store.MonthlyCredit(userID, year, month, ledger.OnlyTips),
	}, nil
}

// Calendar un elemento por cada día del mes con los registros de ese día.
func (uc *UseCase) Calendar(userID string, year, month int) (*dto.CalendarResponse, error) {
	if _, ok := uc.store.User(userID); !ok {
		return nil, domain.ErrUserNotFound
	}
	year, month, err := uc.resolveMonth(year, month)
	if err != nil {
		return nil, err
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	byDay := map[string][]entity.Entry{}
	for _, e := range uc.store.EntriesInRange(userID, first.Format(entity.DateLayout), last.Format(entity.DateLayout)) {
		byDay[e.Date] = append(byDay[e.Date], e)
	}

	out := &dto.CalendarResponse{UserID: userID, Year: year, Month: month, Days: make([]dto.CalendarDay, 0, last.Day())}
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		date := day.Format(entity.DateLayout)
		entries := byDay[date]
		total := decimal.Zero
		for _, e := range entries {
			if e.Type.CountsTowardBalance() {
				total = total.Add(e.Amount)
			}
		}
		out.Days = append(out.Days, dto.CalendarDay{Date: date, Total: total, Entries: dto.NewEntryResponses(entries)})
	}
	return out, nil
}

// Ranking todos los usuarios por saldo (sin propinas) descendente.
func (uc *UseCase) Ranking() *dto.RankingResponse {
	standings := uc.store.Ranking(ledger.ExcludeTips)
	out := &dto.RankingResponse{Items: make([]dto.RankingItem, 0, len(standings))}
	for i, s := range standings {
		out.Items = append(out.Items, dto.RankingItem{
			Position: i + 1,
			User:     dto.NewUserResponse(s.User),
			Balance:  s.Balance,
			Tips:     uc.store.BalanceOf(s.User.ID, ledger.OnlyTips),
		})
	}
	return out
}

// StatementPDF genera el extracto mensual en PDF y un nombre de archivo sugerido.
func (uc *UseCase) StatementPDF(userID string, year, month int) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	sum, err := uc.Summary(userID, year, month)
	if err != nil {
		return nil, "", err
	}
	user, _ := uc.store.User(userID)

	first := fmt.Sprintf("%04d-%02d-01", sum.Year, sum.Month)
	last := time.Date(sum.Year, time.Month(sum.Month)+1, 0, 0, 0, 0, 0, time.UTC).Format(entity.DateLayout)
	entries := uc.store.EntriesInRange(userID, first, last)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	doc, err := uc.pdf.Generate(Statement{
		User:        user,
		Year:        sum.Year,
		Month:       sum.Month,
		Currency:    uc.currency,
		Balance:     sum.Balance,
		TipsTotal:   sum.TipsTotal,
		MonthCredit: sum.MonthCredit,
		MonthDebit:  sum.MonthDebit,
		MonthTips:   sum.MonthTips,
		Entries:     entries,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar extracto: %w", err)
	}
	return doc, fmt.Sprintf("extracto-%s-%04d-%02d.pdf", userID, sum.Year, sum.Month), nil
}

func (uc *UseCase) resolveMonth(year, month int) (int, int, error) {
	now := uc.now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return 0, 0, domain.Validation("INVALID_MONTH", "mes inválido %d", month)
	}
	if year < 1 || year > 9999 {
		return 0, 0, domain.Validation("INVALID_YEAR", "año inválido %d", year)
	}
	return year, month, nil
}
