package reports_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puantaj-api/internal/application/reports"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakePDF struct {
	got reports.Statement
	err error
}

func (f *fakePDF) Generate(st reports.Statement) ([]byte, error) {
	f.got = st
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

func store() *ledger.Store {
	s := ledger.NewStore()
	s.Replace(
		[]entity.User{
			{ID: "admin", Name: "Patrón", Role: entity.RoleAdmin},
			{ID: "ana", Name: "Ana", Role: entity.RoleStaff},
			{ID: "bora", Name: "Bora", Role: entity.RoleStaff},
		},
		[]entity.Entry{
			{ID: "1", UserID: "ana", Type: entity.EntryType8H, Amount: dec("800"), Date: "2024-03-04"},
			{ID: "2", UserID: "ana", Type: entity.EntryTypeExpense, Amount: dec("-150"), Date: "2024-03-04"},
			{ID: "3", UserID: "ana", Type: entity.EntryTypeTip, Amount: dec("900"), Date: "2024-03-10"},
			{ID: "4", UserID: "ana", Type: entity.EntryTypePayment, Amount: dec("-300"), Date: "2024-02-29"},
			{ID: "5", UserID: "bora", Type: entity.EntryTypeCustom, Amount: dec("600"), Date: "2024-03-01"},
		},
	)
	return s
}

func fixedClock() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }

func TestSummary_PropinasAparte(t *testing.T) {
	uc := reports.NewUseCase(store(), nil, "TL").WithClock(fixedClock)

	s, err := uc.Summary("ana", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, s.Year)
	assert.Equal(t, 3, s.Month)
	assert.True(t, dec("350").Equal(s.Balance))
	assert.True(t, dec("900").Equal(s.TipsTotal))
	assert.True(t, dec("800").Equal(s.MonthCredit))
	assert.True(t, dec("150").Equal(s.MonthDebit))
	assert.True(t, dec("900").Equal(s.MonthTips))

	_, err = uc.Summary("nadie", 0, 0)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.Summary("ana", 2024, 13)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalendar(t *testing.T) {
	uc := reports.NewUseCase(store(), nil, "TL").WithClock(fixedClock)

	c, err := uc.Calendar("ana", 2024, 2)
	require.NoError(t, err)
	require.Len(t, c.Days, 29, "2024 es bisiesto")
	assert.Equal(t, "2024-02-29", c.Days[28].Date)
	assert.Len(t, c.Days[28].Entries, 1)

	c, err = uc.Calendar("ana", 2024, 3)
	require.NoError(t, err)
	require.Len(t, c.Days, 31)
	assert.Len(t, c.Days[3].Entries, 2)
	assert.True(t, dec("650").Equal(c.Days[3].Total))
	assert.True(t, c.Days[9].Total.IsZero(), "la propina no suma al total del día")
	assert.Len(t, c.Days[9].Entries, 1)
	assert.NotNil(t, c.Days[0].Entries)
}

func TestRanking(t *testing.T) {
	uc := reports.NewUseCase(store(), nil, "TL")

	r := uc.Ranking()
	require.Len(t, r.Items, 3)
	assert.Equal(t, "bora", r.Items[0].User.ID)
	assert.Equal(t, "ana", r.Items[1].User.ID, "sin propinas ana queda segunda")
	assert.True(t, dec("900").Equal(r.Items[1].Tips))
	assert.Equal(t, 3, r.Items[2].Position)
}

func TestStatementPDF(t *testing.T) {
	gen := &fakePDF{}
	uc := reports.NewUseCase(store(), gen, "TL").WithClock(fixedClock)

	doc, name, err := uc.StatementPDF("ana", 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "extracto-ana-2024-03.pdf", name)
	assert.NotEmpty(t, doc)
	assert.Equal(t, "Ana", gen.got.User.Name)
	assert.Equal(t, "TL", gen.got.Currency)
	assert.Len(t, gen.got.Entries, 3)
	assert.True(t, dec("350").Equal(gen.got.Balance))

	gen.err = errors.New("fuente no encontrada")
	_, _, err = uc.StatementPDF("ana", 2024, 3)
	assert.Error(t, err)

	_, _, err = reports.NewUseCase(store(), nil, "TL").StatementPDF("ana", 2024, 3)
	assert.Error(t, err)
}
