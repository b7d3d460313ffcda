package tips_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/tips"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func hp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestWeekEnding(t *testing.T) {
	w, err := tips.WeekEnding("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", w.Start)
	assert.Equal(t, "2024-03-10", w.End)
	assert.True(t, w.Contains("2024-03-04"))
	assert.True(t, w.Contains("2024-03-10"))
	assert.False(t, w.Contains("2024-03-03"))
	assert.False(t, w.Contains("2024-03-11"))

	w, err = tips.WeekEnding("2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-26", w.Start, "cruza de mes")

	_, err = tips.WeekEnding("10-03-2024")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDefaultAnchor(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2024-03-10", "2024-03-10"}, // domingo
		{"2024-03-11", "2024-03-17"}, // lunes
		{"2024-03-16", "2024-03-17"}, // sábado
	}
	for _, tt := range tests {
		now, _ := time.Parse(entity.DateLayout, tt.now)
		assert.Equal(t, tt.want, tips.DefaultAnchor(now), tt.now)
	}
}

func TestHoursByUser(t *testing.T) {
	users := []entity.User{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	entries := []entity.Entry{
		{ID: "1", UserID: "a", Type: entity.EntryType8H, Date: "2024-03-04", Hours: hp("8")},
		{ID: "2", UserID: "a", Type: entity.EntryType5H, Date: "2024-03-10", Hours: hp("2")},
		{ID: "3", UserID: "a", Type: entity.EntryTypeCustom, Date: "2024-03-11", Hours: hp("9")}, // fuera
		{ID: "4", UserID: "b", Type: entity.EntryTypeCustom, Date: "2024-03-06", Hours: hp("30")},
		{ID: "5", UserID: "b", Type: entity.EntryType8H, Date: "2024-03-07"},                  // sin horas
		{ID: "6", UserID: "c", Type: entity.EntryTypeTip, Date: "2024-03-10", Hours: hp("4")}, // cuenta por tener horas
		{ID: "7", UserID: "c", Type: entity.EntryTypeTip, Date: "2024-03-10"},                 // TIP del reparto, sin horas
	}
	w, _ := tips.WeekEnding("2024-03-10")

	hours, total := tips.HoursByUser(users, entries, w)
	require.Len(t, hours, 3)
	assert.True(t, d("10").Equal(hours[0].Hours))
	assert.True(t, d("30").Equal(hours[1].Hours))
	assert.True(t, d("4").Equal(hours[2].Hours), "cualquier tipo con horas pondera")
	assert.True(t, d("44").Equal(total))
}

func TestDistribute_Escenarios(t *testing.T) {
	hours := []tips.StaffHours{
		{UserID: "a", Hours: d("10")},
		{UserID: "b", Hours: d("30")},
		{UserID: "z", Hours: decimal.Zero},
	}

	tests := []struct {
		pool        string
		rate        string
		a, b        string
		distributed string
		unallocated string
	}{
		{"100", "2.5", "25", "75", "100", "0"},
		{"101", "2.525", "25", "75", "100", "1"},
	}
	for _, tt := range tests {
		t.Run("bote "+tt.pool, func(t *testing.T) {
			plan, err := tips.Distribute(d(tt.pool), hours)
			require.NoError(t, err)
			assert.True(t, d(tt.rate).Equal(plan.Rate), "tasa %s", plan.Rate)
			require.Len(t, plan.Shares, 2, "sin parte para usuarios con cero horas")
			assert.True(t, d(tt.a).Equal(plan.Shares[0].Amount))
			assert.True(t, d(tt.b).Equal(plan.Shares[1].Amount))
			assert.True(t, d(tt.distributed).Equal(plan.Distributed))
			assert.True(t, d(tt.unallocated).Equal(plan.Unallocated))
		})
	}
}

func TestDistribute_NuncaSuperaElBote(t *testing.T) {
	hours := []tips.StaffHours{
		{UserID: "a", Hours: d("7.5")},
		{UserID: "b", Hours: d("3")},
		{UserID: "c", Hours: d("11.25")},
		{UserID: "e", Hours: d("1")},
	}
	for _, pool := range []string{"1", "7", "99.99", "1000", "1234.56", "3"} {
		plan, err := tips.Distribute(d(pool), hours)
		require.NoError(t, err)
		sum := decimal.Zero
		for _, s := range plan.Shares {
			assert.True(t, s.Amount.Equal(s.Amount.Floor()), "parte entera")
			sum = sum.Add(s.Amount)
		}
		assert.True(t, sum.LessThanOrEqual(d(pool)), "bote %s reparte %s", pool, sum)
		assert.False(t, plan.Unallocated.IsNegative())
	}
}

func TestDistribute_Bloqueado(t *testing.T) {
	_, err := tips.Distribute(d("100"), []tips.StaffHours{{UserID: "a", Hours: decimal.Zero}})
	assert.ErrorIs(t, err, domain.ErrValidation)
	le, _ := domain.AsLedgerError(err)
	assert.Equal(t, domain.CodeNoEligibleHours, le.Code)

	_, err = tips.Distribute(decimal.Zero, []tips.StaffHours{{UserID: "a", Hours: d("5")}})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = tips.Distribute(d("-5"), []tips.StaffHours{{UserID: "a", Hours: d("5")}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDisplayRate(t *testing.T) {
	existing := []entity.Entry{
		{Type: entity.EntryTypeTip, Amount: d("25")},
		{Type: entity.EntryTypeTip, Amount: d("75")},
	}
	pool := d("200")

	assert.True(t, d("5").Equal(tips.DisplayRate(&pool, existing, d("40"))), "el bote manda")
	assert.True(t, d("2.5").Equal(tips.DisplayRate(nil, existing, d("40"))), "tasa inferida")
	assert.True(t, tips.DisplayRate(nil, nil, d("40")).IsZero())
	assert.True(t, tips.DisplayRate(&pool, existing, decimal.Zero).IsZero())
}
