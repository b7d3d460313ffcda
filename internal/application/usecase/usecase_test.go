package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/application/usecase"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/internal/domain/repository/mocks"
	"github.com/jhoicas/puantaj-api/internal/infrastructure/memory"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

const deletePhrase = `quiero eliminar de verdad a "{name}"`

var seed = usecase.AdminSeed{ID: "admin", Name: "Patrón"}

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func users() []entity.User {
	return []entity.User{
		{ID: "admin", Name: "Patrón", Role: entity.RoleAdmin},
		{ID: "ana", Name: "Ana", Role: entity.RoleStaff, HourlyRate: decimal.NewFromInt(100)},
	}
}

func entries() []entity.Entry {
	return []entity.Entry{
		{ID: "e1", UserID: "ana", Type: entity.EntryType8H, Amount: decimal.NewFromInt(800), Date: "2024-03-04"},
		{ID: "e2", UserID: "ana", Type: entity.EntryTypeExpense, Amount: decimal.NewFromInt(-50), Date: "2024-03-05"},
	}
}

// loaded devuelve un store ya cargado desde gw.
func loaded(t *testing.T, gw repository.Gateway) *ledger.Store {
	t.Helper()
	store := ledger.NewStore()
	_, err := usecase.NewSyncUseCase(gw, store, seed, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	return store
}

// ─── Sync ─────────────────────────────────────────────────────────────────────

func TestSync_LoadCreaAdminSiNoHayUsuarios(t *testing.T) {
	gw := memory.NewGateway(nil, nil)
	store := ledger.NewStore()

	res, err := usecase.NewSyncUseCase(gw, store, seed, logger.Nop()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Users)

	u, ok := store.User("admin")
	require.True(t, ok)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.True(t, u.HourlyRate.IsZero())

	persisted, _ := gw.ListUsers(context.Background())
	assert.Len(t, persisted, 1, "el admin también queda persistido")
}

func TestSync_LoadFallaSinTocarLaInstantanea(t *testing.T) {
	store := ledger.NewStore()
	store.Replace(users(), entries())

	gw := new(mocks.Gateway)
	gw.On("ListUsers", mock.Anything).Return(users(), nil)
	gw.On("ListEntries", mock.Anything).Return(nil, domain.FetchError("permiso denegado", "42501", nil))

	_, err := usecase.NewSyncUseCase(gw, store, seed, logger.Nop()).Reload(context.Background())
	assert.ErrorIs(t, err, domain.ErrFetch)
	le, _ := domain.AsLedgerError(err)
	assert.Equal(t, "42501", le.Code)
	assert.Len(t, store.Entries(), 2)
	gw.AssertNotCalled(t, "UpsertUser", mock.Anything, mock.Anything)
}

func TestSync_WipeAll(t *testing.T) {
	gw := memory.NewGateway(users(), entries())
	store := loaded(t, gw)

	require.NoError(t, usecase.NewSyncUseCase(gw, store, seed, logger.Nop()).WipeAll(context.Background()))
	assert.Len(t, store.Users(), 1)
	assert.Empty(t, store.Entries())
}

// ─── Users ────────────────────────────────────────────────────────────────────

func newUsers(gw repository.Gateway, store *ledger.Store) *usecase.UserUseCase {
	return usecase.NewUserUseCase(gw, store, guard.NewRegistry(), "admin", deletePhrase, logger.Nop())
}

func TestUsers_CreateYUpdate(t *testing.T) {
	gw := memory.NewGateway(users(), nil)
	store := loaded(t, gw)
	uc := newUsers(gw, store)
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateUserRequest{Name: "  Bora ", Role: "STAFF", HourlyRate: decimal.NewFromInt(120)})
	require.NoError(t, err)
	assert.Equal(t, "Bora", created.Name)
	assert.NotEmpty(t, created.ID)
	assert.Len(t, uc.List().Items, 3)

	name := "Bora K."
	updated, err := uc.Update(ctx, created.ID, dto.UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Bora K.", updated.Name)
	assert.True(t, decimal.NewFromInt(120).Equal(updated.HourlyRate))

	staff := "STAFF"
	_, err = uc.Update(ctx, "admin", dto.UpdateUserRequest{Role: &staff})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(ctx, "nadie", dto.UpdateUserRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUsers_CreateValidaciones(t *testing.T) {
	gw := new(mocks.Gateway)
	uc := newUsers(gw, ledger.NewStore())

	cases := []dto.CreateUserRequest{
		{Name: " ", Role: "STAFF"},
		{Name: "X", Role: "staff"},
		{Name: "X", Role: "STAFF", HourlyRate: decimal.NewFromInt(-1)},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrValidation, "%+v", in)
	}
	gw.AssertNotCalled(t, "UpsertUser", mock.Anything, mock.Anything)
}

func TestUsers_CreateNoReflejaSiFallaElGateway(t *testing.T) {
	gw := new(mocks.Gateway)
	gw.On("UpsertUser", mock.Anything, mock.Anything).Return(domain.WriteError("fallo", "23505", nil))
	store := ledger.NewStore()

	_, err := newUsers(gw, store).Create(context.Background(), dto.CreateUserRequest{Name: "Bora", Role: "STAFF"})
	assert.ErrorIs(t, err, domain.ErrWrite)
	assert.Empty(t, store.Users())
}

func TestUsers_BorradoProtegido(t *testing.T) {
	gw := memory.NewGateway(users(), entries())
	store := loaded(t, gw)
	uc := newUsers(gw, store)
	ctx := context.Background()

	st, err := uc.RequestDelete("admin", "ana")
	require.NoError(t, err)
	assert.Equal(t, "PENDING_CONFIRM", st.State)
	assert.Empty(t, st.Phrase)

	st, err = uc.AcceptDelete("admin", "ana")
	require.NoError(t, err)
	assert.Equal(t, `quiero eliminar de verdad a "Ana"`, st.Phrase)

	err = uc.ConfirmDelete(ctx, "admin", "ana", "quiero eliminar de verdad a Ana")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, ok := store.User("ana")
	assert.True(t, ok, "frase incorrecta no borra")

	require.NoError(t, uc.ConfirmDelete(ctx, "admin", "ana", st.Phrase))
	_, ok = store.User("ana")
	assert.False(t, ok)
	assert.Empty(t, store.EntriesFor("ana"))
	persisted, _ := gw.ListEntries(ctx)
	assert.Empty(t, persisted)
}

func TestUsers_AdminNuncaSeBorra(t *testing.T) {
	gw := new(mocks.Gateway)
	store := ledger.NewStore()
	store.Replace(users(), nil)
	uc := newUsers(gw, store)

	_, err := uc.RequestDelete("admin", "admin")
	require.NoError(t, err)
	_, err = uc.AcceptDelete("admin", "admin")
	require.NoError(t, err)
	err = uc.ConfirmDelete(context.Background(), "admin", "admin", `quiero eliminar de verdad a "Patrón"`)

	le, ok := domain.AsLedgerError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeProtectedUser, le.Code)
	gw.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	_, ok = store.User("admin")
	assert.True(t, ok)
}

func TestUsers_BorradoDenegadoPorRLS(t *testing.T) {
	gw := new(mocks.Gateway)
	gw.On("DeleteUser", mock.Anything, "ana").Return(domain.DeleteError("no se borró ninguna fila", domain.CodeNoRowsAffected, nil)).Once()
	store := ledger.NewStore()
	store.Replace(users(), entries())
	uc := newUsers(gw, store)
	phrase := `quiero eliminar de verdad a "Ana"`

	_, _ = uc.RequestDelete("admin", "ana")
	_, _ = uc.AcceptDelete("admin", "ana")
	err := uc.ConfirmDelete(context.Background(), "admin", "ana", phrase)
	assert.ErrorIs(t, err, domain.ErrDelete)

	_, ok := store.User("ana")
	assert.True(t, ok, "el store no cambia si el gateway falla")
	assert.Len(t, store.EntriesFor("ana"), 2)

	st, err := uc.CancelDelete("admin")
	require.NoError(t, err)
	assert.Equal(t, "IDLE", st.State)
	gw.AssertExpectations(t)
}

func TestUsers_RequestDeleteUsuarioInexistente(t *testing.T) {
	store := ledger.NewStore()
	store.Replace(users(), nil)
	_, err := newUsers(new(mocks.Gateway), store).RequestDelete("admin", "nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ─── Entries ──────────────────────────────────────────────────────────────────

func TestEntries_Create(t *testing.T) {
	gw := memory.NewGateway(users(), nil)
	store := loaded(t, gw)
	uc := usecase.NewEntryUseCase(gw, store, logger.Nop())

	out, err := uc.Create(context.Background(), dto.CreateEntryRequest{
		UserID: "ana", Type: "CUSTOM", Amount: d("350.5"), Date: "2024-03-06", Hours: d("3.5"), Note: "extra",
	})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM", out.Type)
	require.Len(t, store.EntriesFor("ana"), 1)
	assert.True(t, decimal.RequireFromString("3.5").Equal(*store.EntriesFor("ana")[0].Hours))
}

func TestEntries_CreateValidaciones(t *testing.T) {
	gw := new(mocks.Gateway)
	store := ledger.NewStore()
	store.Replace(users(), nil)
	uc := usecase.NewEntryUseCase(gw, store, logger.Nop())

	tests := []struct {
		name string
		in   dto.CreateEntryRequest
		want error
	}{
		{"tip manual", dto.CreateEntryRequest{UserID: "ana", Type: "TIP", Amount: d("1"), Date: "2024-03-06"}, domain.ErrValidation},
		{"tipo desconocido", dto.CreateEntryRequest{UserID: "ana", Type: "BONUS", Amount: d("1"), Date: "2024-03-06"}, domain.ErrValidation},
		{"usuario inexistente", dto.CreateEntryRequest{UserID: "nadie", Type: "8H", Amount: d("1"), Date: "2024-03-06"}, domain.ErrUserNotFound},
		{"fecha inválida", dto.CreateEntryRequest{UserID: "ana", Type: "8H", Amount: d("1"), Date: "06/03/2024"}, domain.ErrValidation},
		{"sin importe", dto.CreateEntryRequest{UserID: "ana", Type: "8H", Date: "2024-03-06"}, domain.ErrValidation},
		{"horas negativas", dto.CreateEntryRequest{UserID: "ana", Type: "8H", Amount: d("1"), Date: "2024-03-06", Hours: d("-1")}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	gw.AssertNotCalled(t, "UpsertEntry", mock.Anything, mock.Anything)
}

func TestEntries_DeleteYList(t *testing.T) {
	gw := memory.NewGateway(users(), entries())
	store := loaded(t, gw)
	uc := usecase.NewEntryUseCase(gw, store, logger.Nop())
	ctx := context.Background()

	list, err := uc.List(dto.EntryFilter{UserID: "ana", From: "2024-03-05", To: "2024-03-31"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "e2", list.Items[0].ID)

	list, err = uc.List(dto.EntryFilter{Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = uc.List(dto.EntryFilter{Date: "2024-03-04", From: "2024-03-05"})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "fecha fuera del rango")

	list, err = uc.List(dto.EntryFilter{From: "2024-03-05"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "rango abierto por arriba")
	assert.Equal(t, "e2", list.Items[0].ID)

	list, err = uc.List(dto.EntryFilter{To: "2024-03-05"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2, "rango abierto por abajo, ambos extremos inclusivos")

	_, err = uc.List(dto.EntryFilter{From: "marzo"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, uc.Delete(ctx, "e1"))
	assert.Len(t, store.EntriesFor("ana"), 1)
	assert.ErrorIs(t, uc.Delete(ctx, "e1"), domain.ErrNotFound)
}
