package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/guard"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/internal/domain/repository"
	"github.com/jhoicas/puantaj-api/pkg/logger"
)

// UserUseCase alta, edición y borrado protegido de usuarios.
type UserUseCase struct {
	gw           repository.Gateway
	store        *ledger.Store
	guards       *guard.Registry
	adminID      string
	deletePhrase string // con {name}
	log          *logger.Logger
}

// NewUserUseCase construye el caso de uso y registra la protección del administrador.
func NewUserUseCase(gw repository.Gateway, store *ledger.Store, guards *guard.Registry, adminID, deletePhrase string, log *logger.Logger) *UserUseCase {
	guards.Protect(guard.OpDeleteUser, func(target string) bool { return target == adminID })
	return &UserUseCase{
		gw:           gw,
		store:        store,
		guards:       guards,
		adminID:      adminID,
		deletePhrase: deletePhrase,
		log:          log.Component("users"),
	}
}

// List devuelve todos los usuarios en el orden del libro.
func (uc *UserUseCase) List() *dto.UserListResponse {
	users := uc.store.Users()
	items := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, dto.NewUserResponse(u))
	}
	return &dto.UserListResponse{Items: items}
}

// GetByID obtiene un usuario; domain.ErrUserNotFound si no existe.
func (uc *UserUseCase) GetByID(id string) (*dto.UserResponse, error) {
	u, ok := uc.store.User(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := dto.NewUserResponse(u)
	return &out, nil
}

// Create da de alta un usuario con id nuevo.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := entity.User{
		ID:         uuid.New().String(),
		Name:       strings.TrimSpace(in.Name),
		Role:       entity.Role(in.Role),
		HourlyRate: in.HourlyRate,
		Avatar:     in.Avatar,
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := uc.gw.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	uc.store.PutUser(user)
	uc.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("usuario creado")
	out := dto.NewUserResponse(user)
	return &out, nil
}

// Update actualiza los campos informados.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, ok := uc.store.User(id)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		user.Role = entity.Role(*in.Role)
	}
	if in.HourlyRate != nil {
		user.HourlyRate = *in.HourlyRate
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if id == uc.adminID && user.Role != entity.RoleAdmin {
		return nil, domain.Validation(domain.CodeProtectedUser, "el administrador no puede perder su rol")
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if err := uc.gw.UpsertUser(ctx, user); err != nil {
		return nil, fmt.Errorf("actualizar usuario: %w", err)
	}
	uc.store.PutUser(user)
	out := dto.NewUserResponse(user)
	return &out, nil
}

// RequestDelete abre la confirmación de borrado de id para actor.
func (uc *UserUseCase) RequestDelete(actor, id string) (*dto.GuardStateResponse, error) {
	if _, ok := uc.store.User(id); !ok {
		return nil, domain.ErrUserNotFound
	}
	flow := uc.guards.For(guard.OpDeleteUser, actor)
	if err := flow.Request(id); err != nil {
		return nil, err
	}
	return uc.deleteState(flow), nil
}

// AcceptDelete confirma el primer paso; la respuesta incluye la frase a escribir.
func (uc *UserUseCase) AcceptDelete(actor, id string) (*dto.GuardStateResponse, error) {
	flow := uc.guards.For(guard.OpDeleteUser, actor)
	if err := flow.Accept(id); err != nil {
		return nil, err
	}
	return uc.deleteState(flow), nil
}

// ConfirmDelete borra al usuario y todos sus registros si la frase coincide.
func (uc *UserUseCase) ConfirmDelete(ctx context.Context, actor, id, typed string) error {
	user, ok := uc.store.User(id)
	if !ok {
		return domain.ErrUserNotFound
	}
	flow := uc.guards.For(guard.OpDeleteUser, actor)
	err := flow.Execute(ctx, id, typed, uc.phraseFor(user), func(ctx context.Context) error {
		if err := uc.gw.DeleteUser(ctx, id); err != nil {
			return err
		}
		uc.store.RemoveUser(id)
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("actor", actor).Str("user_id", id).Msg("borrado de usuario rechazado")
		return err
	}
	uc.log.Info().Str("actor", actor).Str("user_id", id).Msg("usuario eliminado")
	return nil
}

// CancelDelete descarta la confirmación pendiente de actor.
func (uc *UserUseCase) CancelDelete(actor string) (*dto.GuardStateResponse, error) {
	flow := uc.guards.For(guard.OpDeleteUser, actor)
	if err := flow.Cancel(); err != nil {
		return nil, err
	}
	return uc.deleteState(flow), nil
}

func (uc *UserUseCase) deleteState(flow *guard.Workflow) *dto.GuardStateResponse {
	snap := flow.Snapshot()
	phrase := ""
	if u, ok := uc.store.User(snap.Target); ok {
		phrase = uc.phraseFor(u)
	}
	out := dto.NewGuardStateResponse(snap, phrase)
	return &out
}

func (uc *UserUseCase) phraseFor(u entity.User) string {
	return strings.ReplaceAll(uc.deletePhrase, "{name}", u.Name)
}

func validateUser(u entity.User) error {
	if u.Name == "" {
		return domain.Validation("INVALID_NAME", "el nombre es obligatorio")
	}
	if !u.Role.Valid() {
		return domain.Validation("INVALID_ROLE", "rol inválido %q (ADMIN|STAFF)", string(u.Role))
	}
	if u.HourlyRate.IsNegative() {
		return domain.Validation("INVALID_RATE", "la tarifa por hora no puede ser negativa")
	}
	return nil
}
