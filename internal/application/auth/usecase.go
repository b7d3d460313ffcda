package auth

import (
	"github.com/jhoicas/puantaj-api/internal/application/dto"
	"github.com/jhoicas/puantaj-api/internal/domain"
	"github.com/jhoicas/puantaj-api/internal/domain/entity"
	"github.com/jhoicas/puantaj-api/internal/domain/ledger"
	"github.com/jhoicas/puantaj-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login: el personal elige su usuario; el administrador puede exigir contraseña.
type AuthUseCase struct {
	store             *ledger.Store
	jwtCfg            JWTConfig
	adminPasswordHash string // bcrypt; vacío = sin contraseña
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store *ledger.Store, jwtCfg JWTConfig, adminPasswordHash string) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg, adminPasswordHash: adminPasswordHash}
}

// Login busca el usuario en el libro, verifica la contraseña si es admin y hay hash configurado,
// y genera el JWT con su rol.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.store.User(in.UserID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Role == entity.RoleAdmin && uc.adminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(uc.adminPasswordHash), []byte(in.Password)); err != nil {
			return nil, domain.ErrUnauthorized
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}
