package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jurisconnect/jurisconnect-api/internal/config"
	"github.com/jurisconnect/jurisconnect-api/internal/models"
	"github.com/jurisconnect/jurisconnect-api/internal/repository"
	"github.com/jurisconnect/jurisconnect-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// AuthService resolves credentials across the three account kinds and
// handles self-registration of clients and correspondents
type AuthService struct {
	clientRepo        repository.ClientRepository
	correspondentRepo repository.CorrespondentRepository
	adminRepo         repository.AdminRepository
	cfg               *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	clientRepo repository.ClientRepository,
	correspondentRepo repository.CorrespondentRepository,
	adminRepo repository.AdminRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		clientRepo:        clientRepo,
		correspondentRepo: correspondentRepo,
		adminRepo:         adminRepo,
		cfg:               cfg,
	}
}

// AuthenticatedUser is the identity projection returned on sign-in
type AuthenticatedUser struct {
	ID      uint   `json:"id"`
	Nome    string `json:"nome"`
	Email   string `json:"email"`
	Profile string `json:"profile"`
	Tipo    string `json:"tipo,omitempty"`
}

// SignInResult carries the issued token and the resolved identity
type SignInResult struct {
	Token string            `json:"token"`
	User  AuthenticatedUser `json:"user"`
}

// SignIn authenticates an email/password pair against the three role tables,
// checked as client → correspondent → admin; the first active account whose
// hash verifies wins. A successful admin sign-in updates last_login.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	if client, err := s.clientRepo.FindByEmail(ctx, email); err == nil && client.IsActive {
		if VerifyPassword(password, client.SenhaHash) {
			return s.issue(client.ID, client.NomeCompleto, client.Email, models.ProfileClient, "")
		}
	}

	if correspondent, err := s.correspondentRepo.FindByEmail(ctx, email); err == nil && correspondent.IsActive {
		if VerifyPassword(password, correspondent.SenhaHash) {
			return s.issue(correspondent.ID, correspondent.NomeCompleto, correspondent.Email, models.ProfileCorrespondent, correspondent.Tipo)
		}
	}

	if admin, err := s.adminRepo.FindByEmail(ctx, email); err == nil && admin.IsActive {
		if VerifyPassword(password, admin.SenhaHash) {
			if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
				logger.Warn("Failed to update admin last login", "error", err, "admin_id", admin.ID)
			}
			return s.issue(admin.ID, admin.Nome, admin.Email, models.ProfileAdmin, "")
		}
	}

	return nil, ErrInvalidCredentials
}

func (s *AuthService) issue(id uint, nome, email, profile, tipo string) (*SignInResult, error) {
	token, err := s.generateJWT(id, email, profile)
	if err != nil {
		return nil, err
	}
	return &SignInResult{
		Token: token,
		User: AuthenticatedUser{
			ID:      id,
			Nome:    nome,
			Email:   email,
			Profile: profile,
			Tipo:    tipo,
		},
	}, nil
}

// VerifyToken decodes and validates a token, returning its claims
func (s *AuthService) VerifyToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fail(ErrInvalidCredentials, "Token inválido ou expirado")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fail(ErrInvalidCredentials, "Token inválido ou expirado")
	}
	return claims, nil
}

// AddressInput is the embedded address payload used on registration
type AddressInput struct {
	Logradouro  string `json:"logradouro"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`
}

func (a AddressInput) toModel() *models.Address {
	return &models.Address{
		Logradouro:  a.Logradouro,
		Numero:      a.Numero,
		Complemento: a.Complemento,
		Bairro:      a.Bairro,
		Cidade:      a.Cidade,
		Estado:      a.Estado,
		CEP:         a.CEP,
	}
}

// upsertAddress rewrites an existing address in place or creates a new one,
// returning its id
func upsertAddress(ctx context.Context, repo repository.AddressRepository, existingID *uint, input AddressInput) (uint, error) {
	if existingID != nil {
		address, err := repo.FindByID(ctx, *existingID)
		if err != nil {
			return 0, err
		}
		address.Logradouro = input.Logradouro
		address.Numero = input.Numero
		address.Complemento = input.Complemento
		address.Bairro = input.Bairro
		address.Cidade = input.Cidade
		address.Estado = input.Estado
		address.CEP = input.CEP
		return address.ID, repo.Update(ctx, address)
	}

	address := input.toModel()
	if err := repo.Create(ctx, address); err != nil {
		return 0, err
	}
	return address.ID, nil
}

// RegisterClientInput is the client self-registration payload
type RegisterClientInput struct {
	NomeCompleto string       `json:"nome_completo" binding:"required"`
	Escritorio   string       `json:"escritorio"`
	Telefone     string       `json:"telefone"`
	Email        string       `json:"email" binding:"required,email"`
	Senha        string       `json:"senha" binding:"required,min=6"`
	Endereco     AddressInput `json:"endereco"`
}

// RegisterClient creates a client account with its address. Address and
// client are written in one transaction so a duplicate email leaves no
// partial address row behind.
func (s *AuthService) RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error) {
	if _, err := s.clientRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fail(ErrDuplicate, "Email já cadastrado")
	}

	hash, err := HashPassword(input.Senha)
	if err != nil {
		return nil, err
	}

	client := &models.Client{
		NomeCompleto: input.NomeCompleto,
		Escritorio:   input.Escritorio,
		Telefone:     input.Telefone,
		Email:        input.Email,
		SenhaHash:    hash,
		IsActive:     true,
	}

	if err := s.clientRepo.CreateWithAddress(ctx, client, input.Endereco.toModel()); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, fail(ErrDuplicate, "Email já cadastrado")
		}
		return nil, err
	}

	return client, nil
}

// RegisterCorrespondentInput is the correspondent self-registration payload
type RegisterCorrespondentInput struct {
	NomeCompleto      string       `json:"nome_completo" binding:"required"`
	Tipo              string       `json:"tipo" binding:"required,oneof=Advogado Preposto"`
	OAB               string       `json:"oab"`
	RG                string       `json:"rg"`
	CPF               string       `json:"cpf" binding:"required"`
	Email             string       `json:"email" binding:"required,email"`
	Telefone          string       `json:"telefone"`
	ComarcasAtendidas string       `json:"comarcas_atendidas"`
	Senha             string       `json:"senha" binding:"required,min=6"`
	Endereco          AddressInput `json:"endereco"`
}

// RegisterCorrespondent creates a correspondent account pending approval.
// The OAB number is required, and unique, only for lawyers.
func (s *AuthService) RegisterCorrespondent(ctx context.Context, input RegisterCorrespondentInput) (*models.Correspondent, error) {
	if _, err := s.correspondentRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, fail(ErrDuplicate, "Email já cadastrado")
	}
	if _, err := s.correspondentRepo.FindByCPF(ctx, input.CPF); err == nil {
		return nil, fail(ErrDuplicate, "CPF já cadastrado")
	}

	var oab *string
	if input.Tipo == models.CorrespondentTypeLawyer {
		if input.OAB == "" {
			return nil, fail(ErrBadRequest, "OAB é obrigatório para advogados")
		}
		if _, err := s.correspondentRepo.FindByOAB(ctx, input.OAB); err == nil {
			return nil, fail(ErrDuplicate, "OAB já cadastrada")
		}
		oab = &input.OAB
	}

	hash, err := HashPassword(input.Senha)
	if err != nil {
		return nil, err
	}

	correspondent := &models.Correspondent{
		NomeCompleto:      input.NomeCompleto,
		Tipo:              input.Tipo,
		OAB:               oab,
		RG:                input.RG,
		CPF:               input.CPF,
		Email:             input.Email,
		SenhaHash:         hash,
		Telefone:          input.Telefone,
		ComarcasAtendidas: input.ComarcasAtendidas,
		IsActive:          true,
		StatusAprovacao:   models.ApprovalPending,
	}

	if err := s.correspondentRepo.CreateWithAddress(ctx, correspondent, input.Endereco.toModel()); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, fail(ErrDuplicate, "Dados duplicados. O email, CPF ou OAB informado já existe")
		}
		return nil, err
	}

	return correspondent, nil
}

// generateJWT creates a signed token asserting identity and profile
func (s *AuthService) generateJWT(id uint, email, profile string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": id,
		"email":   email,
		"profile": profile,
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
