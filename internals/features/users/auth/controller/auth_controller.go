package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	authDTO "gdm_backend/internals/features/users/auth/dto"
	authModel "gdm_backend/internals/features/users/auth/model"
	authService "gdm_backend/internals/features/users/auth/service"
	membroModel "gdm_backend/internals/features/igreja/membros/model"
	helper "gdm_backend/internals/helpers"
)

const bcryptCost = 10

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Validator: validator.New(),
	}
}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate key") ||
		strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "sqlstate 23505")
}

// POST /auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "username, password e role_id são obrigatórios")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Role tem de existir antes de criar o utilizador.
	var role authModel.RoleModel
	if err := ctl.DB.WithContext(c.Context()).First(&role, req.RoleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusBadRequest, "role_id inválido")
		}
		log.Printf("[AUTH] register: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	var existing authModel.UserModel
	err := ctl.DB.WithContext(c.Context()).Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return helper.Error(c, fiber.StatusConflict, "Username já está em uso")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[AUTH] register: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Printf("[AUTH] register hash: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	user := authModel.UserModel{
		Username:     req.Username,
		PasswordHash: string(hash),
		RoleID:       req.RoleID,
		Ativo:        true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Username já está em uso")
		}
		log.Printf("[AUTH] register create: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	token, err := authService.GerarTokenUser(&user)
	if err != nil {
		log.Printf("[AUTH] register token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Utilizador registado com sucesso", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "username e password são obrigatórios")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user authModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Credenciais inválidas")
		}
		log.Printf("[AUTH] login: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if !user.Ativo {
		return helper.Error(c, fiber.StatusForbidden, "Conta de utilizador inactiva")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Credenciais inválidas")
	}

	token, err := authService.GerarTokenUser(&user)
	if err != nil {
		log.Printf("[AUTH] login token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Login efectuado com sucesso", fiber.Map{
		"user":  user,
		"token": token,
	})
}

// GET /auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var me struct {
		ID            uint    `json:"id"`
		Username      string  `json:"username"`
		RoleID        int     `json:"role_id"`
		RoleNome      *string `json:"role_nome"`
		RoleDescricao *string `json:"role_descricao"`
		Ativo         bool    `json:"ativo"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT u.id, u.username, u.role_id,
		       r.nome AS role_nome, r.descricao AS role_descricao,
		       u.ativo
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		WHERE u.id = ?
	`, userID).Scan(&me).Error
	if err != nil {
		log.Printf("[AUTH] me: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}
	if me.ID == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Utilizador não encontrado")
	}

	return helper.Success(c, "OK", me)
}

// PUT /auth/change-password
func (ctl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Não autenticado")
	}

	var req authDTO.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "senhaActual, novaSenha e confirmarSenha são obrigatórios")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.NovaSenha != req.ConfirmarSenha {
		return helper.Error(c, fiber.StatusBadRequest, "Nova senha e confirmação não coincidem")
	}
	if req.SenhaActual == req.NovaSenha {
		return helper.Error(c, fiber.StatusBadRequest, "Nova senha não pode ser igual à senha actual")
	}

	var user authModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Utilizador não encontrado")
		}
		log.Printf("[AUTH] change-password: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.SenhaActual)); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Senha actual incorrecta")
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NovaSenha), bcryptCost)
	if err != nil {
		log.Printf("[AUTH] change-password hash: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&authModel.UserModel{}).
		Where("id = ?", userID).
		Update("password_hash", string(newHash)).Error; err != nil {
		log.Printf("[AUTH] change-password update: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Senha alterada com sucesso", nil)
}

// POST /auth/login-membro: portal do membro (código + data de nascimento)
func (ctl *AuthController) LoginMembro(c *fiber.Ctx) error {
	var req authDTO.LoginMembroRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Código e data de nascimento são obrigatórios")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	codigo := strings.ToUpper(strings.TrimSpace(req.Codigo))

	var membro membroModel.MembroModel
	err := ctl.DB.WithContext(c.Context()).
		Where("codigo = ? AND DATE(data_nascimento) = ?", codigo, req.DataNascimento).
		First(&membro).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Código ou data de nascimento incorrectos")
		}
		log.Printf("[AUTH] login-membro: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	token, err := authService.GerarTokenMembro(membro.ID, codigo)
	if err != nil {
		log.Printf("[AUTH] login-membro token: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Login efectuado com sucesso", fiber.Map{
		"token":  token,
		"membro": membro,
	})
}
