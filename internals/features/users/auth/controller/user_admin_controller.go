package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authDTO "gdm_backend/internals/features/users/auth/dto"
	authModel "gdm_backend/internals/features/users/auth/model"
	helper "gdm_backend/internals/helpers"
)

// Gestão de utilizadores. Rotas só para Admin (role_id = 1).

type userRow struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	RoleID      int     `json:"role_id"`
	RoleNome    *string `json:"role_nome"`
	Ativo       bool    `json:"ativo"`
	DataCriacao string  `json:"data_criacao"`
}

// GET /auth/users
func (ctl *AuthController) GetAllUsers(c *fiber.Ctx) error {
	var users []userRow
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT u.id, u.username, u.role_id, r.nome AS role_nome, u.ativo, u.data_criacao
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		ORDER BY u.data_criacao DESC
	`).Scan(&users).Error
	if err != nil {
		log.Printf("[AUTH] listar users: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(users),
		"users":   users,
	})
}

// PUT /auth/users/:id
func (ctl *AuthController) UpdateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	requesterID, _ := c.Locals("user_id").(uint)
	if uint(id) == requesterID {
		return helper.Error(c, fiber.StatusBadRequest, "Use /auth/change-password para alterar os seus próprios dados")
	}

	var req authDTO.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing authModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Utilizador não encontrado")
		}
		log.Printf("[AUTH] update user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if req.Username != nil && *req.Username != existing.Username {
		var taken authModel.UserModel
		err := ctl.DB.WithContext(c.Context()).Where("username = ?", *req.Username).First(&taken).Error
		if err == nil {
			return helper.Error(c, fiber.StatusConflict, "Username já está em uso")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("[AUTH] update user: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
		}
		existing.Username = *req.Username
	}

	if req.RoleID != nil {
		var role authModel.RoleModel
		if err := ctl.DB.WithContext(c.Context()).First(&role, *req.RoleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.Error(c, fiber.StatusBadRequest, "role_id inválido")
			}
			log.Printf("[AUTH] update user: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
		}
		existing.RoleID = *req.RoleID
	}

	if err := ctl.DB.WithContext(c.Context()).Save(&existing).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Username já está em uso")
		}
		log.Printf("[AUTH] update user save: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Utilizador actualizado com sucesso", existing)
}

// DELETE /auth/users/:id (soft delete, apenas desactiva)
func (ctl *AuthController) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	requesterID, _ := c.Locals("user_id").(uint)
	if uint(id) == requesterID {
		return helper.Error(c, fiber.StatusBadRequest, "Não pode desactivar a sua própria conta")
	}

	var existing authModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Utilizador não encontrado")
		}
		log.Printf("[AUTH] desactivar user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if !existing.Ativo {
		return helper.Error(c, fiber.StatusBadRequest, "Utilizador já está inactivo")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&existing).
		Update("ativo", false).Error; err != nil {
		log.Printf("[AUTH] desactivar user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Utilizador desactivado com sucesso", existing)
}

// PUT /auth/users/:id/reactivar
func (ctl *AuthController) ReactivateUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var existing authModel.UserModel
	if err := ctl.DB.WithContext(c.Context()).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Utilizador não encontrado")
		}
		log.Printf("[AUTH] reactivar user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if existing.Ativo {
		return helper.Error(c, fiber.StatusBadRequest, "Utilizador já está activo")
	}

	if err := ctl.DB.WithContext(c.Context()).
		Model(&existing).
		Update("ativo", true).Error; err != nil {
		log.Printf("[AUTH] reactivar user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Utilizador reactivado com sucesso", existing)
}
