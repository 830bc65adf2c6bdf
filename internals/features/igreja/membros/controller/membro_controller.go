package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	membroDTO "gdm_backend/internals/features/igreja/membros/dto"
	membroModel "gdm_backend/internals/features/igreja/membros/model"
	helper "gdm_backend/internals/helpers"
)

type MembroController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewMembroController(db *gorm.DB) *MembroController {
	return &MembroController{
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

const listMembrosSQL = `
	SELECT
		m.id, m.codigo, m.nome AS nome_membro, m.genero, m.data_nascimento,
		m.bairro, m.faixa_etaria, m.batizado, m.data_batismo, m.estado_civil,
		m.ocupacao,
		COALESCE(b.nome, 'Sem Branch') AS nome_branch,
		COALESCE(c.nome, 'Sem Celula') AS nome_celula,
		m.ativo, m.ano_ingresso, m.escola_da_verdade, m.data_conclusao_escola,
		m.contacto, m.email, m.data_registo, m.tipo_documento,
		m.numero_documento, m.parceiro
	FROM membros m
	LEFT JOIN branches b ON m.branch_id = b.id
	LEFT JOIN celulas c ON m.celula_id = c.id
`

// GET /api/membros
func (ctl *MembroController) GetAll(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 100, 500)

	var total int64
	if err := ctl.DB.WithContext(c.Context()).Model(&membroModel.MembroModel{}).Count(&total).Error; err != nil {
		log.Printf("[MEMBROS] contar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	var membros []membroDTO.MembroListRow
	err := ctl.DB.WithContext(c.Context()).
		Raw(listMembrosSQL+" ORDER BY m.data_registo DESC LIMIT ? OFFSET ?", paging.Limit, paging.Offset).
		Scan(&membros).Error
	if err != nil {
		log.Printf("[MEMBROS] listar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"count":      len(membros),
		"membros":    membros,
		"pagination": helper.BuildPagination(paging, total),
	})
}

// GET /api/membros/:id
func (ctl *MembroController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var membro membroDTO.MembroListRow
	errDB := ctl.DB.WithContext(c.Context()).
		Raw(listMembrosSQL+" WHERE m.id = ?", id).
		Scan(&membro).Error
	if errDB != nil {
		log.Printf("[MEMBROS] obter %d: %v", id, errDB)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}
	if membro.ID == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
	}

	return c.JSON(fiber.Map{"membro": membro})
}

// POST /api/membros
func (ctl *MembroController) Create(c *fiber.Ctx) error {
	var req membroDTO.MembroRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if req.NomeNormalizado() == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Nome é obrigatório")
	}

	var membro membroModel.MembroModel
	req.ApplyTo(&membro)
	membro.Ativo = true

	if err := ctl.DB.WithContext(c.Context()).Create(&membro).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Código já existe")
		}
		log.Printf("[MEMBROS] criar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Membro criado com sucesso", membro)
}

// PUT /api/membros/:id
func (ctl *MembroController) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req membroDTO.MembroRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if req.NomeNormalizado() == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Nome é obrigatório")
	}

	var membro membroModel.MembroModel
	if err := ctl.DB.WithContext(c.Context()).First(&membro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
		}
		log.Printf("[MEMBROS] actualizar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	req.ApplyTo(&membro)

	if err := ctl.DB.WithContext(c.Context()).Save(&membro).Error; err != nil {
		if isDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Código já existe")
		}
		log.Printf("[MEMBROS] actualizar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Membro actualizado com sucesso", membro)
}

// DELETE /api/membros/:id (soft delete)
func (ctl *MembroController) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var membro membroModel.MembroModel
	if err := ctl.DB.WithContext(c.Context()).First(&membro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
		}
		log.Printf("[MEMBROS] desactivar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&membro).Update("ativo", false).Error; err != nil {
		log.Printf("[MEMBROS] desactivar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Membro desactivado com sucesso", membro)
}

// DELETE /api/membros/:id/definitivo apaga PERMANENTEMENTE, sem soft delete
func (ctl *MembroController) HardDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var membro membroModel.MembroModel
	if err := ctl.DB.WithContext(c.Context()).First(&membro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
		}
		log.Printf("[MEMBROS] hard delete %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(&membro).Error; err != nil {
		log.Printf("[MEMBROS] hard delete %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	log.Printf("[MEMBROS] membro %d (%s) eliminado permanentemente", membro.ID, membro.Nome)
	return helper.Success(c, "Membro eliminado permanentemente da base de dados", membro)
}

// PUT /api/membros/:id/reactivar
func (ctl *MembroController) Reactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var membro membroModel.MembroModel
	if err := ctl.DB.WithContext(c.Context()).First(&membro, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
		}
		log.Printf("[MEMBROS] reactivar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if membro.Ativo {
		return helper.Error(c, fiber.StatusBadRequest, "Membro já está activo")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&membro).Update("ativo", true).Error; err != nil {
		log.Printf("[MEMBROS] reactivar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return helper.Success(c, "Membro reactivado", membro)
}
