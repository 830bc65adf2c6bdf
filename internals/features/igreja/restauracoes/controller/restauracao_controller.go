package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	membroModel "gdm_backend/internals/features/igreja/membros/model"
	"gdm_backend/internals/features/igreja/restauracoes/model"
	helper "gdm_backend/internals/helpers"
)

// Processos de restauração: acompanhamento disciplinar ou espiritual de
// um membro, do início à conclusão.

type RestauracaoController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewRestauracaoController(db *gorm.DB) *RestauracaoController {
	return &RestauracaoController{
		DB:        db,
		Validator: validator.New(),
	}
}

type restauracaoCreateRequest struct {
	MembroID    uint    `json:"membro_id" validate:"required"`
	Motivo      *string `json:"motivo"`
	Observacoes *string `json:"observacoes"`
}

type restauracaoUpdateRequest struct {
	Status      *string `json:"status" validate:"omitempty,oneof='Em andamento' 'Concluído' 'Interrompido'"`
	Motivo      *string `json:"motivo"`
	Observacoes *string `json:"observacoes"`
}

// POST /api/restauracoes
func (ctl *RestauracaoController) Create(c *fiber.Ctx) error {
	var req restauracaoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var membro membroModel.MembroModel
	if err := ctl.DB.WithContext(c.Context()).First(&membro, req.MembroID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Membro não encontrado")
		}
		log.Printf("[RESTAURACAO] criar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	restauracao := model.RestauracaoModel{
		MembroID:     membro.ID,
		CodigoMembro: membro.Codigo,
		Motivo:       req.Motivo,
		Observacoes:  req.Observacoes,
		Status:       "Em andamento",
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&restauracao).Error; err != nil {
		log.Printf("[RESTAURACAO] criar membro=%d: %v", membro.ID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao abrir processo de restauração")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":     true,
		"message":     "Processo de restauração aberto",
		"restauracao": restauracao,
	})
}

// GET /api/restauracoes
func (ctl *RestauracaoController) GetAll(c *fiber.Ctx) error {
	var rows []struct {
		ID           uint    `json:"id"`
		MembroID     uint    `json:"membro_id"`
		NomeMembro   string  `json:"nome_membro"`
		CodigoMembro *string `json:"codigo_membro"`
		Motivo       *string `json:"motivo"`
		Observacoes  *string `json:"observacoes"`
		Status       string  `json:"status"`
		DataInicio   string  `json:"data_inicio"`
		DataFim      *string `json:"data_fim"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT r.id, r.membro_id, m.nome AS nome_membro, r.codigo_membro,
		       r.motivo, r.observacoes, r.status,
		       TO_CHAR(r.data_inicio, 'DD/MM/YYYY') AS data_inicio,
		       TO_CHAR(r.data_fim, 'DD/MM/YYYY')    AS data_fim
		FROM restauracoes r
		JOIN membros m ON m.id = r.membro_id
		ORDER BY r.data_inicio DESC
	`).Scan(&rows).Error
	if err != nil {
		log.Printf("[RESTAURACAO] listar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao buscar restaurações")
	}

	return c.JSON(fiber.Map{"success": true, "count": len(rows), "restauracoes": rows})
}

// Update altera o estado do processo. Ao marcar "Concluído" a data de
// fim é preenchida; voltar a "Em andamento" limpa-a.
// PUT /api/restauracoes/:id
func (ctl *RestauracaoController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req restauracaoUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var restauracao model.RestauracaoModel
	if err := ctl.DB.WithContext(c.Context()).First(&restauracao, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Processo de restauração não encontrado")
		}
		log.Printf("[RESTAURACAO] actualizar id=%d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	updates := map[string]interface{}{}
	if req.Motivo != nil {
		updates["motivo"] = req.Motivo
	}
	if req.Observacoes != nil {
		updates["observacoes"] = req.Observacoes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == "Concluído" {
			agora := time.Now()
			updates["data_fim"] = &agora
		} else {
			updates["data_fim"] = nil
		}
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nada para actualizar")
	}

	if err := ctl.DB.WithContext(c.Context()).Model(&restauracao).Updates(updates).Error; err != nil {
		log.Printf("[RESTAURACAO] actualizar id=%d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao actualizar processo")
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Processo actualizado com sucesso",
		"restauracao": restauracao,
	})
}
