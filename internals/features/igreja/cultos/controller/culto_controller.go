package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cultoDTO "gdm_backend/internals/features/igreja/cultos/dto"
	cultoModel "gdm_backend/internals/features/igreja/cultos/model"
	helper "gdm_backend/internals/helpers"
)

const dateLayout = "2006-01-02"

type CultoController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewCultoController(db *gorm.DB) *CultoController {
	return &CultoController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /api/cultos
func (ctl *CultoController) Create(c *fiber.Ctx) error {
	var req cultoDTO.CultoCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	data, err := time.Parse(dateLayout, strings.TrimSpace(req.Data))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "data inválida, formato esperado YYYY-MM-DD")
	}

	categoria := strings.TrimSpace(req.Categoria)
	if categoria == "" {
		categoria = "Culto"
	}

	culto := cultoModel.CultoModel{
		BranchID:  req.BranchID,
		Data:      data,
		Tipo:      req.Tipo,
		Categoria: categoria,
		Pregador:  req.Pregador,
		Horario:   req.Horario,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&culto).Error; err != nil {
		log.Printf("[CULTOS] criar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"culto":   culto,
	})
}

// GET /api/cultos
func (ctl *CultoController) GetAll(c *fiber.Ctx) error {
	var cultos []cultoDTO.CultoListRow
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT c.id, c.branch_id, c.data, c.tipo, c.categoria, c.pregador, c.horario,
		       b.nome AS nome_branch,
		       (SELECT COUNT(*) FROM frequencias f
		        WHERE f.culto_id = c.id AND f.presente = true) AS total_presentes
		FROM cultos c
		LEFT JOIN branches b ON c.branch_id = b.id
		ORDER BY c.data DESC
	`).Scan(&cultos).Error
	if err != nil {
		log.Printf("[CULTOS] listar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"cultos":  cultos,
	})
}

// GET /api/cultos/:id
func (ctl *CultoController) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var culto cultoDTO.CultoListRow
	errDB := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT c.id, c.branch_id, c.data, c.tipo, c.categoria, c.pregador, c.horario,
		       c.total_presentes, b.nome AS nome_branch
		FROM cultos c
		LEFT JOIN branches b ON c.branch_id = b.id
		WHERE c.id = ?
	`, id).Scan(&culto).Error
	if errDB != nil {
		log.Printf("[CULTOS] obter %d: %v", id, errDB)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}
	if culto.ID == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Culto não encontrado")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"culto":   culto,
	})
}

// DELETE /api/cultos/:id (hard delete)
func (ctl *CultoController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var culto cultoModel.CultoModel
	if err := ctl.DB.WithContext(c.Context()).First(&culto, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Culto não encontrado")
		}
		log.Printf("[CULTOS] apagar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(&culto).Error; err != nil {
		log.Printf("[CULTOS] apagar %d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Culto apagado com sucesso",
	})
}
