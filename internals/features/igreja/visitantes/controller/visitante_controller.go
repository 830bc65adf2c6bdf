package controller

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	membroModel "gdm_backend/internals/features/igreja/membros/model"
	"gdm_backend/internals/features/igreja/visitantes/dto"
	"gdm_backend/internals/features/igreja/visitantes/model"
	helper "gdm_backend/internals/helpers"
)

type VisitanteController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewVisitanteController(db *gorm.DB) *VisitanteController {
	return &VisitanteController{
		DB:        db,
		Validator: validator.New(),
	}
}

const listVisitantesSQL = `
	SELECT v.id, v.nome, v.genero, v.idade, v.contacto, v.bairro,
	       v.externo, v.igreja_origem, v.observacoes, v.membro_id,
	       TO_CHAR(v.data__visita, 'DD/MM/YYYY') AS data_visita,
	       c.tipo AS tipo_culto,
	       TO_CHAR(c.data, 'DD/MM/YYYY') AS data_culto,
	       COALESCE(b.nome, 'Sem Branch') AS nome_branch
	FROM visitantes v
	LEFT JOIN cultos c ON c.id = v.culto_id
	LEFT JOIN branches b ON b.id = v.branch_id
`

// POST /api/visitantes
func (ctl *VisitanteController) Create(c *fiber.Ctx) error {
	var req dto.VisitanteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	req.Nome = strings.TrimSpace(req.Nome)
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	visitante := model.VisitanteModel{
		Nome:         req.Nome,
		Genero:       req.Genero,
		Idade:        req.Idade,
		Contacto:     req.Contacto,
		Bairro:       req.Bairro,
		CultoID:      req.CultoID,
		BranchID:     req.BranchID,
		Externo:      true,
		IgrejaOrigem: req.IgrejaOrigem,
		Observacoes:  req.Observacoes,
	}
	if req.Externo != nil {
		visitante.Externo = *req.Externo
	}

	if err := ctl.DB.WithContext(c.Context()).Create(&visitante).Error; err != nil {
		log.Printf("[VISITANTE] criar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao registar visitante")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"message":   "Visitante registado com sucesso",
		"visitante": visitante,
	})
}

// GET /api/visitantes
func (ctl *VisitanteController) GetAll(c *fiber.Ctx) error {
	var rows []dto.VisitanteListRow
	if err := ctl.DB.WithContext(c.Context()).
		Raw(listVisitantesSQL + " ORDER BY v.data__visita DESC").
		Scan(&rows).Error; err != nil {
		log.Printf("[VISITANTE] listar: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao buscar visitantes")
	}

	return c.JSON(fiber.Map{"success": true, "count": len(rows), "visitantes": rows})
}

// GET /api/visitantes/culto/:culto_id
func (ctl *VisitanteController) GetByCulto(c *fiber.Ctx) error {
	cultoID, err := strconv.Atoi(c.Params("culto_id"))
	if err != nil || cultoID <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Culto inválido")
	}

	var rows []dto.VisitanteListRow
	if err := ctl.DB.WithContext(c.Context()).
		Raw(listVisitantesSQL+" WHERE v.culto_id = ? ORDER BY v.nome ASC", cultoID).
		Scan(&rows).Error; err != nil {
		log.Printf("[VISITANTE] listar culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao buscar visitantes")
	}

	return c.JSON(fiber.Map{"success": true, "count": len(rows), "visitantes": rows})
}

// Relatorio devolve os três blocos do relatório mensal: visitantes por
// mês repartidos em externos/internos, os últimos 10 cultos com a
// contagem de visitantes, e os totais globais.
// GET /api/visitantes/relatorio
func (ctl *VisitanteController) Relatorio(c *fiber.Ctx) error {
	var stats struct {
		Total       int64 `json:"total"`
		Externos    int64 `json:"externos"`
		Internos    int64 `json:"internos"`
		Convertidos int64 `json:"convertidos"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE externo = true)         AS externos,
		       COUNT(*) FILTER (WHERE externo = false)        AS internos,
		       COUNT(*) FILTER (WHERE membro_id IS NOT NULL)  AS convertidos
		FROM visitantes
	`).Scan(&stats).Error
	if err != nil {
		log.Printf("[VISITANTE] relatorio: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao gerar relatório")
	}

	var porMes []struct {
		Mes      string `json:"mes"`
		MesOrdem string `json:"mes_ordem"`
		Total    int64  `json:"total"`
		Externos int64  `json:"externos"`
		Internos int64  `json:"internos"`
	}
	err = ctl.DB.WithContext(c.Context()).Raw(`
		SELECT TO_CHAR(data__visita, 'Mon YYYY') AS mes,
		       TO_CHAR(data__visita, 'YYYY-MM')  AS mes_ordem,
		       COUNT(*)                          AS total,
		       COUNT(*) FILTER (WHERE externo = true)  AS externos,
		       COUNT(*) FILTER (WHERE externo = false) AS internos
		FROM visitantes
		GROUP BY TO_CHAR(data__visita, 'Mon YYYY'), TO_CHAR(data__visita, 'YYYY-MM')
		ORDER BY mes_ordem ASC
	`).Scan(&porMes).Error
	if err != nil {
		log.Printf("[VISITANTE] relatorio por mes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao gerar relatório")
	}

	var porCulto []struct {
		Tipo            string `json:"tipo"`
		DataCulto       string `json:"data_culto"`
		TotalVisitantes int64  `json:"total_visitantes"`
	}
	err = ctl.DB.WithContext(c.Context()).Raw(`
		SELECT c.tipo,
		       TO_CHAR(c.data, 'DD/MM/YYYY') AS data_culto,
		       COUNT(v.id) AS total_visitantes
		FROM cultos c
		LEFT JOIN visitantes v ON v.culto_id = c.id
		GROUP BY c.id, c.tipo, c.data
		ORDER BY c.data DESC
		LIMIT 10
	`).Scan(&porCulto).Error
	if err != nil {
		log.Printf("[VISITANTE] relatorio por culto: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao gerar relatório")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"stats":    stats,
		"porMes":   porMes,
		"porCulto": porCulto,
	})
}

// DELETE /api/visitantes/:id
func (ctl *VisitanteController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	res := ctl.DB.WithContext(c.Context()).Delete(&model.VisitanteModel{}, id)
	if res.Error != nil {
		log.Printf("[VISITANTE] eliminar id=%d: %v", id, res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao eliminar visitante")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Visitante não encontrado")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Visitante eliminado com sucesso"})
}

// Converter transforma um visitante em membro activo. O visitante fica
// marcado como interno e ligado ao novo membro.
// POST /api/visitantes/:id/converter
func (ctl *VisitanteController) Converter(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "ID inválido")
	}

	var req dto.ConverterRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
		}
	}

	var visitante model.VisitanteModel
	if err := ctl.DB.WithContext(c.Context()).First(&visitante, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "Visitante não encontrado")
		}
		log.Printf("[VISITANTE] converter id=%d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}
	if visitante.MembroID != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Visitante já foi convertido em membro")
	}

	membro := membroModel.MembroModel{
		Nome:            visitante.Nome,
		Genero:          visitante.Genero,
		Contacto:        visitante.Contacto,
		Bairro:          visitante.Bairro,
		BranchID:        visitante.BranchID,
		CelulaID:        req.CelulaID,
		EstadoCivil:     req.EstadoCivil,
		EscolaDaVerdade: "Nao frequenta",
		Ativo:           true,
	}
	if req.Codigo != nil {
		codigo := strings.ToUpper(strings.TrimSpace(*req.Codigo))
		if codigo != "" {
			membro.Codigo = &codigo
		}
	}
	if req.DataNascimento != nil && *req.DataNascimento != "" {
		if d, err := time.Parse("2006-01-02", *req.DataNascimento); err == nil {
			membro.DataNascimento = &d
		}
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&membro).Error; err != nil {
			return err
		}
		return tx.Model(&visitante).Updates(map[string]interface{}{
			"externo":   false,
			"membro_id": membro.ID,
		}).Error
	})
	if err != nil {
		if isDuplicateKey(err) {
			return helper.Error(c, fiber.StatusConflict, "Código de membro já existe")
		}
		log.Printf("[VISITANTE] converter id=%d: %v", id, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao converter visitante")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Visitante convertido em membro com sucesso",
		"membro":  membro,
	})
}

func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "sqlstate 23505")
}
