package controller

import (
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cultoModel "gdm_backend/internals/features/igreja/cultos/model"
	"gdm_backend/internals/features/igreja/frequencias/dto"
	"gdm_backend/internals/features/igreja/frequencias/model"
	helper "gdm_backend/internals/helpers"
)

type FrequenciaController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewFrequenciaController(db *gorm.DB) *FrequenciaController {
	return &FrequenciaController{
		DB:        db,
		Validator: validator.New(),
	}
}

func (ctl *FrequenciaController) cultoExiste(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	var culto cultoModel.CultoModel
	if err := ctl.DB.WithContext(c.Context()).First(&culto, id).Error; err != nil {
		return 0, false
	}
	return culto.ID, true
}

// refreshTotalPresentes recalcula o contador desnormalizado do culto a
// partir das frequências lançadas.
func refreshTotalPresentes(tx *gorm.DB, cultoID uint) error {
	return tx.Exec(`
		UPDATE cultos SET total_presentes = (
			SELECT COUNT(*) FROM frequencias
			WHERE culto_id = ? AND presente = true
		) WHERE id = ?
	`, cultoID, cultoID).Error
}

// SalvarPresencas lança ou sobrepõe as presenças de um culto em lote.
// POST /api/cultos/:id/presencas
func (ctl *FrequenciaController) SalvarPresencas(c *fiber.Ctx) error {
	cultoID, ok := ctl.cultoExiste(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Culto não encontrado")
	}

	var req dto.SalvarPresencasRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Dados inválidos")
	}
	if err := ctl.Validator.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Mesmo membro duas vezes no lote rebentaria o upsert multi-linha.
	presencas := dto.DeduplicarPresencas(req.Presencas)

	registos := make([]model.FrequenciaModel, 0, len(presencas))
	for _, p := range presencas {
		registos = append(registos, model.FrequenciaModel{
			MembroID:   p.MembroID,
			CultoID:    cultoID,
			Presente:   p.Presente,
			Observacao: p.Observacao,
		})
	}

	err := ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "membro_id"}, {Name: "culto_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"presente", "observacao"}),
		}).Create(&registos).Error; err != nil {
			return err
		}
		return refreshTotalPresentes(tx, cultoID)
	})
	if err != nil {
		log.Printf("[FREQUENCIA] salvar culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao registar presenças")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"message":  "Presenças registadas com sucesso",
		"total":    len(registos),
		"culto_id": cultoID,
	})
}

// ObterPresencas devolve a folha de presenças: os membros activos com o
// estado lançado para este culto, mais os totais.
// GET /api/cultos/:id/presencas
func (ctl *FrequenciaController) ObterPresencas(c *fiber.Ctx) error {
	cultoID, ok := ctl.cultoExiste(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Culto não encontrado")
	}

	var rows []dto.PresencaRow
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT m.id AS membro_id, m.nome AS nome_membro, m.codigo,
		       f.presente, f.observacao
		FROM membros m
		LEFT JOIN frequencias f ON f.membro_id = m.id AND f.culto_id = ?
		WHERE m.ativo = true
		ORDER BY m.nome ASC
	`, cultoID).Scan(&rows).Error
	if err != nil {
		log.Printf("[FREQUENCIA] obter culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao buscar presenças")
	}

	var presentes, ausentes int
	for _, r := range rows {
		if r.Presente == nil {
			continue
		}
		if *r.Presente {
			presentes++
		} else {
			ausentes++
		}
	}
	percentagem := 0.0
	if len(rows) > 0 {
		percentagem = float64(presentes) / float64(len(rows)) * 100
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"presencas": rows,
		"stats": fiber.Map{
			"total":       len(rows),
			"presentes":   presentes,
			"ausentes":    ausentes,
			"percentagem": percentagem,
		},
	})
}

// ImportarCSV carrega presenças a partir de um ficheiro CSV com as colunas
// codigo e presente. Códigos sem membro correspondente são ignorados.
// POST /api/cultos/:id/importar
func (ctl *FrequenciaController) ImportarCSV(c *fiber.Ctx) error {
	cultoID, ok := ctl.cultoExiste(c)
	if !ok {
		return helper.Error(c, fiber.StatusNotFound, "Culto não encontrado")
	}

	fh, err := c.FormFile("ficheiro")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Nenhum ficheiro enviado")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Não foi possível ler o ficheiro")
	}
	defer f.Close()

	linhas, err := dto.ParsePresencasCSV(f)
	if err != nil {
		if err == dto.ErrCSVSemColunas {
			return helper.Error(c, fiber.StatusBadRequest, err.Error())
		}
		log.Printf("[FREQUENCIA] importar culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusBadRequest, "Ficheiro CSV inválido")
	}
	if len(linhas) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "O ficheiro não contém registos")
	}

	codigos := make([]string, 0, len(linhas))
	for _, l := range linhas {
		codigos = append(codigos, l.Codigo)
	}
	var membros []struct {
		ID     uint
		Codigo string
	}
	if err := ctl.DB.WithContext(c.Context()).
		Table("membros").Select("id, codigo").
		Where("codigo IN ?", codigos).
		Scan(&membros).Error; err != nil {
		log.Printf("[FREQUENCIA] importar culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao importar presenças")
	}
	porCodigo := make(map[string]uint, len(membros))
	for _, m := range membros {
		porCodigo[m.Codigo] = m.ID
	}

	var registos []model.FrequenciaModel
	ignorados := 0
	for _, l := range linhas {
		membroID, ok := porCodigo[l.Codigo]
		if !ok {
			ignorados++
			continue
		}
		registos = append(registos, model.FrequenciaModel{
			MembroID: membroID,
			CultoID:  cultoID,
			Presente: l.Presente,
		})
	}
	if len(registos) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nenhum código corresponde a um membro registado")
	}

	err = ctl.DB.WithContext(c.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "membro_id"}, {Name: "culto_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"presente"}),
		}).Create(&registos).Error; err != nil {
			return err
		}
		return refreshTotalPresentes(tx, cultoID)
	})
	if err != nil {
		log.Printf("[FREQUENCIA] importar culto=%d: %v", cultoID, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro ao importar presenças")
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Importação concluída",
		"importados": len(registos),
		"ignorados":  ignorados,
	})
}
