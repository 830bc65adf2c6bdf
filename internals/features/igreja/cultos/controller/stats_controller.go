package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "gdm_backend/internals/helpers"
)

// Estatísticas agregadas dos cultos e da assiduidade dos membros.

// GET /api/cultos/stats/gerais
func (ctl *CultoController) EstatisticasGerais(c *fiber.Ctx) error {
	var stats struct {
		TotalCultos    int64    `json:"total_cultos"`
		TotalPresencas int64    `json:"total_presencas"`
		MembrosAtivos  int64    `json:"membros_ativos"`
		MediaPresencas *float64 `json:"media_presencas"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT
			(SELECT COUNT(*) FROM cultos)                                          AS total_cultos,
			(SELECT COUNT(*) FROM frequencias WHERE presente = true)               AS total_presencas,
			(SELECT COUNT(*) FROM membros WHERE ativo = true)                      AS membros_ativos,
			(SELECT ROUND(AVG(p.total), 1) FROM (
				SELECT COUNT(*) AS total FROM frequencias
				WHERE presente = true GROUP BY culto_id
			) p)                                                                   AS media_presencas
	`).Scan(&stats).Error
	if err != nil {
		log.Printf("[STATS] gerais: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{"success": true, "stats": stats})
}

// GET /api/cultos/stats/por-mes
func (ctl *CultoController) PresencasPorMes(c *fiber.Ctx) error {
	var rows []struct {
		Mes       string `json:"mes"`
		MesOrdem  string `json:"mes_ordem"`
		Cultos    int64  `json:"cultos"`
		Presencas int64  `json:"presencas"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT
			TO_CHAR(c.data, 'Mon YYYY') AS mes,
			TO_CHAR(c.data, 'YYYY-MM')  AS mes_ordem,
			COUNT(DISTINCT c.id)        AS cultos,
			COUNT(f.id) FILTER (WHERE f.presente = true) AS presencas
		FROM cultos c
		LEFT JOIN frequencias f ON f.culto_id = c.id
		GROUP BY TO_CHAR(c.data, 'Mon YYYY'), TO_CHAR(c.data, 'YYYY-MM')
		ORDER BY mes_ordem ASC
	`).Scan(&rows).Error
	if err != nil {
		log.Printf("[STATS] por-mes: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{"success": true, "porMes": rows})
}

// GET /api/cultos/stats/por-culto
func (ctl *CultoController) PresencasPorCulto(c *fiber.Ctx) error {
	var rows []struct {
		CultoID   uint   `json:"culto_id"`
		Tipo      string `json:"tipo"`
		DataCulto string `json:"data_culto"`
		Presentes int64  `json:"presentes"`
		Ausentes  int64  `json:"ausentes"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT
			c.id AS culto_id,
			c.tipo,
			TO_CHAR(c.data, 'DD/MM/YYYY') AS data_culto,
			COUNT(f.id) FILTER (WHERE f.presente = true)  AS presentes,
			COUNT(f.id) FILTER (WHERE f.presente = false) AS ausentes
		FROM cultos c
		LEFT JOIN frequencias f ON f.culto_id = c.id
		GROUP BY c.id, c.tipo, c.data
		ORDER BY c.data DESC
	`).Scan(&rows).Error
	if err != nil {
		log.Printf("[STATS] por-culto: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{"success": true, "porCulto": rows})
}

// GET /api/cultos/stats/mais-assiduos
func (ctl *CultoController) MaisAssiduos(c *fiber.Ctx) error {
	return ctl.rankingMembros(c, true, "maisAssiduos")
}

// GET /api/cultos/stats/mais-faltas
func (ctl *CultoController) MaisFaltas(c *fiber.Ctx) error {
	return ctl.rankingMembros(c, false, "maisFaltas")
}

func (ctl *CultoController) rankingMembros(c *fiber.Ctx, presente bool, key string) error {
	var rows []struct {
		MembroID   uint    `json:"membro_id"`
		NomeMembro string  `json:"nome_membro"`
		Codigo     *string `json:"codigo"`
		Total      int64   `json:"total"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT m.id AS membro_id, m.nome AS nome_membro, m.codigo, COUNT(f.id) AS total
		FROM membros m
		JOIN frequencias f ON f.membro_id = m.id
		WHERE f.presente = ?
		GROUP BY m.id, m.nome, m.codigo
		ORDER BY total DESC, m.nome ASC
		LIMIT 10
	`, presente).Scan(&rows).Error
	if err != nil {
		log.Printf("[STATS] %s: %v", key, err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{"success": true, key: rows})
}

// GET /api/cultos/stats/melhor-culto
func (ctl *CultoController) MelhorCulto(c *fiber.Ctx) error {
	var row struct {
		CultoID   uint   `json:"culto_id"`
		Tipo      string `json:"tipo"`
		DataCulto string `json:"data_culto"`
		Presentes int64  `json:"presentes"`
	}
	err := ctl.DB.WithContext(c.Context()).Raw(`
		SELECT c.id AS culto_id, c.tipo,
		       TO_CHAR(c.data, 'DD/MM/YYYY') AS data_culto,
		       COUNT(f.id) FILTER (WHERE f.presente = true) AS presentes
		FROM cultos c
		LEFT JOIN frequencias f ON f.culto_id = c.id
		GROUP BY c.id, c.tipo, c.data
		ORDER BY presentes DESC, c.data DESC
		LIMIT 1
	`).Scan(&row).Error
	if err != nil {
		log.Printf("[STATS] melhor-culto: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Erro interno do servidor")
	}

	return c.JSON(fiber.Map{"success": true, "melhorCulto": row})
}
