package dto

import (
	"time"
)

type CultoCreateRequest struct {
	BranchID  *uint   `json:"branch_id"`
	Data      string  `json:"data" validate:"required"`
	Tipo      string  `json:"tipo" validate:"required"`
	Categoria string  `json:"categoria"`
	Pregador  *string `json:"pregador"`
	Horario   *string `json:"horario"`
}

// CultoListRow: culto com nome da branch e total de presentes derivado.
type CultoListRow struct {
	ID             uint      `json:"id"`
	BranchID       *uint     `json:"branch_id"`
	Data           time.Time `json:"data"`
	Tipo           string    `json:"tipo"`
	Categoria      string    `json:"categoria"`
	Pregador       *string   `json:"pregador"`
	Horario        *string   `json:"horario"`
	NomeBranch     *string   `json:"nome_branch" gorm:"column:nome_branch"`
	TotalPresentes int       `json:"total_presentes" gorm:"column:total_presentes"`
}
