package model

import "time"

type CultoModel struct {
	ID             uint      `gorm:"primaryKey;column:id" json:"id"`
	BranchID       *uint     `gorm:"column:branch_id" json:"branch_id,omitempty"`
	Data           time.Time `gorm:"column:data;not null" json:"data"`
	Tipo           string    `gorm:"column:tipo" json:"tipo"`
	Categoria      string    `gorm:"column:categoria;default:Culto" json:"categoria"`
	Pregador       *string   `gorm:"column:pregador" json:"pregador,omitempty"`
	Horario        *string   `gorm:"column:horario" json:"horario,omitempty"`
	TotalPresentes int       `gorm:"column:total_presentes;default:0" json:"total_presentes"`
}

func (CultoModel) TableName() string {
	return "cultos"
}
