package model

import "time"

type RestauracaoModel struct {
	ID           uint       `gorm:"primaryKey;column:id" json:"id"`
	MembroID     uint       `gorm:"column:membro_id;not null" json:"membro_id"`
	CodigoMembro *string    `gorm:"column:codigo_membro" json:"codigo_membro,omitempty"`
	Motivo       *string    `gorm:"column:motivo" json:"motivo,omitempty"`
	Observacoes  *string    `gorm:"column:observacoes" json:"observacoes,omitempty"`
	Status       string     `gorm:"column:status;default:Em andamento" json:"status"`
	DataInicio   time.Time  `gorm:"column:data_inicio;autoCreateTime" json:"data_inicio"`
	DataFim      *time.Time `gorm:"column:data_fim" json:"data_fim,omitempty"`
}

func (RestauracaoModel) TableName() string {
	return "restauracoes"
}
