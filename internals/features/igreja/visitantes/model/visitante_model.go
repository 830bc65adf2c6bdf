package model

import "time"

type VisitanteModel struct {
	ID       uint    `gorm:"primaryKey;column:id" json:"id"`
	Nome     string  `gorm:"column:nome;not null" json:"nome"`
	Genero   *string `gorm:"column:genero" json:"genero,omitempty"`
	Idade    *int    `gorm:"column:idade" json:"idade,omitempty"`
	Contacto *string `gorm:"column:contacto" json:"contacto,omitempty"`
	Bairro   *string `gorm:"column:bairro" json:"bairro,omitempty"`

	CultoID  *uint `gorm:"column:culto_id" json:"culto_id,omitempty"`
	BranchID *uint `gorm:"column:branch_id" json:"branch_id,omitempty"`

	Externo      bool    `gorm:"column:externo;default:true" json:"externo"`
	IgrejaOrigem *string `gorm:"column:igreja_origem" json:"igreja_origem,omitempty"`
	Observacoes  *string `gorm:"column:observacoes" json:"observacoes,omitempty"`

	// Preenchido quando o visitante é convertido em membro.
	MembroID *uint `gorm:"column:membro_id" json:"membro_id,omitempty"`

	// O schema original usa mesmo "data__visita" (double underscore).
	DataVisita time.Time `gorm:"column:data__visita;autoCreateTime" json:"data_visita"`
}

func (VisitanteModel) TableName() string {
	return "visitantes"
}
