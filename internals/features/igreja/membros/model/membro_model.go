package model

import "time"

type MembroModel struct {
	ID       uint    `gorm:"primaryKey;column:id" json:"id"`
	Codigo   *string `gorm:"column:codigo;uniqueIndex" json:"codigo,omitempty"`
	Nome     string  `gorm:"column:nome;not null" json:"nome"`
	Genero   *string `gorm:"column:genero" json:"genero,omitempty"`
	BranchID *uint   `gorm:"column:branch_id" json:"branch_id,omitempty"`
	CelulaID *uint   `gorm:"column:celula_id" json:"celula_id,omitempty"`

	DataNascimento *time.Time `gorm:"column:data_nascimento" json:"data_nascimento,omitempty"`
	FaixaEtaria    *string    `gorm:"column:faixa_etaria" json:"faixa_etaria,omitempty"`
	Bairro         *string    `gorm:"column:bairro" json:"bairro,omitempty"`
	EstadoCivil    *string    `gorm:"column:estado_civil" json:"estado_civil,omitempty"`

	Batizado    bool       `gorm:"column:batizado;default:false" json:"batizado"`
	DataBatismo *time.Time `gorm:"column:data_batismo" json:"data_batismo,omitempty"`

	Ocupacao            *string    `gorm:"column:ocupacao" json:"ocupacao,omitempty"`
	AnoIngresso         *int       `gorm:"column:ano_ingresso" json:"ano_ingresso,omitempty"`
	EscolaDaVerdade     string     `gorm:"column:escola_da_verdade;default:Nao frequenta" json:"escola_da_verdade"`
	DataConclusaoEscola *time.Time `gorm:"column:data_conclusao_escola" json:"data_conclusao_escola,omitempty"`

	Contacto        *string `gorm:"column:contacto" json:"contacto,omitempty"`
	Email           *string `gorm:"column:email" json:"email,omitempty"`
	TipoDocumento   *string `gorm:"column:tipo_documento" json:"tipo_documento,omitempty"`
	NumeroDocumento *string `gorm:"column:numero_documento" json:"numero_documento,omitempty"`
	Parceiro        bool    `gorm:"column:parceiro;default:false" json:"parceiro"`

	Ativo       bool      `gorm:"column:ativo;default:true" json:"ativo"`
	DataRegisto time.Time `gorm:"column:data_registo;autoCreateTime" json:"data_registo"`
}

func (MembroModel) TableName() string {
	return "membros"
}
