package dto

import (
	"strings"
	"time"

	"gdm_backend/internals/features/igreja/membros/model"
)

const dateLayout = "2006-01-02"

// MembroRequest cobre criação e actualização. O frontend histórico envia o
// nome ora como "nome" ora como "nome_membro"; aceitamos ambos.
type MembroRequest struct {
	Codigo     *string `json:"codigo"`
	Nome       string  `json:"nome"`
	NomeMembro string  `json:"nome_membro"`
	Genero     *string `json:"genero"`
	BranchID   *uint   `json:"branch_id"`
	CelulaID   *uint   `json:"celula_id"`

	DataNascimento *string `json:"data_nascimento"`
	FaixaEtaria    *string `json:"faixa_etaria"`
	Bairro         *string `json:"bairro"`
	EstadoCivil    *string `json:"estado_civil"`

	Batizado    *bool   `json:"batizado"`
	DataBatismo *string `json:"data_batismo"`

	Ocupacao            *string `json:"ocupacao"`
	AnoIngresso         *int    `json:"ano_ingresso"`
	EscolaDaVerdade     *string `json:"escola_da_verdade"`
	DataConclusaoEscola *string `json:"data_conclusao_escola"`

	Contacto        *string `json:"contacto"`
	Email           *string `json:"email"`
	TipoDocumento   *string `json:"tipo_documento"`
	NumeroDocumento *string `json:"numero_documento"`
	Parceiro        *bool   `json:"parceiro"`
}

func (r *MembroRequest) NomeNormalizado() string {
	nome := strings.TrimSpace(r.Nome)
	if nome == "" {
		nome = strings.TrimSpace(r.NomeMembro)
	}
	return nome
}

// ApplyTo escreve os campos do pedido no modelo (in-place).
func (r *MembroRequest) ApplyTo(m *model.MembroModel) {
	m.Codigo = trimPtr(r.Codigo)
	m.Nome = r.NomeNormalizado()
	m.Genero = r.Genero
	m.BranchID = r.BranchID
	m.CelulaID = r.CelulaID
	m.DataNascimento = parseDatePtr(r.DataNascimento)
	m.FaixaEtaria = r.FaixaEtaria
	m.Bairro = r.Bairro
	m.EstadoCivil = r.EstadoCivil
	m.DataBatismo = parseDatePtr(r.DataBatismo)
	m.Ocupacao = r.Ocupacao
	m.AnoIngresso = r.AnoIngresso
	m.DataConclusaoEscola = parseDatePtr(r.DataConclusaoEscola)
	m.Contacto = r.Contacto
	m.Email = r.Email
	m.TipoDocumento = r.TipoDocumento
	m.NumeroDocumento = r.NumeroDocumento

	if r.Batizado != nil {
		m.Batizado = *r.Batizado
	}
	if r.Parceiro != nil {
		m.Parceiro = *r.Parceiro
	}
	if r.EscolaDaVerdade != nil && strings.TrimSpace(*r.EscolaDaVerdade) != "" {
		m.EscolaDaVerdade = *r.EscolaDaVerdade
	} else if m.EscolaDaVerdade == "" {
		m.EscolaDaVerdade = "Nao frequenta"
	}
}

// MembroListRow é a linha devolvida na listagem, com os nomes de branch e
// célula já resolvidos.
type MembroListRow struct {
	ID                  uint       `json:"id"`
	Codigo              *string    `json:"codigo"`
	NomeMembro          string     `json:"nome_membro" gorm:"column:nome_membro"`
	Genero              *string    `json:"genero"`
	DataNascimento      *time.Time `json:"data_nascimento"`
	Bairro              *string    `json:"bairro"`
	FaixaEtaria         *string    `json:"faixa_etaria"`
	Batizado            bool       `json:"batizado"`
	DataBatismo         *time.Time `json:"data_batismo"`
	EstadoCivil         *string    `json:"estado_civil"`
	Ocupacao            *string    `json:"ocupacao"`
	NomeBranch          string     `json:"nome_branch" gorm:"column:nome_branch"`
	NomeCelula          string     `json:"nome_celula" gorm:"column:nome_celula"`
	Ativo               bool       `json:"ativo"`
	AnoIngresso         *int       `json:"ano_ingresso"`
	EscolaDaVerdade     string     `json:"escola_da_verdade"`
	DataConclusaoEscola *time.Time `json:"data_conclusao_escola"`
	Contacto            *string    `json:"contacto"`
	Email               *string    `json:"email"`
	DataRegisto         time.Time  `json:"data_registo"`
	TipoDocumento       *string    `json:"tipo_documento"`
	NumeroDocumento     *string    `json:"numero_documento"`
	Parceiro            bool       `json:"parceiro"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func parseDatePtr(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	return &t
}
