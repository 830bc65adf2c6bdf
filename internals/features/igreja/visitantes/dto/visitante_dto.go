package dto

// VisitanteRequest é o corpo do registo de um visitante.
type VisitanteRequest struct {
	Nome         string  `json:"nome" validate:"required,min=2,max=120"`
	Genero       *string `json:"genero" validate:"omitempty,oneof=Masculino Feminino"`
	Idade        *int    `json:"idade" validate:"omitempty,min=0,max=130"`
	Contacto     *string `json:"contacto"`
	Bairro       *string `json:"bairro"`
	CultoID      *uint   `json:"culto_id"`
	BranchID     *uint   `json:"branch_id"`
	Externo      *bool   `json:"externo"`
	IgrejaOrigem *string `json:"igreja_origem"`
	Observacoes  *string `json:"observacoes"`
}

// ConverterRequest complementa os dados do visitante ao convertê-lo em
// membro. Todos os campos são opcionais; o nome do visitante prevalece
// se nenhum for enviado.
type ConverterRequest struct {
	Codigo         *string `json:"codigo"`
	DataNascimento *string `json:"data_nascimento"`
	EstadoCivil    *string `json:"estado_civil"`
	CelulaID       *uint   `json:"celula_id"`
}

// VisitanteListRow inclui o culto e a branch da visita.
type VisitanteListRow struct {
	ID           uint    `json:"id"`
	Nome         string  `json:"nome"`
	Genero       *string `json:"genero"`
	Idade        *int    `json:"idade"`
	Contacto     *string `json:"contacto"`
	Bairro       *string `json:"bairro"`
	Externo      bool    `json:"externo"`
	IgrejaOrigem *string `json:"igreja_origem"`
	Observacoes  *string `json:"observacoes"`
	MembroID     *uint   `json:"membro_id"`
	DataVisita   string  `json:"data_visita"`
	TipoCulto    *string `json:"tipo_culto"`
	DataCulto    *string `json:"data_culto"`
	NomeBranch   string  `json:"nome_branch"`
}
