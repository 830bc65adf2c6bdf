package dto

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PresencaItem é um lançamento individual no registo em lote de um culto.
type PresencaItem struct {
	MembroID   uint    `json:"membro_id" validate:"required"`
	Presente   bool    `json:"presente"`
	Observacao *string `json:"observacao"`
}

// SalvarPresencasRequest é o corpo do POST /api/cultos/:id/presencas.
type SalvarPresencasRequest struct {
	Presencas []PresencaItem `json:"presencas" validate:"required,min=1,dive"`
}

// DeduplicarPresencas colapsa lançamentos repetidos do mesmo membro num
// lote; a última ocorrência prevalece, como numa re-submissão. Sem isto,
// o INSERT ... ON CONFLICT DO UPDATE multi-linha falharia ao tocar o
// mesmo par (membro, culto) duas vezes na mesma instrução.
func DeduplicarPresencas(itens []PresencaItem) []PresencaItem {
	indice := make(map[uint]int, len(itens))
	out := make([]PresencaItem, 0, len(itens))
	for _, p := range itens {
		if i, ok := indice[p.MembroID]; ok {
			out[i] = p
			continue
		}
		indice[p.MembroID] = len(out)
		out = append(out, p)
	}
	return out
}

// PresencaRow é uma linha da folha de presenças de um culto: todos os
// membros activos com o estado lançado (ou nulo se ainda sem registo).
type PresencaRow struct {
	MembroID   uint    `json:"membro_id"`
	NomeMembro string  `json:"nome_membro"`
	Codigo     *string `json:"codigo"`
	Presente   *bool   `json:"presente"`
	Observacao *string `json:"observacao"`
}

// LinhaCSV é o resultado de uma linha válida do ficheiro importado.
type LinhaCSV struct {
	Codigo   string
	Presente bool
}

var ErrCSVSemColunas = errors.New("o ficheiro deve ter as colunas 'codigo' e 'presente'")

// ParsePresencasCSV lê um CSV com cabeçalho e extrai as colunas codigo e
// presente. A ordem das colunas é livre e linhas sem código são ignoradas.
// Códigos repetidos colapsam na última linha do ficheiro.
// Valores aceites para presente: 1/0, true/false, sim/nao.
func ParsePresencasCSV(r io.Reader) ([]LinhaCSV, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrCSVSemColunas
		}
		return nil, fmt.Errorf("ler cabeçalho: %w", err)
	}

	colCodigo, colPresente := -1, -1
	for i, nome := range header {
		switch strings.ToLower(strings.TrimSpace(nome)) {
		case "codigo", "código":
			colCodigo = i
		case "presente":
			colPresente = i
		}
	}
	if colCodigo < 0 || colPresente < 0 {
		return nil, ErrCSVSemColunas
	}

	var linhas []LinhaCSV
	indice := make(map[string]int)
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ler linha: %w", err)
		}
		if colCodigo >= len(rec) || colPresente >= len(rec) {
			continue
		}
		codigo := strings.ToUpper(strings.TrimSpace(rec[colCodigo]))
		if codigo == "" {
			continue
		}
		linha := LinhaCSV{
			Codigo:   codigo,
			Presente: parsePresente(rec[colPresente]),
		}
		if i, ok := indice[codigo]; ok {
			linhas[i] = linha
			continue
		}
		indice[codigo] = len(linhas)
		linhas = append(linhas, linha)
	}
	return linhas, nil
}

func parsePresente(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "sim", "s", "presente":
		return true
	default:
		return false
	}
}
