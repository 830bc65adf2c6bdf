package dto

import (
	"strings"
	"testing"
)

func TestParsePresencasCSV(t *testing.T) {
	casos := []struct {
		nome    string
		entrada string
		quer    []LinhaCSV
	}{
		{
			nome:    "colunas na ordem normal",
			entrada: "codigo,presente\nM001,1\nM002,0\n",
			quer: []LinhaCSV{
				{Codigo: "M001", Presente: true},
				{Codigo: "M002", Presente: false},
			},
		},
		{
			nome:    "ordem das colunas trocada e coluna extra",
			entrada: "presente,nome,codigo\nsim,Ana,m003\nnao,Rui,M004\n",
			quer: []LinhaCSV{
				{Codigo: "M003", Presente: true},
				{Codigo: "M004", Presente: false},
			},
		},
		{
			nome:    "linhas sem codigo sao ignoradas",
			entrada: "codigo,presente\n,1\nM005,true\n",
			quer:    []LinhaCSV{{Codigo: "M005", Presente: true}},
		},
		{
			nome:    "cabecalho com acento",
			entrada: "código,presente\nM006,S\n",
			quer:    []LinhaCSV{{Codigo: "M006", Presente: true}},
		},
		{
			nome:    "codigo repetido colapsa na ultima linha",
			entrada: "codigo,presente\nM007,1\nM008,1\nM007,0\n",
			quer: []LinhaCSV{
				{Codigo: "M007", Presente: false},
				{Codigo: "M008", Presente: true},
			},
		},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			got, err := ParsePresencasCSV(strings.NewReader(tc.entrada))
			if err != nil {
				t.Fatalf("erro inesperado: %v", err)
			}
			if len(got) != len(tc.quer) {
				t.Fatalf("linhas = %d, esperava %d", len(got), len(tc.quer))
			}
			for i := range got {
				if got[i] != tc.quer[i] {
					t.Errorf("linha %d = %+v, esperava %+v", i, got[i], tc.quer[i])
				}
			}
		})
	}
}

func TestParsePresencasCSVSemColunas(t *testing.T) {
	casos := []struct {
		nome    string
		entrada string
	}{
		{"ficheiro vazio", ""},
		{"sem coluna presente", "codigo,nome\nM001,Ana\n"},
		{"sem coluna codigo", "nome,presente\nAna,1\n"},
	}
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			if _, err := ParsePresencasCSV(strings.NewReader(tc.entrada)); err != ErrCSVSemColunas {
				t.Fatalf("err = %v, esperava ErrCSVSemColunas", err)
			}
		})
	}
}

func TestDeduplicarPresencas(t *testing.T) {
	obs := "chegou atrasado"
	entrada := []PresencaItem{
		{MembroID: 1, Presente: true},
		{MembroID: 2, Presente: true},
		{MembroID: 1, Presente: false, Observacao: &obs},
		{MembroID: 3, Presente: false},
	}

	got := DeduplicarPresencas(entrada)

	if len(got) != 3 {
		t.Fatalf("len = %d, esperava 3 (membro 1 colapsado)", len(got))
	}
	if got[0].MembroID != 1 || got[0].Presente {
		t.Errorf("membro 1 = %+v, esperava a última ocorrência (presente=false)", got[0])
	}
	if got[0].Observacao != &obs {
		t.Error("membro 1 devia manter a observação da última ocorrência")
	}
	if got[1].MembroID != 2 || got[2].MembroID != 3 {
		t.Errorf("ordem = [%d %d %d], esperava a ordem da primeira ocorrência", got[0].MembroID, got[1].MembroID, got[2].MembroID)
	}
}

func TestDeduplicarPresencasSemRepetidos(t *testing.T) {
	entrada := []PresencaItem{{MembroID: 1, Presente: true}, {MembroID: 2}}
	got := DeduplicarPresencas(entrada)
	if len(got) != 2 {
		t.Fatalf("len = %d, esperava 2", len(got))
	}
	for i := range entrada {
		if got[i].MembroID != entrada[i].MembroID {
			t.Errorf("posição %d: membro %d, esperava %d", i, got[i].MembroID, entrada[i].MembroID)
		}
	}
}

func TestParsePresente(t *testing.T) {
	verdadeiros := []string{"1", "true", "SIM", "s", " presente "}
	for _, v := range verdadeiros {
		if !parsePresente(v) {
			t.Errorf("parsePresente(%q) = false, esperava true", v)
		}
	}
	falsos := []string{"0", "false", "nao", "", "x"}
	for _, v := range falsos {
		if parsePresente(v) {
			t.Errorf("parsePresente(%q) = true, esperava false", v)
		}
	}
}
