package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Portas para os colaboradores externos da verificação. As implementações
// GORM vivem em gorm_registries.go; os testes usam fakes em memória.

type CultoRegistry interface {
	// IDs dos cultos com data em [inicio, fim).
	ListarCultosNoIntervalo(ctx context.Context, inicio, fim time.Time) ([]uint, error)
}

type FrequenciaLedger interface {
	// Quantas presenças (presente = true) o membro teve nos cultos dados.
	ContarPresencas(ctx context.Context, membroID uint, cultoIDs []uint) (int64, error)
}

type MembroRegistry interface {
	// Todos os membros, activos e inactivos.
	ListarMembroIDs(ctx context.Context) ([]uint, error)
	// Escrita condicional: só altera se o estado actual for diferente.
	// Devolve true se houve transição.
	DefinirAtivo(ctx context.Context, membroID uint, ativo bool) (bool, error)
}

type FalhaMembro struct {
	MembroID uint
	Err      error
}

type ResumoVerificacao struct {
	TotalCultos  int
	TotalMembros int
	Inativados   int
	Reativados   int
	Falhas       []FalhaMembro
}

// JanelaMesAnterior devolve [primeiro dia do mês anterior, primeiro dia do
// mês corrente), na localização de `agora`. O chamador é responsável por
// passar `agora` já na timezone do scheduler: a janela nunca é calculada
// noutra timezone.
func JanelaMesAnterior(agora time.Time) (inicio, fim time.Time) {
	loc := agora.Location()
	fim = time.Date(agora.Year(), agora.Month(), 1, 0, 0, 0, 0, loc)
	inicio = fim.AddDate(0, -1, 0)
	return inicio, fim
}

// VerificadorPresencas mantém o flag `ativo` de cada membro coerente com a
// assiduidade no mês de calendário anterior: ausente em todos os cultos →
// inactivo; presente em pelo menos um → activo.
type VerificadorPresencas struct {
	cultos      CultoRegistry
	frequencias FrequenciaLedger
	membros     MembroRegistry
	agora       func() time.Time
}

func NewVerificadorPresencas(cultos CultoRegistry, frequencias FrequenciaLedger, membros MembroRegistry, loc *time.Location) *VerificadorPresencas {
	if loc == nil {
		loc = time.UTC
	}
	return &VerificadorPresencas{
		cultos:      cultos,
		frequencias: frequencias,
		membros:     membros,
		agora:       func() time.Time { return time.Now().In(loc) },
	}
}

// Executar corre uma verificação completa. Falhas a listar cultos ou membros
// abortam a execução; falhas por membro são isoladas e acumuladas no resumo,
// sem interromper os restantes.
func (v *VerificadorPresencas) Executar(ctx context.Context) (*ResumoVerificacao, error) {
	log.Println("[VERIFICACAO] A verificar presenças dos membros...")

	inicio, fim := JanelaMesAnterior(v.agora())

	cultoIDs, err := v.cultos.ListarCultosNoIntervalo(ctx, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("listar cultos do mês anterior: %w", err)
	}

	resumo := &ResumoVerificacao{TotalCultos: len(cultoIDs)}

	// Sem cultos no mês anterior não há contra o que reconciliar.
	if len(cultoIDs) == 0 {
		log.Println("[VERIFICACAO] Nenhum culto registado no mês anterior, verificação ignorada.")
		return resumo, nil
	}

	membroIDs, err := v.membros.ListarMembroIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar membros: %w", err)
	}
	resumo.TotalMembros = len(membroIDs)

	for _, membroID := range membroIDs {
		if err := v.verificarMembro(ctx, membroID, cultoIDs, resumo); err != nil {
			log.Printf("[VERIFICACAO] membro %d falhou: %v", membroID, err)
			resumo.Falhas = append(resumo.Falhas, FalhaMembro{MembroID: membroID, Err: err})
		}
	}

	log.Printf("[VERIFICACAO] Concluída: %d inactivados, %d reactivados, %d falhas (janela %s a %s)",
		resumo.Inativados, resumo.Reativados, len(resumo.Falhas),
		inicio.Format("2006-01-02"), fim.Format("2006-01-02"))
	return resumo, nil
}

func (v *VerificadorPresencas) verificarMembro(ctx context.Context, membroID uint, cultoIDs []uint, resumo *ResumoVerificacao) error {
	total, err := v.frequencias.ContarPresencas(ctx, membroID, cultoIDs)
	if err != nil {
		return fmt.Errorf("contar presenças: %w", err)
	}

	// Presente em pelo menos um culto → activo; ausente em todos (ou sem
	// qualquer registo) → inactivo.
	alvo := total > 0

	mudou, err := v.membros.DefinirAtivo(ctx, membroID, alvo)
	if err != nil {
		return fmt.Errorf("actualizar ativo=%v: %w", alvo, err)
	}

	// Os contadores reflectem apenas transições reais.
	if mudou {
		if alvo {
			resumo.Reativados++
		} else {
			resumo.Inativados++
		}
	}
	return nil
}
