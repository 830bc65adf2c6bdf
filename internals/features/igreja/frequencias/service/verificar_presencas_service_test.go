package service

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ── Fakes em memória ─────────────────────────────────────────────────────────

type fakeCultos struct {
	ids       []uint
	err       error
	gotInicio time.Time
	gotFim    time.Time
	chamadas  int
}

func (f *fakeCultos) ListarCultosNoIntervalo(ctx context.Context, inicio, fim time.Time) ([]uint, error) {
	f.chamadas++
	f.gotInicio, f.gotFim = inicio, fim
	return f.ids, f.err
}

type fakeLedger struct {
	presencas map[uint]int64
	errPara   map[uint]error
}

func (f *fakeLedger) ContarPresencas(ctx context.Context, membroID uint, cultoIDs []uint) (int64, error) {
	if err, ok := f.errPara[membroID]; ok {
		return 0, err
	}
	return f.presencas[membroID], nil
}

type fakeMembros struct {
	ordem    []uint
	ativo    map[uint]bool
	listErr  error
	escritas int
}

func (f *fakeMembros) ListarMembroIDs(ctx context.Context) ([]uint, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ordem, nil
}

func (f *fakeMembros) DefinirAtivo(ctx context.Context, membroID uint, ativo bool) (bool, error) {
	if f.ativo[membroID] == ativo {
		return false, nil
	}
	f.ativo[membroID] = ativo
	f.escritas++
	return true, nil
}

func novoVerificador(cultos CultoRegistry, ledger FrequenciaLedger, membros MembroRegistry, agora time.Time) *VerificadorPresencas {
	v := NewVerificadorPresencas(cultos, ledger, membros, agora.Location())
	v.agora = func() time.Time { return agora }
	return v
}

// ── Janela ───────────────────────────────────────────────────────────────────

func TestJanelaMesAnterior(t *testing.T) {
	maputo, err := time.LoadLocation("Africa/Maputo")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		nome   string
		agora  time.Time
		inicio time.Time
		fim    time.Time
	}{
		{
			nome:   "meio do mês",
			agora:  time.Date(2025, 3, 17, 6, 0, 0, 0, maputo),
			inicio: time.Date(2025, 2, 1, 0, 0, 0, 0, maputo),
			fim:    time.Date(2025, 3, 1, 0, 0, 0, 0, maputo),
		},
		{
			nome:   "janeiro recua para dezembro do ano anterior",
			agora:  time.Date(2026, 1, 5, 6, 0, 0, 0, maputo),
			inicio: time.Date(2025, 12, 1, 0, 0, 0, 0, maputo),
			fim:    time.Date(2026, 1, 1, 0, 0, 0, 0, maputo),
		},
		{
			nome:   "primeiro dia do mês",
			agora:  time.Date(2025, 3, 1, 0, 0, 0, 0, maputo),
			inicio: time.Date(2025, 2, 1, 0, 0, 0, 0, maputo),
			fim:    time.Date(2025, 3, 1, 0, 0, 0, 0, maputo),
		},
		{
			nome:   "último instante do mês",
			agora:  time.Date(2025, 7, 31, 23, 59, 59, 0, maputo),
			inicio: time.Date(2025, 6, 1, 0, 0, 0, 0, maputo),
			fim:    time.Date(2025, 7, 1, 0, 0, 0, 0, maputo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.nome, func(t *testing.T) {
			inicio, fim := JanelaMesAnterior(tt.agora)
			if !inicio.Equal(tt.inicio) {
				t.Errorf("inicio = %v, esperado %v", inicio, tt.inicio)
			}
			if !fim.Equal(tt.fim) {
				t.Errorf("fim = %v, esperado %v", fim, tt.fim)
			}
			if inicio.Location() != tt.agora.Location() {
				t.Errorf("janela calculada em %v, esperado %v", inicio.Location(), tt.agora.Location())
			}
		})
	}
}

func TestExecutarUsaJanelaDoMesAnterior(t *testing.T) {
	maputo, _ := time.LoadLocation("Africa/Maputo")
	agora := time.Date(2025, 5, 12, 6, 0, 0, 0, maputo)

	cultos := &fakeCultos{}
	membros := &fakeMembros{ativo: map[uint]bool{}}
	v := novoVerificador(cultos, &fakeLedger{}, membros, agora)

	if _, err := v.Executar(context.Background()); err != nil {
		t.Fatalf("Executar: %v", err)
	}

	wantInicio := time.Date(2025, 4, 1, 0, 0, 0, 0, maputo)
	wantFim := time.Date(2025, 5, 1, 0, 0, 0, 0, maputo)
	if !cultos.gotInicio.Equal(wantInicio) || !cultos.gotFim.Equal(wantFim) {
		t.Errorf("janela consultada [%v, %v), esperado [%v, %v)",
			cultos.gotInicio, cultos.gotFim, wantInicio, wantFim)
	}
}

// ── Regras de decisão ────────────────────────────────────────────────────────

// Membro A: uma presença no mês anterior → activo.
// Membro B: só ausências registadas → inactivo.
// Membro C: sem qualquer registo → inactivo.
func TestExecutarCenarioABC(t *testing.T) {
	cultos := &fakeCultos{ids: []uint{10, 11}}
	ledger := &fakeLedger{presencas: map[uint]int64{1: 1, 2: 0}}
	membros := &fakeMembros{
		ordem: []uint{1, 2, 3},
		ativo: map[uint]bool{1: false, 2: true, 3: true},
	}

	v := novoVerificador(cultos, ledger, membros, time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC))
	resumo, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("Executar: %v", err)
	}

	if !membros.ativo[1] {
		t.Error("membro A com presença devia ficar activo")
	}
	if membros.ativo[2] {
		t.Error("membro B só com ausências devia ficar inactivo")
	}
	if membros.ativo[3] {
		t.Error("membro C sem registos devia ficar inactivo")
	}
	if resumo.Reativados != 1 {
		t.Errorf("Reativados = %d, esperado 1", resumo.Reativados)
	}
	if resumo.Inativados != 2 {
		t.Errorf("Inativados = %d, esperado 2", resumo.Inativados)
	}
	if len(resumo.Falhas) != 0 {
		t.Errorf("Falhas = %v, esperado nenhuma", resumo.Falhas)
	}
}

// Membros já no estado alvo não geram escrita nem contam como transição.
func TestExecutarEstadoAlvoNaoReescreve(t *testing.T) {
	cultos := &fakeCultos{ids: []uint{10}}
	ledger := &fakeLedger{presencas: map[uint]int64{1: 2}}
	membros := &fakeMembros{
		ordem: []uint{1, 2},
		ativo: map[uint]bool{1: true, 2: false},
	}

	v := novoVerificador(cultos, ledger, membros, time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC))
	resumo, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("Executar: %v", err)
	}

	if membros.escritas != 0 {
		t.Errorf("escritas = %d, esperado 0", membros.escritas)
	}
	if resumo.Inativados != 0 || resumo.Reativados != 0 {
		t.Errorf("resumo = %+v, esperado zero transições", resumo)
	}
}

func TestExecutarIdempotente(t *testing.T) {
	cultos := &fakeCultos{ids: []uint{10}}
	ledger := &fakeLedger{presencas: map[uint]int64{1: 1, 2: 0}}
	membros := &fakeMembros{
		ordem: []uint{1, 2},
		ativo: map[uint]bool{1: false, 2: true},
	}

	v := novoVerificador(cultos, ledger, membros, time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC))

	primeira, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("primeira execução: %v", err)
	}
	if primeira.Inativados+primeira.Reativados != 2 {
		t.Fatalf("primeira execução devia transitar 2 membros, resumo: %+v", primeira)
	}

	segunda, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("segunda execução: %v", err)
	}
	if segunda.Inativados != 0 || segunda.Reativados != 0 {
		t.Errorf("segunda execução sem alterações de dados devia ser no-op, resumo: %+v", segunda)
	}
}

// ── Ausência de dados e falhas ───────────────────────────────────────────────

func TestExecutarSemCultosNaoTocaNosMembros(t *testing.T) {
	membros := &fakeMembros{
		ordem: []uint{1, 2},
		ativo: map[uint]bool{1: true, 2: false},
	}

	v := novoVerificador(&fakeCultos{}, &fakeLedger{}, membros, time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC))
	resumo, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("Executar: %v", err)
	}

	if membros.escritas != 0 {
		t.Errorf("escritas = %d, esperado 0", membros.escritas)
	}
	if !membros.ativo[1] || membros.ativo[2] {
		t.Error("sem cultos na janela nenhum flag devia mudar")
	}
	if resumo.TotalMembros != 0 {
		t.Errorf("TotalMembros = %d, esperado 0 (membros nem sequer listados)", resumo.TotalMembros)
	}
}

func TestExecutarFalhaDeUmMembroNaoAbortaOsRestantes(t *testing.T) {
	errLedger := errors.New("frequencias indisponíveis")
	cultos := &fakeCultos{ids: []uint{10}}
	ledger := &fakeLedger{
		presencas: map[uint]int64{1: 1, 3: 1},
		errPara:   map[uint]error{2: errLedger},
	}
	membros := &fakeMembros{
		ordem: []uint{1, 2, 3},
		ativo: map[uint]bool{1: false, 2: true, 3: false},
	}

	v := novoVerificador(cultos, ledger, membros, time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC))
	resumo, err := v.Executar(context.Background())
	if err != nil {
		t.Fatalf("Executar devia continuar apesar da falha por membro: %v", err)
	}

	if !membros.ativo[1] || !membros.ativo[3] {
		t.Error("membros 1 e 3 deviam ter sido processados apesar da falha do membro 2")
	}
	if len(resumo.Falhas) != 1 || resumo.Falhas[0].MembroID != 2 {
		t.Errorf("Falhas = %+v, esperado uma falha do membro 2", resumo.Falhas)
	}
	if !errors.Is(resumo.Falhas[0].Err, errLedger) {
		t.Errorf("a falha devia embrulhar o erro original, got %v", resumo.Falhas[0].Err)
	}
	if resumo.Reativados != 2 {
		t.Errorf("Reativados = %d, esperado 2", resumo.Reativados)
	}
}

func TestExecutarAbortaSeListagensFalham(t *testing.T) {
	agora := time.Date(2025, 3, 17, 6, 0, 0, 0, time.UTC)

	t.Run("cultos", func(t *testing.T) {
		v := novoVerificador(
			&fakeCultos{err: errors.New("db down")},
			&fakeLedger{},
			&fakeMembros{ativo: map[uint]bool{}},
			agora,
		)
		if _, err := v.Executar(context.Background()); err == nil {
			t.Fatal("falha a listar cultos devia abortar a execução")
		}
	})

	t.Run("membros", func(t *testing.T) {
		v := novoVerificador(
			&fakeCultos{ids: []uint{10}},
			&fakeLedger{},
			&fakeMembros{listErr: errors.New("db down")},
			agora,
		)
		if _, err := v.Executar(context.Background()); err == nil {
			t.Fatal("falha a listar membros devia abortar a execução")
		}
	})
}
