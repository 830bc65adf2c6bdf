package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"gdm_backend/internals/configs"
	"gdm_backend/internals/features/igreja/frequencias/service"
)

const (
	// Toda segunda-feira às 06:00.
	defaultSchedule = "0 6 * * 1"
	defaultTimezone = "Africa/Maputo"

	// Uma execução presa não pode bloquear o processo indefinidamente.
	runTimeout = 4 * time.Minute
)

// StartVerificacaoPresencas agenda a verificação semanal de presenças.
// A janela do mês anterior é calculada na mesma timezone do trigger, e
// SkipIfStillRunning garante no máximo uma execução activa de cada vez.
func StartVerificacaoPresencas(db *gorm.DB) *cron.Cron {
	tz := configs.GetEnv("VERIFICACAO_TZ", defaultTimezone)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[SCHEDULER] timezone %q inválida, a usar UTC: %v", tz, err)
		loc = time.UTC
	}

	verificador := service.NewVerificadorPresencas(
		&service.GormCultoRegistry{DB: db},
		&service.GormFrequenciaLedger{DB: db},
		&service.GormMembroRegistry{DB: db},
		loc,
	)

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	schedule := configs.GetEnv("VERIFICACAO_CRON", defaultSchedule)
	_, err = c.AddFunc(schedule, func() {
		log.Println("[SCHEDULER] Job semanal iniciado")

		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		if _, err := verificador.Executar(ctx); err != nil {
			log.Printf("[SCHEDULER] Erro na verificação de presenças: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("[SCHEDULER] schedule %q inválido: %v", schedule, err)
	}

	c.Start()
	log.Printf("[SCHEDULER] Verificação de presenças agendada: %q (%s)", schedule, loc)
	return c
}
