package service

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	cultoModel "gdm_backend/internals/features/igreja/cultos/model"
	membroModel "gdm_backend/internals/features/igreja/membros/model"
)

// Adaptadores GORM para as portas do VerificadorPresencas.

type GormCultoRegistry struct {
	DB *gorm.DB
}

func (r *GormCultoRegistry) ListarCultosNoIntervalo(ctx context.Context, inicio, fim time.Time) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&cultoModel.CultoModel{}).
		Where("data >= ? AND data < ?", inicio, fim).
		Pluck("id", &ids).Error
	return ids, err
}

type GormFrequenciaLedger struct {
	DB *gorm.DB
}

func (r *GormFrequenciaLedger) ContarPresencas(ctx context.Context, membroID uint, cultoIDs []uint) (int64, error) {
	ids := make([]int64, len(cultoIDs))
	for i, id := range cultoIDs {
		ids[i] = int64(id)
	}

	var total int64
	err := r.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM frequencias
		WHERE membro_id = ?
		  AND culto_id = ANY(?)
		  AND presente = true
	`, membroID, pq.Array(ids)).Scan(&total).Error
	return total, err
}

type GormMembroRegistry struct {
	DB *gorm.DB
}

func (r *GormMembroRegistry) ListarMembroIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).
		Model(&membroModel.MembroModel{}).
		Pluck("id", &ids).Error
	return ids, err
}

// DefinirAtivo faz a escrita condicional (WHERE ativo = NOT alvo): membros já
// no estado alvo não geram UPDATE nem contam como transição.
func (r *GormMembroRegistry) DefinirAtivo(ctx context.Context, membroID uint, ativo bool) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&membroModel.MembroModel{}).
		Where("id = ? AND ativo = ?", membroID, !ativo).
		Update("ativo", ativo)
	return res.RowsAffected > 0, res.Error
}
