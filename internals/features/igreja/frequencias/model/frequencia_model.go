package model

// FrequenciaModel liga um membro a um culto. Par (membro_id, culto_id)
// é único: re-submeter a presença sobrescreve em vez de duplicar.
type FrequenciaModel struct {
	ID         uint    `gorm:"primaryKey;column:id" json:"id"`
	MembroID   uint    `gorm:"column:membro_id;not null;uniqueIndex:uq_frequencias_membro_culto" json:"membro_id"`
	CultoID    uint    `gorm:"column:culto_id;not null;uniqueIndex:uq_frequencias_membro_culto" json:"culto_id"`
	Presente   bool    `gorm:"column:presente;not null;default:false" json:"presente"`
	Observacao *string `gorm:"column:observacao" json:"observacao,omitempty"`
}

func (FrequenciaModel) TableName() string {
	return "frequencias"
}
