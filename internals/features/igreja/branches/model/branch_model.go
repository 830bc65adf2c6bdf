package model

type BranchModel struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Nome string `gorm:"column:nome" json:"nome"`
}

func (BranchModel) TableName() string {
	return "branches"
}

type CelulaModel struct {
	ID   uint   `gorm:"primaryKey;column:id" json:"id"`
	Nome string `gorm:"column:nome" json:"nome"`
}

func (CelulaModel) TableName() string {
	return "celulas"
}
