package model

import "time"

type UserModel struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	Username     string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	RoleID       int       `gorm:"column:role_id;not null" json:"role_id"`
	Ativo        bool      `gorm:"column:ativo;default:true" json:"ativo"`
	DataCriacao  time.Time `gorm:"column:data_criacao;autoCreateTime" json:"data_criacao"`
}

func (UserModel) TableName() string {
	return "users"
}

type RoleModel struct {
	ID        int     `gorm:"primaryKey;column:id" json:"id"`
	Nome      string  `gorm:"column:nome" json:"nome"`
	Descricao *string `gorm:"column:descricao" json:"descricao,omitempty"`
}

func (RoleModel) TableName() string {
	return "roles"
}
