package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gdm_backend/internals/configs"
	"gdm_backend/internals/features/users/auth/model"
)

const (
	userTokenTTL   = 24 * time.Hour
	membroTokenTTL = 8 * time.Hour
)

// GerarTokenUser assina o token de sessão de um utilizador do backoffice.
func GerarTokenUser(user *model.UserModel) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"role_id":  user.RoleID,
		"iat":      now.Unix(),
		"exp":      now.Add(userTokenTTL).Unix(),
	})
	return token.SignedString([]byte(configs.JWTSecret))
}

// GerarTokenMembro assina o token do portal do membro (login por
// código + data de nascimento, sem role).
func GerarTokenMembro(membroID uint, codigo string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":     membroID,
		"codigo": codigo,
		"tipo":   "membro",
		"iat":    now.Unix(),
		"exp":    now.Add(membroTokenTTL).Unix(),
	})
	return token.SignedString([]byte(configs.JWTSecret))
}
