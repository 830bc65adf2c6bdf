package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	RoleID   int    `json:"role_id" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	SenhaActual    string `json:"senhaActual" validate:"required"`
	NovaSenha      string `json:"novaSenha" validate:"required,min=6"`
	ConfirmarSenha string `json:"confirmarSenha" validate:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	RoleID   *int    `json:"role_id"`
}

type LoginMembroRequest struct {
	Codigo         string `json:"codigo" validate:"required"`
	DataNascimento string `json:"data_nascimento" validate:"required"`
}
