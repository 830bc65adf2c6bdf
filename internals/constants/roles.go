package constants

// IDs dos roles na tabela roles (seed fixo).
const (
	RoleAdmin      = 1
	RolePastor     = 2
	RoleSecretario = 3
	RoleLider      = 4
)

// Combinações usadas nas rotas.
var (
	AdminOnly    = []int{RoleAdmin}
	AdminEPastor = []int{RoleAdmin, RolePastor}
)
