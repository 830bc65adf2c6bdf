package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	branchModel "gdm_backend/internals/features/igreja/branches/model"
	cultoModel "gdm_backend/internals/features/igreja/cultos/model"
	frequenciaModel "gdm_backend/internals/features/igreja/frequencias/model"
	membroModel "gdm_backend/internals/features/igreja/membros/model"
	restauracaoModel "gdm_backend/internals/features/igreja/restauracoes/model"
	visitanteModel "gdm_backend/internals/features/igreja/visitantes/model"
	userModel "gdm_backend/internals/features/users/auth/model"
)

// RunAllSeeds migra o schema e garante os dados mínimos de arranque:
// a tabela de roles e um utilizador admin inicial. É idempotente.
func RunAllSeeds(db *gorm.DB) {
	if err := db.AutoMigrate(
		&userModel.RoleModel{},
		&userModel.UserModel{},
		&branchModel.BranchModel{},
		&branchModel.CelulaModel{},
		&membroModel.MembroModel{},
		&cultoModel.CultoModel{},
		&frequenciaModel.FrequenciaModel{},
		&visitanteModel.VisitanteModel{},
		&restauracaoModel.RestauracaoModel{},
	); err != nil {
		log.Fatalf("[SEED] migração falhou: %v", err)
	}

	seedRoles(db)
	seedAdmin(db)
}

func seedRoles(db *gorm.DB) {
	roles := []userModel.RoleModel{
		{ID: 1, Nome: "Admin"},
		{ID: 2, Nome: "Pastor"},
		{ID: 3, Nome: "Secretario"},
		{ID: 4, Nome: "Lider"},
	}
	for _, r := range roles {
		if err := db.Where("id = ?", r.ID).FirstOrCreate(&r).Error; err != nil {
			log.Printf("[SEED] role %s: %v", r.Nome, err)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	var total int64
	if err := db.Model(&userModel.UserModel{}).Count(&total).Error; err != nil {
		log.Printf("[SEED] contar users: %v", err)
		return
	}
	if total > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("mudar123"), 10)
	if err != nil {
		log.Printf("[SEED] hash admin: %v", err)
		return
	}
	admin := userModel.UserModel{
		Username:     "admin",
		PasswordHash: string(hash),
		RoleID:       1,
		Ativo:        true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[SEED] criar admin: %v", err)
		return
	}
	log.Println("[SEED] utilizador admin criado (password provisória: mudar123)")
}
