package configs

import (
	"log"

	"safra-backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the first admin user from env, skipped when unset.
func SeedAdmin() error {
	db := DB()
	email := getEnv("ADMIN_EMAIL", "")
	pass := getEnv("ADMIN_PASSWORD", "")
	if email == "" || pass == "" {
		log.Println("skip seeding admin: missing ADMIN_EMAIL/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	db.Model(&entity.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		log.Println("admin already exists:", email)
		return nil
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	admin := entity.User{
		Email:    email,
		Password: string(hash),
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	}
	return db.Create(&admin).Error
}

// SeedLookups loads the customer and crop reference tables.
func SeedLookups() error {
	db := DB()

	customers := []entity.Customer{
		{Name: "AGROPECUÁRIA BOA ESPERANÇA LTDA", TradeName: "FAZENDA BOA ESPERANÇA", Regional: entity.RegionalCentroOeste, ManagerName: "Carlos Mendes", SellerName: "Roberto Silva", City: "Sorriso", State: "MT"},
		{Name: "JOSÉ ALMEIDA CAMPOS", TradeName: "SÍTIO RECANTO VERDE", Regional: entity.RegionalSul, ManagerName: "Ana Souza", SellerName: "Fernando Torres", City: "Cascavel", State: "PR"},
		{Name: "GRUPO VANGUARDA AGRÍCOLA", TradeName: "FAZENDA HORIZONTE", Regional: entity.RegionalNordeste, ManagerName: "Pedro Alcantara", SellerName: "Mariana Costa", City: "Luís Eduardo Magalhães", State: "BA"},
	}
	for _, c := range customers {
		c := c
		if err := db.Where(entity.Customer{Name: c.Name}).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"Soja", "Milho", "Algodão", "Trigo", "Café", "Cana-de-açúcar"} {
		if err := db.FirstOrCreate(&entity.Crop{}, entity.Crop{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
