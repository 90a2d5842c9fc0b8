package db

import (
	"fmt"
	"log"

	"github.com/servibook/reserva/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.ProviderDetails{},
		&models.Service{},
		&models.Payment{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRoles()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRoles creates the three platform roles if missing.
func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleProvider, Description: "Provider who fulfils reservations"},
		{Name: models.RoleClient, Description: "Client who books reservations"},
	}
	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}
