package seed

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

// Insert loads a demo admin and a small catalog. It is a no-op once any
// product exists, so rerunning with --seed-data is safe.
func Insert(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seed data already present, skipping")
		return nil
	}

	admin := models.Role{
		Name:              "Admin",
		CanManageProducts: true,
		CanSeeOtherUsers:  true,
		CanManageUsers:    true,
		CanManageRoles:    true,
		CanManageCart:     true,
		CanManageOrders:   true,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("sickfits-demo"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	owner := models.User{
		Name:     "Demo Admin",
		Email:    "admin@example.com",
		Password: string(hash),
		RoleID:   &admin.ID,
	}
	if err := tx.Create(&owner).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:        "Yeti Hondo",
			Description: "Soft and cuddly!",
			Status:      models.ProductStatusAvailable,
			Price:       3423,
			UserID:      owner.ID,
			Photo:       &models.ProductImage{Image: "https://images.example.com/yeti-hondo.jpg", AltText: "Yeti Hondo"},
		},
		{
			Name:        "KITH Blazer",
			Description: "Classic blazer with a modern twist",
			Status:      models.ProductStatusAvailable,
			Price:       28234,
			UserID:      owner.ID,
			Photo:       &models.ProductImage{Image: "https://images.example.com/kith-blazer.jpg", AltText: "KITH Blazer"},
		},
		{
			Name:        "Nano Brown",
			Description: "Rugged little boot",
			Status:      models.ProductStatusDraft,
			Price:       12300,
			UserID:      owner.ID,
			Photo:       &models.ProductImage{Image: "https://images.example.com/nano-brown.jpg", AltText: "Nano Brown"},
		},
	}
	for i := range products {
		if err := tx.Create(&products[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d products and the demo admin user", len(products))
	return nil
}
