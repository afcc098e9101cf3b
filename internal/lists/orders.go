package lists

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

func Orders(ctx context.Context, sess *access.Session) ([]models.Order, error) {
	d := access.CanOrder(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var orders []models.Order
	if err := tx.Preload("Items.Photo").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func Order(ctx context.Context, sess *access.Session, id string) (*models.Order, error) {
	d := access.CanOrder(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var order models.Order
	if err := tx.Preload("Items.Photo").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// OrderItems lists snapshot rows directly; ownership runs through the
// parent order, which the access filter expresses as a subquery.
func OrderItems(ctx context.Context, sess *access.Session) ([]models.OrderItem, error) {
	d := access.CanManageOrderItems(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var items []models.OrderItem
	if err := tx.Preload("Photo").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
