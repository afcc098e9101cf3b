package lists

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

// AddToCart puts one unit of a product in the caller's cart. Adding a
// product already in the cart bumps its quantity instead of creating a
// second row.
func AddToCart(ctx context.Context, sess *access.Session, productID string) (*models.CartItem, error) {
	if !access.IsSignedIn(sess) {
		return nil, ErrNotSignedIn
	}

	var product models.Product
	if err := db.DB.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var existing models.CartItem
	err := db.DB.WithContext(ctx).
		Preload("Product.Photo").
		First(&existing, "user_id = ? AND product_id = ?", sess.UserID, productID).Error
	if err == nil {
		existing.Quantity++
		if err := db.DB.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.CartItem{
		Quantity:  1,
		ProductID: &productID,
		UserID:    sess.UserID,
	}
	if err := db.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	if err := db.DB.WithContext(ctx).Preload("Product.Photo").First(&item, "id = ?", item.ID).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func RemoveFromCart(ctx context.Context, sess *access.Session, id string) (*models.CartItem, error) {
	d := access.CanOrder(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var item models.CartItem
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := db.DB.WithContext(ctx).Delete(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
