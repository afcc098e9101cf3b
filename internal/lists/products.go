package lists

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

func Products(ctx context.Context, sess *access.Session, search string) ([]models.Product, error) {
	d := access.CanReadProducts(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}
	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("(name LIKE ? OR description LIKE ?)", like, like)
	}

	var products []models.Product
	if err := tx.Preload("Photo").Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func Product(ctx context.Context, sess *access.Session, id string) (*models.Product, error) {
	d := access.CanReadProducts(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var product models.Product
	if err := tx.Preload("Photo").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

type ProductInput struct {
	Name        string
	Description string
	Price       int64
	Status      string
	Image       string
	AltText     string
}

// CreateProduct is open to any signed-in user; the created row is owned by
// the caller.
func CreateProduct(ctx context.Context, sess *access.Session, in ProductInput) (*models.Product, error) {
	if !access.IsSignedIn(sess) {
		return nil, ErrNotSignedIn
	}

	status := in.Status
	if status == "" {
		status = models.ProductStatusDraft
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Status:      status,
		UserID:      sess.UserID,
	}
	if in.Image != "" {
		product.Photo = &models.ProductImage{Image: in.Image, AltText: in.AltText}
	}

	if err := db.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *int64
	Status      *string
}

func UpdateProduct(ctx context.Context, sess *access.Session, id string, upd ProductUpdate) (*models.Product, error) {
	product, err := manageableProduct(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		product.Name = *upd.Name
	}
	if upd.Description != nil {
		product.Description = *upd.Description
	}
	if upd.Price != nil {
		product.Price = *upd.Price
	}
	if upd.Status != nil {
		product.Status = *upd.Status
	}

	if err := db.DB.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func DeleteProduct(ctx context.Context, sess *access.Session, id string) (*models.Product, error) {
	product, err := manageableProduct(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if err := db.DB.WithContext(ctx).Delete(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func manageableProduct(ctx context.Context, sess *access.Session, id string) (*models.Product, error) {
	d := access.CanManageProducts(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var product models.Product
	if err := tx.Preload("Photo").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
