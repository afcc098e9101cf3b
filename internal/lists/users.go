package lists

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

// Me returns the signed-in user with cart and role loaded, or nil for an
// anonymous caller.
func Me(ctx context.Context, sess *access.Session) (*models.User, error) {
	if !access.IsSignedIn(sess) {
		return nil, nil
	}

	var user models.User
	err := db.DB.WithContext(ctx).
		Preload("Role").
		Preload("Cart", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at") }).
		Preload("Cart.Product.Photo").
		First(&user, "id = ?", sess.UserID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func Users(ctx context.Context, sess *access.Session) ([]models.User, error) {
	d := access.CanManageUsers(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var users []models.User
	if err := tx.Preload("Role").Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func User(ctx context.Context, sess *access.Session, id string) (*models.User, error) {
	d := access.CanManageUsers(sess)
	if !d.Granted() {
		return nil, ErrAccessDenied
	}

	tx := db.DB.WithContext(ctx)
	if f, ok := d.Restricted(); ok {
		tx = f.Apply(tx)
	}

	var user models.User
	if err := tx.Preload("Role").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

func UpdateUser(ctx context.Context, sess *access.Session, id string, upd UserUpdate) (*models.User, error) {
	user, err := User(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}

	if err := db.DB.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
