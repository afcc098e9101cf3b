// Package checkout converts a signed-in user's cart into a confirmed
// Order, charging payment synchronously through the configured gateway.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
	"github.com/Missarachnid/sick-fits-backend/internal/payments"
)

var ErrNotSignedIn = errors.New("Sorry you must be signed in to create an order")

const chargeCurrency = "usd"

type Service struct {
	gateway payments.Gateway
}

func New(gateway payments.Gateway) *Service {
	return &Service{gateway: gateway}
}

// Checkout runs the full flow: load the cart, total it, charge the token,
// snapshot the items into an order, and clear the cart. Any failure before
// the charge aborts with no side effects. A failure after the charge leaves
// the customer charged with no order; there is no compensating transaction
// across the gateway and the database.
func (s *Service) Checkout(ctx context.Context, sess *access.Session, token string) (*models.Order, error) {
	// 1. make sure they are signed in
	if !access.IsSignedIn(sess) {
		return nil, ErrNotSignedIn
	}

	var user models.User
	err := db.DB.WithContext(ctx).
		Preload("Cart").
		Preload("Cart.Product.Photo").
		First(&user, "id = ?", sess.UserID).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	// 2. calculate the total price, skipping cart items whose product
	// reference dangles
	cartItems := make([]models.CartItem, 0, len(user.Cart))
	var amount int64
	for _, item := range user.Cart {
		if item.Product == nil {
			continue
		}
		cartItems = append(cartItems, item)
		amount += int64(item.Quantity) * item.Product.Price
	}

	// 3. create the charge; the gateway's message is the operation's error
	charge, err := s.gateway.Charge(ctx, amount, chargeCurrency, token)
	if err != nil {
		return nil, err
	}

	// 4. convert the cart items to order item snapshots
	orderItems := make([]models.OrderItem, 0, len(cartItems))
	for _, item := range cartItems {
		orderItems = append(orderItems, models.OrderItem{
			Name:        item.Product.Name,
			Description: item.Product.Description,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
			PhotoID:     item.Product.PhotoID,
		})
	}

	// 5. create the order; the gateway-confirmed amount is authoritative
	order := models.Order{
		Total:  charge.Amount,
		Charge: charge.ID,
		Items:  orderItems,
		UserID: user.ID,
	}
	if err := db.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// 6. clear the cart, dangling items included; the order stands even if
	// this fails
	cartItemIDs := make([]string, 0, len(user.Cart))
	for _, item := range user.Cart {
		cartItemIDs = append(cartItemIDs, item.ID)
	}
	if len(cartItemIDs) > 0 {
		if err := db.DB.WithContext(ctx).Where("id IN ?", cartItemIDs).Delete(&models.CartItem{}).Error; err != nil {
			log.Printf("Failed to clear cart for user %s after order %s: %v", user.ID, order.ID, err)
		}
	}

	if err := db.DB.WithContext(ctx).Preload("Items.Photo").First(&order, "id = ?", order.ID).Error; err != nil {
		log.Printf("Failed to reload order %s: %v", order.ID, err)
	}
	return &order, nil
}
