package lists_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/lists"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

func setupListsDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	err = testDB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.ProductImage{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return testDB
}

func createUser(t *testing.T, testDB *gorm.DB, email string, role *models.Role) models.User {
	user := models.User{Name: email, Email: email, Password: "x"}
	if role != nil {
		require.NoError(t, testDB.Create(role).Error)
		user.RoleID = &role.ID
		user.Role = role
	}
	require.NoError(t, testDB.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, testDB *gorm.DB, name, status, ownerID string, price int64) models.Product {
	product := models.Product{Name: name, Status: status, Price: price, UserID: ownerID}
	require.NoError(t, testDB.Create(&product).Error)
	return product
}

func sessionFor(user models.User) *access.Session {
	return &access.Session{UserID: user.ID, Role: user.Role}
}

func TestProductsVisibility(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	bob := createUser(t, testDB, "bob@example.com", nil)
	admin := createUser(t, testDB, "admin@example.com", &models.Role{Name: "Admin", CanManageProducts: true})

	createProduct(t, testDB, "Alice Draft", models.ProductStatusDraft, alice.ID, 100)
	createProduct(t, testDB, "Alice Public", models.ProductStatusAvailable, alice.ID, 200)
	createProduct(t, testDB, "Bob Public", models.ProductStatusAvailable, bob.ID, 300)
	createProduct(t, testDB, "Bob Draft", models.ProductStatusDraft, bob.ID, 400)

	names := func(products []models.Product) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	t.Run("anonymous visitors see only available products", func(t *testing.T) {
		products, err := lists.Products(ctx, nil, "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Alice Public", "Bob Public"}, names(products))
	})

	t.Run("owners also see their own drafts", func(t *testing.T) {
		products, err := lists.Products(ctx, sessionFor(alice), "")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Alice Draft", "Alice Public", "Bob Public"}, names(products))
	})

	t.Run("product managers see everything", func(t *testing.T) {
		products, err := lists.Products(ctx, sessionFor(admin), "")
		require.NoError(t, err)
		assert.Len(t, products, 4)
	})

	t.Run("search narrows within the visible set", func(t *testing.T) {
		products, err := lists.Products(ctx, nil, "Bob")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Bob Public"}, names(products))
	})

	t.Run("a draft someone else owns is not found", func(t *testing.T) {
		var bobDraft models.Product
		require.NoError(t, testDB.First(&bobDraft, "name = ?", "Bob Draft").Error)

		_, err := lists.Product(ctx, sessionFor(alice), bobDraft.ID)
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})
}

func TestProductManagement(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	bob := createUser(t, testDB, "bob@example.com", nil)

	t.Run("creating requires a signed-in caller", func(t *testing.T) {
		_, err := lists.CreateProduct(ctx, nil, lists.ProductInput{Name: "Nope", Price: 1})
		assert.ErrorIs(t, err, lists.ErrNotSignedIn)
	})

	product, err := lists.CreateProduct(ctx, sessionFor(alice), lists.ProductInput{
		Name:        "Alice Thing",
		Description: "hers",
		Price:       500,
		Image:       "https://images.example.com/thing.jpg",
		AltText:     "A thing",
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, product.UserID)
	assert.Equal(t, models.ProductStatusDraft, product.Status)
	require.NotNil(t, product.Photo)
	assert.Equal(t, "A thing", product.Photo.AltText)

	t.Run("owners can update their own product", func(t *testing.T) {
		newPrice := int64(600)
		updated, err := lists.UpdateProduct(ctx, sessionFor(alice), product.ID, lists.ProductUpdate{Price: &newPrice})
		require.NoError(t, err)
		assert.Equal(t, int64(600), updated.Price)
	})

	t.Run("non-owners without the permission cannot touch it", func(t *testing.T) {
		newPrice := int64(1)
		_, err := lists.UpdateProduct(ctx, sessionFor(bob), product.ID, lists.ProductUpdate{Price: &newPrice})
		assert.ErrorIs(t, err, lists.ErrNotFound)

		_, err = lists.DeleteProduct(ctx, sessionFor(bob), product.ID)
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})

	t.Run("owners can delete", func(t *testing.T) {
		_, err := lists.DeleteProduct(ctx, sessionFor(alice), product.ID)
		require.NoError(t, err)

		var count int64
		testDB.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestAddToCart(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	product := createProduct(t, testDB, "Widget", models.ProductStatusAvailable, alice.ID, 100)

	t.Run("requires a signed-in caller", func(t *testing.T) {
		_, err := lists.AddToCart(ctx, nil, product.ID)
		assert.ErrorIs(t, err, lists.ErrNotSignedIn)
	})

	item, err := lists.AddToCart(ctx, sessionFor(alice), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, "Widget", item.Product.Name)

	t.Run("adding again bumps the quantity instead of duplicating", func(t *testing.T) {
		again, err := lists.AddToCart(ctx, sessionFor(alice), product.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, again.ID)
		assert.Equal(t, 2, again.Quantity)

		var count int64
		testDB.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown products are rejected", func(t *testing.T) {
		_, err := lists.AddToCart(ctx, sessionFor(alice), "no-such-product")
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})
}

func TestRemoveFromCart(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	bob := createUser(t, testDB, "bob@example.com", nil)
	product := createProduct(t, testDB, "Widget", models.ProductStatusAvailable, alice.ID, 100)

	item, err := lists.AddToCart(ctx, sessionFor(alice), product.ID)
	require.NoError(t, err)

	t.Run("someone else's cart item is out of reach", func(t *testing.T) {
		_, err := lists.RemoveFromCart(ctx, sessionFor(bob), item.ID)
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})

	t.Run("owners can remove their own", func(t *testing.T) {
		removed, err := lists.RemoveFromCart(ctx, sessionFor(alice), item.ID)
		require.NoError(t, err)
		assert.Equal(t, item.ID, removed.ID)

		var count int64
		testDB.Model(&models.CartItem{}).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestOrderVisibility(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	bob := createUser(t, testDB, "bob@example.com", nil)
	manager := createUser(t, testDB, "manager@example.com", &models.Role{Name: "Support", CanManageCart: true})

	aliceOrder := models.Order{
		Total: 35, Charge: "ch_alice", UserID: alice.ID,
		Items: []models.OrderItem{{Name: "Shirt", Price: 10, Quantity: 2}},
	}
	bobOrder := models.Order{
		Total: 50, Charge: "ch_bob", UserID: bob.ID,
		Items: []models.OrderItem{{Name: "Socks", Price: 5, Quantity: 10}},
	}
	require.NoError(t, testDB.Create(&aliceOrder).Error)
	require.NoError(t, testDB.Create(&bobOrder).Error)

	t.Run("anonymous callers are denied", func(t *testing.T) {
		_, err := lists.Orders(ctx, nil)
		assert.ErrorIs(t, err, lists.ErrAccessDenied)
	})

	t.Run("users see only their own orders", func(t *testing.T) {
		orders, err := lists.Orders(ctx, sessionFor(alice))
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ch_alice", orders[0].Charge)

		_, err = lists.Order(ctx, sessionFor(alice), bobOrder.ID)
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})

	t.Run("cart managers see every order", func(t *testing.T) {
		orders, err := lists.Orders(ctx, sessionFor(manager))
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("order items follow the parent order's owner", func(t *testing.T) {
		items, err := lists.OrderItems(ctx, sessionFor(alice))
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Shirt", items[0].Name)

		items, err = lists.OrderItems(ctx, sessionFor(manager))
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestUserAccess(t *testing.T) {
	testDB := setupListsDB(t)
	ctx := context.Background()

	alice := createUser(t, testDB, "alice@example.com", nil)
	bob := createUser(t, testDB, "bob@example.com", nil)
	admin := createUser(t, testDB, "admin@example.com", &models.Role{Name: "Admin", CanManageUsers: true})

	t.Run("anonymous callers have no authenticated item", func(t *testing.T) {
		me, err := lists.Me(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, me)
	})

	t.Run("me returns the caller with role and cart", func(t *testing.T) {
		me, err := lists.Me(ctx, sessionFor(admin))
		require.NoError(t, err)
		require.NotNil(t, me)
		assert.Equal(t, "admin@example.com", me.Email)
		require.NotNil(t, me.Role)
		assert.True(t, me.Role.CanManageUsers)
	})

	t.Run("users without the permission only reach themselves", func(t *testing.T) {
		users, err := lists.Users(ctx, sessionFor(alice))
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, alice.ID, users[0].ID)

		_, err = lists.User(ctx, sessionFor(alice), bob.ID)
		assert.ErrorIs(t, err, lists.ErrNotFound)
	})

	t.Run("user managers reach everyone", func(t *testing.T) {
		users, err := lists.Users(ctx, sessionFor(admin))
		require.NoError(t, err)
		assert.Len(t, users, 3)

		fetched, err := lists.User(ctx, sessionFor(admin), bob.ID)
		require.NoError(t, err)
		assert.Equal(t, bob.ID, fetched.ID)
	})

	t.Run("updating rehashes a new password", func(t *testing.T) {
		name := "Alice Renamed"
		password := "new-password-123"
		updated, err := lists.UpdateUser(ctx, sessionFor(alice), alice.ID, lists.UserUpdate{Name: &name, Password: &password})
		require.NoError(t, err)
		assert.Equal(t, "Alice Renamed", updated.Name)
		assert.NotEqual(t, "new-password-123", updated.Password)
	})
}
