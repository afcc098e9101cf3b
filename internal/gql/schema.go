// Package gql exposes the lists and the checkout flow as a GraphQL API.
// The schema is built at startup; field resolution for plain struct
// fields is left to the engine's default resolver via json tags.
package gql

import (
	"github.com/graphql-go/graphql"

	"github.com/Missarachnid/sick-fits-backend/internal/access"
	"github.com/Missarachnid/sick-fits-backend/internal/checkout"
	"github.com/Missarachnid/sick-fits-backend/internal/lists"
	"github.com/Missarachnid/sick-fits-backend/internal/models"
)

func NewSchema(checkoutSvc *checkout.Service) (graphql.Schema, error) {
	statusEnum := graphql.NewEnum(graphql.EnumConfig{
		Name: "ProductStatus",
		Values: graphql.EnumValueConfigMap{
			"DRAFT":       &graphql.EnumValueConfig{Value: models.ProductStatusDraft},
			"AVAILABLE":   &graphql.EnumValueConfig{Value: models.ProductStatusAvailable},
			"UNAVAILABLE": &graphql.EnumValueConfig{Value: models.ProductStatusUnavailable},
		},
	})

	photoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProductImage",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"image":   &graphql.Field{Type: graphql.String},
			"altText": &graphql.Field{Type: graphql.String},
		},
	})

	roleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Role",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":              &graphql.Field{Type: graphql.String},
			"canManageProducts": &graphql.Field{Type: graphql.Boolean},
			"canSeeOtherUsers":  &graphql.Field{Type: graphql.Boolean},
			"canManageUsers":    &graphql.Field{Type: graphql.Boolean},
			"canManageRoles":    &graphql.Field{Type: graphql.Boolean},
			"canManageCart":     &graphql.Field{Type: graphql.Boolean},
			"canManageOrders":   &graphql.Field{Type: graphql.Boolean},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: statusEnum},
			"price":       &graphql.Field{Type: graphql.Int},
			"photo":       &graphql.Field{Type: photoType},
		},
	})

	cartItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CartItem",
		Fields: graphql.Fields{
			"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"quantity": &graphql.Field{Type: graphql.Int},
			"product":  &graphql.Field{Type: productType},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"price":       &graphql.Field{Type: graphql.Int},
			"quantity":    &graphql.Field{Type: graphql.Int},
			"photo":       &graphql.Field{Type: photoType},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"total":  &graphql.Field{Type: graphql.Int},
			"charge": &graphql.Field{Type: graphql.String},
			"items":  &graphql.Field{Type: graphql.NewList(orderItemType)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.String},
			"email": &graphql.Field{Type: graphql.String},
			"role":  &graphql.Field{Type: roleType},
			"cart":  &graphql.Field{Type: graphql.NewList(cartItemType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(productType)),
				Args: graphql.FieldConfigArgument{
					"search": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					search, _ := p.Args["search"].(string)
					return lists.Products(p.Context, access.FromContext(p.Context), search)
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return lists.Product(p.Context, access.FromContext(p.Context), id)
				},
			},
			"authenticatedItem": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user, err := lists.Me(p.Context, access.FromContext(p.Context))
					if user == nil {
						return nil, err
					}
					return user, err
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(userType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return lists.Users(p.Context, access.FromContext(p.Context))
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return lists.User(p.Context, access.FromContext(p.Context), id)
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(orderType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return lists.Orders(p.Context, access.FromContext(p.Context))
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return lists.Order(p.Context, access.FromContext(p.Context), id)
				},
			},
			"orderItems": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(orderItemType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return lists.OrderItems(p.Context, access.FromContext(p.Context))
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"checkout": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, _ := p.Args["token"].(string)
					return checkoutSvc.Checkout(p.Context, access.FromContext(p.Context), token)
				},
			},
			"addToCart": &graphql.Field{
				Type: cartItemType,
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					productID, _ := p.Args["productId"].(string)
					return lists.AddToCart(p.Context, access.FromContext(p.Context), productID)
				},
			},
			"removeFromCart": &graphql.Field{
				Type: cartItemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return lists.RemoveFromCart(p.Context, access.FromContext(p.Context), id)
				},
			},
			"createProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"status":      &graphql.ArgumentConfig{Type: statusEnum},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
					"altText":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					in := lists.ProductInput{}
					in.Name, _ = p.Args["name"].(string)
					in.Description, _ = p.Args["description"].(string)
					if v, ok := p.Args["price"].(int); ok {
						in.Price = int64(v)
					}
					in.Status, _ = p.Args["status"].(string)
					in.Image, _ = p.Args["image"].(string)
					in.AltText, _ = p.Args["altText"].(string)
					return lists.CreateProduct(p.Context, access.FromContext(p.Context), in)
				},
			},
			"updateProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":        &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"price":       &graphql.ArgumentConfig{Type: graphql.Int},
					"status":      &graphql.ArgumentConfig{Type: statusEnum},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					var upd lists.ProductUpdate
					if v, ok := p.Args["name"].(string); ok {
						upd.Name = &v
					}
					if v, ok := p.Args["description"].(string); ok {
						upd.Description = &v
					}
					if v, ok := p.Args["price"].(int); ok {
						price := int64(v)
						upd.Price = &price
					}
					if v, ok := p.Args["status"].(string); ok {
						upd.Status = &v
					}
					return lists.UpdateProduct(p.Context, access.FromContext(p.Context), id, upd)
				},
			},
			"deleteProduct": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					return lists.DeleteProduct(p.Context, access.FromContext(p.Context), id)
				},
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":     &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					var upd lists.UserUpdate
					if v, ok := p.Args["name"].(string); ok {
						upd.Name = &v
					}
					if v, ok := p.Args["email"].(string); ok {
						upd.Email = &v
					}
					if v, ok := p.Args["password"].(string); ok {
						upd.Password = &v
					}
					return lists.UpdateUser(p.Context, access.FromContext(p.Context), id, upd)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
