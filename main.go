package main

import (
	"log"
	"net/http"
	"os"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Missarachnid/sick-fits-backend/configs"
	"github.com/Missarachnid/sick-fits-backend/internal/auth"
	"github.com/Missarachnid/sick-fits-backend/internal/checkout"
	"github.com/Missarachnid/sick-fits-backend/internal/db"
	"github.com/Missarachnid/sick-fits-backend/internal/gql"
	"github.com/Missarachnid/sick-fits-backend/internal/payments"
	"github.com/Missarachnid/sick-fits-backend/internal/seed"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.CookieSecret == "" {
		log.Fatal("COOKIE_SECRET is not set in environment")
	}
	if cfg.StripeKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set in environment")
	}

	db.Init(cfg.DatabaseURL)
	auth.Init(cfg)

	if slices.Contains(os.Args, "--seed-data") {
		if err := seed.Insert(db.DB); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
	}

	r := gin.Default()

	// ── CORS, credentials included so the session cookie travels ──
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     cfg.CORSMethods,
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// ── stateless session cookie ──
	store := cookie.NewStore([]byte(cfg.CookieSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	r.Use(sessions.Sessions("sickfits", store))
	r.Use(auth.LoadSession())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// ── auth endpoints ──
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signin", auth.SignIn)
		authRoutes.POST("/signout", auth.SignOut)
		authRoutes.POST("/init", auth.InitFirstUser)
		authRoutes.POST("/request-reset", auth.RequestReset)
		authRoutes.POST("/reset-password", auth.ResetPassword)
	}

	// ── GraphQL API ──
	gateway := payments.NewStripeGateway(cfg.StripeKey)
	schema, err := gql.NewSchema(checkout.New(gateway))
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}
	r.POST("/api/graphql", gql.Handler(schema))

	r.Run(":" + cfg.Port)
}
