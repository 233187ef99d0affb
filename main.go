package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"merchstore/config"
	"merchstore/handlers"
	"merchstore/repository"
	"merchstore/services"
	"merchstore/wallet"

	"github.com/gorilla/mux"
	_ "github.com/mattn/go-sqlite3"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := initCatalogDB()
	defer db.Close()
	rdb := initRedis(cfg)
	defer rdb.Close()

	catalogR, err := repository.NewCatalogRepository(db)
	if err != nil {
		panic(err)
	}
	if err = catalogR.Seed(repository.DefaultCatalog()); err != nil {
		panic(err)
	}
	log.Printf("catalog seeded")

	cartR, err := repository.NewCartRepository(rdb, context.Background())
	if err != nil {
		panic(err)
	}
	sessionR, err := repository.NewSessionRepository(rdb, context.Background())
	if err != nil {
		panic(err)
	}
	log.Printf("redis connected")

	verifier, err := repository.NewStaticVerifier(cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		panic(err)
	}

	// With no provider URL configured the wallet capability is absent and
	// every wallet operation reports it as unavailable.
	var provider wallet.Capability
	if cfg.WalletRPCURL != "" {
		provider = wallet.NewClient(cfg.WalletRPCURL)
	}

	cartService := services.NewCartService(catalogR, cartR)
	walletService := services.NewWalletService(provider)
	hp := handlers.HandlerParams{
		CatalogService:  services.NewCatalogService(catalogR),
		CartService:     cartService,
		CheckoutService: services.NewCheckoutService(cartService, walletService, provider, cfg.RecipientAddress, cfg.TokenAddress, cfg.OnrampURL),
		AdminService:    services.NewAdminService(verifier, sessionR),
	}
	ha := handlers.NewHandler(hp)

	router := mux.NewRouter()
	router.Use(ha.ErrorHandleMiddleware)
	subManAuth := router.NewRoute().Subrouter()
	subManAuth.Use(ha.ManagerAuthMiddleware)

	router.HandleFunc("/products", ha.GetProducts).Methods("GET")
	router.HandleFunc("/products/featured", ha.GetFeaturedProducts).Methods("GET")
	router.HandleFunc("/products/{id}", ha.GetProduct).Methods("GET")
	router.HandleFunc("/categories/{id}/products", ha.GetCategoryProducts).Methods("GET")

	router.HandleFunc("/cart", ha.GetCart).Methods("GET")
	router.HandleFunc("/cart", ha.AddToCart).Methods("POST")
	router.HandleFunc("/cart", ha.DeleteFromCart).Methods("DELETE")
	router.HandleFunc("/cart/quantity", ha.SetCartQuantity).Methods("POST")
	router.HandleFunc("/cart/clear", ha.ClearCart).Methods("POST")
	router.HandleFunc("/cart/payment_method", ha.SetPaymentMethod).Methods("POST")

	router.HandleFunc("/checkout", ha.GetCheckout).Methods("GET")
	router.HandleFunc("/checkout/start", ha.StartCheckout).Methods("POST")
	router.HandleFunc("/checkout/asset", ha.SelectCheckoutAsset).Methods("POST")
	router.HandleFunc("/checkout/connect", ha.ConnectWallet).Methods("POST")
	router.HandleFunc("/checkout/payment", ha.EnterPayment).Methods("POST")
	router.HandleFunc("/checkout/approve", ha.ApprovePayment).Methods("POST")
	router.HandleFunc("/checkout/pay", ha.Pay).Methods("POST")
	router.HandleFunc("/checkout/onramp", ha.GetOnrampURL).Methods("GET")
	router.HandleFunc("/checkout/onramp/closed", ha.OnrampClosed).Methods("POST")

	router.HandleFunc("/admin/signin", ha.AdminSignin).Methods("POST")
	router.HandleFunc("/admin/logout", ha.AdminLogout).Methods("POST")
	subManAuth.HandleFunc("/products/create", ha.CreateProduct).Methods("POST")
	subManAuth.HandleFunc("/products/{id}/update", ha.UpdateProduct).Methods("POST")
	subManAuth.HandleFunc("/products/{id}/delete", ha.DeleteProduct).Methods("DELETE")

	log.Printf("starting server on %s...", cfg.Addr)
	http.ListenAndServe(cfg.Addr, router)
}

// initCatalogDB opens the in-memory catalog store. Admin edits are
// deliberately non-durable.
func initCatalogDB() *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic(err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)
	return db
}

func initRedis(cfg config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	ctx, cncl := context.WithTimeout(context.Background(), 5*time.Second)
	defer cncl()
	if status := rdb.Ping(ctx); status.Err() != nil {
		panic("redis is not working: " + status.Err().Error())
	}
	return rdb
}
