package main

import (
	"log"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/server"
	"shop/internal/usecase"

	"github.com/joho/godotenv"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 14 * 24 * time.Hour
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.RefreshToken{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	tokenRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager)
	sellerOrderUC := usecase.NewSellerOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)
	authUC := usecase.NewAuthUsecase(userRepo, tokenRepo, cfg.JWTSecret, accessTokenTTL, refreshTokenTTL)

	//Handler生成
	e := server.New(cfg,
		handler.NewAuthHandler(authUC),
		handler.NewProductHandler(catalogUC),
		handler.NewCartHandler(cartUC),
		handler.NewWishlistHandler(wishlistUC),
		handler.NewOrderHandler(orderUC),
		handler.NewSellerOrderHandler(sellerOrderUC),
		handler.NewAdminProductHandler(catalogUC),
		handler.NewAdminOrderHandler(adminOrderUC),
		handler.NewAdminUserHandler(adminUserUC),
	)

	//Server起動
	if err := server.Start(e, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
