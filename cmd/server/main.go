package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	mydb "storefront/internal/db"
	models "storefront/internal/models"
	"storefront/internal/shop"
	"storefront/internal/store"
	"storefront/internal/web"
)

func main() {
	// грузим .env из нескольких мест: текущая папка, родительская, корень репо
	config.LoadDotenv()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.GinMode)

	// без DB_DSN всё живёт в памяти процесса
	var st store.Store
	if cfg.DBDSN != "" {
		db := mydb.MustOpen(cfg.DBDSN)
		sqlDB, _ := db.DB()
		defer sqlDB.Close()
		gs, err := store.NewGormStore(db)
		if err != nil {
			log.Fatal(err)
		}
		st = gs
		log.Println("store: postgres")
	} else {
		st = store.NewMemoryStore()
		log.Println("WARN: DB_DSN is empty; using in-memory store")
	}

	opts := []shop.Option{shop.WithPasswordHashing(cfg.HashPasswords)}
	if cfg.SeedFile != "" {
		seed, err := models.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			log.Fatal("failed to load seed: ", err)
		}
		opts = append(opts, shop.WithSeed(seed))
		log.Printf("catalog: %d built-in products from %s", len(seed), cfg.SeedFile)
	}

	r := web.NewRouter(st, web.Options{
		SessionSecret: cfg.SessionSecret,
		ShopOptions:   opts,
	})

	log.Println("Server listening on :" + cfg.AppPort)
	log.Fatal(r.Run(":" + cfg.AppPort))
}
