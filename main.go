package main

import (
	"log"
	"os"
	"time"

	"hungryhub/config"
	httpapi "hungryhub/internal/api/http"
	"hungryhub/internal/service"
	"hungryhub/internal/storage"
)

func main() {
	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	dishCache := storage.NewRedisDishCache(rdb, 10*time.Minute)
	publisher := storage.NewKafkaOrderPublisher(kafkaWriter)
	qr := service.DefaultQRGenerator{BaseURL: baseURL()}

	orderService := service.NewOrderService(repo, repo, repo, dishCache, publisher, qr)
	restaurantService := service.NewRestaurantService(repo, repo)

	handler := httpapi.NewHandler(orderService, restaurantService)
	httpapi.StartServer(":"+port(), httpapi.NewRouter(handler))
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8080"
}

func baseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost"
}
