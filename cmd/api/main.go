package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/brainless/travlyng/internal/cache"
	"github.com/brainless/travlyng/internal/handler"
	"github.com/brainless/travlyng/internal/model"
	"github.com/brainless/travlyng/internal/repository"
	"github.com/brainless/travlyng/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq" // PostgreSQL драйвер
)

func main() {
	// Загружаем .env (в проде переменные приходят из окружения)
	if err := godotenv.Load(); err != nil {
		log.Println("Не найден .env, используем переменные окружения")
	}

	// Читаем параметры подключения к БД из переменных окружения
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	dsn := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		log.Fatalf("Не удалось подключиться к базе данных: %v", err)
	}
	// Выполняем миграции (если есть)
	files, err := filepath.Glob("migrations/*.sql")
	if err == nil {
		for _, file := range files {
			content, readErr := os.ReadFile(file)
			if readErr != nil {
				log.Printf("Не удалось прочитать миграцию %s: %v", file, readErr)
				continue
			}
			if _, execErr := db.Exec(string(content)); execErr != nil {
				log.Printf("Миграция %s завершилась ошибкой: %v", file, execErr)
			} else {
				log.Printf("Миграция %s применена.", file)
			}
		}
	}

	// Инициализируем репозитории
	placeRepo, err := repository.NewEntityRepository(db, "places")
	if err != nil {
		log.Fatalf("Ошибка инициализации репозитория: %v", err)
	}
	accommodationRepo, err := repository.NewEntityRepository(db, "accommodations")
	if err != nil {
		log.Fatalf("Ошибка инициализации репозитория: %v", err)
	}
	restaurantRepo, err := repository.NewEntityRepository(db, "restaurants")
	if err != nil {
		log.Fatalf("Ошибка инициализации репозитория: %v", err)
	}
	planRepo := repository.NewPlanRepository(db)
	planItemRepo := repository.NewPlanItemRepository(db)
	searchRepo := repository.NewSearchRepository(db)

	// Инициализируем сервисы. Кэш поиска необязателен: без REDIS_ADDR
	// поиск идет напрямую в базу.
	searchCache := cache.NewSearchCache(cache.NewClient(), 5*time.Minute)
	catalogService := service.NewCatalogService(placeRepo, accommodationRepo, restaurantRepo)
	planService := service.NewPlanService(planRepo, planItemRepo)
	planItemService := service.NewPlanItemService(planItemRepo)
	searchService := service.NewSearchService(searchRepo, searchCache)

	// Создаем Handler и регистрируем маршруты
	h := handler.NewHandler(catalogService, planService, planItemService, searchService)
	router := gin.Default()

	for path, t := range map[string]model.EntityType{
		"/places":         model.EntityTypePlace,
		"/accommodations": model.EntityTypeAccommodation,
		"/restaurants":    model.EntityTypeRestaurant,
	} {
		group := router.Group(path)
		{
			group.GET("", h.ListEntities(t))
			group.POST("", h.CreateEntity(t))
			group.GET("/:id", h.GetEntity(t))
			group.PUT("/:id", h.UpdateEntity(t))
			group.DELETE("/:id", h.DeleteEntity(t))
		}
	}

	plans := router.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", h.CreatePlan)
		plans.GET("/:planID", h.GetPlan)
		plans.PUT("/:planID", h.UpdatePlan)
		plans.DELETE("/:planID", h.DeletePlan)
		// Пункты маршрута адресуются только через родительский план
		plans.GET("/:planID/items", h.ListPlanItems)
		plans.POST("/:planID/items", h.CreatePlanItem)
		plans.GET("/:planID/items/:itemID", h.GetPlanItem)
		plans.PUT("/:planID/items/:itemID", h.UpdatePlanItem)
		plans.DELETE("/:planID/items/:itemID", h.DeletePlanItem)
	}

	// Плоское чтение пунктов всех планов для сквозного просмотра
	router.GET("/plan_items", h.ListAllPlanItems)
	router.GET("/search", h.Search)
	router.GET("/health", h.Health)

	// Запускаем HTTP-сервер
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
