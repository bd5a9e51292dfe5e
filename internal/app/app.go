package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"listkeeper/internal/config"
	"listkeeper/internal/handlers"
	"listkeeper/internal/repositories"
	"listkeeper/internal/routes"
	"listkeeper/internal/services"
	"listkeeper/internal/storage"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	profileRepo := repositories.NewProfileRepository(db)
	listRepo := repositories.NewListRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	reminderRepo := repositories.NewReminderRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// === Services ===
	listService := services.NewListService(db, listRepo, taskRepo, tagRepo, reminderRepo, activityRepo)
	taskService := services.NewTaskService(db, taskRepo, listRepo, tagRepo, reminderRepo, activityRepo)
	tagService := services.NewTagService(db, tagRepo, taskRepo)
	reminderService := services.NewReminderService(db, reminderRepo, taskRepo)
	profileService := services.NewProfileService(db, profileRepo, listRepo, taskRepo, tagRepo, reminderRepo, activityRepo)

	// === Handlers ===
	profileHandler := handlers.NewProfileHandler(profileService)
	listHandler := handlers.NewListHandler(listService)
	taskHandler := handlers.NewTaskHandler(taskService, tagService)
	tagHandler := handlers.NewTagHandler(tagService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.Secret),
		profileHandler,
		listHandler,
		taskHandler,
		tagHandler,
		reminderHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
