package main

import (
	app "user-management/internal"
	"user-management/internal/config/database"
	"user-management/internal/config/env"
	"user-management/internal/config/logger"
	"user-management/internal/config/monitor"
	"user-management/internal/config/redis"
	"user-management/internal/config/validation"
	"user-management/internal/config/web"
)

func main() {
	config := env.NewConfig()
	log := logger.NewLogger(config)
	web := web.NewFiber(log, config)
	redis := redis.NewRedis(log, config)
	db := database.NewDatabase(log, config)
	monitoring := monitor.NewMonitoring(log, config)
	validation := validation.NewValidation()
	defer monitoring.Shutdown()

	if err := database.RunMigrations(log, db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	server := app.NewApp(log, config, db, web, validation, redis)
	if err := server.Run(); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
