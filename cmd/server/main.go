package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"notes-service/internal/config"
	"notes-service/internal/server"
)

const configFile = "config.yml"

func main() {
	// Загружаем конфигурацию из файла
	appConfig, err := config.InitConfig[config.Config](configFile)
	if err != nil {
		log.Fatalf("Error initializing config: %v", err)
	}

	log.Printf("Starting Notes Service")

	// Создаем сервер и инициализируем компоненты (DI): Repository → Service → Handler
	srv, err := server.NewServer(appConfig)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := srv.Initialize(); err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	// Канал для graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Запуск HTTP сервера в горутине
	errChan := srv.Start()

	// Ожидание сигнала или ошибки
	select {
	case err := <-errChan:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	}

	if err := srv.Shutdown(); err != nil {
		log.Printf("Shutdown finished with error: %v", err)
		os.Exit(1)
	}

	log.Println("Server stopped")
}
