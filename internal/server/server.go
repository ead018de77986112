package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"notes-service/internal/api/rest"
	"notes-service/internal/api/swagger"
	"notes-service/internal/config"
	"notes-service/internal/repository/memory"
	notesService "notes-service/internal/service/notes"
)

// Server представляет HTTP сервер приложения
type Server struct {
	// HTTP компоненты
	HTTPServer *http.Server
	HTTPAddr   string
	Listener   net.Listener

	// Контекст сервера для graceful shutdown WebSocket подписок.
	// Этот контекст отменяется при shutdown для корректного завершения стримов
	Ctx    context.Context
	Cancel context.CancelFunc

	// Конфигурация
	Config *config.Config
}

// NewServer создает и инициализирует новый экземпляр сервера
func NewServer(cfg *config.Config) (*Server, error) {
	// Получаем порт из конфига с дефолтным значением
	httpPort := cfg.Server.PortHTTP
	if httpPort == 0 {
		httpPort = 8080
		log.Printf("⚠️  Warning: PortHTTP is 0, using default 8080")
	}

	log.Printf("📋 Config loaded: HTTP port=%d", httpPort)

	httpAddr := "0.0.0.0:" + strconv.Itoa(httpPort)

	// Создаем listener заранее, чтобы ошибка занятого порта была видна при старте
	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	// Создаем контекст сервера для graceful shutdown подписок на события.
	// В отличие от обычных запросов, которые http.Server.Shutdown дожидается сам,
	// WebSocket подписки живут до отмены этого контекста
	serverCtx, serverCancel := context.WithCancel(context.Background())

	return &Server{
		HTTPAddr: httpAddr,
		Listener: listener,
		Ctx:      serverCtx,
		Cancel:   serverCancel,
		Config:   cfg,
	}, nil
}

// Initialize инициализирует компоненты сервера (Repository → Service → Handler)
func (s *Server) Initialize() error {
	// Инициализация компонентов (DI): Repository → Service → Handler
	noteRepo := memory.NewRepository()
	log.Println("Initialized in-memory repository (map-based)")

	eventService := notesService.NewEventService()
	log.Println("Initialized event service")

	noteSvc := notesService.NewNoteService(noteRepo, eventService)
	log.Println("Initialized note service")

	noteHandler := rest.NewHandler(noteSvc, eventService)
	log.Println("Initialized REST handler")

	apiHandler := rest.NewRouter(noteHandler, s.Config.HTTP)

	// Общий mux: Swagger UI (если включен) + API
	mux := http.NewServeMux()
	if s.Config.Swagger != nil && s.Config.Swagger.Enabled {
		log.Printf("🔧 Initializing Swagger UI...")
		swagger.ServeSwagger(mux)
	} else {
		log.Printf("⚠️  Swagger UI is disabled or not configured")
	}
	mux.Handle("/", apiHandler)

	// Создание HTTP сервера с таймаутами из конфигурации.
	// BaseContext привязывает контексты запросов к контексту сервера,
	// чтобы WebSocket подписки завершались при shutdown
	s.HTTPServer = &http.Server{
		Addr:              s.HTTPAddr,
		Handler:           mux,
		ReadTimeout:       time.Duration(s.Config.Server.HTTPReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.Config.Server.HTTPWriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(s.Config.Server.HTTPIdleTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(s.Config.Server.HTTPReadHeaderTimeout) * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return s.Ctx
		},
	}

	return nil
}

// Start запускает HTTP сервер в горутине
// Возвращает канал ошибок для отслеживания ошибок сервера
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		log.Printf("HTTP server listening on %s", s.HTTPAddr)
		if err := s.HTTPServer.Serve(s.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	log.Println("Starting graceful shutdown...")

	// Отменяем контекст сервера ПЕРЕД Shutdown(), чтобы WebSocket подписки,
	// которые слушают этот контекст, корректно завершились и не блокировали
	// ожидание активных соединений
	log.Println("Cancelling server context to signal event subscriptions to stop...")
	s.Cancel()

	shutdownTimeout := time.Duration(s.Config.Server.GracefulShutdownTimeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.HTTPServer.Shutdown(ctx); err != nil {
		log.Println("Graceful shutdown timeout, forcing stop...")
		if closeErr := s.HTTPServer.Close(); closeErr != nil {
			log.Printf("Forced stop error: %v", closeErr)
		}
		log.Println("HTTP server stopped forcefully")
		return err
	}

	log.Println("HTTP server stopped gracefully")
	return nil
}
