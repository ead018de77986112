package swagger

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
)

//go:embed embed/*
var swaggerContent embed.FS

// ServeSwagger добавляет маршруты для Swagger UI и swagger.json в указанный mux
//
// Создает следующие маршруты:
// - GET /swagger/ - страница Swagger UI
// - GET /swagger.json - OpenAPI спецификация API
func ServeSwagger(mux *http.ServeMux) {
	// Получаем встроенные файлы Swagger UI
	swaggerUI, err := fs.Sub(swaggerContent, "embed")
	if err != nil {
		log.Fatalf("Failed to get embedded Swagger UI files: %v", err)
	}

	// Создаем файловый сервер для статических файлов Swagger UI
	// StripPrefix убирает /swagger из пути перед поиском файла
	swaggerStaticsHandler := http.StripPrefix("/swagger", http.FileServer(http.FS(swaggerUI)))
	mux.Handle("/swagger/", swaggerStaticsHandler)

	// Редирект с /swagger на /swagger/index.html
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/swagger" {
			http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
			return
		}
		swaggerStaticsHandler.ServeHTTP(w, r)
	})

	// Основной эндпоинт для swagger.json (используется index.html)
	mux.HandleFunc("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		swaggerJSON, err := swaggerContent.ReadFile("embed/notes.swagger.json")
		if err != nil {
			http.Error(w, "Swagger JSON not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(swaggerJSON)
	})

	log.Println("Swagger UI enabled at /swagger/")
	log.Println("Swagger JSON available at /swagger.json")
}
