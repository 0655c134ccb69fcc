// backend-go/cmd/ingest/main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/jacengineering/inventario/backend-go/internal/config"
	"github.com/jacengineering/inventario/backend-go/internal/repository"
	"github.com/jacengineering/inventario/backend-go/internal/repository/postgres"
	"github.com/jacengineering/inventario/backend-go/internal/sheets"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	sheetsService, err := sheets.NewService(cfg.Sheets.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Sheets service: %v", err)
	}

	r := mux.NewRouter()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	paramsRepo := repository.NewParametersRepository(db.DB, db)
	solpedRepo := repository.NewSolpedRepository(db.DB)

	syncService := sheets.NewSyncService(sheetsService, cfg.Sheets, paramsRepo, solpedRepo)

	sheetsHandler := sheets.NewHandler(syncService)
	sheetsHandler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
