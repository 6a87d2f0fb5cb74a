package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Kalwarein/born-to-blog/internal/db"
	"github.com/Kalwarein/born-to-blog/internal/ingest"
	"github.com/Kalwarein/born-to-blog/internal/logger"
)

// Runner запускает один проход конвейера. Реализуется *ingest.Pipeline.
type Runner interface {
	Run(ctx context.Context) (ingest.Summary, error)
}

// Server хранит зависимости HTTP-обработчиков: конвейер и БД.
type Server struct {
	pipeline Runner
	db       *db.Database
}

// NewServer создаёт новый экземпляр Server.
func NewServer(pipeline Runner, database *db.Database) *Server {
	return &Server{pipeline: pipeline, db: database}
}

// corsHeaders выставляются на каждый ответ, включая preflight.
func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
}

// HandleFetchNews — точка входа конвейера. OPTIONS возвращает пустой 200
// для CORS-preflight; GET или POST выполняют один запуск и возвращают сводку.
// Тело запроса не используется.
func (s *Server) HandleFetchNews(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	summary, err := s.pipeline.Run(r.Context())
	if err != nil {
		logger.Log.Errorf("Pipeline run failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Success bool `json:"success"`
		ingest.Summary
	}{Success: true, Summary: summary})
}

// HealthCheck отвечает 200 OK, если база доступна, иначе 503.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Pool.Ping(r.Context()); err != nil {
		http.Error(w, "DB unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("OK"))
}
