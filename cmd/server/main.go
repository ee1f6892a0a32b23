// Package main runs the agri BNPL scoring API server. It serves the
// scoring, product-match, and explanation pipeline over HTTP, with the
// read-only reference data loaded once at startup from PostgreSQL, S3, or
// the bundled JSON files, in that order of preference.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"agri-bnpl-engine/internal/config"
	"agri-bnpl-engine/internal/metrics"
	"agri-bnpl-engine/internal/models"
	"agri-bnpl-engine/internal/services/database"
	"agri-bnpl-engine/internal/services/dataset"
	"agri-bnpl-engine/internal/services/explain"
	"agri-bnpl-engine/internal/services/products"
	s3service "agri-bnpl-engine/internal/services/s3"
	"agri-bnpl-engine/internal/services/scoring"
	sesservice "agri-bnpl-engine/internal/services/ses"
	"agri-bnpl-engine/internal/utils"
)

// Server holds all dependencies.
type Server struct {
	store  *dataset.Store
	db     *database.DB
	mailer *sesservice.Service
	config *config.Config
}

// NotifyRequest asks the server to email a decision report to a loan officer.
type NotifyRequest struct {
	FarmerID     string `json:"farmer_id"`
	OfficerEmail string `json:"officer_email"`
}

// ProductMatchRequest overrides budget and requested categories for a stored
// farmer.
type ProductMatchRequest struct {
	FarmerID          string   `json:"farmer_id"`
	Budget            float64  `json:"budget"`
	RequestedProducts []string `json:"requested_products"`
}

// BatchScoreResponse is the result of scoring the entire dataset.
type BatchScoreResponse struct {
	BatchID string                `json:"batch_id"`
	Results []*models.ScoreResult `json:"results"`
	Total   int                   `json:"total"`
}

func main() {
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	server := &Server{config: cfg}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	server.store, server.db = loadReferenceData(ctx, cfg)
	cancel()

	if cfg.SESSenderEmail != "" {
		mailer, err := sesservice.NewService(context.Background(), cfg)
		if err != nil {
			utils.Logger.Warn("Could not initialize SES mailer", zap.Error(err))
		} else {
			server.mailer = mailer
		}
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", server.healthHandler)
	mux.HandleFunc("GET /api/v1/farmers", server.farmersHandler)
	mux.HandleFunc("GET /api/v1/farmers/{id}", server.farmerHandler)
	mux.HandleFunc("POST /api/v1/risk-score", server.riskScoreHandler)
	mux.HandleFunc("POST /api/v1/risk-score/batch", server.batchScoreHandler)
	mux.HandleFunc("GET /api/v1/risk-score/{id}", server.riskScoreByIDHandler)
	mux.HandleFunc("GET /api/v1/risk-score/{id}/explain", server.explainHandler)
	mux.HandleFunc("POST /api/v1/product-match", server.productMatchHandler)
	mux.HandleFunc("GET /api/v1/product-match/{id}", server.productMatchByIDHandler)
	mux.HandleFunc("GET /api/v1/dashboard/all/summary", server.summaryHandler)
	mux.HandleFunc("GET /api/v1/dashboard/{id}", server.dashboardHandler)
	mux.HandleFunc("POST /api/v1/notify", server.notifyHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)
	utils.Logger.Info("Agri BNPL Scoring Engine API",
		zap.String("addr", addr),
		zap.Int("farmers", len(server.store.Farmers())),
		zap.Int("products", len(server.store.Products())),
	)

	if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// loadReferenceData builds the in-memory store, preferring PostgreSQL, then
// S3, then the local data directory.
func loadReferenceData(ctx context.Context, cfg *config.Config) (*dataset.Store, *database.DB) {
	if cfg.DBPassword != "" {
		if db, err := database.New(cfg); err == nil {
			farmers, ferr := database.NewFarmerRepository(db).GetAll(ctx)
			catalog, cerr := database.NewCatalogRepository(db).GetAll(ctx)
			if ferr == nil && cerr == nil && len(farmers) > 0 {
				utils.Logger.Info("Loaded reference data from PostgreSQL",
					zap.Int("farmers", len(farmers)),
					zap.Int("products", len(catalog)),
				)
				return dataset.New(farmers, catalog), db
			}
			utils.Logger.Warn("PostgreSQL reference data unavailable, falling back",
				zap.NamedError("farmers_err", ferr),
				zap.NamedError("catalog_err", cerr),
			)
			db.Close()
		} else {
			utils.Logger.Warn("Could not connect to database, falling back", zap.Error(err))
		}
	}

	if cfg.DatasetFromS3() {
		if svc, err := s3service.NewService(ctx, cfg); err == nil {
			farmersRaw, productsRaw, err := svc.FetchDataset(ctx, cfg.S3FarmersKey, cfg.S3ProductsKey)
			if err == nil {
				if store, err := dataset.Decode(farmersRaw, productsRaw); err == nil {
					return store, nil
				}
			}
			utils.Logger.Warn("S3 dataset unavailable, falling back to local files", zap.Error(err))
		}
	}

	store, err := dataset.Load(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to load reference data from %s: %v", cfg.DataDir, err)
	}
	return store, nil
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "not configured"
	if s.db != nil {
		dbStatus = "connected"
		if err := s.db.HealthCheck(r.Context()); err != nil {
			dbStatus = "disconnected"
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "agri-bnpl-engine",
		"version":   "1.0.0",
		"database":  dbStatus,
		"farmers":   len(s.store.Farmers()),
		"products":  len(s.store.Products()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) farmersHandler(w http.ResponseWriter, r *http.Request) {
	farmers := s.store.Farmers()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"farmers": farmers,
		"total":   len(farmers),
	})
}

func (s *Server) farmerHandler(w http.ResponseWriter, r *http.Request) {
	farmer, ok := s.store.FarmerByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}
	writeJSON(w, http.StatusOK, farmer)
}

func (s *Server) riskScoreHandler(w http.ResponseWriter, r *http.Request) {
	var profile models.FarmerProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := models.ValidateProfile(&profile); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.score(&profile))
}

func (s *Server) riskScoreByIDHandler(w http.ResponseWriter, r *http.Request) {
	farmer, ok := s.store.FarmerByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}
	writeJSON(w, http.StatusOK, s.score(farmer))
}

func (s *Server) explainHandler(w http.ResponseWriter, r *http.Request) {
	farmer, ok := s.store.FarmerByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	result := s.score(farmer)
	writeJSON(w, http.StatusOK, explain.Explain(farmer, result))
}

func (s *Server) batchScoreHandler(w http.ResponseWriter, r *http.Request) {
	batchID := uuid.NewString()
	farmers := s.store.Farmers()

	results := make([]*models.ScoreResult, 0, len(farmers))
	for i := range farmers {
		results = append(results, s.score(&farmers[i]))
	}

	utils.Logger.Info("Batch scoring complete",
		zap.String("batch_id", batchID),
		zap.Int("total", len(results)),
	)

	writeJSON(w, http.StatusOK, BatchScoreResponse{
		BatchID: batchID,
		Results: results,
		Total:   len(results),
	})
}

func (s *Server) productMatchHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, ok := s.store.FarmerByID(req.FarmerID)
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	// Overlay the request's budget and categories on the stored profile.
	profile := *farmer
	profile.RequestedAmount = req.Budget
	profile.RequestedProducts = req.RequestedProducts

	result := s.score(farmer)
	writeJSON(w, http.StatusOK, s.match(&profile, float64(result.BNPLLimit)))
}

func (s *Server) productMatchByIDHandler(w http.ResponseWriter, r *http.Request) {
	farmer, ok := s.store.FarmerByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	result := s.score(farmer)
	writeJSON(w, http.StatusOK, s.match(farmer, float64(result.BNPLLimit)))
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	farmer, ok := s.store.FarmerByID(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	result := s.score(farmer)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"farmer":      farmer,
		"risk_score":  result,
		"products":    s.match(farmer, float64(result.BNPLLimit)),
		"explanation": explain.Explain(farmer, result),
	})
}

func (s *Server) summaryHandler(w http.ResponseWriter, r *http.Request) {
	farmers := s.store.Farmers()
	summaries := make([]models.FarmerScoreSummary, 0, len(farmers))

	for i := range farmers {
		farmer := &farmers[i]
		result := s.score(farmer)
		summaries = append(summaries, models.FarmerScoreSummary{
			FarmerID:          farmer.FarmerID,
			Name:              farmer.Name,
			Region:            farmer.Region,
			FarmType:          farmer.FarmType,
			CropType:          farmer.CropType,
			RiskScore:         result.RiskScore,
			RiskCategory:      result.RiskCategory,
			Decision:          result.Decision,
			BNPLLimit:         result.BNPLLimit,
			InstallmentMonths: result.RecommendedInstallmentMonths,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"summaries": summaries,
		"total":     len(summaries),
	})
}

func (s *Server) notifyHandler(w http.ResponseWriter, r *http.Request) {
	if s.mailer == nil {
		writeError(w, http.StatusServiceUnavailable, "Email notifications are not configured")
		return
	}

	var req NotifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OfficerEmail == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	farmer, ok := s.store.FarmerByID(req.FarmerID)
	if !ok {
		writeError(w, http.StatusNotFound, "Farmer not found")
		return
	}

	report := explain.Explain(farmer, s.score(farmer))
	sent, err := s.mailer.SendDecisionReport(r.Context(), req.OfficerEmail, report)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Failed to send decision report")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message_id": sent.MessageID,
		"sent_at":    sent.SentAt.UTC().Format(time.RFC3339),
	})
}

// score runs the scorer and records metrics.
func (s *Server) score(profile *models.FarmerProfile) *models.ScoreResult {
	start := time.Now()
	result := scoring.Score(profile)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.ScoringRequests.WithLabelValues("http").Inc()
	metrics.ScoringDecisions.WithLabelValues(string(result.Decision), string(result.RiskCategory)).Inc()
	return result
}

// match runs the product matcher against the loaded catalog.
func (s *Server) match(profile *models.FarmerProfile, bnplLimit float64) *models.MatchResult {
	result := products.Match(profile, s.store.Products(), bnplLimit)
	metrics.MatchRecommendations.Observe(float64(len(result.Recommendations)))
	return result
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
