// Package handlers provides Lambda handlers for the agri BNPL scoring engine.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"agri-bnpl-engine/internal/metrics"
	"agri-bnpl-engine/internal/models"
	"agri-bnpl-engine/internal/services/scoring"
	"agri-bnpl-engine/internal/utils"
)

// ScoreHandler scores a single farmer profile submitted in the request body.
type ScoreHandler struct{}

// NewScoreHandler creates a new score handler.
func NewScoreHandler() *ScoreHandler {
	return &ScoreHandler{}
}

// Handle processes risk-score requests.
func (h *ScoreHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	headers := map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}

	var profile models.FarmerProfile
	if err := json.Unmarshal([]byte(request.Body), &profile); err != nil {
		return errorResponse(http.StatusBadRequest, "invalid request body", headers), nil
	}

	if err := models.ValidateProfile(&profile); err != nil {
		return errorResponse(http.StatusUnprocessableEntity, err.Error(), headers), nil
	}

	start := time.Now()
	result := scoring.Score(&profile)
	metrics.ScoringDuration.Observe(time.Since(start).Seconds())
	metrics.ScoringRequests.WithLabelValues("lambda").Inc()
	metrics.ScoringDecisions.WithLabelValues(string(result.Decision), string(result.RiskCategory)).Inc()

	utils.Logger.Info("Scored farmer profile",
		zap.String("farmer_id", profile.FarmerID),
		zap.Float64("risk_score", result.RiskScore),
		zap.String("decision", string(result.Decision)),
	)

	body, _ := json.Marshal(result)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

func errorResponse(status int, message string, headers map[string]string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}
