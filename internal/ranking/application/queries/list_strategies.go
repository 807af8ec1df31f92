package queries

import (
	"context"

	"github.com/felixgeelhaar/taskrank/internal/ranking/domain/scoring"
)

// ListStrategiesHandler describes the available strategies.
type ListStrategiesHandler struct {
	defaultStrategy scoring.Strategy
}

// StrategiesDTO lists the strategies and which one applies by default.
type StrategiesDTO struct {
	Strategies []scoring.StrategyInfo `json:"strategies"`
	Default    scoring.Strategy       `json:"default"`
}

// NewListStrategiesHandler creates a new ListStrategiesHandler.
func NewListStrategiesHandler(defaultStrategy scoring.Strategy) *ListStrategiesHandler {
	if !defaultStrategy.IsValid() {
		defaultStrategy = scoring.DefaultStrategy
	}
	return &ListStrategiesHandler{defaultStrategy: defaultStrategy}
}

// Handle returns the strategies in display order.
func (h *ListStrategiesHandler) Handle(_ context.Context) StrategiesDTO {
	return StrategiesDTO{Strategies: scoring.Strategies(), Default: h.defaultStrategy}
}
