// Package pipeline defines the fixed opportunity pipeline, the per-stage
// confidence weights used for forecasting, and the orchestrator that owns
// stage-transition side effects.
package pipeline

import (
	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
	"github.com/TheRealTradeX/ARG-Collectors-Hub/pkg/money"
)

// The ordered pipeline stages.
const (
	StageLead             = "Lead"
	StageOfferSent        = "Offer Sent"
	StageApproved         = "Approved"
	StageCountered        = "Countered"
	StageSettlementSent   = "Settlement Sent"
	StageSettlementSigned = "Settlement Signed"
	StagePaymentPlanMade  = "Payment Plan Made"
)

// Stages lists the pipeline in progression order. Payment Plan Made is the
// terminal stage; reaching it has side effects owned by the Orchestrator.
var Stages = []string{
	StageLead,
	StageOfferSent,
	StageApproved,
	StageCountered,
	StageSettlementSent,
	StageSettlementSigned,
	StagePaymentPlanMade,
}

// stageConfidence weights forecasted value by pipeline progress. Countered
// deliberately sits below Approved: a counter-offer reopens negotiation.
var stageConfidence = map[string]float64{
	StageLead:             0.2,
	StageOfferSent:        0.35,
	StageApproved:         0.6,
	StageCountered:        0.5,
	StageSettlementSent:   0.7,
	StageSettlementSigned: 0.85,
	StagePaymentPlanMade:  1,
}

// defaultConfidence is applied to unknown or missing stages, matching the
// first stage's weight.
const defaultConfidence = 0.2

// Confidence returns the forecast weight for a stage.
func Confidence(stage string) float64 {
	if weight, ok := stageConfidence[stage]; ok {
		return weight
	}
	return defaultConfidence
}

// IsStage reports whether the label names a pipeline stage.
func IsStage(stage string) bool {
	_, ok := stageConfidence[stage]
	return ok
}

// ForecastTotal sums amount times stage confidence across the supplied
// opportunities. Callers filter out expired or closed opportunities first.
func ForecastTotal(opportunities []model.Opportunity) float64 {
	var total float64
	for _, opp := range opportunities {
		total += money.Parse(opp.Amount) * Confidence(opp.Stage)
	}
	return total
}
