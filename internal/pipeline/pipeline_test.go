package pipeline

import (
	"testing"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

func TestConfidence(t *testing.T) {
	tests := []struct {
		name     string
		stage    string
		expected float64
	}{
		{name: "Lead", stage: StageLead, expected: 0.2},
		{name: "Offer Sent", stage: StageOfferSent, expected: 0.35},
		{name: "Approved", stage: StageApproved, expected: 0.6},
		{name: "Countered dips below Approved", stage: StageCountered, expected: 0.5},
		{name: "Settlement Sent", stage: StageSettlementSent, expected: 0.7},
		{name: "Settlement Signed", stage: StageSettlementSigned, expected: 0.85},
		{name: "Payment Plan Made", stage: StagePaymentPlanMade, expected: 1},
		{name: "Unknown stage defaults", stage: "Cold Call", expected: 0.2},
		{name: "Missing stage defaults", stage: "", expected: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Confidence(tt.stage); got != tt.expected {
				t.Errorf("Confidence(%q) = %v, expected %v", tt.stage, got, tt.expected)
			}
		})
	}
}

func TestConfidenceCoversEveryStage(t *testing.T) {
	for _, stage := range Stages {
		if !IsStage(stage) {
			t.Errorf("stage %q has no confidence weight", stage)
		}
		weight := Confidence(stage)
		if weight < 0 || weight > 1 {
			t.Errorf("stage %q weight %v outside [0,1]", stage, weight)
		}
	}
}

func TestForecastTotal(t *testing.T) {
	opportunities := []model.Opportunity{
		{Amount: "$1,000", Stage: StageLead},
		{Amount: "$2,000", Stage: StagePaymentPlanMade},
	}
	if got := ForecastTotal(opportunities); got != 2200 {
		t.Errorf("ForecastTotal() = %v, expected 2200", got)
	}
}

func TestForecastTotalDegradesSoftly(t *testing.T) {
	opportunities := []model.Opportunity{
		{Amount: "call for pricing", Stage: StageApproved},
		{Amount: "$500", Stage: "Not A Stage"},
	}
	if got := ForecastTotal(opportunities); got != 100 {
		t.Errorf("ForecastTotal() = %v, expected 100", got)
	}
}

func TestForecastTotalEmpty(t *testing.T) {
	if got := ForecastTotal(nil); got != 0 {
		t.Errorf("ForecastTotal(nil) = %v, expected 0", got)
	}
}
