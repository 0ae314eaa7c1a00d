package model

import "time"

// Opportunity tracks a prospective deal moving through the pipeline before
// it (optionally) becomes an Account. PaymentPlanMadeAt is stamped when the
// deal reaches the terminal stage; its zero value means "not yet".
type Opportunity struct {
	ID                 string
	Merchant           string
	Client             string
	Amount             string
	Type               string
	Frequency          string
	StartDate          string
	PaymentStatus      string
	Notes              string
	Stage              string
	ConvertedAccountID string
	PaymentPlanMadeAt  time.Time
}
