package models

// Requests for valuation HTTP endpoints. Defined in domain for consistency and reuse.

type ClassifyRequest struct {
	Ratio float64 `query:"ratio" json:"ratio" validate:"required,gt=0"`
	Table string  `query:"table" json:"table" default:"pe" validate:"oneof=pe cape"`
}

type HistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"120" validate:"gte=1,lte=2000"`
}
