package classify

import "math"

// The two canonical tables for this domain. Both are plain values; custom
// tables with the same invariants work identically.

// PETable buckets a trailing P/E ratio into four zones.
func PETable() Table {
	return Table{
		{UpperBound: 16, ID: "attractive", Label: "ATTRACTIVE", ExpectedReturn: "8-12%",
			Description: "Market appears undervalued based on historical standards"},
		{UpperBound: 20, ID: "fair", Label: "FAIR VALUE", ExpectedReturn: "5-8%",
			Description: "Market is fairly valued relative to historical norms"},
		{UpperBound: 25, ID: "expensive", Label: "EXPENSIVE", ExpectedReturn: "3-5%",
			Description: "Market appears expensive based on historical standards"},
		{UpperBound: math.Inf(1), ID: "very-expensive", Label: "VERY EXPENSIVE", ExpectedReturn: "0-3%",
			Description: "Market is very expensive relative to historical norms"},
	}
}

// CAPETable buckets the cyclically-adjusted P/E into seven zones.
func CAPETable() Table {
	return Table{
		{UpperBound: 12, ID: "screaming-buy", Label: "SCREAMING BUY", ExpectedReturn: "12-15%",
			Description: "Generational buying opportunity by CAPE standards"},
		{UpperBound: 16, ID: "attractive", Label: "ATTRACTIVE", ExpectedReturn: "8-12%",
			Description: "Valuations well below the long-run norm"},
		{UpperBound: 20, ID: "fair", Label: "FAIR VALUE", ExpectedReturn: "5-8%",
			Description: "Valuations near the long-run norm"},
		{UpperBound: 25, ID: "expensive", Label: "EXPENSIVE", ExpectedReturn: "3-5%",
			Description: "Valuations stretched relative to history"},
		{UpperBound: 30, ID: "very-expensive", Label: "VERY EXPENSIVE", ExpectedReturn: "0-3%",
			Description: "Valuations in the top decile of history"},
		{UpperBound: 35, ID: "extremely-expensive", Label: "EXTREMELY EXPENSIVE", ExpectedReturn: "-2-0%",
			Description: "Valuations rarely seen outside major tops"},
		{UpperBound: math.Inf(1), ID: "bubble", Label: "BUBBLE TERRITORY", ExpectedReturn: "negative",
			Description: "Valuations at historic bubble extremes"},
	}
}

// TableByName resolves a configured metric name to its canonical table.
// Unknown names fall back to the P/E table.
func TableByName(name string) Table {
	if name == "cape" {
		return CAPETable()
	}
	return PETable()
}
