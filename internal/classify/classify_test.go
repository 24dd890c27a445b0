package classify

import (
	"math"
	"testing"
)

func TestClassifyPE(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{10, "attractive"},
		{18, "fair"},
		{22, "expensive"},
		{30, "very-expensive"},
		{15.99, "attractive"},
		{16, "fair"},
		{25, "very-expensive"},
		{1000, "very-expensive"},
	}
	table := PETable()
	for _, tt := range tests {
		got := Classify(tt.ratio, table)
		if got.ZoneID != tt.want {
			t.Fatalf("classify(%v): expected %q, got %q", tt.ratio, tt.want, got.ZoneID)
		}
	}
}

func TestClassifyCAPE(t *testing.T) {
	table := CAPETable()
	if got := Classify(11, table); got.ZoneID != "screaming-buy" {
		t.Fatalf("classify(11): expected screaming-buy, got %q", got.ZoneID)
	}
	if got := Classify(38, table); got.ZoneID != "bubble" {
		t.Fatalf("classify(38): expected bubble, got %q", got.ZoneID)
	}
}

func TestClassifyPopulatesAllFields(t *testing.T) {
	got := Classify(18, PETable())
	if got.Label != "FAIR VALUE" || got.ExpectedReturn != "5-8%" || got.Description == "" {
		t.Fatalf("zone fields incomplete: %+v", got)
	}
}

func TestApplyOverride(t *testing.T) {
	base := Classify(18, PETable())

	got := ApplyOverride(base, "bubble", "")
	if got.ZoneID != "bubble" || got.Label != "FAIR VALUE" {
		t.Fatalf("status-only override: %+v", got)
	}

	got = ApplyOverride(base, "", "CUSTOM")
	if got.ZoneID != "fair" || got.Label != "CUSTOM" {
		t.Fatalf("label-only override: %+v", got)
	}

	got = ApplyOverride(base, "", "")
	if got != base {
		t.Fatalf("empty overrides must leave zone untouched")
	}
}

func TestTableValidate(t *testing.T) {
	if err := PETable().Validate(); err != nil {
		t.Fatalf("PE table invalid: %v", err)
	}
	if err := CAPETable().Validate(); err != nil {
		t.Fatalf("CAPE table invalid: %v", err)
	}

	if err := (Table{}).Validate(); err == nil {
		t.Fatalf("empty table must be invalid")
	}

	bad := Table{
		{UpperBound: 20, ID: "a"},
		{UpperBound: 20, ID: "b"},
		{UpperBound: math.Inf(1), ID: "c"},
	}
	if err := bad.Validate(); err == nil {
		t.Fatalf("non-increasing bounds must be invalid")
	}

	finite := Table{{UpperBound: 20, ID: "a"}}
	if err := finite.Validate(); err == nil {
		t.Fatalf("bounded last entry must be invalid")
	}
}

func TestTableByName(t *testing.T) {
	if len(TableByName("cape")) != 7 {
		t.Fatalf("cape should resolve the 7-zone table")
	}
	if len(TableByName("pe")) != 4 || len(TableByName("unknown")) != 4 {
		t.Fatalf("pe and unknown names should resolve the 4-zone table")
	}
}
