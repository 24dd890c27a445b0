package series

import (
	"strings"
	"testing"
)

func TestParseTabular(t *testing.T) {
	payload := "year,ratio\n1999,30.2\n2000,26.4\n"
	got, err := ParseTabular(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Period != "1999" || got[0].Ratio != "30.2" {
		t.Fatalf("unexpected first record %+v", got[0])
	}
	if got[1].Period != "2000" || got[1].Ratio != "26.4" {
		t.Fatalf("unexpected second record %+v", got[1])
	}
}

func TestParseTabularShortRow(t *testing.T) {
	payload := "year,ratio\n2000\n"
	got, err := ParseTabular(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].Period != "2000" || got[0].Ratio != "" {
		t.Fatalf("short row should yield empty ratio, got %+v", got[0])
	}
}

func TestParseTabularQuotedFields(t *testing.T) {
	payload := "date,pe_ratio\n\"2001-01-31\",\"15.5\"\n"
	got, err := ParseTabular(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Period != "2001-01-31" || got[0].Ratio != "15.5" {
		t.Fatalf("quotes should be stripped, got %+v", got[0])
	}
}

func TestParseTabularHeaderCaseInsensitive(t *testing.T) {
	payload := "Year,Trailing_PE_Jan1\n1980,7.2\n"
	got, err := ParseTabular(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Period != "1980" || got[0].Ratio != "7.2" {
		t.Fatalf("unexpected record %+v", got[0])
	}
}

func TestParseTabularNoRatioColumn(t *testing.T) {
	payload := "year,price\n1999,1469\n"
	if _, err := ParseTabular(strings.NewReader(payload)); err == nil {
		t.Fatalf("expected error for missing ratio column")
	}
}

func TestParseTabularEmpty(t *testing.T) {
	got, err := ParseTabular(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty series, got %d records", len(got))
	}
}

func TestParseStructured(t *testing.T) {
	payload := []byte(`[{"year":1999,"cape":30.2},{"year":2000,"cape":26.4}]`)
	got, err := ParseStructured(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Period != "1999" || got[0].Ratio != "30.2" {
		t.Fatalf("unexpected record %+v", got[0])
	}
}

func TestParseStructuredKeyDrift(t *testing.T) {
	payload := []byte(`[{"date":"2020-06-30","pe_ratio":"21.3"}]`)
	got, err := ParseStructured(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Period != "2020-06-30" || got[0].Ratio != "21.3" {
		t.Fatalf("unexpected record %+v", got[0])
	}
}

func TestParseStructuredMissingKeys(t *testing.T) {
	payload := []byte(`[{"price":1469}]`)
	got, err := ParseStructured(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Ratio != "" {
		t.Fatalf("missing ratio key should yield empty text, got %q", got[0].Ratio)
	}
}

func TestParseUnknownFormat(t *testing.T) {
	if _, err := Parse([]byte("x"), Format("csvish")); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
