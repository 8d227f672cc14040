package redact

import (
	"errors"
	"strings"
	"testing"
)

func TestText_PAN(t *testing.T) {
	in := "Promoter PAN ABCDE1234F appears in the disclosure."
	out := Text(in)

	if strings.Contains(out, "ABCDE1234F") {
		t.Errorf("PAN leaked: %s", out)
	}
	if !strings.Contains(out, MaskPAN) {
		t.Errorf("Expected mask token in output: %s", out)
	}
}

func TestText_AadhaarVariants(t *testing.T) {
	cases := []string{
		"UID 1234 5678 9012 on record",
		"UID 1234-5678-9012 on record",
		"UID 123456789012 on record",
	}

	for _, in := range cases {
		out := Text(in)
		if strings.ContainsAny(out, "0123456789") {
			t.Errorf("Aadhaar digits leaked from %q: %s", in, out)
		}
		if !strings.Contains(out, MaskAadhaar) {
			t.Errorf("Expected mask token for %q, got: %s", in, out)
		}
	}
}

func TestText_LeavesOrdinaryTextAlone(t *testing.T) {
	in := "Transaction of ₹5,00,00,000 with M/s ABC Pvt Ltd per Note 32."
	if out := Text(in); out != in {
		t.Errorf("Ordinary text was altered: %s", out)
	}
}

func TestText_DoesNotMatchInsideLongerRuns(t *testing.T) {
	// 13 digits is not an Aadhaar; 6 leading letters is not a PAN
	cases := []string{
		"ISIN-like run 1234567890123 stays",
		"code XABCDE1234F7 stays",
	}
	for _, in := range cases {
		if out := Text(in); out != in {
			t.Errorf("Over-matched %q -> %q", in, out)
		}
	}
}

func TestText_Idempotent(t *testing.T) {
	in := "PAN ABCDE1234F and UID 1234 5678 9012 together."
	once := Text(in)
	twice := Text(once)

	if once != twice {
		t.Errorf("Redaction not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestStruct_WalksNestedFields(t *testing.T) {
	type inner struct {
		Note string
	}
	type outer struct {
		Name    string
		Details *inner
		Tags    []string
		Meta    map[string]string
		Extra   interface{}
	}

	v := &outer{
		Name:    "Party with PAN ABCDE1234F",
		Details: &inner{Note: "aadhaar 1234 5678 9012 noted"},
		Tags:    []string{"clean", "PQRST5678Z inside"},
		Meta:    map[string]string{"id": "1234-5678-9012"},
		Extra:   "interface PAN LMNOP9876K",
	}

	if err := Struct(v); err != nil {
		t.Fatalf("Struct failed: %v", err)
	}

	if strings.Contains(v.Name, "ABCDE1234F") {
		t.Error("PAN leaked in Name")
	}
	if strings.Contains(v.Details.Note, "1234") {
		t.Error("Aadhaar leaked in nested pointer field")
	}
	if strings.Contains(v.Tags[1], "PQRST5678Z") {
		t.Error("PAN leaked in slice element")
	}
	if v.Tags[0] != "clean" {
		t.Errorf("Clean value altered: %q", v.Tags[0])
	}
	if strings.Contains(v.Meta["id"], "1234") {
		t.Error("Aadhaar leaked in map value")
	}
	if s, ok := v.Extra.(string); !ok || strings.Contains(s, "LMNOP9876K") {
		t.Errorf("PAN leaked in interface field: %v", v.Extra)
	}
}

func TestStruct_RejectsNonPointer(t *testing.T) {
	if err := Struct(struct{ S string }{"x"}); err == nil {
		t.Error("Expected error for non-pointer argument")
	}
}

func TestVerify_DetectsLeak(t *testing.T) {
	type report struct {
		Narrative string
	}

	clean := &report{Narrative: "nothing sensitive here"}
	if err := Verify(clean); err != nil {
		t.Errorf("Expected clean report to verify, got %v", err)
	}

	dirty := &report{Narrative: "counterparty PAN ABCDE1234F"}
	err := Verify(dirty)
	if !errors.Is(err, ErrIncomplete) {
		t.Errorf("Expected ErrIncomplete, got %v", err)
	}
}

func TestStructThenVerify(t *testing.T) {
	type report struct {
		Narrative string
		Flags     []string
	}

	r := &report{
		Narrative: "director holds PAN ABCDE1234F and UID 9876 5432 1098",
		Flags:     []string{"undisclosed loan to 1111 2222 3333"},
	}

	if err := Struct(r); err != nil {
		t.Fatalf("Struct failed: %v", err)
	}
	if err := Verify(r); err != nil {
		t.Errorf("Expected full redaction, got %v", err)
	}
}
