package ocr

import "testing"

func TestReadBox_FirstHitWins(t *testing.T) {
	c := &fakeClient{queues: map[string][]string{
		BoxChars: {"", "982"},
	}}
	v, raw, err := ReadBox(c, grayFill(30, 10, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v == nil || *v != 982 {
		t.Fatalf("expected 982, got %v", v)
	}
	if raw != "982" {
		t.Fatalf("expected raw text of winning pass, got %q", raw)
	}
}

func TestReadBox_NoDigitsReturnsNil(t *testing.T) {
	c := &fakeClient{queues: map[string][]string{
		BoxChars: {"...", "--"},
	}}
	v, raw, err := ReadBox(c, grayFill(30, 10, 80), true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil value, got %v", *v)
	}
	if raw != "--" {
		t.Fatalf("expected last non-empty text, got %q", raw)
	}
}

func TestExtractBestInt_LargestRunWins(t *testing.T) {
	v := extractBestInt("12 noise 3456 x 78")
	if v == nil || *v != 3456 {
		t.Fatalf("expected 3456, got %v", v)
	}
	if extractBestInt("no digits") != nil {
		t.Fatalf("expected nil for digit-free text")
	}
}
