package numformat

import "testing"

func TestFormatValueGeneralInteger(t *testing.T) {
	got := FormatValue(42.0, 0, "", false)
	if got != "42" {
		t.Errorf("FormatValue = %q, want 42", got)
	}
}

func TestFormatValueGeneralFraction(t *testing.T) {
	got := FormatValue(3.5, 0, "", false)
	if got != "3.5" {
		t.Errorf("FormatValue = %q, want 3.5", got)
	}
}

func TestFormatValueString(t *testing.T) {
	if got := FormatValue("hi", 0, "", false); got != "hi" {
		t.Errorf("FormatValue = %q, want hi", got)
	}
}

func TestFormatValueBool(t *testing.T) {
	if got := FormatValue(true, 0, "", false); got != "TRUE" {
		t.Errorf("FormatValue(true) = %q, want TRUE", got)
	}
	if got := FormatValue(false, 0, "", false); got != "FALSE" {
		t.Errorf("FormatValue(false) = %q, want FALSE", got)
	}
}

func TestFormatValueNil(t *testing.T) {
	if got := FormatValue(nil, 0, "", false); got != "" {
		t.Errorf("FormatValue(nil) = %q, want empty", got)
	}
}

func TestFormatValuePercent(t *testing.T) {
	got := FormatValue(0.5, 10, "", false) // numFmtId 10 = "0.00%"
	if got != "50.00%" {
		t.Errorf("FormatValue = %q, want 50.00%%", got)
	}
}

func TestFormatValueThousands(t *testing.T) {
	got := FormatValue(1234567.0, 3, "", false) // numFmtId 3 = "#,##0"
	if got != "1,234,567" {
		t.Errorf("FormatValue = %q, want 1,234,567", got)
	}
}

func TestFormatValueBuiltInDate(t *testing.T) {
	// numFmtId 14 = "MM-DD-YY"; serial 44197 = 2021-01-01.
	got := FormatValue(44197.0, 14, "", false)
	if got != "01-01-21" {
		t.Errorf("FormatValue = %q, want 01-01-21", got)
	}
}

func TestFormatValueCustomDate(t *testing.T) {
	got := FormatValue(44197.0, 164, "yyyy-mm-dd", false)
	if got != "2021-01-01" {
		t.Errorf("FormatValue = %q, want 2021-01-01", got)
	}
}

func TestFormatValueNegativeNumber(t *testing.T) {
	got := FormatValue(-5.0, 1, "", false) // numFmtId 1 = "0"
	if got != "-5" {
		t.Errorf("FormatValue = %q, want -5", got)
	}
}
