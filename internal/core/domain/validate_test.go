package domain

import "testing"

func TestValidDate(t *testing.T) {
	valid := []string{"2025-10-20", "1900-01-01", "2100-12-31", "2025-02-31"}
	for _, date := range valid {
		if !ValidDate(date) {
			t.Errorf("expected %q to be valid", date)
		}
	}

	invalid := []string{
		"", "2025-10-2", "2025/10/20", "1899-12-31", "2101-01-01",
		"2025-00-10", "2025-13-10", "2025-10-00", "2025-10-32",
		"20x5-10-20", "2025- 1-20", "2025-+1-20",
	}
	for _, date := range invalid {
		if ValidDate(date) {
			t.Errorf("expected %q to be rejected", date)
		}
	}
}

func TestValidTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, tm := range valid {
		if !ValidTime(tm) {
			t.Errorf("expected %q to be valid", tm)
		}
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "ab:cd", "12:3x"}
	for _, tm := range invalid {
		if ValidTime(tm) {
			t.Errorf("expected %q to be rejected", tm)
		}
	}
}
