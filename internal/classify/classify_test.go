package classify

import (
	"testing"
	"time"
)

// 10:00 UTC is 15:30 IST, squarely inside business hours.
var businessHours = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func TestClassifyDecoyMarker(t *testing.T) {
	c := New(DefaultZone())

	names := []string{
		"legacy_credentials_alice.bak",
		"LEGACY_CREDENTIALS_BOB.BAK",
		"copy of legacy_credentials_alice.bak",
	}

	for _, name := range names {
		if got := c.Classify(name, businessHours); got != Critical {
			t.Errorf("Classify(%q) = %v, want Critical", name, got)
		}
	}
}

func TestClassifyMarkerWinsOverOtherRules(t *testing.T) {
	c := New(DefaultZone())

	// Off-hours and keyword-laden, but the marker rule must win.
	offHours := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC) // 01:30 IST
	if got := c.Classify("password_legacy_credentials_root.bak", offHours); got != Critical {
		t.Errorf("expected Critical for decoy name during off-hours, got %v", got)
	}
}

func TestClassifyOffHours(t *testing.T) {
	c := New(DefaultZone())

	cases := []struct {
		name     string
		utc      time.Time
		expected Level
	}{
		// 16:30 UTC = 22:00 IST, first off-hours minute
		{"at 22:00 local", time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC), Suspicious},
		// 16:29 UTC = 21:59 IST, still business hours
		{"at 21:59 local", time.Date(2024, 1, 1, 16, 29, 0, 0, time.UTC), Normal},
		// 01:29 UTC = 06:59 IST, still off-hours
		{"at 06:59 local", time.Date(2024, 1, 1, 1, 29, 0, 0, time.UTC), Suspicious},
		// 01:30 UTC = 07:00 IST, business hours begin
		{"at 07:00 local", time.Date(2024, 1, 1, 1, 30, 0, 0, time.UTC), Normal},
		// 18:00 UTC = 23:30 IST
		{"at 23:30 local", time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC), Suspicious},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Classify("notes.txt", tc.utc); got != tc.expected {
				t.Errorf("Classify(notes.txt, %s) = %v, want %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestClassifyKeywords(t *testing.T) {
	c := New(DefaultZone())

	cases := []struct {
		fileName string
		expected Level
	}{
		{"Q3_salary_report.xlsx", Suspicious},
		{"CONFIDENTIAL_memo.docx", Suspicious},
		{"my_private_notes.txt", Suspicious},
		{"passwords.csv", Suspicious},
		{"confidential_report_final.xlsx", Suspicious},
		{"meeting_agenda.txt", Normal},
		{"report.pdf", Normal},
	}

	for _, tc := range cases {
		if got := c.Classify(tc.fileName, businessHours); got != tc.expected {
			t.Errorf("Classify(%q) = %v, want %v", tc.fileName, got, tc.expected)
		}
	}
}

func TestClassifyCustomZone(t *testing.T) {
	// UTC-07:00: 17:00 UTC is 10:00 local, 06:00 UTC is 23:00 local.
	c := New(FixedOffsetZone("MST", -7, 0))

	if got := c.Classify("notes.txt", time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)); got != Normal {
		t.Errorf("expected Normal at 10:00 local, got %v", got)
	}
	if got := c.Classify("notes.txt", time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)); got != Suspicious {
		t.Errorf("expected Suspicious at 23:00 local, got %v", got)
	}
}

func TestIsDecoyName(t *testing.T) {
	if !IsDecoyName("Legacy_Credentials_alice.bak") {
		t.Error("expected decoy name to match case-insensitively")
	}
	if IsDecoyName("salary.xlsx") {
		t.Error("keyword name should not match the decoy marker")
	}
}

func TestLevelString(t *testing.T) {
	if Normal.String() != "normal" || Suspicious.String() != "suspicious" || Critical.String() != "critical" {
		t.Error("unexpected level names")
	}
}
