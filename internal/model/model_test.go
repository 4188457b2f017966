package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestAdminPasswordHashNotInJSON(t *testing.T) {
	admin := Admin{
		ID:           "0190c1a2-0000-7000-8000-000000000001",
		Name:         "Admin User",
		Email:        "admin@example.com",
		PasswordHash: "$2a$10$somebcrypthash",
		Role:         RoleAdmin,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	b, err := json.Marshal(admin)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	for _, key := range []string{"password", "passwordHash", "password_hash", "PasswordHash"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should NOT appear in JSON output", key)
		}
	}
	for _, key := range []string{"id", "name", "email", "role", "createdAt", "updatedAt"} {
		if _, ok := m[key]; !ok {
			t.Errorf("%s should be present in JSON output", key)
		}
	}
}

func TestAdminProfile(t *testing.T) {
	admin := &Admin{ID: "a1", Name: "Ada", Email: "ada@example.com", PasswordHash: "x", Role: RoleAdmin}
	got := admin.Profile()
	want := AdminProfile{ID: "a1", Name: "Ada", Email: "ada@example.com", Role: RoleAdmin}
	if got != want {
		t.Errorf("Profile() = %+v, want %+v", got, want)
	}
}

func TestWaitlistEntryJSONNulls(t *testing.T) {
	entry := WaitlistEntry{
		ID:        "w1",
		Email:     "a@example.com",
		Tier:      2,
		CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}

	b, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	v, ok := m["currentApp"]
	if !ok {
		t.Fatal("currentApp should be present even when unset")
	}
	if v != nil {
		t.Errorf("currentApp = %v, want null", v)
	}
	if m["tier"] != float64(2) {
		t.Errorf("tier = %v, want 2", m["tier"])
	}
	if m["emailSent"] != false {
		t.Errorf("emailSent = %v, want false", m["emailSent"])
	}
}

func TestEnumValid(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		got   bool
	}{
		{"current app", true, CurrentAppLemFi.Valid()},
		{"current app unknown", false, CurrentApp("Venmo").Valid()},
		{"current app case sensitive", false, CurrentApp("wise").Valid()},
		{"country", true, SendToCountryJamaica.Valid()},
		{"country unknown", false, SendToCountry("France").Valid()},
		{"frequency", true, FrequencyFewTimesAYear.Valid()},
		{"frustration", true, FrustrationLackOfTrustHiddenCharges.Valid()},
		{"investing", true, InvestingNotInterestedRightNow.Valid()},
		{"feature", true, FeatureAIGuidanceOnInvesting.Valid()},
		{"research", true, ResearchMaybeSendMoreDetails.Valid()},
		{"research all sentinel", false, ResearchFollowUp("all").Valid()},
		{"contact", true, ContactWhatsApp.Valid()},
		{"contact unknown", false, PreferredContactMethod("SMS").Valid()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.valid {
				t.Errorf("Valid() = %v, want %v", tt.got, tt.valid)
			}
		})
	}
}

func TestEnumListsAreCopies(t *testing.T) {
	apps := CurrentApps()
	if len(apps) != 7 {
		t.Fatalf("len(CurrentApps()) = %d, want 7", len(apps))
	}
	apps[0] = "mutated"
	if CurrentApps()[0] != CurrentAppWise {
		t.Error("CurrentApps() exposed its backing array")
	}
	if len(SendToCountries()) != 5 {
		t.Errorf("len(SendToCountries()) = %d, want 5", len(SendToCountries()))
	}
	if len(ResearchFollowUps()) != 3 {
		t.Errorf("len(ResearchFollowUps()) = %d, want 3", len(ResearchFollowUps()))
	}
}

func TestWaitlistEntryValidate(t *testing.T) {
	other := CurrentAppOther
	wise := CurrentAppWise
	bogus := CurrentApp("Bogus")
	note := "Paypal"

	tests := []struct {
		name      string
		entry     WaitlistEntry
		wantField string
	}{
		{"minimal", WaitlistEntry{Email: "a@x.io", Tier: 1}, ""},
		{"missing email", WaitlistEntry{Tier: 1}, "email"},
		{"zero tier", WaitlistEntry{Email: "a@x.io", Tier: 0}, "tier"},
		{"tier above three allowed", WaitlistEntry{Email: "a@x.io", Tier: 7}, ""},
		{"unknown enum", WaitlistEntry{Email: "a@x.io", Tier: 1, CurrentApp: &bogus}, "currentApp"},
		{"other text with sentinel", WaitlistEntry{Email: "a@x.io", Tier: 1, CurrentApp: &other, CurrentAppOther: &note}, ""},
		{"other text without sentinel", WaitlistEntry{Email: "a@x.io", Tier: 1, CurrentApp: &wise, CurrentAppOther: &note}, "currentAppOther"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("Validate() = %v, want *FieldError", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := ErrorResponse{Error: ErrorDetail{Code: 400, Message: "bad"}}
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"error":{"code":400,"message":"bad"}}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}
