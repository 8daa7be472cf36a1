package models

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantSet bool
	}{
		{"number", `12.5`, 12.5, true},
		{"decimal string", `"300.25"`, 300.25, true},
		{"null", `null`, 0, false},
		{"garbage string", `"n/a"`, 0, true},
		{"empty string", `""`, 0, true},
		{"object", `{"a":1}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			if err := json.Unmarshal([]byte(tt.raw), &n); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if n.Float() != tt.want {
				t.Errorf("Float() = %v, want %v", n.Float(), tt.want)
			}
			if n.IsSet() != tt.wantSet {
				t.Errorf("IsSet() = %v, want %v", n.IsSet(), tt.wantSet)
			}
		})
	}
}

func TestNumber_MissingField(t *testing.T) {
	var a Activity
	if err := json.Unmarshal([]byte(`{"id":1,"type":"OTHER"}`), &a); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if a.AvgSpeed.IsSet() {
		t.Error("missing avgSpeed should not be set")
	}
}

func TestActivityType_Label(t *testing.T) {
	tests := map[ActivityType]string{
		CargoLoad:     "Cargo Load",
		FullSpeedAway: "Full Speed Away",
		Other:         "Other",
		"":            "-",
	}
	for typ, want := range tests {
		if got := typ.Label(); got != want {
			t.Errorf("%q.Label() = %q, want %q", typ, got, want)
		}
	}
}

func TestActivityType_IsCargo(t *testing.T) {
	for _, typ := range ActivityTypes {
		want := typ == CargoLoad || typ == CargoDischarge
		if typ.IsCargo() != want {
			t.Errorf("%s.IsCargo() = %v, want %v", typ, typ.IsCargo(), want)
		}
	}
	if ActivityType("cargo_load").Valid() {
		t.Error("lowercase type should not be valid")
	}
}

func TestVoyage_NextStatus(t *testing.T) {
	if got := (Voyage{Status: "closed"}).NextStatus(); got != VoyageOpen {
		t.Errorf("NextStatus() of closed = %v, want OPEN", got)
	}
	if got := (Voyage{Status: VoyageOpen}).NextStatus(); got != VoyageClosed {
		t.Errorf("NextStatus() of open = %v, want CLOSED", got)
	}
	if got := (Voyage{Status: "DRAFT"}).NextStatus(); got != VoyageClosed {
		t.Errorf("NextStatus() of unknown = %v, want CLOSED", got)
	}
}

func TestUser_Roles(t *testing.T) {
	if !(User{Role: RoleEmployee}).IsEmployee() {
		t.Error("EMPLOYEE should be employee")
	}
	if (User{Role: RoleEmployee}).CanManageUsers() {
		t.Error("EMPLOYEE should not manage users")
	}
	if !(User{Role: RoleSupervisor}).CanManageUsers() {
		t.Error("SUPERVISOR should manage users")
	}
	if got := (User{Email: "a@b.c"}).DisplayName(); got != "a@b.c" {
		t.Errorf("DisplayName() = %q, want email", got)
	}
}

func TestVessel_Responsible(t *testing.T) {
	v := Vessel{Assignments: []VesselAssignment{{User: nil}, {User: &User{ID: 3, Name: "Somchai"}}}}
	if r := v.Responsible(); r == nil || r.ID != 3 {
		t.Errorf("Responsible() = %v, want user 3", r)
	}
	if (Vessel{}).Responsible() != nil {
		t.Error("Responsible() of unassigned vessel should be nil")
	}
}
