package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFullName(t *testing.T) {
	tests := []struct {
		name string
		e    Employee
		want string
	}{
		{"simple", Employee{FirstName: "Ana", LastName: "García"}, "Ana García"},
		{"all parts", Employee{FirstName: "Ana", MiddleName: "María", LastName: "García", SecondLastName: "López"}, "Ana María García López"},
		{"blank middle", Employee{FirstName: "Ana", MiddleName: "  ", LastName: "García"}, "Ana García"},
		{"empty", Employee{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status EmployeeStatus
		want   string
	}{
		{StatusActivo, "Activo"},
		{StatusInactivo, "Inactivo"},
		{StatusVacaciones, "Vacaciones"},
		{StatusLicenciaMedica, "LicenciaMedica"},
		{StatusRetirado, "Retirado"},
		{EmployeeStatus(0), "Desconocido"},
		{EmployeeStatus(99), "Desconocido"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestAge(t *testing.T) {
	e := Employee{DateOfBirth: time.Now().AddDate(-30, 0, -1)}
	if got := e.Age(); got != 30 {
		t.Errorf("Age() = %d, want 30", got)
	}

	// Birthday later this year: still a year younger
	e = Employee{DateOfBirth: time.Now().AddDate(-30, 0, 1)}
	if got := e.Age(); got != 29 {
		t.Errorf("Age() = %d, want 29", got)
	}
}

func TestYearsOfService(t *testing.T) {
	hire := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	e := Employee{HireDate: hire, TerminationDate: &end}

	got := e.YearsOfService()
	if got < 2.9 || got > 3.1 {
		t.Errorf("YearsOfService() = %v, want ~3", got)
	}
}

func TestIsCurrentlyActive(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		e    Employee
		want bool
	}{
		{"active", Employee{Status: StatusActivo, IsActive: true}, true},
		{"flagged inactive", Employee{Status: StatusActivo, IsActive: false}, false},
		{"retired", Employee{Status: StatusRetirado, IsActive: true}, false},
		{"terminated", Employee{Status: StatusActivo, IsActive: true, TerminationDate: &now}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.IsCurrentlyActive(); got != tt.want {
				t.Errorf("IsCurrentlyActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	e := Employee{FirstName: "Ana", PasswordHash: "super-secreto"}
	data, err := json.Marshal(&e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "super-secreto") {
		t.Error("password hash leaked into JSON")
	}
}
