package store

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/talentoplus/talentoplus/internal/models"
)

func newTestStore(t *testing.T) *SqliteStore {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewSqliteStore(db)
}

// seedCatalog commits one department and one position for employee rows
func seedCatalog(t *testing.T, s *SqliteStore) (int, int) {
	t.Helper()

	dept := models.Department{Name: "Tecnología", Code: "TI", IsActive: true}
	if err := s.AddDepartment(&dept); err != nil {
		t.Fatalf("add department: %v", err)
	}
	position := models.JobPosition{Title: "Desarrollador", DepartmentID: dept.ID, IsActive: true}
	if err := s.AddJobPosition(&position); err != nil {
		t.Fatalf("add position: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save catalog: %v", err)
	}
	return dept.ID, position.ID
}

func testEmployee(doc, email string, deptID, positionID int) *models.Employee {
	return &models.Employee{
		DocumentNumber: doc,
		DocumentType:   "CC",
		FirstName:      "Ana",
		LastName:       "García",
		PersonalEmail:  email,
		PhoneNumber:    "3001234567",
		Country:        "Colombia",
		DateOfBirth:    time.Date(1995, 6, 2, 0, 0, 0, 0, time.UTC),
		HireDate:       time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
		Salary:         5000000,
		Status:         models.StatusActivo,
		IsActive:       true,
		DepartmentID:   deptID,
		JobPositionID:  positionID,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("first migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestEmployeeRoundTrip(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	e := testEmployee("100", "ana@test.com", deptID, positionID)
	if err := s.AddEmployee(e); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("generated id was not filled in")
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.GetEmployeeByID(e.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.FirstName != "Ana" || got.DocumentNumber != "100" {
		t.Errorf("got %+v", got)
	}
	if got.Department != "Tecnología" || got.JobPosition != "Desarrollador" {
		t.Errorf("names not resolved: dept=%q position=%q", got.Department, got.JobPosition)
	}
	if got.Status != models.StatusActivo {
		t.Errorf("Status = %v", got.Status)
	}
}

func TestPendingChangesAreIsolated(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add employee: %v", err)
	}

	// Staged but not saved: reads must not see it
	employees, err := s.GetAllEmployees()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("staged employee visible before SaveChanges: %d rows", len(employees))
	}

	if err := s.ClearPendingChanges(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	employees, err = s.GetAllEmployees()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(employees) != 0 {
		t.Fatalf("cleared employee reappeared: %d rows", len(employees))
	}

	// The same row saves fine afterwards
	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("re-add employee: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}
	employees, _ = s.GetAllEmployees()
	if len(employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(employees))
	}
}

func TestSaveAndClearAreNoOpsWithoutChanges(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveChanges(); err != nil {
		t.Errorf("SaveChanges: %v", err)
	}
	if err := s.ClearPendingChanges(); err != nil {
		t.Errorf("ClearPendingChanges: %v", err)
	}
}

func TestUniqueDocumentNumber(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := s.AddEmployee(testEmployee("100", "otra@test.com", deptID, positionID))
	if err == nil {
		s.SaveChanges()
		t.Fatal("duplicate document number must be rejected")
	}
	if err := s.ClearPendingChanges(); err != nil {
		t.Fatalf("clear: %v", err)
	}
}

func TestUniquePersonalEmail(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.AddEmployee(testEmployee("200", "ana@test.com", deptID, positionID)); err == nil {
		s.SaveChanges()
		t.Fatal("duplicate personal email must be rejected")
	}
	s.ClearPendingChanges()
}

func TestEmptyCorporateEmailsMayRepeat(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	for i, pair := range [][2]string{{"100", "a@test.com"}, {"200", "b@test.com"}} {
		e := testEmployee(pair[0], pair[1], deptID, positionID)
		if err := s.AddEmployee(e); err != nil {
			t.Fatalf("add employee %d: %v", i, err)
		}
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("two employees without corporate email must coexist: %v", err)
	}
}

func TestExistenceChecks(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	e := testEmployee("100", "ana@test.com", deptID, positionID)
	e.CorporateEmail = "ana@empresa.com"
	if err := s.AddEmployee(e); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"document exists", func() (bool, error) { return s.DocumentNumberExists("100", 0) }, true},
		{"document excluded", func() (bool, error) { return s.DocumentNumberExists("100", e.ID) }, false},
		{"document missing", func() (bool, error) { return s.DocumentNumberExists("999", 0) }, false},
		{"personal email exists", func() (bool, error) { return s.EmailExists("ana@test.com", 0) }, true},
		{"corporate email exists", func() (bool, error) { return s.EmailExists("ana@empresa.com", 0) }, true},
		{"email excluded", func() (bool, error) { return s.EmailExists("ana@test.com", e.ID) }, false},
		{"email missing", func() (bool, error) { return s.EmailExists("nadie@test.com", 0) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEmployeeByEmail(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	e := testEmployee("100", "ana@test.com", deptID, positionID)
	e.CorporateEmail = "ana@empresa.com"
	if err := s.AddEmployee(e); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	for _, email := range []string{"ana@test.com", "ana@empresa.com"} {
		got, err := s.GetEmployeeByEmail(email)
		if err != nil {
			t.Fatalf("get by %s: %v", email, err)
		}
		if got.ID != e.ID {
			t.Errorf("get by %s returned id %d, want %d", email, got.ID, e.ID)
		}
	}

	if _, err := s.GetEmployeeByEmail("nadie@test.com"); err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchEmployees(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	ana := testEmployee("100", "ana@test.com", deptID, positionID)
	if err := s.AddEmployee(ana); err != nil {
		t.Fatalf("add: %v", err)
	}
	luis := testEmployee("200", "luis@test.com", deptID, positionID)
	luis.FirstName = "Luis"
	luis.LastName = "Pérez"
	if err := s.AddEmployee(luis); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	tests := []struct {
		term string
		want int
	}{
		{"ana", 1},
		{"ANA", 1},
		{"garcía", 1},
		{"200", 1},
		{"test.com", 2},
		{"nadie", 0},
	}

	for _, tt := range tests {
		got, err := s.SearchEmployees(tt.term)
		if err != nil {
			t.Fatalf("search %q: %v", tt.term, err)
		}
		if len(got) != tt.want {
			t.Errorf("search %q returned %d, want %d", tt.term, len(got), tt.want)
		}
	}
}

func TestInactiveEmployeesHiddenFromLists(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	e := testEmployee("100", "ana@test.com", deptID, positionID)
	if err := s.AddEmployee(e); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	e.IsActive = false
	e.Status = models.StatusRetirado
	if err := s.UpdateEmployee(e); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	employees, err := s.GetAllEmployees()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(employees) != 0 {
		t.Errorf("inactive employee still listed")
	}

	// Direct lookup still works for soft-deleted rows
	got, err := s.GetEmployeeByID(e.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.IsActive || got.Status != models.StatusRetirado {
		t.Errorf("got %+v", got)
	}
}

func TestCounts(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	for i, doc := range []string{"100", "200", "300"} {
		e := testEmployee(doc, doc+"@test.com", deptID, positionID)
		if i == 2 {
			e.Status = models.StatusVacaciones
		}
		if err := s.AddEmployee(e); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	byDept, err := s.CountEmployeesByDepartment()
	if err != nil {
		t.Fatalf("count by department: %v", err)
	}
	if byDept[deptID] != 3 {
		t.Errorf("byDept = %v", byDept)
	}

	byStatus, err := s.CountEmployeesByStatus()
	if err != nil {
		t.Fatalf("count by status: %v", err)
	}
	if byStatus[models.StatusActivo] != 2 || byStatus[models.StatusVacaciones] != 1 {
		t.Errorf("byStatus = %v", byStatus)
	}
}

func TestDeleteAllEmployees(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.DeleteAllEmployees(); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	employees, _ := s.GetAllEmployees()
	if len(employees) != 0 {
		t.Errorf("expected no employees, got %d", len(employees))
	}
}

func TestFailedStatementDiscardsSession(t *testing.T) {
	s := newTestStore(t)
	deptID, positionID := seedCatalog(t, s)

	if err := s.AddEmployee(testEmployee("100", "ana@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save: %v", err)
	}

	// The rejected insert must not leave a broken session behind
	if err := s.AddEmployee(testEmployee("100", "otra@test.com", deptID, positionID)); err == nil {
		t.Fatal("duplicate document number must be rejected")
	}

	if err := s.AddEmployee(testEmployee("300", "luis@test.com", deptID, positionID)); err != nil {
		t.Fatalf("add after failure: %v", err)
	}
	if err := s.SaveChanges(); err != nil {
		t.Fatalf("save after failure: %v", err)
	}

	employees, err := s.GetAllEmployees()
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	for _, e := range employees {
		if e.PersonalEmail == "otra@test.com" {
			t.Error("rejected row was committed")
		}
	}
}

// A store carries one staging session, so concurrent writers each get their
// own store over the shared database and commit independently.
func TestStoresPerSessionCommitIndependently(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	const workers = 4
	var wg sync.WaitGroup
	failures := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			s := NewSqliteStore(db)
			d := models.Department{
				Name:     fmt.Sprintf("Area %d", i),
				Code:     fmt.Sprintf("AR%d", i),
				IsActive: true,
			}
			if err := s.AddDepartment(&d); err != nil {
				failures <- err
				return
			}
			if err := s.SaveChanges(); err != nil {
				failures <- err
			}
		}(i)
	}
	wg.Wait()
	close(failures)
	for err := range failures {
		t.Errorf("concurrent session: %v", err)
	}

	departments, err := NewSqliteStore(db).GetAllDepartments()
	if err != nil {
		t.Fatalf("get departments: %v", err)
	}
	if len(departments) != workers {
		t.Errorf("departments = %d, want %d", len(departments), workers)
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)

	if err := Seed(s); err != nil {
		t.Fatalf("seed: %v", err)
	}

	departments, err := s.GetAllDepartments()
	if err != nil {
		t.Fatalf("get departments: %v", err)
	}
	if len(departments) != len(seedDepartments) {
		t.Fatalf("expected %d departments, got %d", len(seedDepartments), len(departments))
	}

	positions, err := s.GetAllJobPositions()
	if err != nil {
		t.Fatalf("get positions: %v", err)
	}
	if len(positions) == 0 {
		t.Fatal("no positions seeded")
	}
	for _, p := range positions {
		if p.DepartmentID == 0 {
			t.Errorf("position %q has no department", p.Title)
		}
		if !strings.HasPrefix(p.Description, "Cargo de ") {
			t.Errorf("unexpected description %q", p.Description)
		}
	}

	// Re-seeding must not duplicate the catalog
	if err := Seed(s); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	departments, _ = s.GetAllDepartments()
	if len(departments) != len(seedDepartments) {
		t.Errorf("second seed duplicated departments: %d", len(departments))
	}
}
