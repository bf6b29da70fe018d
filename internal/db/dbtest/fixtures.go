package dbtest

import (
	"testing"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

// Seed helpers. Each one fails the test on error and returns the stored
// row with its id.

func Provider(t testing.TB, db *gorm.DB, slug string, tz string) models.Provider {
	t.Helper()
	p := models.Provider{Name: slug, Slug: slug, Timezone: tz}
	must(t, db.Create(&p).Error)
	return p
}

func Service(t testing.TB, db *gorm.DB, providerID uint, name string, durationMin int) models.Service {
	t.Helper()
	s := models.Service{ProviderID: providerID, Name: name, DurationMin: durationMin, Price: 50, IsActive: true}
	must(t, db.Create(&s).Error)
	return s
}

func Employee(t testing.TB, db *gorm.DB, providerID uint, name string) models.Employee {
	t.Helper()
	e := models.Employee{ProviderID: providerID, Name: name}
	must(t, db.Create(&e).Error)
	return e
}

// Assign links the employee to the service and gives it one period per
// listed weekday.
func Assign(t testing.TB, db *gorm.DB, employeeID, serviceID uint, start, end string, weekdays ...int) {
	t.Helper()
	must(t, db.Create(&models.EmployeeService{EmployeeID: employeeID, ServiceID: serviceID}).Error)
	for _, wd := range weekdays {
		must(t, db.Create(&models.Schedule{
			EmployeeID: employeeID,
			ServiceID:  serviceID,
			DayOfWeek:  wd,
			Period:     1,
			StartTime:  start,
			EndTime:    end,
		}).Error)
	}
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
