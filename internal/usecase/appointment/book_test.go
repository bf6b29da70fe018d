package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-scheduler/internal/db/dbtest"
	domain "github.com/BruksfildServices01/service-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
	"github.com/BruksfildServices01/service-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/service-scheduler/internal/models"
)

const friday = 5

type env struct {
	db        *gorm.DB
	repo      *repository.AppointmentGormRepository
	provider  models.Provider
	service   models.Service
	employees []models.Employee
}

// newEnv seeds a provider in São Paulo with one 30 minute service and n
// employees working it on Fridays from 09:00 to 12:00.
func newEnv(t *testing.T, n int) env {
	t.Helper()
	db := dbtest.Open(t)

	p := dbtest.Provider(t, db, "studio", "America/Sao_Paulo")
	svc := dbtest.Service(t, db, p.ID, "Haircut", 30)

	var emps []models.Employee
	for i := 0; i < n; i++ {
		e := dbtest.Employee(t, db, p.ID, string(rune('A'+i)))
		dbtest.Assign(t, db, e.ID, svc.ID, "09:00", "12:00", friday)
		emps = append(emps, e)
	}

	return env{db: db, repo: repository.NewAppointmentGormRepository(db), provider: p, service: svc, employees: emps}
}

func (e env) booker() *BookAppointment {
	uc := NewBookAppointment(e.repo, nil, zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC) }
	return uc
}

func (e env) input(at string, employeeID *uint) BookAppointmentInput {
	return BookAppointmentInput{
		ProviderID:      e.provider.ID,
		ServiceID:       e.service.ID,
		EmployeeID:      employeeID,
		ClientName:      "Ana",
		ClientPhone:     "+55 11 99999-0000",
		ClientEmail:     "ana@example.com",
		AppointmentDate: at,
	}
}

func (e env) cursor(t *testing.T) (models.RoundRobinCursor, bool) {
	t.Helper()
	var cur models.RoundRobinCursor
	err := e.db.Where("service_id = ?", e.service.ID).Limit(1).Find(&cur).Error
	require.NoError(t, err)
	return cur, cur.ServiceID != 0
}

func TestBookDirectEmployee(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID

	ap, err := e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", &emp))

	require.NoError(t, err)
	assert.Equal(t, "PENDING", ap.Status)
	assert.Equal(t, emp, ap.EmployeeID)
	assert.Equal(t, time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC), ap.Date)
	assert.Equal(t, "5511999990000", ap.Client.Phone)

	_, hasCursor := e.cursor(t)
	assert.False(t, hasCursor)
}

func TestBookAcceptsRFC3339(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID

	ap, err := e.booker().Execute(context.Background(), e.input("2025-01-10T13:00:00Z", &emp))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC), ap.Date)
}

func TestBookRoundRobinRotates(t *testing.T) {
	e := newEnv(t, 3)
	uc := e.booker()

	var got []uint
	for _, at := range []string{"2025-01-10T09:00", "2025-01-10T09:30", "2025-01-10T10:00"} {
		ap, err := uc.Execute(context.Background(), e.input(at, nil))
		require.NoError(t, err)
		got = append(got, ap.EmployeeID)
	}

	assert.Equal(t, []uint{e.employees[0].ID, e.employees[1].ID, e.employees[2].ID}, got)

	cur, ok := e.cursor(t)
	require.True(t, ok)
	assert.Equal(t, 3, cur.LastIndex)

	fourth, err := uc.Execute(context.Background(), e.input("2025-01-10T10:30", nil))
	require.NoError(t, err)
	assert.Equal(t, e.employees[0].ID, fourth.EmployeeID)
}

func TestBookRoundRobinSkipsBusyEmployee(t *testing.T) {
	e := newEnv(t, 2)
	uc := e.booker()
	first := e.employees[0].ID

	_, err := uc.Execute(context.Background(), e.input("2025-01-10T09:00", &first))
	require.NoError(t, err)

	ap, err := uc.Execute(context.Background(), e.input("2025-01-10T09:00", nil))
	require.NoError(t, err)
	assert.Equal(t, e.employees[1].ID, ap.EmployeeID)

	cur, _ := e.cursor(t)
	assert.Equal(t, 1, cur.LastIndex)
}

func TestBookRoundRobinExhausted(t *testing.T) {
	e := newEnv(t, 1)
	uc := e.booker()

	_, err := uc.Execute(context.Background(), e.input("2025-01-10T09:00", nil))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), e.input("2025-01-10T09:00", nil))
	assert.ErrorIs(t, err, httperr.ErrNoAvailableEmployee)

	_, err = uc.Execute(context.Background(), e.input("2025-01-11T09:00", nil))
	assert.ErrorIs(t, err, httperr.ErrNoAvailableEmployee)

	cur, _ := e.cursor(t)
	assert.Equal(t, 1, cur.LastIndex)
}

func TestBookConflictThenFreedByCancellation(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	existing := models.Appointment{
		ProviderID: e.provider.ID,
		EmployeeID: emp,
		ServiceID:  e.service.ID,
		Date:       time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC),
		Status:     "CONFIRMED",
	}
	require.NoError(t, e.repo.CreateAppointment(context.Background(), &existing))

	_, err := e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", &emp))
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	require.NoError(t, e.db.Model(&existing).Update("status", "CANCELLED").Error)

	ap, err := e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", &emp))
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, ap.ID)
}

func TestBookRejectsUnbookableServiceBeforeResolvingEmployee(t *testing.T) {
	for _, column := range []string{"deleted", "is_active"} {
		t.Run(column, func(t *testing.T) {
			e := newEnv(t, 1)
			value := column == "deleted"
			require.NoError(t, e.db.Model(&e.service).Update(column, value).Error)

			missing := uint(999)
			_, err := e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", &missing))
			assert.True(t, httperr.IsBusiness(err, "service_not_found"))
			assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

			_, err = e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", nil))
			assert.True(t, httperr.IsBusiness(err, "service_not_found"))

			_, hasCursor := e.cursor(t)
			assert.False(t, hasCursor)
		})
	}
}

func TestBookValidation(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	uc := e.booker()

	cases := map[string]func(in *BookAppointmentInput){
		"missing_client_fields": func(in *BookAppointmentInput) { in.ClientPhone, in.ClientEmail = "", "" },
		"invalid_client_email":  func(in *BookAppointmentInput) { in.ClientEmail = "nope" },
		"invalid_date_or_time":  func(in *BookAppointmentInput) { in.AppointmentDate = "friday" },
		"too_soon":              func(in *BookAppointmentInput) { in.AppointmentDate = "2024-12-31T10:00" },
	}

	for code, mutate := range cases {
		t.Run(code, func(t *testing.T) {
			in := e.input("2025-01-10T10:00", &emp)
			mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, code), "got %v", err)
			assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
		})
	}

	var clients int64
	require.NoError(t, e.db.Model(&models.Client{}).Count(&clients).Error)
	assert.Zero(t, clients)
}

func TestBookMinimumAdvance(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	require.NoError(t, e.db.Model(&e.provider).Update("min_advance_minutes", 120).Error)

	uc := e.booker()
	uc.now = func() time.Time { return time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC) }

	_, err := uc.Execute(context.Background(), e.input("2025-01-10T10:30", &emp))
	assert.True(t, httperr.IsBusiness(err, "too_soon"))

	_, err = uc.Execute(context.Background(), e.input("2025-01-10T11:00", &emp))
	assert.NoError(t, err)
}

func TestBookEmployeeChecks(t *testing.T) {
	e := newEnv(t, 1)
	uc := e.booker()

	stranger := dbtest.Employee(t, e.db, e.provider.ID, "Unassigned")
	_, err := uc.Execute(context.Background(), e.input("2025-01-10T10:00", &stranger.ID))
	assert.True(t, httperr.IsBusiness(err, "employee_not_assigned"))

	ghost := uint(4242)
	_, err = uc.Execute(context.Background(), e.input("2025-01-10T10:00", &ghost))
	assert.True(t, httperr.IsBusiness(err, "employee_not_found"))

	emp := e.employees[0].ID
	_, err = uc.Execute(context.Background(), e.input("2025-01-10T11:45", &emp))
	assert.True(t, httperr.IsBusiness(err, "outside_schedule"))

	_, err = uc.Execute(context.Background(), e.input("2025-01-11T10:00", &emp))
	assert.True(t, httperr.IsBusiness(err, "outside_schedule"))
}

func TestBookRejectsStartOffTheSlotGrid(t *testing.T) {
	e := newEnv(t, 1)
	uc := e.booker()
	emp := e.employees[0].ID

	_, err := uc.Execute(context.Background(), e.input("2025-01-10T09:00", &emp))
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), e.input("2025-01-10T09:10", &emp))
	assert.True(t, httperr.IsBusiness(err, "outside_schedule"))

	_, err = uc.Execute(context.Background(), e.input("2025-01-10T09:10", nil))
	assert.ErrorIs(t, err, httperr.ErrNoAvailableEmployee)

	var count int64
	require.NoError(t, e.db.Model(&models.Appointment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	ap, err := uc.Execute(context.Background(), e.input("2025-01-10T09:30", &emp))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 12, 30, 0, 0, time.UTC), ap.Date)
}

func TestBookReusesClient(t *testing.T) {
	e := newEnv(t, 1)
	uc := e.booker()
	emp := e.employees[0].ID

	a, err := uc.Execute(context.Background(), e.input("2025-01-10T09:00", &emp))
	require.NoError(t, err)

	in := e.input("2025-01-10T09:30", &emp)
	in.ClientPhone = ""
	b, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, a.ClientID, b.ClientID)
}

func TestBookConcurrentRequestsNeverDoubleBook(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID
	uc := e.booker()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := e.input("2025-01-10T10:00", &emp)
			if i%2 == 1 {
				in.EmployeeID = nil
			}
			_, err := uc.Execute(context.Background(), in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case httperr.KindOf(err) == httperr.KindConflict,
				httperr.KindOf(err) == httperr.KindNoAvailableEmployee:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	var active int64
	require.NoError(t, e.db.Model(&models.Appointment{}).
		Where("employee_id = ? AND status <> ?", emp, "CANCELLED").
		Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

// staleRepo hides existing appointments from the pre-insert check, the
// way a concurrent writer that has not committed yet would.
type staleRepo struct {
	domain.Repository
}

func (r staleRepo) HasActiveAppointmentAt(context.Context, uint, time.Time) (bool, error) {
	return false, nil
}

func (r staleRepo) WithinTransaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.WithinTransaction(ctx, func(tx domain.Repository) error {
		return fn(staleRepo{tx})
	})
}

func TestBookStorageRejectionIsConflictAndCursorStays(t *testing.T) {
	e := newEnv(t, 1)
	emp := e.employees[0].ID

	_, err := e.booker().Execute(context.Background(), e.input("2025-01-10T10:00", &emp))
	require.NoError(t, err)

	uc := NewBookAppointment(staleRepo{e.repo}, nil, zerolog.Nop())
	uc.now = e.booker().now

	_, err = uc.Execute(context.Background(), e.input("2025-01-10T10:00", nil))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, hasCursor := e.cursor(t)
	assert.False(t, hasCursor)

	var total int64
	require.NoError(t, e.db.Model(&models.Appointment{}).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}
