//go:build integration

package integration

import (
	"testing"
	"time"

	"github.com/opendining/reservation-service/internal/models"
	"github.com/opendining/reservation-service/internal/repository"
	"github.com/opendining/reservation-service/internal/service"
	"github.com/opendining/reservation-service/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationService() service.ReservationService {
	return service.NewReservationService(repository.NewReservationRepository(testDB), nil)
}

// futureDate returns a date daysAhead from now, skipping the closed Tuesday.
func futureDate(daysAhead int) string {
	d := time.Now().AddDate(0, 0, daysAhead)
	if d.Weekday() == time.Tuesday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(validation.DateLayout)
}

func createReservation(t *testing.T, svc service.ReservationService, mobile, timeOfDay string, people int) *models.Reservation {
	t.Helper()
	created, err := svc.Create(t.Context(), &models.Reservation{
		FirstName:       "Grace",
		LastName:        "Hopper",
		MobileNumber:    mobile,
		ReservationDate: futureDate(7),
		ReservationTime: timeOfDay,
		People:          people,
	})
	require.NoError(t, err)
	return created
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	cleanTables()
	svc := newReservationService()

	created := createReservation(t, svc, "(555) 123-4567", "17:30", 4)
	require.NotZero(t, created.ID)
	assert.Equal(t, models.StatusBooked, created.Status)

	got, err := svc.Get(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "(555) 123-4567", got.MobileNumber)
	assert.Equal(t, created.ReservationDate, got.ReservationDate)
	assert.Equal(t, "17:30", got.ReservationTime)
	assert.Equal(t, 4, got.People)
}

func TestListByDate_OrdersByTimeAndExcludesFinished(t *testing.T) {
	cleanTables()
	svc := newReservationService()

	late := createReservation(t, svc, "5550000001", "20:00", 2)
	early := createReservation(t, svc, "5550000002", "11:00", 2)
	finished := createReservation(t, svc, "5550000003", "12:00", 2)

	testDB.Model(&models.Reservation{}).
		Where("id = ?", finished.ID).
		Update("status", models.StatusFinished)

	reservations, err := svc.List(t.Context(), early.ReservationDate, "")
	require.NoError(t, err)
	require.Len(t, reservations, 2)
	assert.Equal(t, early.ID, reservations[0].ID)
	assert.Equal(t, late.ID, reservations[1].ID)
}

// Matches the display-formatted number against a digits-only query via the
// translate() expression the repository uses.
func TestListByPhone_MatchesFormattedNumber(t *testing.T) {
	cleanTables()
	svc := newReservationService()

	created := createReservation(t, svc, "(555) 123-4567", "17:30", 2)
	createReservation(t, svc, "(808) 555-9999", "18:00", 2)

	reservations, err := svc.List(t.Context(), "", "5551234567")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, created.ID, reservations[0].ID)
}

func TestUpdateStatus_Persisted(t *testing.T) {
	cleanTables()
	svc := newReservationService()

	created := createReservation(t, svc, "5550000004", "17:30", 2)

	updated, err := svc.UpdateStatus(t.Context(), created.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)

	got, err := svc.Get(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)
}
