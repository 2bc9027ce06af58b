//go:build integration

package integration

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/opendining/reservation-service/internal/models"
	"github.com/opendining/reservation-service/internal/repository"
	"github.com/opendining/reservation-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTableService() service.TableService {
	return service.NewTableService(
		repository.NewTableRepository(testDB),
		repository.NewReservationRepository(testDB),
		nil,
	)
}

func createTable(t *testing.T, svc service.TableService, name string, capacity int) *models.Table {
	t.Helper()
	table, err := svc.Create(t.Context(), &models.Table{TableName: name, Capacity: capacity})
	require.NoError(t, err)
	return table
}

func TestSeatThenClear_RoundTrip(t *testing.T) {
	cleanTables()
	resSvc := newReservationService()
	tableSvc := newTableService()

	reservation := createReservation(t, resSvc, "5551110001", "17:30", 4)
	table := createTable(t, tableSvc, "Patio #2", 6)

	seated, err := tableSvc.Seat(t.Context(), table.ID, reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, seated.ReservationID)
	assert.Equal(t, reservation.ID, *seated.ReservationID)

	got, err := resSvc.Get(t.Context(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSeated, got.Status)

	cleared, err := tableSvc.Clear(t.Context(), table.ID)
	require.NoError(t, err)
	assert.Nil(t, cleared.ReservationID)

	got, err = resSvc.Get(t.Context(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, got.Status)
}

func TestSeat_OccupiedTableRejected(t *testing.T) {
	cleanTables()
	resSvc := newReservationService()
	tableSvc := newTableService()

	first := createReservation(t, resSvc, "5551110002", "17:30", 2)
	second := createReservation(t, resSvc, "5551110003", "18:00", 2)
	table := createTable(t, tableSvc, "Bar #1", 4)

	_, err := tableSvc.Seat(t.Context(), table.ID, first.ID)
	require.NoError(t, err)

	_, err = tableSvc.Seat(t.Context(), table.ID, second.ID)
	var domainErr *service.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, service.KindConflict, domainErr.Kind)

	// The losing reservation must not have been marked seated.
	got, err := resSvc.Get(t.Context(), second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusBooked, got.Status)
}

func TestSeat_InsufficientCapacityRejected(t *testing.T) {
	cleanTables()
	resSvc := newReservationService()
	tableSvc := newTableService()

	reservation := createReservation(t, resSvc, "5551110004", "17:30", 6)
	table := createTable(t, tableSvc, "Two-top", 4)

	_, err := tableSvc.Seat(t.Context(), table.ID, reservation.ID)

	var domainErr *service.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, service.KindConflict, domainErr.Kind)
}

func TestClear_FreeTableRejected(t *testing.T) {
	cleanTables()
	tableSvc := newTableService()

	table := createTable(t, tableSvc, "Bar #1", 4)

	_, err := tableSvc.Clear(t.Context(), table.ID)

	var domainErr *service.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, service.KindConflict, domainErr.Kind)
}

// Two parties race for the same free table; the row lock serializes them so
// exactly one wins and exactly one reservation ends up seated.
func TestConcurrentSeat_OnlyOneWins(t *testing.T) {
	cleanTables()
	resSvc := newReservationService()
	tableSvc := newTableService()

	table := createTable(t, tableSvc, "Window #4", 4)

	totalParties := 8
	reservationIDs := make([]uint, totalParties)
	for i := 0; i < totalParties; i++ {
		r := createReservation(t, resSvc, fmt.Sprintf("55522200%02d", i), "17:30", 2)
		reservationIDs[i] = r.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, totalParties)

	wg.Add(totalParties)
	for i := 0; i < totalParties; i++ {
		go func(reservationID uint) {
			defer wg.Done()
			_, err := tableSvc.Seat(t.Context(), table.ID, reservationID)
			errs <- err
		}(reservationIDs[i])
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		var domainErr *service.Error
		if errors.As(err, &domainErr) && domainErr.Kind == service.KindConflict {
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "exactly one party should get the table")
	assert.Equal(t, totalParties-1, conflicts)

	var seatedCount int64
	testDB.Model(&models.Reservation{}).
		Where("status = ?", models.StatusSeated).
		Count(&seatedCount)
	assert.Equal(t, int64(1), seatedCount)
}

// One party raced onto several free tables at once; the reservation row lock
// serializes the attempts so the party ends up at exactly one table.
func TestConcurrentSeat_OneReservationOneTable(t *testing.T) {
	cleanTables()
	resSvc := newReservationService()
	tableSvc := newTableService()

	reservation := createReservation(t, resSvc, "5553330001", "17:30", 2)

	totalTables := 8
	tableIDs := make([]uint, totalTables)
	for i := 0; i < totalTables; i++ {
		table := createTable(t, tableSvc, fmt.Sprintf("Booth #%d", i+1), 4)
		tableIDs[i] = table.ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, totalTables)

	wg.Add(totalTables)
	for i := 0; i < totalTables; i++ {
		go func(tableID uint) {
			defer wg.Done()
			_, err := tableSvc.Seat(t.Context(), tableID, reservation.ID)
			errs <- err
		}(tableIDs[i])
	}
	wg.Wait()
	close(errs)

	var wins, conflicts int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		var domainErr *service.Error
		if errors.As(err, &domainErr) && domainErr.Kind == service.KindConflict {
			conflicts++
		}
	}

	assert.Equal(t, 1, wins, "the party should be seated at exactly one table")
	assert.Equal(t, totalTables-1, conflicts)

	var occupiedCount int64
	testDB.Model(&models.Table{}).
		Where("reservation_id = ?", reservation.ID).
		Count(&occupiedCount)
	assert.Equal(t, int64(1), occupiedCount)
}
