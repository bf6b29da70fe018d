package roundrobin

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/httperr"
)

func everyone(context.Context, uint) (bool, error) { return true, nil }

func TestPickRotatesInListOrder(t *testing.T) {
	employees := []uint{11, 22, 33}
	cursor := 0
	var got []uint

	for i := 0; i < 3; i++ {
		res, err := Pick(context.Background(), employees, cursor, everyone)
		require.NoError(t, err)
		got = append(got, res.EmployeeID)
		cursor = res.NextIndex
	}

	assert.Equal(t, []uint{11, 22, 33}, got)
	assert.Equal(t, 3, cursor)

	fourth, err := Pick(context.Background(), employees, cursor, everyone)
	require.NoError(t, err)
	assert.Equal(t, uint(11), fourth.EmployeeID)
}

func TestPickSkipsIneligibleAndAdvancesOneStep(t *testing.T) {
	busy := map[uint]bool{22: true}
	eligible := func(_ context.Context, id uint) (bool, error) { return !busy[id], nil }

	res, err := Pick(context.Background(), []uint{11, 22, 33}, 1, eligible)

	require.NoError(t, err)
	assert.Equal(t, uint(33), res.EmployeeID)
	assert.Equal(t, 2, res.CandidateIndex)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 2, res.NextIndex)
}

func TestPickWrapsAround(t *testing.T) {
	eligible := func(_ context.Context, id uint) (bool, error) { return id == 11, nil }

	res, err := Pick(context.Background(), []uint{11, 22, 33}, 5, eligible)

	require.NoError(t, err)
	assert.Equal(t, uint(11), res.EmployeeID)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 6, res.NextIndex)
}

func TestPickExhausted(t *testing.T) {
	calls := 0
	never := func(context.Context, uint) (bool, error) {
		calls++
		return false, nil
	}

	res, err := Pick(context.Background(), []uint{1, 2, 3}, 0, never)

	assert.ErrorIs(t, err, httperr.ErrNoAvailableEmployee)
	assert.Equal(t, httperr.KindNoAvailableEmployee, httperr.KindOf(err))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, res.Attempts)
}

func TestPickNoEmployees(t *testing.T) {
	_, err := Pick(context.Background(), nil, 0, everyone)
	assert.ErrorIs(t, err, httperr.ErrNoAvailableEmployee)
}

func TestPickPropagatesLookupErrors(t *testing.T) {
	boom := errors.New("db down")
	failing := func(context.Context, uint) (bool, error) { return false, boom }

	_, err := Pick(context.Background(), []uint{1}, 0, failing)
	assert.ErrorIs(t, err, boom)
}
