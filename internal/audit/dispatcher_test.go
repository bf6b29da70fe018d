package audit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/service-scheduler/internal/db/dbtest"
)

func TestDispatcherPersistsEvents(t *testing.T) {
	db := dbtest.Open(t)
	logger := New(db)
	d := NewDispatcher(logger, zerolog.Nop())

	id := uint(9)
	d.Dispatch(Event{ProviderID: 1, Action: "appointment_created", Entity: "appointment", EntityID: &id, Metadata: map[string]any{"via": "round_robin"}})
	d.Dispatch(Event{ProviderID: 1, Action: "appointment_cancelled", Entity: "appointment", EntityID: &id})
	d.Dispatch(Event{ProviderID: 2, Action: "appointment_created", Entity: "appointment"})
	d.Close()

	logs, total, err := logger.List(context.Background(), Query{ProviderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 2)

	created, _, err := logger.List(context.Background(), Query{ProviderID: 1, Action: "appointment_created"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.JSONEq(t, `{"via":"round_robin"}`, created[0].Metadata)
	assert.Equal(t, &id, created[0].EntityID)
}

func TestListPaginates(t *testing.T) {
	db := dbtest.Open(t)
	logger := New(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, logger.Log(ctx, Event{ProviderID: 1, Action: "x"}))
	}

	page, total, err := logger.List(ctx, Query{ProviderID: 1, Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page, 2)

	future := time.Now().Add(time.Hour)
	none, total, err := logger.List(ctx, Query{ProviderID: 1, From: &future})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "ignored"})
	d.Close()
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	db := dbtest.Open(t)
	logger := New(db)
	d := NewDispatcher(logger, zerolog.Nop())

	d.Dispatch(Event{ProviderID: 1, Action: "appointment_created"})
	d.Close()

	assert.NotPanics(t, func() {
		d.Dispatch(Event{ProviderID: 1, Action: "appointment_cancelled"})
		d.Close()
	})

	_, total, err := logger.List(context.Background(), Query{ProviderID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestDispatchRacesClose(t *testing.T) {
	d := NewDispatcher(New(dbtest.Open(t)), zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				d.Dispatch(Event{ProviderID: 1, Action: "x"})
			}
		}()
	}
	d.Close()
	wg.Wait()
}
