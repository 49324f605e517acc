package engine_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"codeberg.org/mutker/vitalstats/internal/binding"
	"codeberg.org/mutker/vitalstats/internal/engine"
	"codeberg.org/mutker/vitalstats/internal/logger"
	"codeberg.org/mutker/vitalstats/internal/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySink struct {
	records []*engine.Record
	err     error
}

func (m *memorySink) Store(_ context.Context, rec *engine.Record) error {
	m.records = append(m.records, rec)
	return m.err
}

func newEngine(t *testing.T, bus *engine.Bus) *engine.Engine {
	t.Helper()
	e, err := engine.New(bus, engine.Config{
		LoopInterval:    2 * time.Second,
		ArchiveInterval: time.Minute,
		UnitSystem:      units.US,
	}, logger.Get())
	require.NoError(t, err)
	return e
}

func TestEngineTick(t *testing.T) {
	t.Run("emits loop packets and archive records on boundaries", func(t *testing.T) {
		// Arrange
		bus := engine.NewBus()
		var loops, archives []*engine.Record
		bus.Subscribe(engine.NewLoopPacket, func(e engine.Event) {
			rec := e.(engine.RecordEvent).Record
			rec.Set("seen", 1)
			loops = append(loops, rec)
		})
		bus.Subscribe(engine.NewArchiveRecord, func(e engine.Event) {
			archives = append(archives, e.(engine.RecordEvent).Record)
		})
		sink := &memorySink{}
		eng := newEngine(t, bus)
		eng.AddSink(sink)
		start := time.Date(2026, 10, 19, 12, 0, 10, 0, time.UTC)

		// Act
		for i := 0; i < 40; i++ {
			eng.Tick(context.Background(), start.Add(time.Duration(i)*2*time.Second))
		}

		// Assert
		require.Len(t, loops, 40)
		assert.Equal(t, binding.Loop, loops[0].Context)
		assert.Equal(t, units.US, loops[0].UnitSystem)
		v, ok := loops[0].Get("seen")
		assert.True(t, ok)
		assert.Equal(t, 1.0, v)

		require.Len(t, archives, 1)
		assert.Equal(t, binding.Archive, archives[0].Context)
		assert.Equal(t, time.Date(2026, 10, 19, 12, 1, 0, 0, time.UTC), archives[0].DateTime)
		assert.Equal(t, archives, sink.records)
	})

	t.Run("sink failure does not stop the engine", func(t *testing.T) {
		bus := engine.NewBus()
		sink := &memorySink{err: fmt.Errorf("disk full")}
		eng := newEngine(t, bus)
		eng.AddSink(sink)
		start := time.Date(2026, 10, 19, 12, 0, 58, 0, time.UTC)

		eng.Tick(context.Background(), start)
		eng.Tick(context.Background(), start.Add(2*time.Second))
		eng.Tick(context.Background(), start.Add(62*time.Second))

		assert.Len(t, sink.records, 2)
	})
}

func TestEngineConfigValidation(t *testing.T) {
	_, err := engine.New(engine.NewBus(), engine.Config{LoopInterval: 0, ArchiveInterval: time.Minute}, logger.Get())
	require.Error(t, err)

	_, err = engine.New(engine.NewBus(), engine.Config{LoopInterval: time.Minute, ArchiveInterval: time.Second}, logger.Get())
	require.Error(t, err)
}

func TestEngineRunStopsOnCancel(t *testing.T) {
	bus := engine.NewBus()
	var events []engine.EventType
	record := func(e engine.Event) { events = append(events, e.EventType()) }
	bus.Subscribe(engine.StartUp, record)
	bus.Subscribe(engine.ShutDown, record)

	eng := newEngine(t, bus)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, eng.Run(ctx))
	assert.Equal(t, []engine.EventType{engine.StartUp, engine.ShutDown}, events)
}
