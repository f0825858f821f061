package aggregator

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/lcalzada-xor/duskboard/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Persist(sample domain.Sample) {
	m.Called(sample)
}

// fakeClock returns a settable time.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.March, day, hour, min, 0, 0, time.Local)
}

func snap(currency int64) domain.Snapshot {
	return domain.Snapshot{TotalCurrency: currency}
}

func TestIngest_CreditsPositiveDeltaToCurrentHour(t *testing.T) {
	clock := &fakeClock{t: at(1, 14, 0)}
	agg := New(WithClock(clock.Now))

	agg.Ingest(snap(1000))
	clock.Set(at(1, 14, 10))
	agg.Ingest(snap(1250))

	hourly := agg.Hourly()
	assert.Equal(t, int64(250), hourly[14])
	assert.Equal(t, int64(250), hourly.Total())
}

func TestIngest_NegativeDeltaIsIgnored(t *testing.T) {
	clock := &fakeClock{t: at(1, 14, 0)}
	agg := New(WithClock(clock.Now))

	agg.Ingest(snap(1000))
	agg.Ingest(snap(1250))
	agg.Ingest(snap(900))

	hourly := agg.Hourly()
	assert.Equal(t, int64(250), hourly[14])
	assert.Equal(t, []int64{1000, 1250, 900}, agg.State().Currency)
}

func TestIngest_FirstSampleCreditsNothing(t *testing.T) {
	agg := New(WithClock(func() time.Time { return at(1, 9, 0) }))
	agg.Ingest(snap(5000))

	assert.Equal(t, int64(0), agg.Hourly().Total())
	assert.Equal(t, 1, agg.State().Samples)
}

func TestIngest_WindowsAreBounded(t *testing.T) {
	for _, n := range []int{1, 5, 10, 11, 37, 250} {
		agg := New(WithHistoryLength(10))
		for i := 0; i < n; i++ {
			agg.Ingest(domain.Snapshot{
				TotalCurrency: int64(i),
				CommandMap:    map[string]domain.CommandStats{"hunt": {Count: int64(i)}},
				System:        domain.SystemStats{CPU: float64(i), Memory: float64(i), Latency: int64(i)},
			})
		}

		state := agg.State()
		want := n
		if want > 10 {
			want = 10
		}
		require.Len(t, state.Timestamps, want, "n=%d", n)
		require.Len(t, state.Currency, want, "n=%d", n)
		require.Len(t, state.Commands["hunt"], want, "n=%d", n)
		require.Len(t, state.CPU, want, "n=%d", n)
		require.Len(t, state.Memory, want, "n=%d", n)
		require.Len(t, state.Latency, want, "n=%d", n)

		// Oldest retained sample is n-want; newest is n-1.
		assert.Equal(t, int64(n-want), state.Currency[0])
		assert.Equal(t, int64(n-1), state.Currency[want-1])
		assert.Equal(t, n, state.Samples)
	}
}

func TestIngest_ResourceSeriesStayAligned(t *testing.T) {
	agg := New(WithHistoryLength(3))
	for i := 1; i <= 5; i++ {
		agg.Ingest(domain.Snapshot{System: domain.SystemStats{
			CPU:     float64(i),
			Memory:  float64(i * 10),
			Latency: int64(i * 100),
		}})
	}

	state := agg.State()
	assert.Equal(t, []float64{3, 4, 5}, state.CPU)
	assert.Equal(t, []float64{30, 40, 50}, state.Memory)
	assert.Equal(t, []float64{300, 400, 500}, state.Latency)
}

func TestIngest_CommandWindowsCreatedLazily(t *testing.T) {
	agg := New()

	agg.Ingest(domain.Snapshot{CommandMap: map[string]domain.CommandStats{"hunt": {Count: 1}}})
	assert.NotContains(t, agg.State().Commands, "battle")

	agg.Ingest(domain.Snapshot{CommandMap: map[string]domain.CommandStats{
		"hunt":   {Count: 2},
		"battle": {Count: 7},
	}})

	state := agg.State()
	assert.Equal(t, []int64{1, 2}, state.Commands["hunt"])
	assert.Equal(t, []int64{7}, state.Commands["battle"])
}

func TestIngest_DegradedSnapshot(t *testing.T) {
	agg := New()
	assert.NotPanics(t, func() { agg.Ingest(domain.Snapshot{}) })

	state := agg.State()
	assert.Len(t, state.Timestamps, 1)
	assert.Equal(t, []float64{0}, state.CPU)
	assert.Empty(t, state.Commands)
}

func TestIngest_MidnightReset(t *testing.T) {
	clock := &fakeClock{t: at(1, 23, 0)}
	agg := New(WithClock(clock.Now), WithHourlyReset(domain.HourlyResetMidnight))

	agg.Ingest(snap(100))
	clock.Set(at(1, 23, 30))
	agg.Ingest(snap(300))
	require.Equal(t, int64(200), agg.Hourly()[23])

	clock.Set(at(2, 0, 5))
	agg.Ingest(snap(350))

	hourly := agg.Hourly()
	assert.Equal(t, int64(0), hourly[23])
	assert.Equal(t, int64(50), hourly[0])
}

func hourlyGauge(hour int) float64 {
	return testutil.ToFloat64(telemetry.HourlyEarnings.WithLabelValues(strconv.Itoa(hour)))
}

func TestIngest_HourlyGaugeFollowsMidnightReset(t *testing.T) {
	clock := &fakeClock{t: at(1, 14, 0)}
	agg := New(WithClock(clock.Now), WithHourlyReset(domain.HourlyResetMidnight))

	agg.Ingest(snap(100))
	clock.Set(at(1, 14, 20))
	agg.Ingest(snap(150))
	assert.Equal(t, 50.0, hourlyGauge(14))

	clock.Set(at(2, 9, 0))
	agg.Ingest(snap(160))

	hourly := agg.Hourly()
	for hour := range hourly {
		assert.Equal(t, float64(hourly[hour]), hourlyGauge(hour), "hour %d", hour)
	}
	assert.Equal(t, 0.0, hourlyGauge(14))
	assert.Equal(t, 10.0, hourlyGauge(9))
}

func TestReset_ClearsHourlyGauge(t *testing.T) {
	clock := &fakeClock{t: at(1, 9, 0)}
	agg := New(WithClock(clock.Now))

	agg.Ingest(snap(100))
	agg.Ingest(snap(110))
	require.Equal(t, 10.0, hourlyGauge(9))

	agg.Reset()
	assert.Equal(t, 0.0, hourlyGauge(9))
}

func TestIngest_NeverResetKeepsAccumulating(t *testing.T) {
	clock := &fakeClock{t: at(1, 10, 0)}
	agg := New(WithClock(clock.Now))

	agg.Ingest(snap(100))
	agg.Ingest(snap(200))
	clock.Set(at(2, 10, 0))
	agg.Ingest(snap(260))

	assert.Equal(t, int64(160), agg.Hourly()[10])
}

func TestIngest_ForwardsSampleToArchive(t *testing.T) {
	now := at(1, 12, 0)
	archive := new(MockArchiver)
	archive.On("Persist", mock.MatchedBy(func(s domain.Sample) bool {
		return s.TotalCurrency == 42 && s.Timestamp.Equal(now) && s.Commands["hunt"] == 3
	})).Return().Once()

	agg := New(WithClock(func() time.Time { return now }), WithArchive(archive))
	agg.Ingest(domain.Snapshot{
		TotalCurrency: 42,
		CommandMap:    map[string]domain.CommandStats{"hunt": {Count: 3}},
	})

	archive.AssertExpectations(t)
}

func TestLatestAndReset(t *testing.T) {
	agg := New()
	_, ok := agg.Latest()
	assert.False(t, ok)

	agg.Ingest(domain.Snapshot{TotalCommands: 9})
	latest, ok := agg.Latest()
	require.True(t, ok)
	assert.Equal(t, int64(9), latest.TotalCommands)
	require.NotNil(t, agg.State().Latest)

	agg.Reset()
	state := agg.State()
	assert.Empty(t, state.Timestamps)
	assert.Empty(t, state.Commands)
	assert.Nil(t, state.Latest)
	assert.Equal(t, 0, state.Samples)
}

func TestState_IsACopy(t *testing.T) {
	agg := New()
	agg.Ingest(snap(10))

	state := agg.State()
	state.Currency[0] = 999
	state.Hourly[0] = 999

	fresh := agg.State()
	assert.Equal(t, int64(10), fresh.Currency[0])
	assert.Equal(t, int64(0), fresh.Hourly[0])
}

func TestConcurrentIngestAndRead(t *testing.T) {
	agg := New(WithHistoryLength(20))
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				agg.Ingest(snap(int64(i*100 + j)))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s := agg.State()
				assert.Equal(t, len(s.CPU), len(s.Timestamps))
			}
		}()
	}
	wg.Wait()
	assert.Len(t, agg.State().Currency, 20)
}
