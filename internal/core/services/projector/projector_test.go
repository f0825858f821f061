package projector

import (
	"context"
	"testing"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type staticReader struct {
	state domain.HistoryState
}

func (r *staticReader) State() domain.HistoryState { return r.state }

type MockSink struct {
	mock.Mock
}

func (m *MockSink) PublishDashboard(ctx context.Context, d domain.Dashboard) {
	m.Called(ctx, d)
}

func withSnapshot(snap domain.Snapshot) *staticReader {
	return &staticReader{state: domain.HistoryState{Latest: &snap, Samples: 1}}
}

func render(t *testing.T, snap domain.Snapshot, layout Layout) domain.Dashboard {
	t.Helper()
	p := New(withSnapshot(snap), layout)
	p.SetClock(func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) })
	return p.RenderAll(context.Background())
}

func TestRenderAll_CommandTableWithoutCommands(t *testing.T) {
	d := render(t, domain.Snapshot{TotalCommands: 0}, nil)

	require.NotNil(t, d.CommandTable)
	require.Len(t, d.CommandTable.Rows, 7)

	wantOrder := []string{"Hunt", "Battle", "Owo", "Pray", "Curse", "Daily", "Sell"}
	for i, row := range d.CommandTable.Rows {
		assert.Equal(t, wantOrder[i], row.Name)
		assert.Equal(t, "0", row.Count)
		assert.Equal(t, "0", row.Success)
		assert.Equal(t, "0", row.Fail)
		assert.Equal(t, "0.0%", row.Rate)
		assert.Equal(t, "0", row.Currency)
		assert.Equal(t, "Never", row.LastUsed)
	}
}

func TestRenderAll_CommandTableRow(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	d := render(t, domain.Snapshot{CommandMap: map[string]domain.CommandStats{
		"hunt": {Count: 1500, Success: 1497, Currency: 120000, LastUsed: domain.NewTimestamp(now.Add(-90 * time.Second))},
	}}, nil)

	row := d.CommandTable.Rows[0]
	assert.Equal(t, "hunt", row.Command)
	assert.Equal(t, "1,500", row.Count)
	assert.Equal(t, "1,497", row.Success)
	assert.Equal(t, "3", row.Fail)
	assert.Equal(t, "99.8%", row.Rate)
	assert.Equal(t, "120,000", row.Currency)
	assert.Equal(t, "1 min ago", row.LastUsed)
}

func TestRenderAll_IncomeDistribution(t *testing.T) {
	d := render(t, domain.Snapshot{
		TotalCurrency: 1000,
		CommandMap: map[string]domain.CommandStats{
			"hunt":   {Currency: 300},
			"battle": {Currency: 200},
			"sell":   {Currency: 100},
			"daily":  {Currency: 50},
		},
	}, nil)

	chart := d.Charts[domain.TargetIncomeChart]
	assert.Equal(t, "doughnut", chart.Type)
	assert.Equal(t, []string{"Hunt", "Battle", "Sell", "Daily", "Other"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, []float64{300, 200, 100, 50, 350}, chart.Datasets[0].Data)
	assert.Equal(t, []int{30, 20, 10, 5, 35}, chart.Datasets[0].Percentages)
	assert.Equal(t, []string{"#4CAF50", "#2196F3", "#FFEB3B", "#00BCD4", "#9E9E9E"}, chart.Datasets[0].BorderColor)
}

func TestRenderAll_IncomeOtherNeverNegative(t *testing.T) {
	d := render(t, domain.Snapshot{
		TotalCurrency: 100,
		CommandMap:    map[string]domain.CommandStats{"hunt": {Currency: 400}},
	}, nil)

	data := d.Charts[domain.TargetIncomeChart].Datasets[0].Data
	assert.Equal(t, float64(0), data[4])
	for _, v := range data {
		assert.GreaterOrEqual(t, v, float64(0))
	}
}

func TestRenderAll_IncomeEmptySnapshot(t *testing.T) {
	d := render(t, domain.Snapshot{}, nil)
	ds := d.Charts[domain.TargetIncomeChart].Datasets[0]
	assert.Equal(t, []float64{0, 0, 0, 0, 0}, ds.Data)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, ds.Percentages)
}

func TestRenderAll_SuccessChart(t *testing.T) {
	d := render(t, domain.Snapshot{CommandMap: map[string]domain.CommandStats{
		"hunt":   {Count: 10, Success: 9},
		"battle": {Count: 7, Success: 3},
		"pray":   {Count: 0, Success: 0},
	}}, nil)

	chart := d.Charts[domain.TargetSuccessChart]
	assert.Equal(t, "bar", chart.Type)
	assert.Equal(t, []string{"Hunt", "Battle", "OwO", "Pray", "Curse", "Sell"}, chart.Labels)
	assert.Equal(t, []float64{90, 43, 0, 0, 0, 0}, chart.Datasets[0].Data)
}

func TestRenderAll_HourlyAndResourceCharts(t *testing.T) {
	var hourly domain.HourlyEarnings
	hourly.Add(14, 250)
	ts := time.Date(2024, 5, 1, 14, 3, 7, 0, time.UTC)
	reader := &staticReader{state: domain.HistoryState{
		Timestamps: []time.Time{ts, ts.Add(10 * time.Second)},
		CPU:        []float64{40, 45},
		Memory:     []float64{60, 61},
		Latency:    []float64{80, 90},
		Hourly:     hourly,
	}}

	d := New(reader, nil).RenderAll(context.Background())

	h := d.Charts[domain.TargetHourlyChart]
	require.Len(t, h.Labels, 24)
	assert.Equal(t, "0:00", h.Labels[0])
	assert.Equal(t, "14:00", h.Labels[14])
	assert.Equal(t, float64(250), h.Datasets[0].Data[14])

	r := d.Charts[domain.TargetResourceChart]
	assert.Equal(t, []string{ts.Format("15:04:05"), ts.Add(10 * time.Second).Format("15:04:05")}, r.Labels)
	require.Len(t, r.Datasets, 3)
	assert.Equal(t, "CPU (%)", r.Datasets[0].Label)
	assert.Equal(t, []float64{40, 45}, r.Datasets[0].Data)
	assert.Equal(t, "Memory (%)", r.Datasets[1].Label)
	assert.Equal(t, "Latency (ms)", r.Datasets[2].Label)
	assert.True(t, r.Datasets[2].Hidden)
	assert.False(t, r.Datasets[0].Hidden)
}

func TestRenderAll_Summary(t *testing.T) {
	battery := 85.0
	d := render(t, domain.Snapshot{
		TotalCommands: 12478,
		TotalCurrency: 567832,
		CommandMap: map[string]domain.CommandStats{
			"hunt":   {Count: 10, Success: 9},
			"battle": {Count: 10, Success: 8},
		},
		System: domain.SystemStats{CPU: 45.5, Memory: 62, Latency: 78, Uptime: 90000, Battery: &battery},
		Trends: &domain.Trends{
			Currency: domain.Trend{Hourly: 5.2},
			Commands: domain.Trend{Hourly: -3},
		},
	}, nil)

	assert.Equal(t, "12,478", d.Text[domain.TargetTotalCommands])
	assert.Equal(t, "567,832", d.Text[domain.TargetTotalCurrency])
	assert.Equal(t, "1d 1h", d.Text[domain.TargetRuntime])
	assert.Equal(t, "85.0%", d.Text[domain.TargetSuccessRate])
	assert.Equal(t, "45.5%", d.Text[domain.TargetCPUValue])
	assert.Equal(t, "62%", d.Text[domain.TargetMemoryValue])
	assert.Equal(t, "78ms", d.Text[domain.TargetLatencyValue])
	assert.Equal(t, 45.5, d.Progress[domain.TargetCPUBar])
	assert.InDelta(t, 15.6, d.Progress[domain.TargetLatencyBar], 1e-9)

	assert.True(t, d.Visible[domain.TargetBatteryContainer])
	assert.Equal(t, 85.0, d.Progress[domain.TargetBatteryBar])
	assert.Equal(t, "85%", d.Text[domain.TargetBatteryValue])

	assert.Equal(t, "+5.2%", d.Text[domain.TargetCurrencyChange])
	assert.Equal(t, "positive", d.Classes[domain.TargetCurrencyChange])
	assert.Equal(t, "-3%", d.Text[domain.TargetCommandsChange])
	assert.Equal(t, "negative", d.Classes[domain.TargetCommandsChange])
}

func TestRenderAll_OptionalSummaryParts(t *testing.T) {
	zero := 0.0
	d := render(t, domain.Snapshot{System: domain.SystemStats{Latency: 900, Battery: &zero}}, nil)

	assert.Equal(t, float64(100), d.Progress[domain.TargetLatencyBar])
	assert.Equal(t, "0.0%", d.Text[domain.TargetSuccessRate])

	assert.NotContains(t, d.Visible, domain.TargetBatteryContainer)
	assert.NotContains(t, d.Text, domain.TargetBatteryValue)
	assert.NotContains(t, d.Progress, domain.TargetBatteryBar)
	assert.NotContains(t, d.Text, domain.TargetCurrencyChange)
	assert.NotContains(t, d.Classes, domain.TargetCommandsChange)
}

func TestRenderAll_UnmountedTargetsAreSkipped(t *testing.T) {
	layout, err := ParseLayout([]string{"total-commands", "hourlyEarningsChart"})
	require.NoError(t, err)

	d := render(t, domain.Snapshot{TotalCommands: 5}, layout)

	assert.Equal(t, map[domain.Target]string{domain.TargetTotalCommands: "5"}, d.Text)
	assert.Len(t, d.Charts, 1)
	assert.Contains(t, d.Charts, domain.TargetHourlyChart)
	assert.Empty(t, d.Progress)
	assert.Nil(t, d.CommandTable)
	assert.Nil(t, d.Timeline)
	assert.Nil(t, d.Pets)
}

func TestParseLayout(t *testing.T) {
	full, err := ParseLayout(nil)
	require.NoError(t, err)
	assert.Len(t, full, len(domain.AllTargets()))

	_, err = ParseLayout([]string{"no-such-element"})
	assert.Error(t, err)
}

func TestRenderAll_Timeline(t *testing.T) {
	d := render(t, domain.Snapshot{RecentActivity: []domain.Activity{
		{Time: "12:00", Text: "Successfully executed Hunt command", Type: "success"},
		{Time: "12:01", Text: "Something happened"},
	}}, nil)

	require.Len(t, d.Timeline.Items, 2)
	assert.Equal(t, "event-success", d.Timeline.Items[0].Class)
	assert.Equal(t, "event-info", d.Timeline.Items[1].Class)
	assert.Empty(t, d.Timeline.Empty)

	empty := render(t, domain.Snapshot{}, nil)
	assert.Empty(t, empty.Timeline.Items)
	assert.Equal(t, "No recent activity", empty.Timeline.Empty)
}

func TestRenderAll_Pets(t *testing.T) {
	d := render(t, domain.Snapshot{PetList: []domain.Pet{
		{Name: "Fox", Level: 12, Experience: 50, MaxExperience: 200, Attack: 30, Defense: 18},
		{Name: "Egg", Level: 1},
	}}, nil)

	require.Len(t, d.Pets.Cards, 2)
	fox := d.Pets.Cards[0]
	assert.Equal(t, "Fox", fox.Name)
	assert.Equal(t, "Level 12", fox.Level)
	assert.Equal(t, "25.0", fox.Experience)
	assert.Equal(t, "ATK: 30", fox.Attack)
	assert.Equal(t, "DEF: 18", fox.Defense)
	assert.Equal(t, "0", d.Pets.Cards[1].Experience)

	empty := render(t, domain.Snapshot{}, nil)
	assert.Equal(t, "No Pets", empty.Pets.EmptyTitle)
	assert.Equal(t, "Start hunting to collect pets!", empty.Pets.EmptyHint)
}

func TestRenderAll_PublishesAndRetainsLatest(t *testing.T) {
	sink := new(MockSink)
	sink.On("PublishDashboard", mock.Anything, mock.AnythingOfType("domain.Dashboard")).Return().Twice()

	p := New(withSnapshot(domain.Snapshot{TotalCommands: 1}), nil, sink)
	_, ok := p.Latest()
	assert.False(t, ok)

	first := p.RenderAll(context.Background())
	second := p.RenderAll(context.Background())

	latest, ok := p.Latest()
	require.True(t, ok)
	assert.Equal(t, second.Revision, latest.Revision)
	assert.NotEqual(t, first.Revision, second.Revision)
	sink.AssertExpectations(t)
}

func TestRenderAll_AddSink(t *testing.T) {
	sink := new(MockSink)
	sink.On("PublishDashboard", mock.Anything, mock.Anything).Return().Once()

	p := New(withSnapshot(domain.Snapshot{}), nil)
	p.AddSink(sink)
	p.RenderAll(context.Background())

	sink.AssertExpectations(t)
}
