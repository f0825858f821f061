package mock

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

const maxActivity = 10

// earnings are the cowoncy ranges a successful command can pay out.
var earnings = map[string][2]int64{
	"hunt":   {40, 120},
	"battle": {30, 95},
	"owo":    {0, 10},
	"pray":   {0, 0},
	"curse":  {0, 0},
	"daily":  {500, 1500},
	"sell":   {150, 402},
}

var mockCommands = []string{"hunt", "battle", "owo", "hunt", "battle", "owo", "pray", "curse", "sell", "daily"}

var demoPets = []domain.Pet{
	{Name: "Dragon", Level: 27, Experience: 1840, MaxExperience: 2700, Attack: 54, Defense: 41},
	{Name: "Unicorn", Level: 19, Experience: 610, MaxExperience: 1900, Attack: 33, Defense: 38},
	{Name: "Fox", Level: 12, Experience: 95, MaxExperience: 1200, Attack: 21, Defense: 17},
}

// HostSampler reports the CPU and memory usage of the machine.
type HostSampler interface {
	Sample(ctx context.Context) (cpu, memory float64, err error)
}

// DataGenerator random-walks a bot's stats snapshot.
type DataGenerator struct {
	mu      sync.Mutex
	rng     *rand.Rand
	host    HostSampler
	started time.Time
	now     func() time.Time

	totalCommands int64
	totalCurrency int64
	commands      map[string]domain.CommandStats
	system        domain.SystemStats
	activity      []domain.Activity
	lastCurrency  int64
	lastCommands  int64
}

// NewDataGenerator seeds the generator with the demo figures. host may be nil.
func NewDataGenerator(seed int64, host HostSampler) *DataGenerator {
	battery := 85.0
	g := &DataGenerator{
		rng:           rand.New(rand.NewSource(seed)),
		host:          host,
		now:           time.Now,
		totalCommands: 12478,
		totalCurrency: 567832,
		commands:      make(map[string]domain.CommandStats),
		system:        domain.SystemStats{CPU: 45, Memory: 62, Latency: 78, Battery: &battery},
	}
	g.started = g.now().Add(-(23*time.Hour + 45*time.Minute))
	g.lastCurrency = g.totalCurrency
	g.lastCommands = g.totalCommands

	seeded := map[string][2]int64{
		"hunt": {5120, 5102}, "battle": {4300, 4291}, "owo": {2500, 2500},
		"pray": {210, 210}, "curse": {48, 47}, "daily": {30, 30}, "sell": {270, 268},
	}
	for name, c := range seeded {
		last := g.now().Add(-time.Duration(g.rng.Intn(3600)) * time.Second)
		g.commands[name] = domain.CommandStats{Count: c[0], Success: c[1], LastUsed: domain.NewTimestamp(last)}
	}
	return g
}

// Step advances the walk by one simulated command and refreshes host figures.
func (g *DataGenerator) Step(ctx context.Context) {
	var cpu, memory float64
	var hostErr error = errNoHost
	if g.host != nil {
		cpu, memory, hostErr = g.host.Sample(ctx)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()

	name := mockCommands[g.rng.Intn(len(mockCommands))]
	stats := g.commands[name]
	stats.Count++
	g.totalCommands++

	if g.rng.Float64() < 0.99 {
		stats.Success++
		r := earnings[name]
		earned := r[0]
		if r[1] > r[0] {
			earned += g.rng.Int63n(r[1] - r[0] + 1)
		}
		stats.Currency += earned
		g.totalCurrency += earned
		g.record(now, "Successfully executed "+titleCase(name)+" command", "success")
	} else {
		g.record(now, "Detected rate limit, waiting 5 seconds", "warning")
	}
	stats.LastUsed = domain.NewTimestamp(now)
	g.commands[name] = stats

	if hostErr == nil {
		g.system.CPU = cpu
		g.system.Memory = memory
	} else {
		g.system.CPU = walk(g.rng, g.system.CPU, 5, 0, 100)
		g.system.Memory = walk(g.rng, g.system.Memory, 3, 0, 100)
	}
	g.system.Latency = int64(walk(g.rng, float64(g.system.Latency), 15, 20, 500))
	if g.system.Battery != nil {
		b := walk(g.rng, *g.system.Battery, 0.5, 1, 100)
		g.system.Battery = &b
	}
}

func (g *DataGenerator) record(now time.Time, text, kind string) {
	item := domain.Activity{Time: now.Format("15:04:05"), Text: text, Type: kind}
	g.activity = append([]domain.Activity{item}, g.activity...)
	if len(g.activity) > maxActivity {
		g.activity = g.activity[:maxActivity]
	}
}

// Snapshot returns the current stats as the bot would serve them.
func (g *DataGenerator) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	cmds := make(map[string]domain.CommandStats, len(g.commands))
	for k, v := range g.commands {
		cmds[k] = v
	}
	system := g.system
	system.Uptime = int64(g.now().Sub(g.started).Seconds())
	if g.system.Battery != nil {
		b := *g.system.Battery
		system.Battery = &b
	}

	snap := domain.Snapshot{
		TotalCommands:  g.totalCommands,
		TotalCurrency:  g.totalCurrency,
		CommandMap:     cmds,
		System:         system,
		RecentActivity: append([]domain.Activity(nil), g.activity...),
		PetList:        append([]domain.Pet(nil), demoPets...),
		Trends: &domain.Trends{
			Currency: domain.Trend{Hourly: percentChange(g.lastCurrency, g.totalCurrency)},
			Commands: domain.Trend{Hourly: percentChange(g.lastCommands, g.totalCommands)},
		},
	}
	return snap
}

// MarkHour rolls the trend baseline forward.
func (g *DataGenerator) MarkHour() {
	g.mu.Lock()
	g.lastCurrency = g.totalCurrency
	g.lastCommands = g.totalCommands
	g.mu.Unlock()
}

func percentChange(from, to int64) float64 {
	if from == 0 {
		return 0
	}
	return float64(int64(float64(to-from)/float64(from)*1000)) / 10
}

func walk(rng *rand.Rand, v, step, lo, hi float64) float64 {
	v += (rng.Float64()*2 - 1) * step
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return float64(int64(v*10)) / 10
}

func titleCase(s string) string {
	if s == "owo" {
		return "OwO"
	}
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
