package mock

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var errNoHost = errors.New("no host sampler")

// GopsutilSampler reads real host usage so the mock tracks the machine it
// runs on.
type GopsutilSampler struct{}

func (GopsutilSampler) Sample(ctx context.Context) (float64, float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, 0, err
	}
	if len(percents) == 0 {
		return 0, 0, errors.New("cpu: no samples")
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return round1(percents[0]), round1(vm.UsedPercent), nil
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
