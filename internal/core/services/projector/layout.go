package projector

import (
	"fmt"

	"github.com/lcalzada-xor/duskboard/internal/core/domain"
)

// Layout is the set of targets present on the page. It is fixed when the
// projector is built.
type Layout map[domain.Target]bool

// FullLayout mounts every known target.
func FullLayout() Layout {
	l := make(Layout)
	for _, t := range domain.AllTargets() {
		l[t] = true
	}
	return l
}

// ParseLayout builds a layout from element ids. An empty list mounts
// everything; unknown ids are an error.
func ParseLayout(ids []string) (Layout, error) {
	if len(ids) == 0 {
		return FullLayout(), nil
	}
	l := make(Layout, len(ids))
	for _, id := range ids {
		t := domain.Target(id)
		if !domain.IsValidTarget(t) {
			return nil, fmt.Errorf("unknown dashboard target %q", id)
		}
		l[t] = true
	}
	return l, nil
}

func (l Layout) Mounted(t domain.Target) bool {
	return l[t]
}

