package devtools

import (
	"context"

	"algoverse/internal/tracker"
)

type Demo interface {
	Names() []string
	Resolve(name string) Scenario
	Apply(ctx context.Context, t *tracker.Tracker, s Scenario)
}
