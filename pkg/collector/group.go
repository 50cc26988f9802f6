package collector

import "golang.org/x/sync/errgroup"

// group is a bounded task group for per-instance fan-out. Tasks record their
// own failures instead of returning errors, so one failed fetch never cancels
// its siblings; Wait is purely a join point.
type group struct {
	eg errgroup.Group
}

func newGroup(limit int) *group {
	g := &group{}
	if limit > 0 {
		g.eg.SetLimit(limit)
	}
	return g
}

func (g *group) Go(task func()) {
	g.eg.Go(func() error {
		task()
		return nil
	})
}

func (g *group) Wait() {
	_ = g.eg.Wait()
}
