package core

import (
	"slices"
	"sync"
)

// BuildOwner collects elements marked dirty between frames and rebuilds them
// when the host calls FlushBuild. Scheduling is safe from any goroutine;
// FlushBuild must run on the goroutine that owns the tree.
type BuildOwner struct {
	mu      sync.Mutex
	pending []Element
	queued  map[Element]struct{}

	// OnNeedsFrame runs after an element is queued into an empty owner,
	// so hosts can schedule one flush per batch of changes.
	OnNeedsFrame func()
}

// NewBuildOwner creates an owner with nothing queued.
func NewBuildOwner() *BuildOwner {
	return &BuildOwner{queued: make(map[Element]struct{})}
}

// ScheduleBuild queues element for the next flush. Queuing an element twice
// before a flush has no further effect.
func (b *BuildOwner) ScheduleBuild(element Element) {
	b.mu.Lock()
	if _, ok := b.queued[element]; ok {
		b.mu.Unlock()
		return
	}
	if b.queued == nil {
		b.queued = make(map[Element]struct{})
	}
	b.queued[element] = struct{}{}
	b.pending = append(b.pending, element)
	first := len(b.pending) == 1
	notify := b.OnNeedsFrame
	b.mu.Unlock()

	if first && notify != nil {
		notify()
	}
}

// NeedsWork reports whether any element is queued.
func (b *BuildOwner) NeedsWork() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending) > 0
}

// FlushBuild rebuilds queued elements, shallowest first, until nothing is
// queued. Elements queued during the flush are rebuilt in the same call.
// It returns the number of elements visited.
func (b *BuildOwner) FlushBuild() int {
	visited := 0
	for {
		batch := b.takePending()
		if len(batch) == 0 {
			return visited
		}
		slices.SortStableFunc(batch, func(x, y Element) int {
			return x.Depth() - y.Depth()
		})
		for _, element := range batch {
			if m, ok := element.(interface{ isMounted() bool }); ok && !m.isMounted() {
				continue
			}
			element.RebuildIfNeeded()
			visited++
		}
	}
}

func (b *BuildOwner) takePending() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	batch := b.pending
	b.pending = nil
	clear(b.queued)
	return batch
}
