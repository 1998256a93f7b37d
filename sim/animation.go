package sim

import "sort"

// segment is the interpolation state for one item: the leg currently being
// travelled plus a FIFO queue of subsequent targets. Queuing targets instead
// of restarting makes items turn at cell boundaries rather than cutting
// corners diagonally.
type segment struct {
	from     Vec2
	to       Vec2
	elapsed  float64
	duration float64
	queue    []Vec2
	bucket   int
}

// Animator converts discrete cell-to-cell moves into time-based interpolation,
// decoupled from the logical step cadence. It owns all item view positions;
// the routing engine never touches them. Advance it once per render frame with
// elapsed real time, not tick count.
type Animator struct {
	cfg         AnimationConfig
	tickSeconds float64

	segments map[int64]*segment
	views    map[int64]Vec2

	frame      int
	nextBucket int
}

// NewAnimator creates an animator with the given visual configuration.
// tickSeconds is the logical tick interval used when SyncToTick is set.
func NewAnimator(cfg AnimationConfig, tickSeconds float64) *Animator {
	if cfg.CellsPerSecond <= 0 {
		cfg.CellsPerSecond = 1
	}
	if cfg.Buckets < 1 {
		cfg.Buckets = 1
	}
	return &Animator{
		cfg:         cfg,
		tickSeconds: tickSeconds,
		segments:    make(map[int64]*segment),
		views:       make(map[int64]Vec2),
	}
}

func (a *Animator) segmentDuration(from, to Vec2) float64 {
	d := from.Dist(to) / a.cfg.CellsPerSecond
	if a.cfg.SyncToTick && a.tickSeconds > 0 {
		d = a.tickSeconds
	}
	if d < a.cfg.MinSegmentSeconds {
		d = a.cfg.MinSegmentSeconds
	}
	if d <= 0 {
		d = 1e-9
	}
	return d
}

// EnqueueMove records a logical move for the item's view. If the item is
// already animating, the target is appended to its queue so the current leg
// finishes first; otherwise a new segment starts immediately.
func (a *Animator) EnqueueMove(it *Item, from, to Vec2) {
	if it == nil {
		return
	}
	if seg, ok := a.segments[it.ID]; ok {
		seg.queue = append(seg.queue, to)
		return
	}
	seg := &segment{
		from:     from,
		to:       to,
		duration: a.segmentDuration(from, to),
		bucket:   a.nextBucket % a.cfg.Buckets,
	}
	a.nextBucket++
	a.segments[it.ID] = seg
	a.views[it.ID] = from
}

// RenderTick advances all animating items by dt seconds of real time and
// returns the IDs of items whose queues drained this frame, in ascending
// order. When bucketing is enabled only the current bucket's items advance,
// scaled by the bucket count so wall-clock speed is preserved.
func (a *Animator) RenderTick(dt float64) []int64 {
	a.frame++
	step := dt * float64(a.cfg.Buckets)
	current := a.frame % a.cfg.Buckets

	var settled []int64
	for id, seg := range a.segments {
		if a.cfg.Buckets > 1 && seg.bucket != current {
			continue
		}
		seg.elapsed += step
		for seg.elapsed >= seg.duration {
			if len(seg.queue) == 0 {
				a.views[id] = seg.to
				delete(a.segments, id)
				settled = append(settled, id)
				break
			}
			carry := seg.elapsed - seg.duration
			seg.from = seg.to
			seg.to = seg.queue[0]
			seg.queue = seg.queue[1:]
			seg.duration = a.segmentDuration(seg.from, seg.to)
			seg.elapsed = carry
		}
		if s, alive := a.segments[id]; alive {
			a.views[id] = s.from.Lerp(s.to, s.elapsed/s.duration)
		}
	}
	sort.Slice(settled, func(i, j int) bool { return settled[i] < settled[j] })
	return settled
}

// Position returns the item's current view position.
func (a *Animator) Position(id int64) (Vec2, bool) {
	p, ok := a.views[id]
	return p, ok
}

// SetPosition snaps the item's view to a fixed point without animating.
func (a *Animator) SetPosition(id int64, p Vec2) {
	a.views[id] = p
}

// Animating reports whether the item currently has an active segment.
func (a *Animator) Animating(id int64) bool {
	_, ok := a.segments[id]
	return ok
}

// Remove drops all animation and view state for an item (consumed or
// destroyed).
func (a *Animator) Remove(id int64) {
	delete(a.segments, id)
	delete(a.views, id)
}

// SnapAll freezes every animating item at its current interpolated position
// and clears all segments, including queued targets. Used on pause so no
// residual tween continues.
func (a *Animator) SnapAll() {
	for id, seg := range a.segments {
		a.views[id] = seg.from.Lerp(seg.to, seg.elapsed/seg.duration)
		delete(a.segments, id)
	}
}

// SetBucketCount changes the number of round-robin buckets, reassigning
// existing segments so every item keeps advancing after a resize.
func (a *Animator) SetBucketCount(n int) {
	if n < 1 {
		n = 1
	}
	a.cfg.Buckets = n
	for _, seg := range a.segments {
		seg.bucket = seg.bucket % n
	}
}
