package feed

const (
	// DefaultEndThreshold is how close to the end, in viewport heights, counts as reached
	DefaultEndThreshold = 0.1

	// DefaultPullThreshold is how many upward pulls at the top trigger a refresh
	DefaultPullThreshold = 3
)

// EndDetector fires once per content length when the viewport bottom gets
// within Threshold viewport heights of the content end. Leaving the zone re-arms it.
type EndDetector struct {
	Threshold float64

	firedAt int // Content length at the last fire, 0 when armed
}

// NewEndDetector creates a detector; a non-positive threshold uses the default
func NewEndDetector(threshold float64) *EndDetector {
	if threshold <= 0 {
		threshold = DefaultEndThreshold
	}
	return &EndDetector{Threshold: threshold}
}

// Check reports whether the end was just reached.
// offset and viewport are in rows, content is the total number of rows.
func (d *EndDetector) Check(offset, viewport, content int) bool {
	if content <= 0 || viewport <= 0 {
		return false
	}

	distance := content - (offset + viewport)
	if float64(distance) > d.Threshold*float64(viewport) {
		d.firedAt = 0
		return false
	}
	if d.firedAt == content {
		return false
	}
	d.firedAt = content
	return true
}

// Reset re-arms the detector (after the feed was replaced)
func (d *EndDetector) Reset() {
	d.firedAt = 0
}

// PullGesture turns repeated upward scrolls at the top of the list into a
// refresh, the terminal stand-in for a pull-down gesture.
type PullGesture struct {
	Threshold int

	pulled int
}

// NewPullGesture creates a gesture; a non-positive threshold uses the default
func NewPullGesture(threshold int) *PullGesture {
	if threshold <= 0 {
		threshold = DefaultPullThreshold
	}
	return &PullGesture{Threshold: threshold}
}

// Pull records one upward scroll at the top and reports whether it completes the gesture
func (p *PullGesture) Pull() bool {
	p.pulled++
	if p.pulled >= p.Threshold {
		p.pulled = 0
		return true
	}
	return false
}

// Release abandons a partial pull
func (p *PullGesture) Release() {
	p.pulled = 0
}

// Progress returns how far the current pull is, in [0,1)
func (p *PullGesture) Progress() float64 {
	return float64(p.pulled) / float64(p.Threshold)
}
