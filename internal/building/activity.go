package building

import (
	"errors"
	"fmt"
	"time"
)

// MaxCatalogue - максимум активностей в каталоге одного здания.
const MaxCatalogue = 8

// ErrCatalogueFull is returned when a catalogue exceeds MaxCatalogue.
var ErrCatalogueFull = errors.New("building: catalogue full")

// Activity is a timed production task.
type Activity struct {
	Title       string
	Description string
	Duration    time.Duration
	Cost        int
	// Effect runs once on completion. May be nil.
	Effect func()
}

// String implements fmt.Stringer.
func (a Activity) String() string {
	return fmt.Sprintf("[Activity %q duration=%s cost=%d]", a.Title, a.Duration, a.Cost)
}

// Catalogue is the fixed list of activities a building offers.
type Catalogue struct {
	items []Activity
}

// NewCatalogue creates a catalogue of at most MaxCatalogue activities.
func NewCatalogue(items ...Activity) (*Catalogue, error) {
	if len(items) > MaxCatalogue {
		return nil, fmt.Errorf("%w: %d activities, max %d", ErrCatalogueFull, len(items), MaxCatalogue)
	}
	return &Catalogue{items: append([]Activity(nil), items...)}, nil
}

// Len returns number of activities.
func (c *Catalogue) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Get returns activity by index.
func (c *Catalogue) Get(index int) (Activity, bool) {
	if c == nil || index < 0 || index >= len(c.items) {
		return Activity{}, false
	}
	return c.items[index], true
}
