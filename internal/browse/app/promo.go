package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/araddon/dateparse"

	"github.com/dwikikusuma/storefront/internal/browse/domain"
	catalog "github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// Carousel tracks which promo is on screen.
type Carousel struct {
	mu    sync.Mutex
	index int
}

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

// Step moves the index by delta with wraparound in both directions. An empty
// list resets it to 0.
func (c *Carousel) Step(delta int, list []catalog.Product) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(list)
	if n == 0 {
		c.index = 0
		return 0
	}
	c.index = ((c.index+delta)%n + n) % n
	return c.index
}

// Current returns the promo at the index, clamped to the list bounds.
func (c *Carousel) Current(list []catalog.Product) (catalog.Product, bool) {
	if len(list) == 0 {
		return catalog.Product{}, false
	}
	idx := min(max(c.Index(), 0), len(list)-1)
	return list[idx], true
}

// CountdownTo splits the time left until endsAt into days, hours, minutes and
// seconds. A blank or unparsable end, a zero now, or an end that is not in
// the future all yield the zero countdown.
func CountdownTo(endsAt string, now time.Time) domain.Countdown {
	if endsAt == "" || now.IsZero() {
		return domain.ZeroCountdown
	}
	end, err := dateparse.ParseAny(endsAt)
	if err != nil || !end.After(now) {
		return domain.ZeroCountdown
	}

	diff := int64(end.Sub(now) / time.Second)
	days := diff / 86400
	diff -= days * 86400
	hours := diff / 3600
	diff -= hours * 3600
	mins := diff / 60
	secs := diff - mins*60

	return domain.Countdown{
		Days:  fmt.Sprintf("%03d", days),
		Hours: fmt.Sprintf("%02d", hours),
		Mins:  fmt.Sprintf("%02d", mins),
		Secs:  fmt.Sprintf("%02d", secs),
	}
}
