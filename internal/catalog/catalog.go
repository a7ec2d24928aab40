// Package catalog holds the event reference data. The catalog is immutable
// for the process lifetime; lookups are safe for concurrent use.
package catalog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/cockroachdb/errors"

	"ticket-fulfillment/internal/domain"
)

// Catalog is an ordered, read-only list of events. Order is significant:
// the matcher's tie-break keeps the first best-scoring entry in catalog
// order.
type Catalog struct {
	events []domain.Event
	byCode map[string]domain.Event
}

// New builds a catalog from an event list. Event codes must be unique.
func New(events []domain.Event) (*Catalog, error) {
	byCode := make(map[string]domain.Event, len(events))
	for _, ev := range events {
		if _, dup := byCode[ev.Code]; dup {
			return nil, errors.Newf("duplicate event code %q", ev.Code)
		}
		byCode[ev.Code] = ev
	}
	return &Catalog{events: events, byCode: byCode}, nil
}

// Load reads the event list from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog file %s", path)
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, errors.Wrapf(err, "parse catalog file %s", path)
	}
	return New(events)
}

// Seed returns the built-in event list used when no catalog file is
// configured.
func Seed() *Catalog {
	c, _ := New([]domain.Event{
		{Name: "Concert Rap Việt", Date: "2025-08-15", Code: "CRV001", Available: true, TicketTypes: []string{"VIP", "Standard"}},
		{Name: "Hội Chợ Sách ABC", Date: "2025-09-20", Code: "HCS002", Available: true, TicketTypes: []string{"General", "Premium"}},
		{Name: "Workshop Nghệ Thuật", Date: "2025-10-01", Code: "WNA003", Available: false, TicketTypes: []string{}},
	})
	return c
}

// All returns the events in catalog order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []domain.Event {
	return c.events
}

// ByCode is the exact event-code lookup used by the booking step. It never
// involves fuzzy scoring.
func (c *Catalog) ByCode(code string) (domain.Event, bool) {
	ev, ok := c.byCode[code]
	return ev, ok
}

// ByNameAndDate is the exact fallback lookup used by the booking step when
// no event code was carried in the session.
func (c *Catalog) ByNameAndDate(name, date string) (domain.Event, bool) {
	for _, ev := range c.events {
		if strings.EqualFold(ev.Name, name) && ev.Date == date {
			return ev, true
		}
	}
	return domain.Event{}, false
}

// OnDate returns the events taking place on the given calendar date, in
// catalog order.
func (c *Catalog) OnDate(date string) []domain.Event {
	var out []domain.Event
	for _, ev := range c.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}
