// Package ledger is the in-memory, append-only collection of booking
// records. It is the only shared mutable state in the service; one mutex
// guards every append, read, and note update.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ticket-fulfillment/internal/domain"
)

// Ledger owns all BookingRecord instances. Records are never deleted.
type Ledger struct {
	mu      sync.Mutex
	now     func() time.Time
	records []domain.BookingRecord
}

func New() *Ledger {
	return &Ledger{now: time.Now}
}

// newBookingID follows the original service: the first 8 characters of a
// UUID, short enough to be read back to a caller over chat.
func newBookingID() string {
	return uuid.NewString()[:8]
}

// Create appends a single booking. Inputs are assumed validated by the
// caller (available event, known ticket type, positive quantity); Create
// itself cannot fail.
func (l *Ledger) Create(memberCode string, ev domain.Event, ticketType string, quantity int) domain.BookingRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(memberCode, ev, ticketType, quantity, "")
}

func (l *Ledger) appendLocked(memberCode string, ev domain.Event, ticketType string, quantity int, overallID string) domain.BookingRecord {
	rec := domain.BookingRecord{
		BookingID:        newBookingID(),
		OverallBookingID: overallID,
		MemberCode:       memberCode,
		EventName:        ev.Name,
		EventCode:        ev.Code,
		EventDate:        ev.Date,
		TicketType:       ticketType,
		TicketQuantity:   quantity,
		BookingDate:      l.now(),
	}
	l.records = append(l.records, rec)
	return rec
}

// MultiLineOutcome reports the result of a multi-line booking. Records
// holds the committed line items; Failures holds one message per rejected
// line item. Committed records stay committed even when later items fail.
type MultiLineOutcome struct {
	OverallBookingID string
	Records          []domain.BookingRecord
	Failures         []string
}

// AllBooked reports whether every line item was committed.
func (o MultiLineOutcome) AllBooked() bool {
	return len(o.Failures) == 0 && len(o.Records) > 0
}

// CreateMultiLine books every line item independently. A line item with an
// unknown ticket type or non-positive quantity is recorded as a failure
// message and creates no record; valid items share one generated overall
// booking id. There is no rollback.
func (l *Ledger) CreateMultiLine(memberCode string, ev domain.Event, items []domain.LineItem) MultiLineOutcome {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := MultiLineOutcome{OverallBookingID: uuid.NewString()[:8]}
	for _, item := range items {
		switch {
		case !ev.HasTicketType(item.TicketType):
			out.Failures = append(out.Failures, fmt.Sprintf(
				"Loại vé '%s' không hợp lệ cho sự kiện '%s'. Các loại vé có sẵn: %s.",
				item.TicketType, ev.Name, strings.Join(ev.TicketTypes, ", ")))
		case item.Quantity <= 0:
			out.Failures = append(out.Failures, fmt.Sprintf(
				"Số lượng vé không hợp lệ cho loại vé '%s'.", item.TicketType))
		default:
			out.Records = append(out.Records, l.appendLocked(memberCode, ev, item.TicketType, item.Quantity, out.OverallBookingID))
		}
	}
	return out
}

// AttachNote sets the note on the first record matching both member code
// and booking id, in ledger order. Not finding one is a normal outcome,
// not an error.
func (l *Ledger) AttachNote(memberCode, bookingID, note string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].MemberCode == memberCode && l.records[i].BookingID == bookingID {
			l.records[i].Note = note
			return true
		}
	}
	return false
}

// Snapshot returns a copy of all records in creation order.
func (l *Ledger) Snapshot() []domain.BookingRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.BookingRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
