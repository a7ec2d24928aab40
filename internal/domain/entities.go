package domain

import "time"

// Event is one entry of the read-only event catalog. The catalog is loaded
// once at startup and never mutated afterwards.
type Event struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Code        string   `json:"event_code"`
	Available   bool     `json:"available"`
	TicketTypes []string `json:"ticket_types"`
}

// HasTicketType reports whether the event sells the given ticket type.
func (e Event) HasTicketType(ticketType string) bool {
	for _, t := range e.TicketTypes {
		if t == ticketType {
			return true
		}
	}
	return false
}

// MemberProfile holds the static profile attached to a membership code.
type MemberProfile struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Club string `json:"club"`
}

// LineItem is one (ticket type, quantity) pair of a booking request.
type LineItem struct {
	TicketType string
	Quantity   int
}

// BookingRecord is a single booked line item. Records are owned by the
// ledger; the only mutation after creation is the note field.
type BookingRecord struct {
	BookingID        string    `json:"booking_id"`
	OverallBookingID string    `json:"overall_booking_id,omitempty"`
	MemberCode       string    `json:"member_code"`
	EventName        string    `json:"event_name"`
	EventCode        string    `json:"event_code"`
	EventDate        string    `json:"event_date"`
	TicketType       string    `json:"ticket_type"`
	TicketQuantity   int       `json:"ticket_quantity"`
	BookingDate      time.Time `json:"booking_date"`
	Note             string    `json:"note"`
}
