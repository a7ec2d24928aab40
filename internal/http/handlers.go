package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"ticket-fulfillment/internal/catalog"
	"ticket-fulfillment/internal/config"
	"ticket-fulfillment/internal/domain"
	"ticket-fulfillment/internal/fulfillment"
	"ticket-fulfillment/internal/ledger"
	"ticket-fulfillment/internal/match"
	"ticket-fulfillment/internal/members"
	"ticket-fulfillment/internal/observability"
	"ticket-fulfillment/internal/session"
)

type Handlers struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	members *members.Registry
	matcher *match.Matcher
	ledger  *ledger.Ledger
	logger  observability.Logger
}

func NewHandlers(cfg *config.Config, cat *catalog.Catalog, reg *members.Registry, matcher *match.Matcher, led *ledger.Ledger, logger observability.Logger) *Handlers {
	return &Handlers{
		cfg:     cfg,
		catalog: cat,
		members: reg,
		matcher: matcher,
		ledger:  led,
		logger:  logger,
	}
}

// webhookRequest is the Dialogflow CX request envelope. Only the session
// parameters matter to the fulfillment logic.
type webhookRequest struct {
	SessionInfo struct {
		Parameters session.Params `json:"parameters"`
	} `json:"sessionInfo"`
}

func decodeParams(r *http.Request) (session.Params, error) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if req.SessionInfo.Parameters == nil {
		return session.Params{}, nil
	}
	return req.SessionInfo.Parameters, nil
}

func (h *Handlers) respond(w http.ResponseWriter, route string, env fulfillment.Envelope) {
	status := fmt.Sprint(env.SessionInfo.Parameters[fulfillment.StatusKey])
	observability.WebhookRequestsTotal.WithLabelValues(route, status).Inc()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.logger.WithField("route", route).Error("encode response: ", err)
	}
}

// shown renders a member code for user-facing copy, substituting the
// Vietnamese "none" when empty.
func shown(code string) string {
	if code == "" {
		return "không có"
	}
	return code
}

func (h *Handlers) VerifyMember(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	code := params.Text("member_id")
	profile, ok := h.members.Verify(code)
	if !ok {
		env := fulfillment.Build(
			fmt.Sprintf("Mã thành viên %s không hợp lệ. Vui lòng kiểm tra lại.", shown(code)),
			fulfillment.StatusFail, nil)
		h.respond(w, "verify_member_code", env)
		return
	}

	env := fulfillment.Build(
		fmt.Sprintf("Xác thực mã thành viên %s thành công. Vui lòng lựa chọn: 1. Đặt vé, hoặc 2. Yêu cầu khác.", members.Normalize(code)),
		fulfillment.StatusSuccess,
		map[string]any{
			"member_name": profile.Name,
			"member_club": profile.Club,
		})
	h.respond(w, "verify_member_code", env)
}

func (h *Handlers) MatchEvent(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := params.Text("event_name")
	date := params.Text("event_date")
	res := h.matcher.Match(name, date)

	// The platform expects every key on every outcome; unresolved fields
	// stay null, as in the original service.
	extra := map[string]any{
		"is_event_valid":          false,
		"available_ticket_types":  []string{},
		"event_code":              nil,
		"event_name_from_backend": nil,
		"event_date_from_backend": nil,
	}

	var text string
	status := fulfillment.StatusFail
	switch res.Outcome {
	case match.MissingName:
		text = "Vui lòng cung cấp tên sự kiện bạn muốn tìm."
	case match.NoEventOnDate:
		text = fmt.Sprintf("Không có sự kiện nào diễn ra vào ngày %s. Vui lòng chọn ngày khác.", res.Date)
	case match.NoMatch:
		text = "Không tìm thấy thông tin sự kiện bạn yêu cầu. Vui lòng kiểm tra lại tên sự kiện hoặc ngày tháng."
	case match.Unavailable:
		extra["event_code"] = res.Event.Code
		extra["event_name_from_backend"] = res.Event.Name
		extra["event_date_from_backend"] = res.Event.Date
		extra["match_score"] = res.Score
		text = fmt.Sprintf("Sự kiện '%s' vào ngày %s đã hết vé. Xin lỗi quý khách.", res.Event.Name, res.Event.Date)
	case match.Matched:
		observability.MatchScore.Observe(float64(res.Score))
		extra["is_event_valid"] = true
		extra["available_ticket_types"] = res.Event.TicketTypes
		extra["event_code"] = res.Event.Code
		extra["event_name_from_backend"] = res.Event.Name
		extra["event_date_from_backend"] = res.Event.Date
		extra["match_score"] = res.Score
		status = fulfillment.StatusSuccess
		text = fmt.Sprintf("Sự kiện '%s' vào ngày %s còn vé. Các loại vé có sẵn: %s. Vui lòng chọn loại vé và số lượng bạn muốn đặt.",
			res.Event.Name, res.Event.Date, strings.Join(res.Event.TicketTypes, ", "))
	}

	h.respond(w, "validate_event_and_get_ticket_types", fulfillment.Build(text, status, extra))
}

func (h *Handlers) BookTickets(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	memberCode := params.Text("member_code")
	eventName := params.Text("event_name_from_backend")
	eventCode := params.Text("event_code")
	eventDate := params.Text("event_date_from_backend")
	ticketTypes := params.Texts("ticket_type")
	quantities := params.Ints("ticket_quantity")

	// Exact code lookup first; the similarity threshold never applies here.
	var target domain.Event
	found := false
	if eventCode != "" {
		target, found = h.catalog.ByCode(eventCode)
	}
	if !found && eventName != "" && eventDate != "" {
		target, found = h.catalog.ByNameAndDate(eventName, eventDate)
	}

	_, memberOK := h.members.Verify(memberCode)

	var env fulfillment.Envelope
	switch {
	case !found:
		env = fulfillment.Build(
			"Không tìm thấy sự kiện để đặt vé. Vui lòng xác minh lại thông tin sự kiện.",
			fulfillment.StatusFail, nil)
	case !target.Available:
		env = fulfillment.Build(
			fmt.Sprintf("Sự kiện '%s' đã hết vé. Không thể đặt được.", target.Name),
			fulfillment.StatusFail, nil)
	case !memberOK:
		env = fulfillment.Build(
			fmt.Sprintf("Mã thành viên %s không hợp lệ hoặc chưa được xác minh. Vui lòng cung cấp mã thành viên hợp lệ.", shown(memberCode)),
			fulfillment.StatusFail, nil)
	case len(ticketTypes) == 0 || len(ticketTypes) != len(quantities):
		env = fulfillment.Build(
			"Thông tin loại vé và số lượng không khớp. Vui lòng cung cấp loại vé và số lượng tương ứng.",
			fulfillment.StatusFail, nil)
	default:
		items := make([]domain.LineItem, len(ticketTypes))
		for i, tt := range ticketTypes {
			items[i] = domain.LineItem{TicketType: tt, Quantity: quantities[i]}
		}
		env = h.bookLineItems(members.Normalize(memberCode), target, items)
	}

	h.respond(w, "book_tickets", env)
}

func (h *Handlers) bookLineItems(memberCode string, target domain.Event, items []domain.LineItem) fulfillment.Envelope {
	out := h.ledger.CreateMultiLine(memberCode, target, items)
	observability.BookingsCreatedTotal.Add(float64(len(out.Records)))

	bookingIDs := make([]string, 0, len(out.Records))
	parts := make([]string, 0, len(out.Records))
	for _, rec := range out.Records {
		bookingIDs = append(bookingIDs, rec.BookingID)
		parts = append(parts, fmt.Sprintf("%d vé loại %s", rec.TicketQuantity, rec.TicketType))
	}

	extra := map[string]any{
		"booking_ids":        bookingIDs,
		"overall_booking_id": nil,
	}
	if len(out.Records) > 0 {
		extra["overall_booking_id"] = out.OverallBookingID
	}

	switch {
	case out.AllBooked():
		text := fmt.Sprintf("Hệ thống đã thành công đặt %s cho sự kiện '%s' vào ngày %s với mã đặt vé %s cho hội viên %s. Vui lòng chuyển khoản trước ngày diễn ra sự kiện.",
			strings.Join(parts, ", "), target.Name, target.Date, out.OverallBookingID, memberCode)
		return fulfillment.Build(text, fulfillment.StatusSuccess, extra)
	case len(out.Records) > 0:
		// Committed items stay committed; the caller sees which ones failed.
		text := fmt.Sprintf("Đã đặt được %s với mã đặt vé %s. Tuy nhiên: %s",
			strings.Join(parts, ", "), out.OverallBookingID, strings.Join(out.Failures, " "))
		return fulfillment.Build(text, fulfillment.StatusFail, extra)
	default:
		return fulfillment.Build(strings.Join(out.Failures, " "), fulfillment.StatusFail, extra)
	}
}

func (h *Handlers) AddNote(w http.ResponseWriter, r *http.Request) {
	params, err := decodeParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	memberCode := params.Text("member_code")
	bookingID := params.Text("booking_id")
	note := params.Text("note")

	if memberCode == "" || bookingID == "" || note == "" {
		env := fulfillment.Build(
			"Thông tin không đủ để thêm ghi chú. Vui lòng cung cấp mã thành viên, mã đặt vé và nội dung ghi chú.",
			fulfillment.StatusFail, map[string]any{"booking_found": false})
		h.respond(w, "add_booking_note", env)
		return
	}

	found := h.ledger.AttachNote(members.Normalize(memberCode), bookingID, note)
	if !found {
		env := fulfillment.Build(
			"Không tìm thấy đặt vé phù hợp để thêm yêu cầu. Vui lòng kiểm tra lại mã thành viên và mã đặt vé.",
			fulfillment.StatusFail, map[string]any{"booking_found": false})
		h.respond(w, "add_booking_note", env)
		return
	}

	env := fulfillment.Build(
		"Yêu cầu đặc biệt của quý khách đã được ghi nhận. Hệ thống sẽ cố gắng đáp ứng.",
		fulfillment.StatusSuccess, map[string]any{"booking_found": true})
	h.respond(w, "add_booking_note", env)
}

func (h *Handlers) ListBookings(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":           "ok",
		"message":          "Backend API is running",
		"current_bookings": h.ledger.Snapshot(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handlers) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handlers) Readyz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
