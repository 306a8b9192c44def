package dialogue

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	adminRepo "ruma/database/repository/admin"
	bookingRepo "ruma/database/repository/booking"
	roomRepo "ruma/database/repository/room"
	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/render"
	"ruma/services/session"

	"golang.org/x/crypto/bcrypt"
)

var bangkok = mustLoad("Asia/Bangkok")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type harness struct {
	t        *testing.T
	engine   *Engine
	gw       *gateway.DefaultGateway
	bookings *bookingRepo.MemoryBookingRepo
	store    *session.MemoryStore
	reminded []models.Booking
}

func (h *harness) ScheduleReminder(_ context.Context, b models.Booking) error {
	h.reminded = append(h.reminded, b)
	return nil
}

// 2025-03-09 20:00 UTC is already 2025-03-10 in Bangkok.
var fixedNow = time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

func newHarness(t *testing.T) *harness {
	t.Helper()
	bookings := bookingRepo.NewMemoryBookingRepo()
	gw := &gateway.DefaultGateway{
		Bookings: bookings,
		Rooms:    roomRepo.NewMemoryRoomRepo(),
		Admins:   adminRepo.NewMemoryAdminRepo(),
		HashCost: bcrypt.MinCost,
	}
	store := session.NewMemoryStore(time.Hour)
	h := &harness{t: t, gw: gw, bookings: bookings, store: store}
	h.engine = New(store, gw, nil, bangkok)
	h.engine.Now = func() time.Time { return fixedNow }
	h.engine.Intn = sequence(1, 2, 3, 4, 5, 6, 7, 8, 9)
	h.engine.Reminders = h
	return h
}

func sequence(vals ...int) func(int) int {
	i := 0
	return func(int) int {
		v := vals[i%len(vals)]
		i++
		return v
	}
}

func (h *harness) text(user, msg string) []render.Message {
	h.t.Helper()
	out, err := h.engine.HandleText(context.Background(), user, msg)
	if err != nil {
		h.t.Fatalf("HandleText(%q): %v", msg, err)
	}
	return out
}

func (h *harness) postback(user, data string, params map[string]string) []render.Message {
	h.t.Helper()
	out, err := h.engine.HandlePostback(context.Background(), user, data, params)
	if err != nil {
		h.t.Fatalf("HandlePostback(%q): %v", data, err)
	}
	return out
}

func (h *harness) addRoom(name string) models.Room {
	h.t.Helper()
	room := models.Room{Name: name, Location: "Floor 2", Capacity: 8}
	if err := h.gw.InsertRoom(context.Background(), &room); err != nil {
		h.t.Fatal(err)
	}
	return room
}

func (h *harness) session(user string) *models.Session {
	h.t.Helper()
	s, err := h.store.Get(context.Background(), user)
	if err != nil {
		h.t.Fatal(err)
	}
	return s
}

func textOf(t *testing.T, msgs []render.Message) string {
	t.Helper()
	if len(msgs) == 0 {
		t.Fatal("no reply")
	}
	m, ok := msgs[0].(*render.Text)
	if !ok {
		t.Fatalf("reply is %T, want text", msgs[0])
	}
	return m.Text
}

func cardOf(t *testing.T, msgs []render.Message) *render.Card {
	t.Helper()
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	c, ok := msgs[0].(*render.Card)
	if !ok {
		t.Fatalf("reply is %T, want card", msgs[0])
	}
	return c
}

func buttonValue(t *testing.T, b render.Button, key string) string {
	t.Helper()
	_, values := render.ParsePostback(b.Data)
	return values.Get(key)
}

var bookingAnswers = []string{"Sprint review", "Somchai", "0812345678", "6", "projector", "somchai@example.com"}

// reachSummary drives user from the search phrase to the summary card.
func (h *harness) reachSummary(user string, room models.Room, date, start, end string) *render.Card {
	h.t.Helper()
	h.text(user, "ค้นหาห้องว่าง")
	h.postback(user, "action=selectDate", map[string]string{"date": date})
	h.postback(user, "action=startTime", map[string]string{"time": start})
	h.postback(user, "action=endTime", map[string]string{"time": end})
	h.postback(user, render.PostbackData(render.ActionBookRoom, "roomId", room.ID.Hex()), nil)

	var last []render.Message
	for _, a := range bookingAnswers {
		last = h.text(user, a)
	}
	return cardOf(h.t, last)
}

func TestFullBookingScenario(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	const user = "U-alice"

	picker := cardOf(t, h.text(user, "ค้นหาห้องว่าง"))
	if len(picker.Buttons) != 3 || picker.Buttons[0].Min != "2025-03-10" {
		t.Fatalf("picker card %+v", picker)
	}
	if got := textOf(t, h.postback(user, "action=selectDate", map[string]string{"date": "2025-03-12"})); got != render.TextAskStartTime {
		t.Fatalf("after date: %q", got)
	}
	if got := textOf(t, h.postback(user, "action=startTime", map[string]string{"time": "09:00"})); got != render.TextAskEndTime {
		t.Fatalf("after start: %q", got)
	}
	out := h.postback(user, "action=endTime", map[string]string{"time": "10:30"})
	carousel, ok := out[0].(*render.Carousel)
	if !ok || len(carousel.Cards) != 1 {
		t.Fatalf("expected one-room carousel, got %#v", out)
	}
	bookData := carousel.Cards[0].Buttons[0].Data

	if got := textOf(t, h.postback(user, bookData, nil)); got != bookingQuestions[0].prompt {
		t.Fatalf("first question: %q", got)
	}
	var summary *render.Card
	for _, a := range bookingAnswers {
		summary, _ = h.text(user, a)[0].(*render.Card)
	}
	if summary == nil {
		t.Fatal("no summary after last answer")
	}
	bookingID := buttonValue(t, summary.Buttons[0], "bookingId")

	done := cardOf(t, h.postback(user, summary.Buttons[0].Data, nil))
	if done.AltText != "การจองสำเร็จ" {
		t.Fatalf("confirmation card %q", done.AltText)
	}

	stored, err := h.gw.FindBookingByID(context.Background(), bookingID)
	if err != nil {
		t.Fatalf("booking not stored: %v", err)
	}
	want := models.Booking{
		BookingID: bookingID, Room: "Orchid", RoomID: room.ID.Hex(),
		Date: "2025-03-12", StartTime: "09:00", EndTime: "10:30",
		MeetingTopic: "Sprint review", ReserverName: "Somchai", PhoneNumber: "0812345678",
		NumberOfAttendees: 6, AdditionalEquipment: "projector", Email: "somchai@example.com", UserID: user,
	}
	stored.CreatedAt, stored.UpdatedAt = time.Time{}, time.Time{}
	if *stored != want {
		t.Fatalf("stored booking\n got %+v\nwant %+v", *stored, want)
	}
	if h.session(user).Mode != models.ModeNone {
		t.Error("flow not cleared after confirmation")
	}
	if len(h.reminded) != 1 || h.reminded[0].BookingID != bookingID {
		t.Errorf("reminders %+v", h.reminded)
	}
}

func TestSummaryArrivesWithSixthAnswer(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	const user = "U1"
	h.postback(user, render.PostbackData(render.ActionBookRoom, "roomId", room.ID.Hex()), nil)

	for i, a := range bookingAnswers {
		out := h.text(user, a)
		_, isCard := out[0].(*render.Card)
		last := i == len(bookingAnswers)-1
		if isCard != last {
			t.Fatalf("answer %d: card=%v", i+1, isCard)
		}
		if !last && textOf(t, out) != bookingQuestions[i+1].prompt {
			t.Fatalf("answer %d: next prompt %q", i+1, textOf(t, out))
		}
	}
}

func TestExtraTextReshowsSameSummary(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	first := h.reachSummary("U1", room, "2025-03-12", "09:00", "10:00")

	again := cardOf(t, h.text("U1", "hello?"))
	if buttonValue(t, first.Buttons[0], "bookingId") != buttonValue(t, again.Buttons[0], "bookingId") {
		t.Fatal("summary id changed")
	}
	if got := h.session("U1").Booking.Questions.Answers["email"]; got != "somchai@example.com" {
		t.Fatalf("extra text overwrote an answer: %q", got)
	}
}

func TestBookRoomDefaults(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	h.postback("U1", render.PostbackData(render.ActionBookRoom, "roomId", room.ID.Hex()), nil)

	flow := h.session("U1").Booking
	if flow.Date != "2025-03-10" || flow.StartTime != "12:00" || flow.EndTime != "14:00" {
		t.Fatalf("defaults %s %s-%s", flow.Date, flow.StartTime, flow.EndTime)
	}
	if flow.Room != "Orchid" || flow.Phase != models.PhaseQuestions || flow.Questions.Cursor != 1 {
		t.Fatalf("flow %+v", flow)
	}
}

func TestBookRoomUnknown(t *testing.T) {
	h := newHarness(t)
	for _, id := range []string{"not-an-id", "65f000000000000000000000"} {
		if got := textOf(t, h.postback("U1", "action=bookRoom&roomId="+id, nil)); got != render.TextRoomNotFound {
			t.Errorf("roomId %s: %q", id, got)
		}
	}
}

func TestInvalidAttendeesReasked(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	h.postback("U1", render.PostbackData(render.ActionBookRoom, "roomId", room.ID.Hex()), nil)
	for _, a := range bookingAnswers[:3] {
		h.text("U1", a)
	}

	for _, bad := range []string{"many", "0", "-2"} {
		out := h.text("U1", bad)
		if textOf(t, out) != render.TextNotPositiveInt {
			t.Fatalf("%q accepted", bad)
		}
		if h.session("U1").Booking.Questions.Cursor != 4 {
			t.Fatal("cursor moved on invalid answer")
		}
	}
	if got := textOf(t, h.text("U1", "12")); got != bookingQuestions[4].prompt {
		t.Fatalf("valid answer not accepted: %q", got)
	}
}

func TestTimeRangeChecks(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		start string
		end   string
		want  string
	}{
		{"end before start", "2025-03-12", "10:00", "09:00", render.TextEndNotAfter},
		{"end equals start", "2025-03-12", "10:00", "10:00", render.TextEndNotAfter},
		{"missing date", "", "10:00", "11:00", render.TextIncomplete},
		{"no rooms", "2025-03-12", "10:00", "11:00", render.TextNoRoomsFree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.date != "" {
				h.postback("U1", "action=selectDate", map[string]string{"date": tt.date})
			}
			h.postback("U1", "action=startTime", map[string]string{"time": tt.start})
			if got := textOf(t, h.postback("U1", "action=endTime", map[string]string{"time": tt.end})); got != tt.want {
				t.Fatalf("got %q", got)
			}
		})
	}
}

func TestBookedRoomNotOffered(t *testing.T) {
	h := newHarness(t)
	h.addRoom("Orchid")
	h.addRoom("Lotus")
	_ = h.gw.InsertBooking(context.Background(), &models.Booking{
		BookingID: "20250312-500", Room: "Orchid", Date: "2025-03-12", StartTime: "09:00", EndTime: "11:00",
	})

	h.postback("U1", "action=selectDate", map[string]string{"date": "2025-03-12"})
	h.postback("U1", "action=startTime", map[string]string{"time": "10:00"})
	out := h.postback("U1", "action=endTime", map[string]string{"time": "12:00"})
	c := out[0].(*render.Carousel)
	if len(c.Cards) != 1 || c.Cards[0].Title != "Lotus" {
		t.Fatalf("offered %+v", c.Cards)
	}
}

// Availability is checked when rooms are offered, not at confirmation.
// Two users offered the same slot can both confirm it.
func TestConcurrentConfirmationsBothSucceed(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")

	a := h.reachSummary("U-a", room, "2025-03-12", "09:00", "10:00")
	b := h.reachSummary("U-b", room, "2025-03-12", "09:00", "10:00")

	for user, card := range map[string]*render.Card{"U-a": a, "U-b": b} {
		if cardOf(t, h.postback(user, card.Buttons[0].Data, nil)).AltText != "การจองสำเร็จ" {
			t.Fatalf("%s confirmation failed", user)
		}
	}
	overlapping, err := h.gw.FindBookingsOverlapping(context.Background(), "2025-03-12", "09:00", "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if len(overlapping) != 2 {
		t.Fatalf("want 2 overlapping bookings, got %d", len(overlapping))
	}
}

func TestConfirmUsesSendersSession(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	summary := h.reachSummary("U-a", room, "2025-03-12", "09:00", "10:00")

	if got := textOf(t, h.postback("U-b", summary.Buttons[0].Data, nil)); got != render.TextPendingNotFound {
		t.Fatalf("other user confirmed: %q", got)
	}
	if got := textOf(t, h.postback("U-a", "action=confirmBooking&bookingId=20250310-999", nil)); got != render.TextPendingNotFound {
		t.Fatalf("wrong id confirmed: %q", got)
	}
	if n := len(h.reminded); n != 0 {
		t.Fatalf("%d reminders scheduled", n)
	}
}

func TestConfirmReissuesTakenID(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	summary := h.reachSummary("U-a", room, "2025-03-12", "09:00", "10:00")
	taken := buttonValue(t, summary.Buttons[0], "bookingId")

	// Someone else stores the same id between the summary and the confirm.
	if err := h.gw.InsertBooking(context.Background(), &models.Booking{BookingID: taken, Room: "Lotus", Date: "2025-03-12"}); err != nil {
		t.Fatal(err)
	}

	out := h.postback("U-a", summary.Buttons[0].Data, nil)
	if len(out) != 2 || textOf(t, out) != render.TextBookingIDTaken {
		t.Fatalf("duplicate confirm reply %#v", out)
	}
	fresh, ok := out[1].(*render.Card)
	if !ok {
		t.Fatalf("second reply is %T, want summary card", out[1])
	}
	freshID := buttonValue(t, fresh.Buttons[0], "bookingId")
	if freshID == taken || h.session("U-a").Booking.PendingBookingID != freshID {
		t.Fatalf("pending id %q after reissue of %q", h.session("U-a").Booking.PendingBookingID, taken)
	}

	if got := textOf(t, h.postback("U-a", summary.Buttons[0].Data, nil)); got != render.TextPendingNotFound {
		t.Fatalf("stale button accepted: %q", got)
	}
	if cardOf(t, h.postback("U-a", fresh.Buttons[0].Data, nil)).AltText != "การจองสำเร็จ" {
		t.Fatal("confirm with reissued id failed")
	}
	stored, err := h.gw.FindBookingByID(context.Background(), freshID)
	if err != nil || stored.UserID != "U-a" || stored.Room != "Orchid" {
		t.Fatalf("reissued booking %+v, %v", stored, err)
	}
}

func TestBookingIDFormat(t *testing.T) {
	h := newHarness(t)
	id, err := h.engine.newBookingID(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !regexp.MustCompile(`^\d{8}-\d{3}$`).MatchString(id) {
		t.Fatalf("id %q", id)
	}
	if !strings.HasPrefix(id, "20250310-") {
		t.Fatalf("id %q not dated in Bangkok time", id)
	}

	bounds := []struct{ draw, want int }{{0, 100}, {899, 999}}
	for _, b := range bounds {
		h.engine.Intn = sequence(b.draw)
		id, _ := h.engine.newBookingID(context.Background())
		if !strings.HasSuffix(id, "-"+strconv.Itoa(b.want)) {
			t.Errorf("draw %d gave %q", b.draw, id)
		}
	}
}

func TestBookingIDSkipsExisting(t *testing.T) {
	h := newHarness(t)
	_ = h.gw.InsertBooking(context.Background(), &models.Booking{BookingID: "20250310-100"})
	h.engine.Intn = sequence(0, 0, 5)

	id, err := h.engine.newBookingID(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if id != "20250310-105" {
		t.Fatalf("id %q", id)
	}

	h.engine.Intn = sequence(0)
	if _, err := h.engine.newBookingID(context.Background()); !errors.Is(err, ErrBookingIDExhausted) {
		t.Fatalf("expected exhaustion, got %v", err)
	}
}

func TestCancelNonexistentBooking(t *testing.T) {
	h := newHarness(t)
	if got := textOf(t, h.text("U1", "ยกเลิกการจอง")); got != render.TextAskCancelID {
		t.Fatalf("prompt %q", got)
	}
	if got := textOf(t, h.text("U1", "20250101-123")); got != render.TextBookingNotFound {
		t.Fatalf("lookup %q", got)
	}
	if got := textOf(t, h.postback("U1", "action=confirmCancel&bookingId=20250101-123", nil)); got != render.TextCancelNotFound {
		t.Fatalf("confirm %q", got)
	}
}

func TestCancelExistingBooking(t *testing.T) {
	h := newHarness(t)
	_ = h.gw.InsertBooking(context.Background(), &models.Booking{BookingID: "20250101-123", Room: "Orchid", Date: "2025-01-01"})

	h.text("U1", "ยกเลิกการจอง")
	card := cardOf(t, h.text("U1", " 20250101-123 "))
	if buttonValue(t, card.Buttons[0], "bookingId") != "20250101-123" {
		t.Fatalf("cancel button %q", card.Buttons[0].Data)
	}
	if got := textOf(t, h.postback("U1", card.Buttons[0].Data, nil)); got != render.TextCancelled {
		t.Fatalf("confirm %q", got)
	}
	if _, err := h.gw.FindBookingByID(context.Background(), "20250101-123"); !errors.Is(err, gateway.ErrNotFound) {
		t.Fatalf("booking still stored: %v", err)
	}
	if h.session("U1").Mode != models.ModeNone {
		t.Error("cancel flow not cleared")
	}
}

func TestEditChangesOnlyDetails(t *testing.T) {
	h := newHarness(t)
	original := models.Booking{
		BookingID: "20250101-321", Room: "Orchid", RoomID: "r1", Date: "2025-01-01", StartTime: "09:00", EndTime: "10:00",
		MeetingTopic: "old", ReserverName: "A", PhoneNumber: "1", NumberOfAttendees: 2, AdditionalEquipment: "-", Email: "a@x", UserID: "U0",
	}
	_ = h.gw.InsertBooking(context.Background(), &original)

	h.text("U1", "แก้ไขการจอง")
	if got := textOf(t, h.text("U1", "unknown")); got != render.TextBookingNotFound {
		t.Fatalf("unknown id: %q", got)
	}
	if got := textOf(t, h.text("U1", "20250101-321")); got != editQuestions[0].prompt {
		t.Fatalf("first edit question: %q", got)
	}
	answers := []string{"new topic", "9", "whiteboard", "B", "2", "b@x"}
	var last []render.Message
	for _, a := range answers {
		last = h.text("U1", a)
	}
	if got := textOf(t, last); got != render.TextEdited {
		t.Fatalf("completion: %q", got)
	}

	got, _ := h.gw.FindBookingByID(context.Background(), "20250101-321")
	want := original
	want.MeetingTopic, want.NumberOfAttendees, want.AdditionalEquipment = "new topic", 9, "whiteboard"
	want.ReserverName, want.PhoneNumber, want.Email = "B", "2", "b@x"
	got.CreatedAt, got.UpdatedAt, want.CreatedAt, want.UpdatedAt = time.Time{}, time.Time{}, time.Time{}, time.Time{}
	if *got != want {
		t.Fatalf("edited booking\n got %+v\nwant %+v", *got, want)
	}
}

func TestViewBookingsByEmail(t *testing.T) {
	h := newHarness(t)
	_ = h.gw.InsertBooking(context.Background(), &models.Booking{BookingID: "20250101-111", Email: "me@x", Date: "2025-01-01"})

	h.text("U1", "ดูรายการจองของฉัน")
	out := h.text("U1", "me@x")
	if c, ok := out[0].(*render.Carousel); !ok || len(c.Cards) != 1 {
		t.Fatalf("carousel %#v", out)
	}

	h.text("U1", "ดูรายการจองของฉัน")
	if got := textOf(t, h.text("U1", "other@x")); got != render.TextNoBookingsFound {
		t.Fatalf("no bookings: %q", got)
	}
}

func (h *harness) seedAdmin() {
	h.t.Helper()
	if err := h.gw.InsertAdmin(context.Background(), "root", "pw", "root@x"); err != nil {
		h.t.Fatal(err)
	}
}

func (h *harness) login(user string) {
	h.t.Helper()
	h.text(user, "เข้าสู่ระบบแอดมิน")
	h.text(user, "root")
	cardOf(h.t, h.text(user, "pw"))
}

func TestWrongPasswordRestartsFromUsername(t *testing.T) {
	h := newHarness(t)
	h.seedAdmin()

	for attempt := 1; attempt <= 2; attempt++ {
		if got := textOf(t, h.text("U1", "เข้าสู่ระบบแอดมิน")); got != render.TextAskUsername {
			t.Fatalf("attempt %d: %q", attempt, got)
		}
		if got := textOf(t, h.text("U1", "root")); got != render.TextAskPassword {
			t.Fatalf("attempt %d: %q", attempt, got)
		}
		if got := textOf(t, h.text("U1", "bad")); got != render.TextLoginFailed {
			t.Fatalf("attempt %d: %q", attempt, got)
		}
		// The session is gone; a password typed now is not taken as one.
		if out := h.text("U1", "pw"); len(out) != 0 {
			t.Fatalf("attempt %d: password accepted without username: %#v", attempt, out)
		}
		if h.session("U1").IsAdmin {
			t.Fatal("admin after failed login")
		}
	}
}

func TestLoginClearsAdminOnFailure(t *testing.T) {
	h := newHarness(t)
	h.seedAdmin()
	h.login("U1")
	if !h.session("U1").IsAdmin {
		t.Fatal("login did not grant admin")
	}
	h.text("U1", "เข้าสู่ระบบแอดมิน")
	h.text("U1", "root")
	h.text("U1", "bad")
	if h.session("U1").IsAdmin {
		t.Fatal("failed login kept admin flag")
	}
}

func TestAdminOnlyActionsRefused(t *testing.T) {
	h := newHarness(t)
	h.text("U1", "ยกเลิกการจอง")

	for _, phrase := range []string{"เพิ่มแอดมิน", "เพิ่มห้องประชุม", "เมนูแอดมิน"} {
		if got := textOf(t, h.text("U1", phrase)); got != render.TextAdminOnly {
			t.Errorf("%s: %q", phrase, got)
		}
	}
	for _, data := range []string{"action=viewBookings", "action=selectBookingDate", "action=addRoom", "action=deleteRoom", "action=deleteRoom&roomId=x", "action=addAdmin"} {
		if got := textOf(t, h.postback("U1", data, map[string]string{"date": "2025-01-01"})); got != render.TextAdminOnly {
			t.Errorf("%s: %q", data, got)
		}
	}
	if h.session("U1").Mode != models.ModeCancel {
		t.Error("refused action changed the session")
	}
}

func TestAdminManagesRooms(t *testing.T) {
	h := newHarness(t)
	h.seedAdmin()
	h.login("U1")

	if got := textOf(t, h.text("U1", "เพิ่มห้องประชุม")); got != roomQuestions[0].prompt {
		t.Fatalf("first room question %q", got)
	}
	h.text("U1", "Jasmine")
	h.text("U1", "Floor 5")
	if got := textOf(t, h.text("U1", "lots")); got != render.TextNotPositiveInt {
		t.Fatalf("bad capacity: %q", got)
	}
	h.text("U1", "10")
	if got := textOf(t, h.text("U1", "http://example.com/j.png")); got != render.TextNotHTTPS {
		t.Fatalf("plain http image: %q", got)
	}
	h.text("U1", "https://example.com/j.png")
	for _, bad := range []string{"-1", "NaN", "+Inf"} {
		if got := textOf(t, h.text("U1", bad)); got != render.TextNotPrice {
			t.Fatalf("price %q: %q", bad, got)
		}
	}
	if got := textOf(t, h.text("U1", "250.5")); got != render.TextRoomAdded {
		t.Fatalf("completion %q", got)
	}
	s := h.session("U1")
	if s.Mode != models.ModeNone || !s.IsAdmin {
		t.Fatalf("session after add room %+v", s)
	}

	rooms, _ := h.gw.ListRooms(context.Background())
	if len(rooms) != 1 || rooms[0].Capacity != 10 || rooms[0].Price != 250.5 {
		t.Fatalf("rooms %+v", rooms)
	}

	out := h.postback("U1", "action=deleteRoom", nil)
	del := out[0].(*render.Carousel).Cards[0].Buttons[0]
	if got := textOf(t, h.postback("U1", del.Data, nil)); got != render.TextRoomDeleted {
		t.Fatalf("delete %q", got)
	}
	if got := textOf(t, h.postback("U1", del.Data, nil)); got != render.TextRoomMissing {
		t.Fatalf("second delete %q", got)
	}
	if got := textOf(t, h.postback("U1", "action=deleteRoom", nil)); got != render.TextNoRooms {
		t.Fatalf("empty list %q", got)
	}
}

func TestAdminAddsAdmin(t *testing.T) {
	h := newHarness(t)
	h.seedAdmin()
	h.login("U1")

	h.postback("U1", "action=addAdmin", nil)
	h.text("U1", "second")
	h.text("U1", "pw2")
	if got := textOf(t, h.text("U1", "second@x")); got != render.TextAdminAdded {
		t.Fatalf("completion %q", got)
	}
	if _, err := h.gw.Authenticate(context.Background(), "second", "pw2"); err != nil {
		t.Fatalf("new admin cannot log in: %v", err)
	}

	h.text("U1", "เพิ่มแอดมิน")
	h.text("U1", "second")
	h.text("U1", "x")
	if got := textOf(t, h.text("U1", "x@x")); got != render.TextAdminExists {
		t.Fatalf("duplicate %q", got)
	}
}

func TestAdminBookingsByDate(t *testing.T) {
	h := newHarness(t)
	h.seedAdmin()
	h.login("U1")
	_ = h.gw.InsertBooking(context.Background(), &models.Booking{BookingID: "20250101-111", Date: "2025-01-01"})

	cardOf(t, h.postback("U1", "action=viewBookings", nil))
	out := h.postback("U1", "action=selectBookingDate", map[string]string{"date": "2025-01-01"})
	if c, ok := out[0].(*render.Carousel); !ok || len(c.Cards) != 1 {
		t.Fatalf("bookings on date %#v", out)
	}
	if got := textOf(t, h.postback("U1", "action=selectBookingDate", map[string]string{"date": "2025-01-02"})); !strings.Contains(got, "2025-01-02") {
		t.Fatalf("empty date %q", got)
	}
}

func TestTriggerReplacesFlow(t *testing.T) {
	h := newHarness(t)
	room := h.addRoom("Orchid")
	h.postback("U1", render.PostbackData(render.ActionBookRoom, "roomId", room.ID.Hex()), nil)
	h.text("U1", "topic")

	h.text("U1", "ยกเลิกการจอง")
	s := h.session("U1")
	if s.Mode != models.ModeCancel || s.Booking != nil {
		t.Fatalf("session %+v", s)
	}
}

func TestIdleTextAndHelp(t *testing.T) {
	h := newHarness(t)
	if out := h.text("U1", "hello"); len(out) != 0 {
		t.Fatalf("idle text replied %#v", out)
	}
	if !strings.Contains(textOf(t, h.text("U1", "  วิธีการจอง ")), "RUMA") {
		t.Fatal("help text missing")
	}
	if out := h.postback("U1", "action=unknown", nil); len(out) != 0 {
		t.Fatalf("unknown postback replied %#v", out)
	}
}

type failingStore struct{ session.Store }

func (failingStore) Get(context.Context, string) (*models.Session, error) {
	return nil, errors.New("redis down")
}

func TestStoreFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.engine.Sessions = failingStore{}
	out, err := h.engine.HandleText(context.Background(), "U1", "ค้นหาห้องว่าง")
	if err == nil {
		t.Fatal("expected error")
	}
	if textOf(t, out) != render.TextGenericError {
		t.Fatalf("reply %#v", out)
	}
}
