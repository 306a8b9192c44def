package dialogue

import (
	"errors"
	"time"

	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/render"

	"go.uber.org/zap"
)

const (
	defaultStartTime = "12:00"
	defaultEndTime   = "14:00"
)

func (e *Engine) startSearch(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeNewBooking)
	t.persist()
	return one(render.DateTimePicker(e.now()))
}

// picking returns the booking flow in its picking phase, starting one if the
// user is elsewhere. A room chosen earlier is dropped.
func picking(t *turn) *models.BookingFlow {
	if t.sess.Mode != models.ModeNewBooking {
		t.sess.Start(models.ModeNewBooking)
	}
	flow := t.sess.Booking
	if flow.Phase != models.PhasePicking {
		*flow = models.BookingFlow{Phase: models.PhasePicking, Date: flow.Date, StartTime: flow.StartTime, EndTime: flow.EndTime}
	}
	t.persist()
	return flow
}

func (e *Engine) pickDate(t *turn, pb postback) []render.Message {
	picking(t).Date = pb.params["date"]
	return one(render.StartTimePrompt())
}

func (e *Engine) pickStart(t *turn, pb postback) []render.Message {
	picking(t).StartTime = pb.params["time"]
	return one(render.EndTimePrompt())
}

func (e *Engine) pickEnd(t *turn, pb postback) []render.Message {
	flow := picking(t)
	flow.EndTime = pb.params["time"]

	if flow.Date == "" || flow.StartTime == "" || flow.EndTime == "" {
		return say(render.TextIncomplete)
	}
	start, errStart := time.Parse("15:04", flow.StartTime)
	end, errEnd := time.Parse("15:04", flow.EndTime)
	if _, errDate := time.Parse("2006-01-02", flow.Date); errStart != nil || errEnd != nil || errDate != nil {
		return say(render.TextIncomplete)
	}
	if !end.After(start) {
		return say(render.TextEndNotAfter)
	}

	rooms, err := e.Gateway.AvailableRooms(t.ctx, flow.Date, flow.StartTime, flow.EndTime)
	if err != nil {
		e.Logger.Error("room search failed", zap.String("userId", t.userID), zap.Error(err))
		return say(render.TextSearchFailed)
	}
	if len(rooms) == 0 {
		return say(render.TextNoRoomsFree)
	}
	return one(render.RoomChoices(rooms))
}

func (e *Engine) bookRoom(t *turn, pb postback) []render.Message {
	roomID := pb.get("roomId")
	room, err := e.Gateway.FindRoomByID(t.ctx, roomID)
	if errors.Is(err, gateway.ErrNotFound) || errors.Is(err, gateway.ErrInvalidID) {
		return say(render.TextRoomNotFound)
	}
	if err != nil {
		e.Logger.Error("room lookup failed", zap.String("userId", t.userID), zap.String("roomId", roomID), zap.Error(err))
		return say(render.TextSearchFailed)
	}

	if t.sess.Mode != models.ModeNewBooking {
		t.sess.Start(models.ModeNewBooking)
	}
	flow := t.sess.Booking
	flow.Phase = models.PhaseQuestions
	flow.RoomID = roomID
	flow.Room = room.Name
	flow.PendingBookingID = ""
	if flow.Date == "" {
		flow.Date = e.now().Format("2006-01-02")
	}
	if flow.StartTime == "" {
		flow.StartTime = defaultStartTime
	}
	if flow.EndTime == "" {
		flow.EndTime = defaultEndTime
	}
	flow.Questions = models.Questions{}
	t.persist()

	msgs, _ := askNext(&flow.Questions, bookingQuestions)
	return msgs
}

func (e *Engine) bookingAnswer(t *turn, text string) []render.Message {
	flow := t.sess.Booking
	switch flow.Phase {
	case models.PhaseQuestions:
		msgs, done := answer(&flow.Questions, bookingQuestions, text)
		t.persist()
		if !done {
			return msgs
		}
		id, err := e.newBookingID(t.ctx)
		if err != nil {
			e.Logger.Error("booking id generation failed", zap.String("userId", t.userID), zap.Error(err))
			return say(render.TextGenericError)
		}
		flow.PendingBookingID = id
		flow.Phase = models.PhaseSummary
		return one(render.BookingSummary(pendingBooking(t.userID, flow)))
	case models.PhaseSummary:
		return one(render.BookingSummary(pendingBooking(t.userID, flow)))
	}
	return nil
}

// pendingBooking assembles the record a confirmation will store.
func pendingBooking(userID string, flow *models.BookingFlow) models.Booking {
	a := flow.Questions.Answers
	return models.Booking{
		BookingID:           flow.PendingBookingID,
		Room:                flow.Room,
		RoomID:              flow.RoomID,
		Date:                flow.Date,
		StartTime:           flow.StartTime,
		EndTime:             flow.EndTime,
		MeetingTopic:        a["meetingTopic"],
		ReserverName:        a["reserverName"],
		PhoneNumber:         a["phoneNumber"],
		NumberOfAttendees:   atoi(a["numberOfAttendees"]),
		AdditionalEquipment: a["additionalEquipment"],
		Email:               a["email"],
		UserID:              userID,
	}
}

// confirmBooking stores the sender's pending booking. Availability is not
// checked again here, so two users shown the same free slot can both book it.
func (e *Engine) confirmBooking(t *turn, pb postback) []render.Message {
	bookingID := pb.get("bookingId")
	flow := t.sess.Booking
	if t.sess.Mode != models.ModeNewBooking || flow.Phase != models.PhaseSummary ||
		bookingID == "" || flow.PendingBookingID != bookingID {
		return say(render.TextPendingNotFound)
	}

	booking := pendingBooking(t.userID, flow)
	err := e.Gateway.InsertBooking(t.ctx, &booking)
	if errors.Is(err, gateway.ErrDuplicate) {
		// Another user confirmed the same id first; offer a fresh one.
		id, idErr := e.newBookingID(t.ctx)
		if idErr != nil {
			e.Logger.Error("booking id generation failed", zap.String("userId", t.userID), zap.Error(idErr))
			return say(render.TextGenericError)
		}
		e.Logger.Info("pending booking id taken, reissued", zap.String("userId", t.userID), zap.String("old", bookingID), zap.String("new", id))
		flow.PendingBookingID = id
		t.persist()
		return []render.Message{render.NewText(render.TextBookingIDTaken), render.BookingSummary(pendingBooking(t.userID, flow))}
	}
	if err != nil {
		e.Logger.Error("confirm booking failed", zap.String("userId", t.userID), zap.String("bookingId", bookingID), zap.Error(err))
		return say(render.TextSaveFailed)
	}
	t.sess.Reset()
	t.persist()

	if e.Reminders != nil {
		if err := e.Reminders.ScheduleReminder(t.ctx, booking); err != nil {
			e.Logger.Warn("reminder not scheduled", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	return one(render.BookingConfirmed(booking))
}
