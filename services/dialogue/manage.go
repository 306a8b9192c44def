package dialogue

import (
	"errors"
	"strconv"

	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/render"

	"go.uber.org/zap"
)

func (e *Engine) startEdit(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeEditBooking)
	t.persist()
	return say(render.TextAskEditID)
}

func (e *Engine) startCancel(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeCancel)
	t.persist()
	return say(render.TextAskCancelID)
}

func (e *Engine) startViewBookings(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeViewBookings)
	t.persist()
	return say(render.TextAskEmail)
}

// lookup finds a booking by id and turns failures into a reply.
func (e *Engine) lookup(t *turn, bookingID string) (*models.Booking, []render.Message) {
	booking, err := e.Gateway.FindBookingByID(t.ctx, bookingID)
	if errors.Is(err, gateway.ErrNotFound) {
		return nil, say(render.TextBookingNotFound)
	}
	if err != nil {
		e.Logger.Error("booking lookup failed", zap.String("userId", t.userID), zap.String("bookingId", bookingID), zap.Error(err))
		return nil, say(render.TextGenericError)
	}
	return booking, nil
}

func (e *Engine) editAnswer(t *turn, text string) []render.Message {
	flow := t.sess.Edit
	if flow.BookingID == "" {
		booking, reply := e.lookup(t, text)
		if booking == nil {
			return reply
		}
		flow.BookingID = booking.BookingID
		flow.Questions = models.Questions{}
		flow.Questions.Set("meetingTopic", booking.MeetingTopic)
		flow.Questions.Set("numberOfAttendees", strconv.Itoa(booking.NumberOfAttendees))
		flow.Questions.Set("additionalEquipment", booking.AdditionalEquipment)
		flow.Questions.Set("reserverName", booking.ReserverName)
		flow.Questions.Set("phoneNumber", booking.PhoneNumber)
		flow.Questions.Set("email", booking.Email)
		t.persist()
		msgs, _ := askNext(&flow.Questions, editQuestions)
		return msgs
	}

	msgs, done := answer(&flow.Questions, editQuestions, text)
	t.persist()
	if !done {
		return msgs
	}

	a := flow.Questions.Answers
	details := models.BookingDetails{
		MeetingTopic:        a["meetingTopic"],
		NumberOfAttendees:   atoi(a["numberOfAttendees"]),
		AdditionalEquipment: a["additionalEquipment"],
		ReserverName:        a["reserverName"],
		PhoneNumber:         a["phoneNumber"],
		Email:               a["email"],
	}
	bookingID := flow.BookingID
	t.sess.Reset()

	err := e.Gateway.UpdateBookingDetails(t.ctx, bookingID, details)
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return say(render.TextBookingNotFound)
	case err != nil:
		e.Logger.Error("edit booking failed", zap.String("userId", t.userID), zap.String("bookingId", bookingID), zap.Error(err))
		return say(render.TextEditFailed)
	}
	e.Logger.Info("booking edited", zap.String("userId", t.userID), zap.String("bookingId", bookingID))
	return say(render.TextEdited)
}

func (e *Engine) cancelLookup(t *turn, text string) []render.Message {
	booking, reply := e.lookup(t, text)
	if booking == nil {
		return reply
	}
	t.sess.Cancel.BookingID = booking.BookingID
	t.persist()
	return one(render.CancelPrompt(*booking))
}

func (e *Engine) confirmCancel(t *turn, pb postback) []render.Message {
	bookingID := pb.get("bookingId")
	if t.sess.Mode == models.ModeCancel {
		t.sess.Reset()
		t.persist()
	}
	if bookingID == "" {
		return say(render.TextCancelNotFound)
	}

	deleted, err := e.Gateway.DeleteBookingByID(t.ctx, bookingID)
	if err != nil {
		return say(render.TextCancelFailed)
	}
	if !deleted {
		return say(render.TextCancelNotFound)
	}
	e.Logger.Info("booking cancelled", zap.String("userId", t.userID), zap.String("bookingId", bookingID))
	return say(render.TextCancelled)
}

func (e *Engine) viewBookings(t *turn, email string) []render.Message {
	t.sess.Reset()
	t.persist()

	bookings, err := e.Gateway.FindBookingsByEmail(t.ctx, email)
	if err != nil {
		return say(render.TextBookingsFetchErr)
	}
	if len(bookings) == 0 {
		return say(render.TextNoBookingsFound)
	}
	return one(render.UserBookings(bookings))
}
