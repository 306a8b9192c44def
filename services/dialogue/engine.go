// Package dialogue drives the booking conversation. Each inbound text or
// postback is one turn: the user's session is loaded, a flow handler decides
// the replies and side effects, and the session is written back.
package dialogue

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/render"
	"ruma/services/session"

	"go.uber.org/zap"
)

// ReminderScheduler queues a notification ahead of a confirmed booking.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking) error
}

// Engine is safe for concurrent use; turns of the same user are serialised.
type Engine struct {
	Sessions  session.Store
	Gateway   gateway.Gateway
	Reminders ReminderScheduler // optional
	Logger    *zap.Logger
	Location  *time.Location

	// Now and Intn are the clock and random source used for booking ids.
	Now  func() time.Time
	Intn func(n int) int

	locks *session.KeyedMutex
}

func New(store session.Store, gw gateway.Gateway, logger *zap.Logger, loc *time.Location) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		Sessions: store,
		Gateway:  gw,
		Logger:   logger,
		Location: loc,
		Now:      time.Now,
		Intn:     rand.Intn,
		locks:    session.NewKeyedMutex(),
	}
}

// turn carries one user's session through a single event.
type turn struct {
	ctx     context.Context
	userID  string
	sess    *models.Session
	save    bool
	discard bool
}

func (t *turn) persist() { t.save = true }

// forget deletes the whole session, admin flag included.
func (t *turn) forget() { t.discard = true }

type textHandler func(e *Engine, t *turn, text string) []render.Message

var triggers = map[string]struct {
	adminOnly bool
	handle    textHandler
}{
	"ค้นหาห้องว่าง":     {false, (*Engine).startSearch},
	"แก้ไขการจอง":       {false, (*Engine).startEdit},
	"ยกเลิกการจอง":      {false, (*Engine).startCancel},
	"ดูรายการจองของฉัน": {false, (*Engine).startViewBookings},
	"เข้าสู่ระบบแอดมิน": {false, (*Engine).startLogin},
	"วิธีการจอง":        {false, func(*Engine, *turn, string) []render.Message { return one(render.Help()) }},
	"เพิ่มแอดมิน":       {true, (*Engine).startAddAdmin},
	"เพิ่มห้องประชุม":   {true, (*Engine).startAddRoom},
	"เมนูแอดมิน":        {true, func(*Engine, *turn, string) []render.Message { return one(render.AdminMenu()) }},
}

// HandleText runs a text message turn. The returned error reports a session
// store failure; messages are still returned for the reply.
func (e *Engine) HandleText(ctx context.Context, userID, text string) ([]render.Message, error) {
	text = strings.TrimSpace(text)
	return e.run(ctx, userID, func(t *turn) []render.Message {
		if trig, ok := triggers[text]; ok {
			if trig.adminOnly && !t.sess.IsAdmin {
				return one(render.NewText(render.TextAdminOnly))
			}
			return trig.handle(e, t, text)
		}

		switch t.sess.Mode {
		case models.ModeNewBooking:
			return e.bookingAnswer(t, text)
		case models.ModeEditBooking:
			return e.editAnswer(t, text)
		case models.ModeCancel:
			return e.cancelLookup(t, text)
		case models.ModeViewBookings:
			return e.viewBookings(t, text)
		case models.ModeAdminLogin:
			return e.loginAnswer(t, text)
		case models.ModeAddRoom:
			return e.addRoomAnswer(t, text)
		case models.ModeAddAdmin:
			return e.addAdminAnswer(t, text)
		}
		return nil
	})
}

type postbackHandler func(e *Engine, t *turn, values postback) []render.Message

var postbacks = map[string]struct {
	adminOnly bool
	handle    postbackHandler
}{
	render.ActionSelectDate:        {false, (*Engine).pickDate},
	render.ActionStartTime:         {false, (*Engine).pickStart},
	render.ActionEndTime:           {false, (*Engine).pickEnd},
	render.ActionBookRoom:          {false, (*Engine).bookRoom},
	render.ActionConfirmBooking:    {false, (*Engine).confirmBooking},
	render.ActionConfirmCancel:     {false, (*Engine).confirmCancel},
	render.ActionViewBookings:      {true, (*Engine).adminDatePicker},
	render.ActionSelectBookingDate: {true, (*Engine).bookingsOnDate},
	render.ActionAddRoom:           {true, func(e *Engine, t *turn, _ postback) []render.Message { return e.startAddRoom(t, "") }},
	render.ActionDeleteRoom:        {true, (*Engine).deleteRoom},
	render.ActionAddAdmin:          {true, func(e *Engine, t *turn, _ postback) []render.Message { return e.startAddAdmin(t, "") }},
}

// postback is decoded postback data plus the picker selection.
type postback struct {
	get    func(key string) string
	params map[string]string
}

// HandlePostback runs a postback turn. Unknown actions produce no reply.
func (e *Engine) HandlePostback(ctx context.Context, userID, data string, params map[string]string) ([]render.Message, error) {
	action, values := render.ParsePostback(data)
	pb, ok := postbacks[action]
	if !ok {
		e.Logger.Debug("ignoring postback", zap.String("userId", userID), zap.String("data", data))
		return nil, nil
	}
	return e.run(ctx, userID, func(t *turn) []render.Message {
		if pb.adminOnly && !t.sess.IsAdmin {
			return one(render.NewText(render.TextAdminOnly))
		}
		return pb.handle(e, t, postback{get: values.Get, params: params})
	})
}

func (e *Engine) run(ctx context.Context, userID string, step func(*turn) []render.Message) ([]render.Message, error) {
	unlock := e.locks.Lock(userID)
	defer unlock()

	sess, err := e.Sessions.Get(ctx, userID)
	if err != nil {
		e.Logger.Error("load session failed", zap.String("userId", userID), zap.Error(err))
		return one(render.NewText(render.TextGenericError)), fmt.Errorf("load session: %w", err)
	}
	t := &turn{ctx: ctx, userID: userID, sess: sess}
	msgs := step(t)

	switch {
	case t.discard:
		err = e.Sessions.Delete(ctx, userID)
	case t.save:
		err = e.Sessions.Put(ctx, userID, t.sess)
	}
	if err != nil {
		e.Logger.Error("save session failed", zap.String("userId", userID), zap.String("mode", string(t.sess.Mode)), zap.Error(err))
		return one(render.NewText(render.TextGenericError)), fmt.Errorf("save session: %w", err)
	}
	return msgs, nil
}

func (e *Engine) now() time.Time {
	return e.Now().In(e.Location)
}

func one(m render.Message) []render.Message {
	return []render.Message{m}
}

func say(s string) []render.Message {
	return one(render.NewText(s))
}
