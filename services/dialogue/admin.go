package dialogue

import (
	"errors"
	"strconv"

	"ruma/models"
	"ruma/services/gateway"
	"ruma/services/render"

	"go.uber.org/zap"
)

func (e *Engine) startLogin(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeAdminLogin)
	t.persist()
	return say(render.TextAskUsername)
}

// loginAnswer takes the username, then the password. Any failed check
// deletes the session so the next attempt starts from the username.
func (e *Engine) loginAnswer(t *turn, text string) []render.Message {
	flow := t.sess.Login
	if flow.Step == models.LoginUsername {
		flow.Username = text
		flow.Step = models.LoginPassword
		t.persist()
		return say(render.TextAskPassword)
	}

	_, err := e.Gateway.Authenticate(t.ctx, flow.Username, text)
	if err != nil {
		t.forget()
		if errors.Is(err, gateway.ErrInvalidCredentials) {
			e.Logger.Info("admin login rejected", zap.String("userId", t.userID), zap.String("username", flow.Username))
			return say(render.TextLoginFailed)
		}
		e.Logger.Error("admin login failed", zap.String("userId", t.userID), zap.Error(err))
		return say(render.TextLoginError)
	}

	e.Logger.Info("admin logged in", zap.String("userId", t.userID), zap.String("username", flow.Username))
	t.sess.Reset()
	t.sess.IsAdmin = true
	t.persist()
	return one(render.AdminMenu())
}

func (e *Engine) startAddRoom(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeAddRoom)
	t.persist()
	msgs, _ := askNext(t.sess.Room, roomQuestions)
	return msgs
}

func (e *Engine) addRoomAnswer(t *turn, text string) []render.Message {
	msgs, done := answer(t.sess.Room, roomQuestions, text)
	t.persist()
	if !done {
		return msgs
	}

	a := t.sess.Room.Answers
	price, _ := strconv.ParseFloat(a["price"], 64)
	room := &models.Room{
		Name:     a["name"],
		Location: a["location"],
		Capacity: atoi(a["capacity"]),
		ImageURL: a["imageUrl"],
		Price:    price,
	}
	t.sess.Reset()
	if err := e.Gateway.InsertRoom(t.ctx, room); err != nil {
		return say(render.TextRoomFailed)
	}
	e.Logger.Info("room added", zap.String("userId", t.userID), zap.String("room", room.Name))
	return say(render.TextRoomAdded)
}

func (e *Engine) startAddAdmin(t *turn, _ string) []render.Message {
	t.sess.Start(models.ModeAddAdmin)
	t.persist()
	msgs, _ := askNext(t.sess.Admin, adminQuestions)
	return msgs
}

func (e *Engine) addAdminAnswer(t *turn, text string) []render.Message {
	msgs, done := answer(t.sess.Admin, adminQuestions, text)
	t.persist()
	if !done {
		return msgs
	}

	a := t.sess.Admin.Answers
	t.sess.Reset()
	err := e.Gateway.InsertAdmin(t.ctx, a["username"], a["password"], a["email"])
	switch {
	case errors.Is(err, gateway.ErrDuplicate):
		return say(render.TextAdminExists)
	case err != nil:
		return say(render.TextAdminFailed)
	}
	e.Logger.Info("admin added", zap.String("userId", t.userID), zap.String("username", a["username"]))
	return say(render.TextAdminAdded)
}

func (e *Engine) adminDatePicker(_ *turn, _ postback) []render.Message {
	return one(render.AdminDatePicker())
}

func (e *Engine) bookingsOnDate(t *turn, pb postback) []render.Message {
	date := pb.params["date"]
	if date == "" {
		return say(render.TextIncomplete)
	}
	bookings, err := e.Gateway.FindBookingsByDate(t.ctx, date)
	if err != nil {
		return say(render.TextBookingsFetchErr)
	}
	if len(bookings) == 0 {
		return one(render.NoBookingsOn(date))
	}
	return one(render.BookingsOn(date, bookings))
}

// deleteRoom lists rooms, or deletes one when the postback names it.
func (e *Engine) deleteRoom(t *turn, pb postback) []render.Message {
	roomID := pb.get("roomId")
	if roomID == "" {
		rooms, err := e.Gateway.ListRooms(t.ctx)
		if err != nil {
			e.Logger.Error("list rooms failed", zap.Error(err))
			return say(render.TextRoomsErr)
		}
		if len(rooms) == 0 {
			return say(render.TextNoRooms)
		}
		return one(render.RoomDeletion(rooms))
	}

	deleted, err := e.Gateway.DeleteRoomByID(t.ctx, roomID)
	switch {
	case errors.Is(err, gateway.ErrInvalidID):
		return say(render.TextRoomMissing)
	case err != nil:
		e.Logger.Error("delete room failed", zap.String("roomId", roomID), zap.Error(err))
		return say(render.TextRoomDelError)
	case !deleted:
		return say(render.TextRoomMissing)
	}
	e.Logger.Info("room deleted", zap.String("userId", t.userID), zap.String("roomId", roomID))
	return say(render.TextRoomDeleted)
}
