package models

import "time"

// Mode names the dialogue a user is currently in.
type Mode string

const (
	ModeNone         Mode = "none"
	ModeNewBooking   Mode = "new-booking"
	ModeEditBooking  Mode = "edit-booking"
	ModeCancel       Mode = "cancel"
	ModeViewBookings Mode = "view-bookings"
	ModeAddRoom      Mode = "add-room"
	ModeAddAdmin     Mode = "add-admin"
	ModeAdminLogin   Mode = "admin-login"
)

// BookingPhase is the stage of the new-booking dialogue.
type BookingPhase string

const (
	PhasePicking   BookingPhase = "picking"   // date, start and end pickers
	PhaseQuestions BookingPhase = "questions" // room chosen, fixed questions
	PhaseSummary   BookingPhase = "summary"   // waiting for the confirm button
)

// LoginStep is the credential currently being asked for.
type LoginStep string

const (
	LoginUsername LoginStep = "username"
	LoginPassword LoginStep = "password"
)

// Questions tracks progress through a fixed question list. Cursor counts the
// questions already asked, so the answer to an incoming message belongs to
// question Cursor-1.
type Questions struct {
	Cursor  int               `json:"cursor"`
	Answers map[string]string `json:"answers,omitempty"`
}

// Set records an answer.
func (q *Questions) Set(key, value string) {
	if q.Answers == nil {
		q.Answers = make(map[string]string)
	}
	q.Answers[key] = value
}

// BookingFlow is the state of a new booking.
type BookingFlow struct {
	Phase            BookingPhase `json:"phase"`
	Date             string       `json:"date,omitempty"`
	StartTime        string       `json:"startTime,omitempty"`
	EndTime          string       `json:"endTime,omitempty"`
	RoomID           string       `json:"roomId,omitempty"`
	Room             string       `json:"room,omitempty"`
	Questions        Questions    `json:"questions"`
	PendingBookingID string       `json:"pendingBookingId,omitempty"`
}

// EditFlow is the state of an edit. BookingID is empty until the user has
// named an existing booking.
type EditFlow struct {
	BookingID string    `json:"bookingId,omitempty"`
	Questions Questions `json:"questions"`
}

// CancelFlow remembers the booking last shown for cancellation.
type CancelFlow struct {
	BookingID string `json:"bookingId,omitempty"`
}

// LoginFlow is the admin credential capture.
type LoginFlow struct {
	Step     LoginStep `json:"step"`
	Username string    `json:"username,omitempty"`
}

// Session is the per-user conversation state. Exactly one flow payload is
// set, the one matching Mode; ModeNone and ModeViewBookings carry none.
// IsAdmin belongs to the user rather than the flow and survives Start.
type Session struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	Mode    Mode   `json:"mode"`

	Booking *BookingFlow `json:"booking,omitempty"`
	Edit    *EditFlow    `json:"edit,omitempty"`
	Cancel  *CancelFlow  `json:"cancel,omitempty"`
	Room    *Questions   `json:"room,omitempty"`
	Admin   *Questions   `json:"admin,omitempty"`
	Login   *LoginFlow   `json:"login,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSession returns an idle session for userID.
func NewSession(userID string) *Session {
	return &Session{UserID: userID, Mode: ModeNone}
}

// Start replaces whatever flow is in progress with a fresh one for mode.
func (s *Session) Start(mode Mode) {
	s.Reset()
	s.Mode = mode
	switch mode {
	case ModeNewBooking:
		s.Booking = &BookingFlow{Phase: PhasePicking}
	case ModeEditBooking:
		s.Edit = &EditFlow{}
	case ModeCancel:
		s.Cancel = &CancelFlow{}
	case ModeAddRoom:
		s.Room = &Questions{}
	case ModeAddAdmin:
		s.Admin = &Questions{}
	case ModeAdminLogin:
		s.Login = &LoginFlow{Step: LoginUsername}
	}
}

// Reset drops the active flow, keeping the user's identity and admin flag.
func (s *Session) Reset() {
	s.Mode = ModeNone
	s.Booking = nil
	s.Edit = nil
	s.Cancel = nil
	s.Room = nil
	s.Admin = nil
	s.Login = nil
}

// Consistent reports whether the payload matches Mode.
func (s *Session) Consistent() bool {
	set := 0
	for _, p := range []bool{s.Booking != nil, s.Edit != nil, s.Cancel != nil, s.Room != nil, s.Admin != nil, s.Login != nil} {
		if p {
			set++
		}
	}
	switch s.Mode {
	case ModeNone, ModeViewBookings:
		return set == 0
	case ModeNewBooking:
		return set == 1 && s.Booking != nil
	case ModeEditBooking:
		return set == 1 && s.Edit != nil
	case ModeCancel:
		return set == 1 && s.Cancel != nil
	case ModeAddRoom:
		return set == 1 && s.Room != nil
	case ModeAddAdmin:
		return set == 1 && s.Admin != nil
	case ModeAdminLogin:
		return set == 1 && s.Login != nil
	}
	return false
}
