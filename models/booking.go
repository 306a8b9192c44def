package models

import "time"

// Booking represents a confirmed meeting-room booking.
type Booking struct {
	BookingID           string    `bson:"bookingId" json:"bookingId"`               // Human-readable id, "YYYYMMDD-DDD"
	Room                string    `bson:"room" json:"room"`                         // Room name at booking time
	RoomID              string    `bson:"roomId,omitempty" json:"roomId,omitempty"` // Hex ObjectID of the room
	Date                string    `bson:"date" json:"date"`                         // "YYYY-MM-DD"
	StartTime           string    `bson:"startTime" json:"startTime"`               // "HH:mm", same-day wall clock
	EndTime             string    `bson:"endTime" json:"endTime"`                   // "HH:mm", exclusive
	MeetingTopic        string    `bson:"meetingTopic" json:"meetingTopic"`
	ReserverName        string    `bson:"reserverName" json:"reserverName"`
	PhoneNumber         string    `bson:"phoneNumber" json:"phoneNumber"`
	NumberOfAttendees   int       `bson:"numberOfAttendees" json:"numberOfAttendees"`
	AdditionalEquipment string    `bson:"additionalEquipment" json:"additionalEquipment"`
	Email               string    `bson:"email" json:"email"`
	UserID              string    `bson:"userId,omitempty" json:"userId,omitempty"` // LINE user that confirmed
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updatedAt" json:"updatedAt"`
}

// BookingDetails is the subset of a booking the edit dialogue may change.
type BookingDetails struct {
	MeetingTopic        string `bson:"meetingTopic"`
	NumberOfAttendees   int    `bson:"numberOfAttendees"`
	AdditionalEquipment string `bson:"additionalEquipment"`
	ReserverName        string `bson:"reserverName"`
	PhoneNumber         string `bson:"phoneNumber"`
	Email               string `bson:"email"`
}

// Apply copies the editable fields onto b.
func (d BookingDetails) Apply(b *Booking) {
	b.MeetingTopic = d.MeetingTopic
	b.NumberOfAttendees = d.NumberOfAttendees
	b.AdditionalEquipment = d.AdditionalEquipment
	b.ReserverName = d.ReserverName
	b.PhoneNumber = d.PhoneNumber
	b.Email = d.Email
}

// Overlaps reports whether b intersects the half-open interval [start, end)
// on the same date. Times are zero-padded "HH:mm" strings, so string order
// matches clock order.
func (b Booking) Overlaps(date, start, end string) bool {
	return b.Date == date && b.StartTime < end && start < b.EndTime
}
