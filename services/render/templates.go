package render

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"ruma/models"
)

// DateTimePicker is the opening card of a room search. The date picker
// starts at today in now's location.
func DateTimePicker(now time.Time) *Card {
	return &Card{
		AltText:    "เลือกวันที่และเวลา",
		Title:      "เลือกวันที่และเวลา",
		TitleColor: colorGreen,
		Buttons: []Button{
			{Action: Action{Label: "เลือกวันที่", Data: PostbackData(ActionSelectDate), Picker: PickDate, Min: now.Format("2006-01-02")}, Color: colorBlue},
			{Action: Action{Label: "เลือกเวลาเริ่มต้น", Data: PostbackData(ActionStartTime), Picker: PickTime}, Color: colorOrange},
			{Action: Action{Label: "เลือกเวลาสิ้นสุด", Data: PostbackData(ActionEndTime), Picker: PickTime}, Color: colorSuccess},
		},
	}
}

// StartTimePrompt asks for the start time with a quick-reply picker.
func StartTimePrompt() *Text {
	return &Text{
		Text:         TextAskStartTime,
		QuickReplies: []Action{{Label: "เลือกเวลาเริ่มต้น", Data: PostbackData(ActionStartTime), Picker: PickTime}},
	}
}

// EndTimePrompt asks for the end time with a quick-reply picker.
func EndTimePrompt() *Text {
	return &Text{
		Text:         TextAskEndTime,
		QuickReplies: []Action{{Label: "เลือกเวลาสิ้นสุด", Data: PostbackData(ActionEndTime), Picker: PickTime}},
	}
}

// IsHTTPSURL reports whether s can be used as a flex hero image. LINE
// rejects the whole reply when any hero URL is not https.
func IsHTTPSURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme == "https" && u.Host != ""
}

func heroImage(s string) string {
	if !IsHTTPSURL(s) {
		return PlaceholderImage
	}
	return s
}

func roomCard(room models.Room, button Button) Card {
	capacity := NotSpecified
	if room.Capacity > 0 {
		capacity = strconv.Itoa(room.Capacity)
	}
	return Card{
		Title:    orDefault(room.Name, NoRoomName),
		ImageURL: heroImage(room.ImageURL),
		Lines: []string{
			"สถานที่: " + orDefault(room.Location, NoData),
			fmt.Sprintf("ความจุ: %s คน", capacity),
		},
		Buttons: []Button{button},
	}
}

// RoomChoices lists bookable rooms, one "book this room" button each.
func RoomChoices(rooms []models.Room) *Carousel {
	cards := make([]Card, 0, len(rooms))
	for _, room := range rooms {
		cards = append(cards, roomCard(room, Button{
			Action: Action{Label: "จองห้องประชุมนี้", Data: PostbackData(ActionBookRoom, "roomId", room.ID.Hex())},
			Color:  colorBlue,
		}))
	}
	return NewCarousel("เลือกห้องประชุม", cards)
}

// RoomDeletion lists rooms with a delete button each.
func RoomDeletion(rooms []models.Room) *Carousel {
	cards := make([]Card, 0, len(rooms))
	for _, room := range rooms {
		cards = append(cards, roomCard(room, Button{
			Action: Action{Label: "ลบห้องประชุมนี้", Data: PostbackData(ActionDeleteRoom, "roomId", room.ID.Hex())},
			Color:  colorRed,
		}))
	}
	return NewCarousel("ลบห้องประชุม", cards)
}

func bookingLines(b models.Booking) []string {
	return []string{
		"📅 วันที่: " + orDefault(b.Date, NotSpecified),
		fmt.Sprintf("🕒 เวลา: %s - %s", orDefault(b.StartTime, NotSpecified), orDefault(b.EndTime, NotSpecified)),
		"🏢 ห้อง: " + orDefault(b.Room, NotSpecified),
		"📋 หัวข้อ: " + orDefault(b.MeetingTopic, NotSpecified),
		"👤 ผู้จอง: " + orDefault(b.ReserverName, NotSpecified),
		"📞 เบอร์โทร: " + orDefault(b.PhoneNumber, NotSpecified),
		"👥 ผู้เข้าร่วม: " + attendees(b.NumberOfAttendees),
		"🎯 อุปกรณ์เสริม: " + orDefault(b.AdditionalEquipment, NotSpecified),
		"📧 อีเมล: " + orDefault(b.Email, NotSpecified),
		"🔑 รหัสการจอง: " + b.BookingID,
	}
}

func attendees(n int) string {
	if n <= 0 {
		return NotSpecified
	}
	return strconv.Itoa(n)
}

// BookingSummary is shown before the user confirms a new booking.
func BookingSummary(b models.Booking) *Card {
	return &Card{
		AltText:    "สรุปการจอง",
		Title:      "📋 สรุปการจองห้องประชุม",
		TitleColor: colorGreen,
		Lines:      bookingLines(b),
		Buttons: []Button{{
			Action: Action{Label: "ยืนยันการจอง", Data: PostbackData(ActionConfirmBooking, "bookingId", b.BookingID)},
			Color:  colorBlue,
		}},
	}
}

// BookingConfirmed acknowledges a stored booking.
func BookingConfirmed(b models.Booking) *Card {
	return &Card{
		AltText:    "การจองสำเร็จ",
		Title:      "✅ การจองสำเร็จ!",
		TitleColor: colorGreen,
		Lines:      bookingLines(b),
	}
}

// CancelPrompt shows a booking with a confirm-cancel button.
func CancelPrompt(b models.Booking) *Card {
	return &Card{
		AltText:    "ยกเลิกการจอง",
		Title:      "ยกเลิกการจอง",
		TitleColor: colorRed,
		Lines: []string{
			"รหัสการจอง: " + b.BookingID,
			"ห้อง: " + orDefault(b.Room, NotSpecified),
			"วันที่: " + orDefault(b.Date, NotSpecified),
			fmt.Sprintf("เวลา: %s - %s", b.StartTime, b.EndTime),
			"หัวข้อ: " + orDefault(b.MeetingTopic, NotSpecified),
			"ผู้จอง: " + orDefault(b.ReserverName, NotSpecified),
			"อีเมล: " + orDefault(b.Email, NotSpecified),
		},
		Buttons: []Button{{
			Action: Action{Label: "ยืนยันการยกเลิก", Data: PostbackData(ActionConfirmCancel, "bookingId", b.BookingID)},
			Color:  colorRed,
		}},
	}
}

func bookingDetailCard(b models.Booking, withEmail bool) Card {
	lines := []string{
		"🔑 รหัสการจอง: " + b.BookingID,
		"🏢 ห้อง: " + orDefault(b.Room, NotSpecified),
		"📅 วันที่: " + orDefault(b.Date, NotSpecified),
		fmt.Sprintf("🕒 เวลา: %s - %s", b.StartTime, b.EndTime),
		"📋 หัวข้อ: " + orDefault(b.MeetingTopic, NotSpecified),
		"👤 ผู้จอง: " + orDefault(b.ReserverName, NotSpecified),
	}
	if withEmail {
		lines = append(lines, "📧 อีเมล: "+orDefault(b.Email, NotSpecified))
	}
	return Card{Title: "📋 รายละเอียดการจอง", TitleColor: colorGreen, Lines: lines}
}

// UserBookings lists the bookings found for an email address.
func UserBookings(bookings []models.Booking) *Carousel {
	cards := make([]Card, 0, len(bookings))
	for _, b := range bookings {
		cards = append(cards, bookingDetailCard(b, true))
	}
	return NewCarousel("รายการจองของคุณ", cards)
}

// BookingsOn lists every booking on date for an admin.
func BookingsOn(date string, bookings []models.Booking) *Carousel {
	cards := make([]Card, 0, len(bookings))
	for _, b := range bookings {
		cards = append(cards, bookingDetailCard(b, false))
	}
	return NewCarousel("รายการจองวันที่ "+date, cards)
}

// AdminMenu is rendered after login and on the admin menu phrase.
func AdminMenu() *Card {
	return &Card{
		AltText:    "เมนูแอดมิน",
		Title:      "📋 เมนูแอดมิน",
		TitleColor: colorGreen,
		Buttons: []Button{
			{Action: Action{Label: "📋 ดูรายการจอง", Data: PostbackData(ActionViewBookings)}, Color: colorBlue},
			{Action: Action{Label: "➕ เพิ่มห้องประชุม", Data: PostbackData(ActionAddRoom)}, Color: colorSuccess},
			{Action: Action{Label: "🗑️ ลบห้องประชุม", Data: PostbackData(ActionDeleteRoom)}, Color: colorOrange},
			{Action: Action{Label: "➕ เพิ่มแอดมิน", Data: PostbackData(ActionAddAdmin)}, Color: colorGrey},
		},
	}
}

// AdminDatePicker asks an admin which day's bookings to list.
func AdminDatePicker() *Card {
	return &Card{
		AltText:    "เลือกวันที่",
		Title:      "📅 เลือกวันที่",
		TitleColor: colorGreen,
		Buttons: []Button{{
			Action: Action{Label: "เลือกวันที่", Data: PostbackData(ActionSelectBookingDate), Picker: PickDate},
			Color:  colorBlue,
		}},
	}
}

// Reminder is pushed shortly before a booking starts.
func Reminder(p models.ReminderPayload) *Text {
	return NewText(fmt.Sprintf("⏰ แจ้งเตือนการประชุม\n📋 หัวข้อ: %s\n🏢 ห้อง: %s\n📅 วันที่: %s\n🕒 เวลา: %s - %s\n🔑 รหัสการจอง: %s",
		orDefault(p.Topic, NotSpecified), p.Room, p.Date, p.StartTime, p.EndTime, p.BookingID))
}
