package dialogue

import (
	"math"
	"strconv"
	"strings"

	"ruma/models"
	"ruma/services/render"
)

// question is one prompt of a fixed list. validate returns the complaint to
// send back, or "" when the answer is acceptable.
type question struct {
	key      string
	prompt   string
	validate func(string) string
}

var bookingQuestions = []question{
	{key: "meetingTopic", prompt: "กรุณาระบุหัวข้อการประชุม"},
	{key: "reserverName", prompt: "กรุณาระบุชื่อผู้จอง"},
	{key: "phoneNumber", prompt: "กรุณาระบุหมายเลขโทรศัพท์"},
	{key: "numberOfAttendees", prompt: "กรุณาระบุจำนวนผู้เข้าร่วมประชุม", validate: positiveInt},
	{key: "additionalEquipment", prompt: "ต้องการอุปกรณ์เพิ่มเติมหรือไม่ (เช่น โปรเจคเตอร์)"},
	{key: "email", prompt: "กรุณาระบุอีเมลสำหรับการติดต่อ"},
}

var editQuestions = []question{
	{key: "meetingTopic", prompt: "กรุณาระบุหัวข้อการประชุมใหม่"},
	{key: "numberOfAttendees", prompt: "กรุณาระบุจำนวนผู้เข้าร่วมประชุมใหม่", validate: positiveInt},
	{key: "additionalEquipment", prompt: "กรุณาระบุอุปกรณ์เพิ่มเติมใหม่ (ถ้ามี)"},
	{key: "reserverName", prompt: "กรุณาระบุชื่อผู้จองใหม่"},
	{key: "phoneNumber", prompt: "กรุณาระบุหมายเลขโทรศัพท์ใหม่"},
	{key: "email", prompt: "กรุณาระบุอีเมลใหม่"},
}

var roomQuestions = []question{
	{key: "name", prompt: "กรุณาระบุชื่อห้องประชุม (Name):"},
	{key: "location", prompt: "กรุณาระบุสถานที่ (Location):"},
	{key: "capacity", prompt: "กรุณาระบุจำนวนที่รองรับ (Capacity):", validate: positiveInt},
	{key: "imageUrl", prompt: "กรุณาระบุ URL รูปภาพ (ImageURL):", validate: httpsURL},
	{key: "price", prompt: "กรุณาระบุราคา (Price):", validate: nonNegativeNumber},
}

var adminQuestions = []question{
	{key: "username", prompt: "กรุณาระบุ Username ของแอดมิน:"},
	{key: "password", prompt: "กรุณาระบุ Password ของแอดมิน:"},
	{key: "email", prompt: "กรุณาระบุ Email ของแอดมิน:"},
}

func positiveInt(s string) string {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return render.TextNotPositiveInt
	}
	return ""
}

func nonNegativeNumber(s string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return render.TextNotPrice
	}
	return ""
}

func httpsURL(s string) string {
	if !render.IsHTTPSURL(strings.TrimSpace(s)) {
		return render.TextNotHTTPS
	}
	return ""
}

// askNext sends the prompt at the cursor and advances it. It reports false
// when every question has been asked.
func askNext(q *models.Questions, list []question) ([]render.Message, bool) {
	if q.Cursor < 0 || q.Cursor >= len(list) {
		return nil, false
	}
	prompt := list[q.Cursor].prompt
	q.Cursor++
	return say(prompt), true
}

// answer stores text under the question asked last, then asks the next one.
// done is true on the turn the final answer arrives and on any later turn.
// An invalid answer is re-asked without moving the cursor.
func answer(q *models.Questions, list []question, text string) (msgs []render.Message, done bool) {
	if idx := q.Cursor - 1; idx >= 0 && idx < len(list) {
		asked := list[idx]
		if asked.validate != nil {
			if complaint := asked.validate(text); complaint != "" {
				return []render.Message{render.NewText(complaint), render.NewText(asked.prompt)}, false
			}
		}
		q.Set(asked.key, strings.TrimSpace(text))
	}
	msgs, asked := askNext(q, list)
	if !asked {
		// Past the end: later text re-runs completion without overwriting.
		q.Cursor = len(list) + 1
	}
	return msgs, !asked
}

// atoi reads an answer that has already passed positiveInt.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
