package render

import "fmt"

// Placeholders for missing optional values.
const (
	NotSpecified     = "ไม่ระบุ"
	NoData           = "ไม่มีข้อมูล"
	NoRoomName       = "ไม่มีชื่อห้อง"
	PlaceholderImage = "https://via.placeholder.com/1024x512.png?text=No+Image"
)

const (
	colorGreen   = "#1DB446"
	colorSuccess = "#28A745"
	colorBlue    = "#007BFF"
	colorOrange  = "#FF5733"
	colorGrey    = "#6C757D"
	colorRed     = "#FF0000"
)

// Fixed status texts.
const (
	TextAskStartTime = "กรุณาเลือกเวลาเริ่มต้น"
	TextAskEndTime   = "กรุณาเลือกเวลาสิ้นสุด"
	TextIncomplete   = "ข้อมูลวันที่หรือเวลาไม่ครบถ้วน กรุณาลองใหม่อีกครั้ง"
	TextEndNotAfter  = "เวลาสิ้นสุดต้องอยู่หลังเวลาเริ่มต้น กรุณาเลือกเวลาใหม่"
	TextNoRoomsFree  = "ไม่มีห้องประชุมว่างในช่วงเวลาที่คุณเลือก กรุณาเลือกเวลาใหม่"
	TextSearchFailed = "เกิดข้อผิดพลาดในการค้นหาห้องประชุม กรุณาลองใหม่อีกครั้ง"
	TextRoomNotFound = "ไม่พบข้อมูลห้องประชุม กรุณาลองใหม่อีกครั้ง"

	TextPendingNotFound = "ไม่พบข้อมูลการจอง กรุณาลองใหม่อีกครั้ง"
	TextSaveFailed      = "เกิดข้อผิดพลาดในการบันทึกข้อมูลการจอง กรุณาลองใหม่อีกครั้ง"
	TextBookingIDTaken  = "รหัสการจองนี้ถูกใช้ไปแล้ว ระบบได้ออกรหัสใหม่ให้ กรุณากดยืนยันอีกครั้ง"

	TextAskCancelID     = "กรุณาระบุรหัสการจองที่ต้องการยกเลิก"
	TextAskEditID       = "กรุณาระบุรหัสการจองที่ต้องการแก้ไข"
	TextBookingNotFound = "ไม่พบข้อมูลการจอง กรุณาตรวจสอบรหัสการจองอีกครั้ง"
	TextCancelled       = "✅ ยกเลิกการจองสำเร็จ"
	TextCancelNotFound  = "❌ ไม่พบการจองสำหรับรหัสนี้ กรุณาตรวจสอบรหัสการจองอีกครั้ง"
	TextCancelFailed    = "❌ เกิดข้อผิดพลาดในการยกเลิกการจอง กรุณาลองใหม่อีกครั้ง"
	TextEdited          = "✅ แก้ไขข้อมูลการจองสำเร็จ"
	TextEditFailed      = "❌ เกิดข้อผิดพลาดในการแก้ไขข้อมูล กรุณาลองใหม่อีกครั้ง"

	TextAskEmail         = "กรุณาระบุอีเมลของคุณเพื่อดูรายการจอง"
	TextNoBookingsFound  = "ไม่พบรายการจองสำหรับอีเมลนี้"
	TextBookingsFetchErr = "เกิดข้อผิดพลาดในการดึงข้อมูลรายการจอง กรุณาลองใหม่อีกครั้ง"

	TextAskUsername  = "กรุณาใส่ Username ของคุณ:"
	TextAskPassword  = "กรุณาใส่ Password ของคุณ:"
	TextLoginFailed  = "❌ Username หรือ Password ไม่ถูกต้อง กรุณาลองใหม่อีกครั้ง"
	TextLoginError   = "❌ เกิดข้อผิดพลาดในการตรวจสอบข้อมูล กรุณาลองใหม่อีกครั้ง"
	TextAdminOnly    = "❌ คุณต้องเข้าสู่ระบบแอดมินก่อน กรุณาพิมพ์ \"เข้าสู่ระบบแอดมิน\""
	TextAdminAdded   = "✅ เพิ่มแอดมินสำเร็จ!"
	TextAdminFailed  = "❌ เกิดข้อผิดพลาดในการเพิ่มแอดมิน กรุณาลองใหม่อีกครั้ง"
	TextAdminExists  = "❌ มี Username นี้ในระบบแล้ว กรุณาลองใหม่อีกครั้ง"
	TextRoomAdded    = "✅ เพิ่มห้องประชุมสำเร็จ!"
	TextRoomFailed   = "❌ เกิดข้อผิดพลาดในการเพิ่มห้องประชุม กรุณาลองใหม่อีกครั้ง"
	TextNoRooms      = "ไม่พบห้องประชุมในระบบ"
	TextRoomsErr     = "เกิดข้อผิดพลาดในการดึงข้อมูลห้องประชุม กรุณาลองใหม่อีกครั้ง"
	TextRoomDeleted  = "✅ ลบห้องประชุมสำเร็จ"
	TextRoomMissing  = "❌ ไม่พบห้องประชุมที่ต้องการลบ"
	TextRoomDelError = "❌ เกิดข้อผิดพลาดในการลบห้องประชุม กรุณาลองใหม่อีกครั้ง"

	TextNotPositiveInt = "กรุณาระบุเป็นตัวเลขจำนวนเต็มที่มากกว่า 0"
	TextNotPrice       = "กรุณาระบุราคาเป็นตัวเลขที่ไม่ติดลบ"
	TextNotHTTPS       = "กรุณาระบุ URL รูปภาพที่ขึ้นต้นด้วย https://"
	TextGenericError   = "เกิดข้อผิดพลาด กรุณาลองใหม่อีกครั้ง"
)

const helpText = `🌿 วิธีจองห้องประชุมกับ RUMA ง่ายนิดเดียว 💼☕️

เริ่มเลย!
กดปุ่ม "ค้นหาห้องว่าง & จองห้องประชุม"
เพื่อเริ่มภารกิจหาห้องประชุมสุดปังของคุณ 💫

เลือกวันและเวลา
บอทจะถามคุณว่าอยากประชุมวันไหน ⏰
เริ่มกี่โมง? และจบตอนไหน? (ตอบให้ตรงใจเลย!)

ดูห้องว่างกันเถอะ!
RUMA จะโชว์ห้องที่ว่างตรงกับเวลาคุณ
เลือกห้องที่ถูกใจได้เลย ไม่ต้องจองใจใคร 😘

กรอกข้อมูลเบา ๆ 📋

หัวข้อการประชุม
ชื่อผู้จอง (ใส่ชื่อให้ RUMA รู้จักคุณหน่อยน้า)
เบอร์โทรไว้เผื่อ RUMA โทรหา
จำนวนเพื่อน ๆ ที่จะมาประชุม
อุปกรณ์ที่อยากใช้ (โปรเจคเตอร์? ไวท์บอร์ด?)
อีเมลของคุณสำหรับยืนยันจอง
สรุปให้ก่อนยืนยัน 💌
RUMA จะส่งข้อความสรุปการจองมาให้คุณ
ถ้าทุกอย่างเรียบร้อยแล้ว กด “ยืนยันการจอง” ได้เลย!`

// Help explains the booking steps.
func Help() *Text {
	return NewText(helpText)
}

// NoBookingsOn is the reply when an admin picks a date without bookings.
func NoBookingsOn(date string) *Text {
	return NewText(fmt.Sprintf("ไม่พบรายการจองสำหรับวันที่ %s", date))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
