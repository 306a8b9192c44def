package render

import "net/url"

// Postback action names carried in the "action" field of postback data.
const (
	ActionSelectDate        = "selectDate"
	ActionStartTime         = "startTime"
	ActionEndTime           = "endTime"
	ActionBookRoom          = "bookRoom"
	ActionConfirmBooking    = "confirmBooking"
	ActionConfirmCancel     = "confirmCancel"
	ActionViewBookings      = "viewBookings"
	ActionSelectBookingDate = "selectBookingDate"
	ActionAddRoom           = "addRoom"
	ActionDeleteRoom        = "deleteRoom"
	ActionAddAdmin          = "addAdmin"
)

// PostbackData encodes an action and optional key/value pairs.
func PostbackData(action string, kv ...string) string {
	v := url.Values{}
	v.Set("action", action)
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v.Encode()
}

// ParsePostback decodes postback data. Malformed input yields an empty action.
func ParsePostback(data string) (action string, values url.Values) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return "", url.Values{}
	}
	return values.Get("action"), values
}
