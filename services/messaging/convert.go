package messaging

import (
	"ruma/services/render"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// Convert maps rendered messages onto LINE message objects.
func Convert(msgs []render.Message) []messaging_api.MessageInterface {
	out := make([]messaging_api.MessageInterface, 0, len(msgs))
	for _, msg := range msgs {
		if m := convertMessage(msg); m != nil {
			out = append(out, m)
		}
	}
	return out
}

func convertMessage(msg render.Message) messaging_api.MessageInterface {
	switch m := msg.(type) {
	case *render.Text:
		text := &messaging_api.TextMessage{Text: m.Text}
		if len(m.QuickReplies) > 0 {
			items := make([]messaging_api.QuickReplyItem, 0, len(m.QuickReplies))
			for _, a := range m.QuickReplies {
				items = append(items, messaging_api.QuickReplyItem{Action: convertAction(a)})
			}
			text.QuickReply = &messaging_api.QuickReply{Items: items}
		}
		return text
	case *render.Card:
		return &messaging_api.FlexMessage{AltText: altText(m.AltText, m.Title), Contents: bubble(*m)}
	case *render.Carousel:
		bubbles := make([]messaging_api.FlexBubble, 0, len(m.Cards))
		for _, c := range m.Cards {
			bubbles = append(bubbles, *bubble(c))
		}
		return &messaging_api.FlexMessage{AltText: altText(m.AltText, ""), Contents: &messaging_api.FlexCarousel{Contents: bubbles}}
	}
	return nil
}

// altText must be non-empty for flex messages.
func altText(alt, fallback string) string {
	if alt != "" {
		return alt
	}
	if fallback != "" {
		return fallback
	}
	return "RUMA"
}

func convertAction(a render.Action) messaging_api.ActionInterface {
	switch a.Picker {
	case render.PickDate:
		return &messaging_api.DatetimePickerAction{Label: a.Label, Data: a.Data, Mode: messaging_api.DatetimePickerActionMODE_DATE, Min: a.Min}
	case render.PickTime:
		return &messaging_api.DatetimePickerAction{Label: a.Label, Data: a.Data, Mode: messaging_api.DatetimePickerActionMODE_TIME, Min: a.Min}
	}
	return &messaging_api.PostbackAction{Label: a.Label, Data: a.Data}
}

func bubble(c render.Card) *messaging_api.FlexBubble {
	body := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{Text: c.Title, Weight: messaging_api.FlexTextWEIGHT_BOLD, Size: "lg", Color: c.TitleColor, Wrap: true},
	}
	for _, line := range c.Lines {
		body = append(body, &messaging_api.FlexText{Text: line, Size: "sm", Color: "#666666", Wrap: true})
	}

	b := &messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{Layout: messaging_api.FlexBoxLAYOUT_VERTICAL, Contents: body},
	}
	if c.ImageURL != "" {
		b.Hero = &messaging_api.FlexImage{
			Url:         c.ImageURL,
			Size:        "full",
			AspectRatio: "20:13",
			AspectMode:  messaging_api.FlexImageASPECT_MODE_COVER,
		}
	}
	if len(c.Buttons) > 0 {
		buttons := make([]messaging_api.FlexComponentInterface, 0, len(c.Buttons))
		for _, btn := range c.Buttons {
			buttons = append(buttons, &messaging_api.FlexButton{
				Action: convertAction(btn.Action),
				Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
				Color:  btn.Color,
			})
		}
		b.Footer = &messaging_api.FlexBox{Layout: messaging_api.FlexBoxLAYOUT_VERTICAL, Spacing: "sm", Contents: buttons}
	}
	return b
}
