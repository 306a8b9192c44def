// Package render builds the bot's reply payloads. Everything here is a pure
// function of its arguments; the messaging package turns the result into
// platform messages.
package render

// Message is one outbound reply: a *Text, a *Card or a *Carousel.
type Message interface {
	messageType() string
}

// MaxCarouselCards is the platform limit on bubbles per carousel.
const MaxCarouselCards = 10

// PickerMode selects what a datetime picker asks for.
type PickerMode string

const (
	PickDate PickerMode = "date"
	PickTime PickerMode = "time"
)

// Action is a tappable control. A non-empty Picker makes it a datetime
// picker; otherwise it is a plain postback.
type Action struct {
	Label  string
	Data   string
	Picker PickerMode
	Min    string // picker lower bound, "YYYY-MM-DD" or "HH:mm"
}

// Button is an action rendered in a card footer.
type Button struct {
	Action
	Color string
}

// Text is a plain text reply with optional quick-reply chips.
type Text struct {
	Text         string
	QuickReplies []Action
}

// Card is a single bubble.
type Card struct {
	AltText    string
	Title      string
	TitleColor string
	ImageURL   string // hero image; empty means none
	Lines      []string
	Buttons    []Button
}

// Carousel is a row of cards, at most MaxCarouselCards long.
type Carousel struct {
	AltText string
	Cards   []Card
}

func (*Text) messageType() string     { return "text" }
func (*Card) messageType() string     { return "card" }
func (*Carousel) messageType() string { return "carousel" }

// NewText is a shorthand for a plain text reply.
func NewText(text string) *Text {
	return &Text{Text: text}
}

// NewCarousel truncates cards to the platform limit.
func NewCarousel(altText string, cards []Card) *Carousel {
	if len(cards) > MaxCarouselCards {
		cards = cards[:MaxCarouselCards]
	}
	return &Carousel{AltText: altText, Cards: cards}
}
