package messaging

import (
	"context"

	"ruma/services/render"
)

// MaxMessagesPerCall is the platform limit per reply or push request.
const MaxMessagesPerCall = 5

// Messenger delivers rendered messages to LINE users.
type Messenger interface {
	// Reply answers an event. The token is single use; messages beyond
	// MaxMessagesPerCall are dropped.
	Reply(ctx context.Context, replyToken string, msgs []render.Message) error
	// Push sends unsolicited messages to userID in batches.
	Push(ctx context.Context, userID string, msgs []render.Message) error
}
