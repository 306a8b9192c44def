package messaging

import (
	"context"
	"errors"
	"fmt"

	"ruma/services/render"

	"github.com/google/uuid"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"go.uber.org/zap"
)

var ErrNoReplyToken = errors.New("missing reply token")

// lineAPI is the part of the messaging API client the messenger uses.
type lineAPI interface {
	ReplyMessage(req *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
	PushMessage(req *messaging_api.PushMessageRequest, xLineRetryKey string) (*messaging_api.PushMessageResponse, error)
}

// LineMessenger sends through the LINE Messaging API.
type LineMessenger struct {
	client func(ctx context.Context) lineAPI
	logger *zap.Logger
}

// NewLineMessenger builds a messenger for the channel access token.
func NewLineMessenger(channelToken string, logger *zap.Logger) (*LineMessenger, error) {
	api, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("create LINE client: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LineMessenger{
		client: func(ctx context.Context) lineAPI { return api.WithContext(ctx) },
		logger: logger,
	}, nil
}

func (m *LineMessenger) Reply(ctx context.Context, replyToken string, msgs []render.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	if replyToken == "" {
		return ErrNoReplyToken
	}
	if len(msgs) > MaxMessagesPerCall {
		m.logger.Warn("reply truncated", zap.Int("messages", len(msgs)))
		msgs = msgs[:MaxMessagesPerCall]
	}
	_, err := m.client(ctx).ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: replyToken,
		Messages:   Convert(msgs),
	})
	if err != nil {
		return fmt.Errorf("reply message: %w", err)
	}
	return nil
}

func (m *LineMessenger) Push(ctx context.Context, userID string, msgs []render.Message) error {
	for start := 0; start < len(msgs); start += MaxMessagesPerCall {
		end := start + MaxMessagesPerCall
		if end > len(msgs) {
			end = len(msgs)
		}
		retryKey := uuid.New().String()
		_, err := m.client(ctx).PushMessage(&messaging_api.PushMessageRequest{
			To:       userID,
			Messages: Convert(msgs[start:end]),
		}, retryKey)
		if err != nil {
			return fmt.Errorf("push message: %w", err)
		}
	}
	return nil
}
