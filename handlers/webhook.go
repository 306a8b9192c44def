package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"ruma/models"
	"ruma/services/messaging"
	"ruma/services/render"
	"ruma/utils"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"go.uber.org/zap"
)

// DialogueEngine is the part of the dialogue engine the webhook drives.
type DialogueEngine interface {
	HandleText(ctx context.Context, userID, text string) ([]render.Message, error)
	HandlePostback(ctx context.Context, userID, data string, params map[string]string) ([]render.Message, error)
}

// WebhookHandler receives LINE webhook batches.
type WebhookHandler struct {
	ChannelSecret string
	Engine        DialogueEngine
	Messenger     messaging.Messenger
	Logger        *zap.Logger
	// BatchTimeout bounds the processing of one request.
	BatchTimeout time.Duration
}

func NewWebhookHandler(secret string, engine DialogueEngine, messenger messaging.Messenger, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{
		ChannelSecret: secret,
		Engine:        engine,
		Messenger:     messenger,
		Logger:        logger,
		BatchTimeout:  30 * time.Second,
	}
}

// HandleWebhook verifies the signature, runs every event and answers 200
// with one result per event. Only a bad signature or body yields 400.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	cb, err := webhook.ParseRequest(h.ChannelSecret, c.Request)
	if err != nil {
		if errors.Is(err, webhook.ErrInvalidSignature) {
			utils.JSONError(c, http.StatusBadRequest, "invalid signature", "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, "malformed webhook body", err.Error())
		return
	}

	events := make([]models.Event, len(cb.Events))
	for i, ev := range cb.Events {
		events[i] = ToEvent(ev)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), h.BatchTimeout)
	defer cancel()
	results := h.Dispatch(ctx, events)

	getLogger(c).Debug("webhook batch processed", zap.Int("events", len(events)), zap.String("requestId", c.GetString("requestId")))
	c.JSON(http.StatusOK, results)
}

// Dispatch runs events grouped by user: users in parallel, each user's
// events in their batch order.
func (h *WebhookHandler) Dispatch(ctx context.Context, events []models.Event) []models.EventResult {
	results := make([]models.EventResult, len(events))

	var order []string
	byUser := make(map[string][]int)
	for i, ev := range events {
		byUser[ev.UserID] = append(byUser[ev.UserID], i)
		if len(byUser[ev.UserID]) == 1 {
			order = append(order, ev.UserID)
		}
	}

	var wg sync.WaitGroup
	for _, userID := range order {
		wg.Add(1)
		go func(indexes []int) {
			defer wg.Done()
			for _, i := range indexes {
				results[i] = h.process(ctx, i, events[i])
			}
		}(byUser[userID])
	}
	wg.Wait()
	return results
}

func (h *WebhookHandler) process(ctx context.Context, index int, ev models.Event) (result models.EventResult) {
	result = models.EventResult{Index: index, Type: ev.Type, UserID: ev.UserID, Status: models.EventStatusOK}
	defer func() {
		if r := recover(); r != nil {
			h.Logger.Error("panic while handling event", zap.Int("index", index), zap.String("userId", ev.UserID), zap.Any("panic", r))
			result.Status = models.EventStatusError
			result.Error = fmt.Sprint("panic: ", r)
		}
	}()

	if ev.UserID == "" || ev.Kind == models.EventUnsupported {
		result.Status = models.EventStatusIgnored
		return result
	}

	var (
		msgs []render.Message
		err  error
	)
	switch ev.Kind {
	case models.EventText:
		msgs, err = h.Engine.HandleText(ctx, ev.UserID, ev.Text)
	case models.EventPostback:
		msgs, err = h.Engine.HandlePostback(ctx, ev.UserID, ev.Data, ev.Params)
	}

	if len(msgs) > 0 {
		if replyErr := h.Messenger.Reply(ctx, ev.ReplyToken, msgs); replyErr != nil {
			err = errors.Join(err, replyErr)
		}
	}
	if err != nil {
		h.Logger.Error("event failed", zap.Int("index", index), zap.String("userId", ev.UserID), zap.String("type", ev.Type), zap.Error(err))
		result.Status = models.EventStatusError
		result.Error = err.Error()
	}
	return result
}

// ToEvent converts a webhook event into the engine's event type.
func ToEvent(ev webhook.EventInterface) models.Event {
	out := models.Event{Kind: models.EventUnsupported, Type: ev.GetType()}
	switch e := ev.(type) {
	case webhook.MessageEvent:
		out.UserID = sourceUser(e.Source)
		out.ReplyToken = e.ReplyToken
		if text, ok := e.Message.(webhook.TextMessageContent); ok {
			out.Kind = models.EventText
			out.Text = text.Text
		}
	case webhook.PostbackEvent:
		out.UserID = sourceUser(e.Source)
		out.ReplyToken = e.ReplyToken
		out.Kind = models.EventPostback
		if e.Postback != nil {
			out.Data = e.Postback.Data
			out.Params = e.Postback.Params
		}
	}
	return out
}

func sourceUser(src webhook.SourceInterface) string {
	switch s := src.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	}
	return ""
}
