// Package telegram receives group-chat messages over long polling and turns
// them into commands for the lifecycle controller.
package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"promobot/internal/command"
)

// Handler applies one parsed command and returns the reply text, empty for a
// deliberate silent drop.
type Handler interface {
	Handle(ctx context.Context, cmd command.Command) (string, error)
}

type Gateway struct {
	bot          *tgbotapi.BotAPI
	parser       *command.Parser
	handler      Handler
	handlePrefix string
	log          *zap.Logger
}

func New(token string, parser *command.Parser, handler Handler, handlePrefix string, log *zap.Logger) (*Gateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	log.Info("telegram bot authorized", zap.String("username", bot.Self.UserName))
	return &Gateway{
		bot:          bot,
		parser:       parser,
		handler:      handler,
		handlePrefix: handlePrefix,
		log:          log,
	}, nil
}

// Run consumes updates until ctx is cancelled. A failure inside one message
// never terminates the loop.
func (g *Gateway) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := g.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			g.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			g.handleUpdate(ctx, update)
		}
	}
}

func (g *Gateway) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	m := update.Message
	if m == nil || m.Text == "" || m.From == nil || m.From.UserName == "" {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			g.log.Error("panic while handling message", zap.Any("panic", r))
			g.sendDiagnostics(m, fmt.Errorf("panic: %v", r))
		}
	}()

	msg := command.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Sender:    g.handlePrefix + m.From.UserName,
		Text:      m.Text,
	}
	if m.ReplyToMessage != nil {
		msg.ReplyTo = &command.ReplyTo{
			MessageID: m.ReplyToMessage.MessageID,
			Text:      m.ReplyToMessage.Text,
			IsMedia:   len(m.ReplyToMessage.Photo) > 0,
		}
	}

	for _, cmd := range g.parser.Parse(msg) {
		reply, err := g.handler.Handle(ctx, cmd)
		if err != nil {
			g.log.Error("command failed",
				zap.String("kind", string(cmd.Kind)),
				zap.Int64("chat_id", msg.ChatID),
				zap.Error(err),
			)
			g.sendDiagnostics(m, err)
			continue
		}
		if reply == "" {
			continue
		}
		if err := g.sendReply(msg.ChatID, msg.MessageID, reply); err != nil {
			g.log.Error("failed to send reply",
				zap.Int64("chat_id", msg.ChatID),
				zap.Error(err),
			)
		}
	}
}

func (g *Gateway) sendReply(chatID int64, messageID int, text string) error {
	reply := tgbotapi.NewMessage(chatID, text)
	reply.ReplyToMessageID = messageID
	_, err := g.bot.Send(reply)
	return err
}

// sendDiagnostics surfaces a failed command in the chat so operators can
// triage it by hand.
func (g *Gateway) sendDiagnostics(m *tgbotapi.Message, cause error) {
	text := fmt.Sprintf("!Error!\n%v\n\nID чата - %d\nНик - %s%s\nТекст сообщения:\n%s",
		cause, m.Chat.ID, g.handlePrefix, m.From.UserName, m.Text)
	if _, err := g.bot.Send(tgbotapi.NewMessage(m.Chat.ID, text)); err != nil {
		g.log.Error("failed to send diagnostics", zap.Error(err))
	}
}
