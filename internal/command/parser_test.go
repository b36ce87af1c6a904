package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promobot/internal/command"
)

var testTags = command.Tags{
	Marker:    "#",
	Request:   "#заявка",
	Payment:   "#оплата",
	Paid:      "#выкуплено",
	Feedback:  "#отзыв",
	Rejection: "#отказ",
	Greeting:  "Вафелька",
}

func requestReply(id int) *command.ReplyTo {
	return &command.ReplyTo{MessageID: id, Text: "#заявка_Shop1\nЖеня\n1000"}
}

func TestParser_Parse(t *testing.T) {
	p := command.NewParser(testTags)

	t.Run("plain text ignored", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "привет всем"})
		assert.Empty(t, cmds)
	})

	t.Run("request", func(t *testing.T) {
		msg := command.Message{MessageID: 42, Sender: "@jane", Text: "#заявка_Shop1\nЖеня\n1000\n1200"}
		cmds := p.Parse(msg)
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindRequest, cmds[0].Kind)
		assert.Equal(t, []string{"#заявка_Shop1", "Женя", "1000", "1200"}, cmds[0].Lines)
		assert.Equal(t, msg, cmds[0].Msg)
	})

	t.Run("unknown hashtag", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "#чтото"})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindWrongHashtag, cmds[0].Kind)
	})

	t.Run("hashtag matching is case sensitive", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "#Оплата", ReplyTo: requestReply(1)})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindWrongHashtag, cmds[0].Kind)
	})

	t.Run("action without reply", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "#оплата\n01.02.2026"})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindMissingReply, cmds[0].Kind)
	})

	t.Run("action replying to media", func(t *testing.T) {
		cmds := p.Parse(command.Message{
			Text:    "#выкуплено",
			ReplyTo: &command.ReplyTo{MessageID: 7, IsMedia: true},
		})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindReplyIsMedia, cmds[0].Kind)
	})

	t.Run("action replying to non-request text", func(t *testing.T) {
		cmds := p.Parse(command.Message{
			Text:    "#отказ",
			ReplyTo: &command.ReplyTo{MessageID: 7, Text: "просто сообщение"},
		})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindIncorrectReply, cmds[0].Kind)
	})

	t.Run("payment carries reply first line", func(t *testing.T) {
		cmds := p.Parse(command.Message{
			Text:    "#оплата\n01.02.2026\n12345",
			ReplyTo: requestReply(42),
		})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindPayment, cmds[0].Kind)
		assert.Equal(t, "#заявка_Shop1", cmds[0].ReplyFirstLine)
		assert.Equal(t, []string{"#оплата", "01.02.2026", "12345"}, cmds[0].Lines)
	})

	t.Run("paid feedback rejection variants", func(t *testing.T) {
		cases := map[string]command.Kind{
			"#выкуплено": command.KindPaid,
			"#отзыв":     command.KindFeedback,
			"#отказ":     command.KindRejection,
		}
		for text, kind := range cases {
			cmds := p.Parse(command.Message{Text: text, ReplyTo: requestReply(5)})
			require.Len(t, cmds, 1, text)
			assert.Equal(t, kind, cmds[0].Kind, text)
		}
	})

	t.Run("greeting", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "Вафелька"})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindGreeting, cmds[0].Kind)
	})

	t.Run("action hashtag with trailing payload on first line is wrong hashtag", func(t *testing.T) {
		cmds := p.Parse(command.Message{Text: "#оплата сегодня", ReplyTo: requestReply(5)})
		require.Len(t, cmds, 1)
		assert.Equal(t, command.KindWrongHashtag, cmds[0].Kind)
	})
}
