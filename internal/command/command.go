// Package command turns raw chat messages into typed commands, independent of
// the transport that delivered them and of any store access.
package command

// Kind discriminates the command variants produced by the parser.
type Kind string

const (
	KindRequest        Kind = "request"
	KindPayment        Kind = "payment"
	KindPaid           Kind = "paid"
	KindFeedback       Kind = "feedback"
	KindRejection      Kind = "rejection"
	KindWrongHashtag   Kind = "wrong_hashtag"
	KindMissingReply   Kind = "missing_reply"
	KindReplyIsMedia   Kind = "reply_is_media"
	KindIncorrectReply Kind = "incorrect_reply"
	KindGreeting       Kind = "greeting"
)

// ReplyTo is the message the inbound message replies to, if any.
type ReplyTo struct {
	MessageID int
	Text      string
	IsMedia   bool
}

// Message is the transport-independent shape of an inbound chat message.
// Sender already carries the configured handle prefix.
type Message struct {
	ChatID    int64
	MessageID int
	Sender    string
	Text      string
	ReplyTo   *ReplyTo
}

// Command is one parsed action. Lines is the message text split on newlines;
// ReplyFirstLine is the first line of the replied-to request, set only for the
// payment/paid/feedback/rejection variants.
type Command struct {
	Kind           Kind
	Msg            Message
	Lines          []string
	ReplyFirstLine string
}
