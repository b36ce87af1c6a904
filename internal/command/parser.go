package command

import "strings"

// Tags holds the configured literals the parser matches against. Matching is
// exact-prefix and case-sensitive, no normalization.
type Tags struct {
	Marker    string
	Request   string
	Payment   string
	Paid      string
	Feedback  string
	Rejection string
	Greeting  string
}

type Parser struct {
	tags Tags
}

func NewParser(tags Tags) *Parser {
	return &Parser{tags: tags}
}

// Parse returns the commands carried by one message. A message can produce
// two commands: the greeting trigger does not preclude hashtag content.
// Messages without the hashtag marker produce nothing.
func (p *Parser) Parse(msg Message) []Command {
	var cmds []Command

	if msg.Text == p.tags.Greeting {
		cmds = append(cmds, Command{Kind: KindGreeting, Msg: msg})
	}

	if !strings.HasPrefix(msg.Text, p.tags.Marker) {
		return cmds
	}

	lines := strings.Split(msg.Text, "\n")

	if strings.HasPrefix(msg.Text, p.tags.Request) {
		cmds = append(cmds, Command{Kind: KindRequest, Msg: msg, Lines: lines})
		return cmds
	}

	kind, known := p.actionKind(lines[0])
	if !known {
		cmds = append(cmds, Command{Kind: KindWrongHashtag, Msg: msg})
		return cmds
	}

	if msg.ReplyTo == nil {
		cmds = append(cmds, Command{Kind: KindMissingReply, Msg: msg})
		return cmds
	}

	if msg.ReplyTo.IsMedia {
		cmds = append(cmds, Command{Kind: KindReplyIsMedia, Msg: msg})
		return cmds
	}

	if !strings.HasPrefix(msg.ReplyTo.Text, p.tags.Request) {
		cmds = append(cmds, Command{Kind: KindIncorrectReply, Msg: msg})
		return cmds
	}

	replyFirstLine, _, _ := strings.Cut(msg.ReplyTo.Text, "\n")
	cmds = append(cmds, Command{
		Kind:           kind,
		Msg:            msg,
		Lines:          lines,
		ReplyFirstLine: replyFirstLine,
	})
	return cmds
}

// actionKind matches the whole first line against the action hashtags.
func (p *Parser) actionKind(firstLine string) (Kind, bool) {
	switch firstLine {
	case p.tags.Payment:
		return KindPayment, true
	case p.tags.Paid:
		return KindPaid, true
	case p.tags.Feedback:
		return KindFeedback, true
	case p.tags.Rejection:
		return KindRejection, true
	}
	return "", false
}
