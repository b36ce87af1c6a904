// Package responder selects outbound reply text for command outcomes.
package responder

import (
	"fmt"
	"math/rand"

	"promobot/internal/config"
)

// Responder picks replies: one uniformly-random string from the configured
// pool for positive outcomes, a fixed string for the error ones.
type Responder struct {
	cfg  config.Bot
	pick func(n int) int
}

func New(cfg config.Bot) *Responder {
	return &Responder{cfg: cfg, pick: rand.Intn}
}

// NewWithPick injects the pool index picker; tests use it for determinism.
func NewWithPick(cfg config.Bot, pick func(n int) int) *Responder {
	return &Responder{cfg: cfg, pick: pick}
}

func (r *Responder) fromPool(pool []string) string {
	return pool[r.pick(len(pool))]
}

func (r *Responder) Request() string   { return r.fromPool(r.cfg.RequestReplies) }
func (r *Responder) Payment() string   { return r.fromPool(r.cfg.PaymentReplies) }
func (r *Responder) Paid() string      { return r.fromPool(r.cfg.PaidReplies) }
func (r *Responder) Feedback() string  { return r.fromPool(r.cfg.FeedbackReplies) }
func (r *Responder) Rejection() string { return r.fromPool(r.cfg.RejectionReplies) }

// Greeting addresses the sender by handle.
func (r *Responder) Greeting(handle string) string {
	return fmt.Sprintf("%s, %s", handle, r.fromPool(r.cfg.GreetingReplies))
}

func (r *Responder) WrongHashtag() string   { return r.cfg.WrongHashtagText }
func (r *Responder) MissingReply() string   { return r.cfg.MissingReplyText }
func (r *Responder) ReplyIsMedia() string   { return r.cfg.MediaReplyText }
func (r *Responder) IncorrectReply() string { return r.cfg.IncorrectReplyText }
func (r *Responder) ListNotFound() string   { return r.cfg.ListNotFoundText }
