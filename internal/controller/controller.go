// Package controller applies order lifecycle transitions against the list
// store and decides the reply for each parsed command.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"promobot/internal/command"
	"promobot/internal/config"
	"promobot/internal/events"
	"promobot/internal/metrics"
	"promobot/internal/responder"
	"promobot/internal/sheets"
)

// Request payload line positions (line 0 is the hashtag itself).
const (
	lineFullName = iota + 1
	lineBuyoutPrice
	linePaymentPrice
	linePaymentDetails
	lineAdDate
	lineSize
	lineSocialLink
	lineArticleNumber
)

// Payment and feedback payload line positions.
const (
	lineReceivedDate = 1
	lineOrderNumber  = 2

	lineFeedbackStatus = 1
	lineFeedbackLink   = 2
)

type Controller struct {
	store     sheets.ListStore
	schema    sheets.Schema
	responder *responder.Responder
	producer  events.Producer
	cfg       config.Bot
	loc       *time.Location
	log       *zap.Logger
	now       func() time.Time

	// The append path reads current occupancy to pick the target row, so two
	// concurrent requests for one list must not interleave.
	mu        sync.Mutex
	listLocks map[string]*sync.Mutex
}

func New(store sheets.ListStore, schema sheets.Schema, resp *responder.Responder, producer events.Producer, cfg config.Bot, loc *time.Location, log *zap.Logger) *Controller {
	return &Controller{
		store:     store,
		schema:    schema,
		responder: resp,
		producer:  producer,
		cfg:       cfg,
		loc:       loc,
		log:       log,
		now:       time.Now,
		listLocks: make(map[string]*sync.Mutex),
	}
}

// Handle applies one command and returns the reply to send back to the chat.
// An empty reply with a nil error means the command was dropped on purpose.
func (c *Controller) Handle(ctx context.Context, cmd command.Command) (string, error) {
	reply, err := c.dispatch(ctx, cmd)
	if err != nil {
		metrics.CommandErrorsTotal.WithLabelValues(string(cmd.Kind)).Inc()
		return "", err
	}
	metrics.CommandsHandledTotal.WithLabelValues(string(cmd.Kind)).Inc()
	return reply, nil
}

func (c *Controller) dispatch(ctx context.Context, cmd command.Command) (string, error) {
	switch cmd.Kind {
	case command.KindRequest:
		return c.addRequest(ctx, cmd)
	case command.KindPayment:
		return c.recordPayment(ctx, cmd)
	case command.KindPaid:
		return c.markPaid(ctx, cmd)
	case command.KindFeedback:
		return c.addFeedback(ctx, cmd)
	case command.KindRejection:
		return c.reject(ctx, cmd)
	case command.KindGreeting:
		return c.responder.Greeting(cmd.Msg.Sender), nil
	case command.KindWrongHashtag:
		return c.responder.WrongHashtag(), nil
	case command.KindMissingReply:
		return c.responder.MissingReply(), nil
	case command.KindReplyIsMedia:
		return c.responder.ReplyIsMedia(), nil
	case command.KindIncorrectReply:
		return c.responder.IncorrectReply(), nil
	}
	return "", fmt.Errorf("unknown command kind %q", cmd.Kind)
}

func (c *Controller) addRequest(ctx context.Context, cmd command.Command) (string, error) {
	list := listNameFrom(cmd.Lines[0])

	exists, err := c.store.ListExists(ctx, list)
	if err != nil {
		return "", fmt.Errorf("check list %q: %w", list, err)
	}
	if !exists {
		return c.responder.ListNotFound(), nil
	}

	unlock := c.lockList(list)
	defer unlock()

	occupied, err := c.store.ReadColumn(ctx, list, c.schema.Handle)
	if err != nil {
		return "", fmt.Errorf("read occupancy of %q: %w", list, err)
	}
	row := sheets.FirstDataRow
	if len(occupied) > 0 {
		row = len(occupied) + 1
	}

	field := c.fieldPicker(cmd.Lines)
	date := c.today()

	cells := []sheets.Cell{
		{Column: c.schema.Handle, Row: row, Value: cmd.Msg.Sender},
		{Column: c.schema.ArticleNumber, Row: row, Value: field(lineArticleNumber)},
		{Column: c.schema.FullName, Row: row, Value: field(lineFullName)},
		{Column: c.schema.Status, Row: row, Value: c.cfg.OrderedStatus},
		{Column: c.schema.BuyoutPrice, Row: row, Value: field(lineBuyoutPrice)},
		{Column: c.schema.RequestDate, Row: row, Value: date},
		{Column: c.schema.PaymentPrice, Row: row, Value: field(linePaymentPrice)},
		{Column: c.schema.PaymentDetails, Row: row, Value: field(linePaymentDetails)},
		{Column: c.schema.SocialLink, Row: row, Value: field(lineSocialLink)},
		{Column: c.schema.AdDate, Row: row, Value: field(lineAdDate)},
		{Column: c.schema.Size, Row: row, Value: field(lineSize)},
		{Column: c.schema.CorrelationKey, Row: row, Value: strconv.Itoa(cmd.Msg.MessageID)},
	}
	if err := c.store.WriteCells(ctx, list, cells); err != nil {
		return "", fmt.Errorf("append request to %q: %w", list, err)
	}

	c.publish(ctx, events.TypeRequested, list, row, cmd.Msg.Sender)
	return c.responder.Request(), nil
}

func (c *Controller) recordPayment(ctx context.Context, cmd command.Command) (string, error) {
	list, row, err := c.locateOrder(ctx, cmd)
	if err != nil || row <= 0 {
		return c.listMissReply(row), err
	}

	field := c.fieldPicker(cmd.Lines)
	cells := []sheets.Cell{
		{Column: c.schema.ReceivedDate, Row: row, Value: field(lineReceivedDate)},
		{Column: c.schema.OrderNumber, Row: row, Value: field(lineOrderNumber)},
	}
	if err := c.store.WriteCells(ctx, list, cells); err != nil {
		return "", fmt.Errorf("record payment in %q row %d: %w", list, row, err)
	}

	c.publish(ctx, events.TypePaymentRecorded, list, row, cmd.Msg.Sender)
	return c.responder.Payment(), nil
}

func (c *Controller) markPaid(ctx context.Context, cmd command.Command) (string, error) {
	list, row, err := c.locateOrder(ctx, cmd)
	if err != nil || row <= 0 {
		return c.listMissReply(row), err
	}

	cells := []sheets.Cell{
		{Column: c.schema.Status, Row: row, Value: c.cfg.PaidStatus},
		{Column: c.schema.PaidDate, Row: row, Value: c.today()},
	}
	if err := c.store.WriteCells(ctx, list, cells); err != nil {
		return "", fmt.Errorf("mark paid in %q row %d: %w", list, row, err)
	}

	c.publish(ctx, events.TypePaid, list, row, cmd.Msg.Sender)
	return c.responder.Paid(), nil
}

func (c *Controller) addFeedback(ctx context.Context, cmd command.Command) (string, error) {
	list, row, err := c.locateOrder(ctx, cmd)
	if err != nil || row <= 0 {
		return c.listMissReply(row), err
	}

	field := c.fieldPicker(cmd.Lines)
	cells := []sheets.Cell{
		{Column: c.schema.FeedbackStatus, Row: row, Value: field(lineFeedbackStatus)},
		{Column: c.schema.FeedbackLink, Row: row, Value: field(lineFeedbackLink)},
	}
	if err := c.store.WriteCells(ctx, list, cells); err != nil {
		return "", fmt.Errorf("add feedback in %q row %d: %w", list, row, err)
	}

	c.publish(ctx, events.TypeFeedbackAdded, list, row, cmd.Msg.Sender)
	return c.responder.Feedback(), nil
}

func (c *Controller) reject(ctx context.Context, cmd command.Command) (string, error) {
	list, row, err := c.locateOrder(ctx, cmd)
	if err != nil || row <= 0 {
		return c.listMissReply(row), err
	}

	if err := c.store.ClearRow(ctx, list, row); err != nil {
		return "", fmt.Errorf("clear row %d of %q: %w", row, list, err)
	}

	c.publish(ctx, events.TypeRejected, list, row, cmd.Msg.Sender)
	return c.responder.Rejection(), nil
}

// locateOrder resolves the list named in the replied-to request and the row
// holding its order. row 0 with nil error is the silent-drop outcome: either
// the list is gone (row -1 marks that for the caller) or the correlation key
// matched nothing.
func (c *Controller) locateOrder(ctx context.Context, cmd command.Command) (string, int, error) {
	list := listNameFrom(cmd.ReplyFirstLine)

	exists, err := c.store.ListExists(ctx, list)
	if err != nil {
		return list, 0, fmt.Errorf("check list %q: %w", list, err)
	}
	if !exists {
		return list, -1, nil
	}

	key := strconv.Itoa(cmd.Msg.ReplyTo.MessageID)
	row, err := c.store.FindRow(ctx, list, c.schema.CorrelationKey, key)
	if errors.Is(err, sheets.ErrRowNotFound) {
		c.log.Info("no order row for replied message, dropping command",
			zap.String("list", list),
			zap.String("message_id", key),
			zap.String("kind", string(cmd.Kind)),
		)
		return list, 0, nil
	}
	if err != nil {
		return list, 0, fmt.Errorf("find order in %q by key %s: %w", list, key, err)
	}
	return list, row, nil
}

// listMissReply maps the locateOrder short-circuit outcomes to reply text:
// a missing list gets the fixed notification, a correlation miss stays silent.
func (c *Controller) listMissReply(row int) string {
	if row == -1 {
		return c.responder.ListNotFound()
	}
	return ""
}

func (c *Controller) publish(ctx context.Context, typ events.Type, list string, row int, handle string) {
	event := events.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		List:       list,
		Row:        row,
		Handle:     handle,
		OccurredAt: c.now().In(c.loc),
	}
	if err := c.producer.Publish(ctx, event); err != nil {
		c.log.Warn("failed to publish lifecycle event",
			zap.String("type", string(typ)),
			zap.String("list", list),
			zap.Error(err),
		)
		return
	}
	metrics.EventsPublishedTotal.Inc()
}

func (c *Controller) fieldPicker(lines []string) func(i int) string {
	return func(i int) string {
		if i < len(lines) {
			return lines[i]
		}
		return c.cfg.EmptyPlaceholder
	}
}

func (c *Controller) today() string {
	return c.now().In(c.loc).Format(sheets.DateLayout)
}

func (c *Controller) lockList(list string) func() {
	c.mu.Lock()
	lock, ok := c.listLocks[list]
	if !ok {
		lock = &sync.Mutex{}
		c.listLocks[list] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// listNameFrom recovers the list name from a request hashtag line: everything
// after the first underscore, or the whole line when there is none.
func listNameFrom(line string) string {
	if i := strings.Index(line, "_"); i >= 0 {
		return line[i+1:]
	}
	return line
}
