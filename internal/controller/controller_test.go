package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"promobot/internal/command"
	"promobot/internal/config"
	"promobot/internal/events"
	mock_events "promobot/internal/events/mocks"
	"promobot/internal/responder"
	"promobot/internal/sheets"
	mock_sheets "promobot/internal/sheets/mocks"
)

func testBotConfig() config.Bot {
	return config.Bot{
		PaymentsListName:   "Оплаты",
		SummaryListName:    "Сводка",
		OrderedStatus:      "Заказано",
		PaidStatus:         "Выкуплено",
		EmptyPlaceholder:   "-",
		HandlePrefix:       "@",
		GreetingReplies:    []string{"привет"},
		RequestReplies:     []string{"заявка принята"},
		PaymentReplies:     []string{"оплата записана"},
		PaidReplies:        []string{"выкуп отмечен"},
		FeedbackReplies:    []string{"отзыв записан"},
		RejectionReplies:   []string{"заявка удалена"},
		WrongHashtagText:   "не знаю такой хэштег",
		MissingReplyText:   "ответьте на заявку",
		MediaReplyText:     "ответ на фото не принимается",
		IncorrectReplyText: "ответ не на заявку",
		ListNotFoundText:   "лист не найден",
	}
}

type fixture struct {
	store    *mock_sheets.MockListStore
	producer *mock_events.MockProducer
	ctrl     *Controller
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	mc := gomock.NewController(t)

	store := mock_sheets.NewMockListStore(mc)
	producer := mock_events.NewMockProducer(mc)
	cfg := testBotConfig()

	c := New(
		store,
		sheets.DefaultSchema(),
		responder.NewWithPick(cfg, func(int) int { return 0 }),
		producer,
		cfg,
		time.UTC,
		zap.NewNop(),
	)
	c.now = func() time.Time {
		return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	}
	return fixture{store: store, producer: producer, ctrl: c}
}

func paymentCommand(kind command.Kind, text string, replyToID int) command.Command {
	lines := []string{text}
	return command.Command{
		Kind: kind,
		Msg: command.Message{
			ChatID:    10,
			MessageID: 99,
			Sender:    "@jane",
			Text:      text,
			ReplyTo:   &command.ReplyTo{MessageID: replyToID, Text: "#заявка_Shop1"},
		},
		Lines:          lines,
		ReplyFirstLine: "#заявка_Shop1",
	}
}

func TestController_Request(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	t.Run("appends to first data row of an empty list", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().ReadColumn(gomock.Any(), "Shop1", schema.Handle).Return(nil, nil)
		f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cells []sheets.Cell) error {
				byColumn := make(map[sheets.Column]sheets.Cell, len(cells))
				for _, cell := range cells {
					assert.Equal(t, sheets.FirstDataRow, cell.Row)
					byColumn[cell.Column] = cell
				}
				assert.Equal(t, "@jane", byColumn[schema.Handle].Value)
				assert.Equal(t, "Женя", byColumn[schema.FullName].Value)
				assert.Equal(t, "1000", byColumn[schema.BuyoutPrice].Value)
				assert.Equal(t, "1200", byColumn[schema.PaymentPrice].Value)
				assert.Equal(t, "Заказано", byColumn[schema.Status].Value)
				assert.Equal(t, "01.02.2026", byColumn[schema.RequestDate].Value)
				assert.Equal(t, "42", byColumn[schema.CorrelationKey].Value)
				// everything past line 3 of the payload is defaulted
				assert.Equal(t, "-", byColumn[schema.PaymentDetails].Value)
				assert.Equal(t, "-", byColumn[schema.AdDate].Value)
				assert.Equal(t, "-", byColumn[schema.Size].Value)
				assert.Equal(t, "-", byColumn[schema.SocialLink].Value)
				assert.Equal(t, "-", byColumn[schema.ArticleNumber].Value)
				return nil
			})
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev events.Event) error {
				assert.Equal(t, events.TypeRequested, ev.Type)
				assert.Equal(t, "Shop1", ev.List)
				assert.Equal(t, sheets.FirstDataRow, ev.Row)
				assert.NotEmpty(t, ev.ID)
				return nil
			})

		cmd := command.Command{
			Kind: command.KindRequest,
			Msg:  command.Message{MessageID: 42, Sender: "@jane"},
			Lines: []string{
				"#заявка_Shop1", "Женя", "1000", "1200",
			},
		}
		reply, err := f.ctrl.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "заявка принята", reply)
	})

	t.Run("appends after last occupied row", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().ReadColumn(gomock.Any(), "Shop1", schema.Handle).
			Return([]string{"шапка", "шапка", "@other"}, nil)
		f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, cells []sheets.Cell) error {
				for _, cell := range cells {
					assert.Equal(t, 4, cell.Row)
				}
				return nil
			})
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cmd := command.Command{
			Kind:  command.KindRequest,
			Msg:   command.Message{MessageID: 43, Sender: "@jane"},
			Lines: []string{"#заявка_Shop1", "Женя"},
		}
		_, err := f.ctrl.Handle(ctx, cmd)
		require.NoError(t, err)
	})

	t.Run("two requests on an empty list take consecutive rows", func(t *testing.T) {
		f := newFixture(t)

		var rows []int
		recordRow := func(_ context.Context, _ string, cells []sheets.Cell) error {
			rows = append(rows, cells[0].Row)
			return nil
		}

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil).Times(2)
		first := f.store.EXPECT().ReadColumn(gomock.Any(), "Shop1", schema.Handle).Return(nil, nil)
		f.store.EXPECT().ReadColumn(gomock.Any(), "Shop1", schema.Handle).
			Return([]string{"", "", "@jane"}, nil).After(first)
		f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", gomock.Any()).DoAndReturn(recordRow).Times(2)
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		for _, id := range []int{50, 51} {
			cmd := command.Command{
				Kind:  command.KindRequest,
				Msg:   command.Message{MessageID: id, Sender: "@jane"},
				Lines: []string{"#заявка_Shop1", "Женя"},
			}
			_, err := f.ctrl.Handle(ctx, cmd)
			require.NoError(t, err)
		}
		assert.Equal(t, []int{sheets.FirstDataRow, sheets.FirstDataRow + 1}, rows)
	})

	t.Run("list not found", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Ghost").Return(false, nil)

		cmd := command.Command{
			Kind:  command.KindRequest,
			Msg:   command.Message{MessageID: 44, Sender: "@jane"},
			Lines: []string{"#заявка_Ghost"},
		}
		reply, err := f.ctrl.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "лист не найден", reply)
	})

	t.Run("store failure is surfaced", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(false, errors.New("quota exceeded"))

		cmd := command.Command{
			Kind:  command.KindRequest,
			Msg:   command.Message{MessageID: 45, Sender: "@jane"},
			Lines: []string{"#заявка_Shop1"},
		}
		reply, err := f.ctrl.Handle(ctx, cmd)
		require.Error(t, err)
		assert.Empty(t, reply)
	})
}

func TestController_Payment(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	t.Run("writes received date and order number", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(5, nil)
		f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", []sheets.Cell{
			{Column: schema.ReceivedDate, Row: 5, Value: "01.02.2026"},
			{Column: schema.OrderNumber, Row: 5, Value: "12345"},
		}).Return(nil)
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		cmd := paymentCommand(command.KindPayment, "#оплата", 42)
		cmd.Lines = []string{"#оплата", "01.02.2026", "12345"}

		reply, err := f.ctrl.Handle(ctx, cmd)
		require.NoError(t, err)
		assert.Equal(t, "оплата записана", reply)
	})

	t.Run("missing payload lines default to the placeholder", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(5, nil)
		f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", []sheets.Cell{
			{Column: schema.ReceivedDate, Row: 5, Value: "-"},
			{Column: schema.OrderNumber, Row: 5, Value: "-"},
		}).Return(nil)
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

		reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindPayment, "#оплата", 42))
		require.NoError(t, err)
		assert.Equal(t, "оплата записана", reply)
	})

	t.Run("correlation miss drops silently", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").
			Return(0, sheets.ErrRowNotFound)

		reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindPayment, "#оплата", 42))
		require.NoError(t, err)
		assert.Empty(t, reply, "no reply and no write on a correlation miss")
	})

	t.Run("list not found replies without a lookup", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(false, nil)

		reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindPayment, "#оплата", 42))
		require.NoError(t, err)
		assert.Equal(t, "лист не найден", reply)
	})
}

func TestController_Paid(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	f := newFixture(t)

	f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
	f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(7, nil)
	f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", []sheets.Cell{
		{Column: schema.Status, Row: 7, Value: "Выкуплено"},
		{Column: schema.PaidDate, Row: 7, Value: "01.02.2026"},
	}).Return(nil)
	f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev events.Event) error {
			assert.Equal(t, events.TypePaid, ev.Type)
			return nil
		})

	reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindPaid, "#выкуплено", 42))
	require.NoError(t, err)
	assert.Equal(t, "выкуп отмечен", reply)
}

func TestController_Feedback(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	f := newFixture(t)

	f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
	f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(3, nil)
	f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", []sheets.Cell{
		{Column: schema.FeedbackStatus, Row: 3, Value: "есть"},
		{Column: schema.FeedbackLink, Row: 3, Value: "https://example.com/review"},
	}).Return(nil)
	f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	cmd := paymentCommand(command.KindFeedback, "#отзыв", 42)
	cmd.Lines = []string{"#отзыв", "есть", "https://example.com/review"}

	reply, err := f.ctrl.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "отзыв записан", reply)
}

func TestController_Rejection(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	t.Run("clears the row", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(6, nil)
		f.store.EXPECT().ClearRow(gomock.Any(), "Shop1", 6).Return(nil)
		f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev events.Event) error {
				assert.Equal(t, events.TypeRejected, ev.Type)
				return nil
			})

		reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindRejection, "#отказ", 42))
		require.NoError(t, err)
		assert.Equal(t, "заявка удалена", reply)
	})

	t.Run("correlation miss drops silently", func(t *testing.T) {
		f := newFixture(t)

		f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
		f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").
			Return(0, sheets.ErrRowNotFound)

		reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindRejection, "#отказ", 42))
		require.NoError(t, err)
		assert.Empty(t, reply)
	})
}

func TestController_FixedOutcomes(t *testing.T) {
	ctx := context.Background()

	cases := map[command.Kind]string{
		command.KindWrongHashtag:   "не знаю такой хэштег",
		command.KindMissingReply:   "ответьте на заявку",
		command.KindReplyIsMedia:   "ответ на фото не принимается",
		command.KindIncorrectReply: "ответ не на заявку",
	}
	for kind, want := range cases {
		f := newFixture(t)
		reply, err := f.ctrl.Handle(ctx, command.Command{Kind: kind, Msg: command.Message{Sender: "@jane"}})
		require.NoError(t, err)
		assert.Equal(t, want, reply, string(kind))
	}
}

func TestController_Greeting(t *testing.T) {
	f := newFixture(t)

	reply, err := f.ctrl.Handle(context.Background(), command.Command{
		Kind: command.KindGreeting,
		Msg:  command.Message{Sender: "@jane"},
	})
	require.NoError(t, err)
	assert.Equal(t, "@jane, привет", reply)
}

func TestController_EventFailureDoesNotFailCommand(t *testing.T) {
	ctx := context.Background()
	schema := sheets.DefaultSchema()

	f := newFixture(t)

	f.store.EXPECT().ListExists(gomock.Any(), "Shop1").Return(true, nil)
	f.store.EXPECT().FindRow(gomock.Any(), "Shop1", schema.CorrelationKey, "42").Return(7, nil)
	f.store.EXPECT().WriteCells(gomock.Any(), "Shop1", gomock.Any()).Return(nil)
	f.producer.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	reply, err := f.ctrl.Handle(ctx, paymentCommand(command.KindPaid, "#выкуплено", 42))
	require.NoError(t, err)
	assert.Equal(t, "выкуп отмечен", reply)
}

func TestListNameFrom(t *testing.T) {
	assert.Equal(t, "Shop1", listNameFrom("#заявка_Shop1"))
	assert.Equal(t, "Магазин_2", listNameFrom("#заявка_Магазин_2"), "only the first underscore delimits")
	assert.Equal(t, "#заявка", listNameFrom("#заявка"), "no underscore keeps the whole line")
}
