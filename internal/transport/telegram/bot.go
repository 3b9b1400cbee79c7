package telegram

import (
	"context"
	"fmt"

	tele "gopkg.in/telebot.v3"

	"github.com/sandevgo/calbot/internal/core"
	"github.com/sandevgo/calbot/internal/service/assistant"
	"github.com/sandevgo/calbot/pkg/log"
)

const baseContextKey = "base_context"

type Assistant interface {
	Handle(ctx context.Context, userID, input string) assistant.Reply
}

type Bot struct {
	bot     *tele.Bot
	engine  Assistant
	router  core.CmdRouter
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	engine Assistant,
	router core.CmdRouter,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: cfg.GetPollTimeout()},
		OnError: func(err error, c tele.Context) {
			log.FromCtx(ctx).Error().Err(err).Msg("telegram handler failed")
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		engine:  engine,
		router:  router,
		sender:  newSender(b),
		ownerID: cfg.GetTelegramOwnerID(),
	}

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Only the owner may talk to the bot.
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || c.Sender().ID != bot.ownerID {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func userID(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleStart(c tele.Context) error {
	return b.reply(c, core.SessionStart)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	if out, ok := b.router.Execute(ctx, userID(c.Chat().ID), c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), out)
	}
	return b.reply(c, c.Text())
}

func (b *Bot) reply(c tele.Context, input string) error {
	ctx := c.Get(baseContextKey).(context.Context)
	ctx = log.WithUser(ctx, userID(c.Chat().ID))

	_ = c.Notify(tele.Typing)

	r := b.engine.Handle(ctx, userID(c.Chat().ID), input)
	if r.Result.Error != "" {
		log.FromCtx(ctx).Warn().Str("error", r.Result.Error).Msg("request finished with error")
	}

	md := r.Markdown()
	if md == "" {
		md = "🤔"
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), md)
}
