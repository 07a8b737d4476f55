package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/sportify/internal/auth"
	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/debounce"
	"github.com/omarshaarawi/sportify/internal/service"
)

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	inline  *InlineSearch
	chatID  int64
}

func NewTelegramBot(cfg config.TelegramBot, sports *service.SportsService, accounts *auth.Service, sessions *auth.Sessions) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	debouncer := debounce.New(clockwork.NewRealClock(), cfg.SearchDebounce)

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(sports, accounts, sessions),
		inline:  NewInlineSearch(bot, sports, sessions, debouncer),
		chatID:  cfg.ChatID,
	}, nil
}

func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.inline.Stop()
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			t.dispatch(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) dispatch(ctx context.Context, update tgbotapi.Update) {
	log := slog.With("request_id", uuid.NewString(), "update_id", update.UpdateID)

	switch {
	case update.Message != nil && update.Message.IsCommand():
		command := strings.ToLower(update.Message.Command())
		log.Debug("Handling command", "command", command)

		if credentialCommands[command] {
			// keep passwords out of the chat history
			del := tgbotapi.NewDeleteMessage(update.Message.Chat.ID, update.Message.MessageID)
			if _, err := t.bot.Request(del); err != nil {
				log.Warn("Error deleting credentials message", "error", err)
			}
		}

		msg := t.handler.HandleCommand(ctx, update)
		if _, err := t.bot.Send(msg); err != nil {
			log.Error("Error sending message", "error", err)
		}
	case update.CallbackQuery != nil:
		log.Debug("Handling callback", "data", update.CallbackQuery.Data)

		answer, msg := t.handler.HandleCallback(ctx, update.CallbackQuery)
		if _, err := t.bot.Request(answer); err != nil {
			log.Error("Error answering callback", "error", err)
		}
		if msg != nil {
			if _, err := t.bot.Send(*msg); err != nil {
				log.Error("Error sending message", "error", err)
			}
		}
	case update.InlineQuery != nil:
		log.Debug("Handling inline query", "query", update.InlineQuery.Query)
		t.inline.Handle(ctx, update.InlineQuery)
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "Markdown"
	_, err := t.bot.Send(msg)
	if err != nil {
		slog.Error("Error sending message", "error", err)
	}
	return err
}
