package services

import (
	"time"

	tele "gopkg.in/telebot.v3"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"jumble/internal/models"
)

type Bot struct {
	token string
}

func NewBot(token string) (*Bot, error) {
	return &Bot{token}, nil
}

func (bot *Bot) ValidateInitData(dataStr string) (*models.UserFromAuth, error) {
	err := initdata.Validate(dataStr, bot.token, 0)
	if err != nil {
		return nil, err
	}

	data, err := initdata.Parse(dataStr)
	if err != nil {
		return nil, err
	}

	return &models.UserFromAuth{
		ID:           data.User.ID,
		Username:     data.User.Username,
		FirstName:    data.User.FirstName,
		LastName:     data.User.LastName,
		IsBot:        data.User.IsBot,
		IsPremium:    data.User.IsPremium,
		LanguageCode: data.User.LanguageCode,
		PhotoURL:     data.User.PhotoURL,
	}, nil
}

// SendMsg pushes a plain announcement to a chat outside the bot's
// update loop, for cron-driven notifications.
func (bot *Bot) SendMsg(chatID int64, text string) error {
	pref := tele.Settings{
		Token:  bot.token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return err
	}

	_, err = b.Send(&tele.Chat{ID: chatID}, text, &tele.SendOptions{
		ParseMode: tele.ModeMarkdown,
	})
	return err
}
