package main

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"jumble/internal/models"
	"jumble/internal/services"

	"github.com/samber/do"
	tele "gopkg.in/telebot.v3"
)

const textStart = `🎲 Welcome to Jumble!

Guess artists and albums from your own listening history.

/connect <username> - link your Last.fm account
/jumble - guess the scrambled artist
/pixelation - guess the album behind the blur
/stats - your game record
/leaderboard - top winners
`

var (
	markupGame   = &tele.ReplyMarkup{}
	btnHint      = markupGame.Data("💡 Hint", "game_hint")
	btnReshuffle = markupGame.Data("🔀 Reshuffle", "game_reshuffle")
	btnGiveUp    = markupGame.Data("🏳️ Give up", "game_giveup")
)

type gameHandlers struct {
	bot       *tele.Bot
	container *do.Injector
}

func (h *gameHandlers) resolveUser(c tele.Context) (*models.User, error) {
	serviceUser, err := do.Invoke[*services.ServiceUser](h.container)
	if err != nil {
		return nil, err
	}

	sender := c.Sender()
	return serviceUser.FindOrCreateUser(context.Background(), &models.UserFromAuth{
		ID:       sender.ID,
		Username: sender.Username,
	})
}

func (h *gameHandlers) Start(c tele.Context) error {
	return c.Send(textStart)
}

func (h *gameHandlers) Connect(c tele.Context) error {
	args := c.Args()
	if len(args) != 1 {
		return c.Send("Usage: /connect <lastfm username>")
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}

	serviceUser, err := do.Invoke[*services.ServiceUser](h.container)
	if err != nil {
		return err
	}

	if _, err := serviceUser.ConnectLastfm(context.Background(), user, args[0]); err != nil {
		return c.Send("Couldn't link that account.")
	}

	return c.Send(fmt.Sprintf("Linked Last.fm account *%s*. Start a game with /jumble", args[0]), tele.ModeMarkdown)
}

func (h *gameHandlers) Jumble(c tele.Context) error {
	return h.startGame(c, models.GameTypeJumble)
}

func (h *gameHandlers) Pixelation(c tele.Context) error {
	return h.startGame(c, models.GameTypePixelation)
}

func (h *gameHandlers) startGame(c tele.Context, gameType models.GameType) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}
	if user.LastfmUsername == "" {
		return c.Send("Link your Last.fm account first: /connect <username>")
	}

	game, err := do.Invoke[*services.ServiceGame](h.container)
	if err != nil {
		return err
	}

	ctx := context.Background()
	var resp *models.GameResponse
	if gameType == models.GameTypePixelation {
		resp, err = game.StartPixelation(ctx, c.Chat().ID, user)
	} else {
		resp, err = game.StartJumble(ctx, c.Chat().ID, user)
	}
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}

	switch resp.Status {
	case models.StatusOK:
	case models.StatusCooldown:
		return c.Send("There's already a game running in this chat. Finish it first.")
	case models.StatusError:
		return c.Send("Couldn't prepare the game, try again later.")
	default:
		return c.Send(resp.Footer)
	}

	var msg *tele.Message
	if len(resp.Image) > 0 {
		photo := &tele.Photo{
			File:    tele.FromReader(bytes.NewReader(resp.Image)),
			Caption: renderGame(resp),
		}
		msg, err = h.bot.Send(c.Chat(), photo, tele.ModeMarkdown, actionMarkup(resp))
	} else {
		msg, err = h.bot.Send(c.Chat(), renderGame(resp), tele.ModeMarkdown, actionMarkup(resp))
	}
	if err != nil {
		// the game never reached the chat; free the channel
		//nolint:errcheck
		game.Abandon(ctx, resp.SessionID)
		return err
	}

	game.AttachMessage(ctx, resp.SessionID, int64(msg.ID))
	return nil
}

func (h *gameHandlers) AddHint(c tele.Context) error {
	defer func() {
		//nolint:errcheck
		c.Respond()
	}()

	sessionID, err := strconv.Atoi(c.Data())
	if err != nil {
		return nil
	}

	game, err := do.Invoke[*services.ServiceGame](h.container)
	if err != nil {
		return err
	}

	resp, err := game.AddHint(context.Background(), sessionID)
	if err != nil || resp.Status != models.StatusOK {
		return nil
	}

	return h.editGameMessage(c, resp)
}

func (h *gameHandlers) Reshuffle(c tele.Context) error {
	defer func() {
		//nolint:errcheck
		c.Respond()
	}()

	sessionID, err := strconv.Atoi(c.Data())
	if err != nil {
		return nil
	}

	game, err := do.Invoke[*services.ServiceGame](h.container)
	if err != nil {
		return err
	}

	resp, err := game.Reshuffle(context.Background(), sessionID)
	if err != nil || resp.Status != models.StatusOK {
		return nil
	}

	return h.editGameMessage(c, resp)
}

func (h *gameHandlers) GiveUp(c tele.Context) error {
	sessionID, err := strconv.Atoi(c.Data())
	if err != nil {
		return nil
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return nil
	}

	game, err := do.Invoke[*services.ServiceGame](h.container)
	if err != nil {
		return err
	}

	resp, err := game.GiveUp(context.Background(), sessionID, user)
	if err != nil {
		return nil
	}

	if resp.Status == models.StatusNoPermission {
		return c.Respond(&tele.CallbackResponse{Text: "Only the starter can give up this game."})
	}
	if resp.Status != models.StatusOK {
		//nolint:errcheck
		c.Respond()
		return nil
	}

	//nolint:errcheck
	c.Respond()
	if err := h.editGameMessage(c, resp); err != nil {
		return err
	}

	if resp.Announcement != "" {
		return c.Send(resp.Announcement, tele.ModeMarkdown)
	}
	return nil
}

func (h *gameHandlers) Answer(c tele.Context) error {
	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return nil
	}

	user, err := h.resolveUser(c)
	if err != nil {
		return nil
	}

	game, err := do.Invoke[*services.ServiceGame](h.container)
	if err != nil {
		return err
	}

	result, err := game.ProcessAnswer(context.Background(), c.Chat().ID, user, text)
	if err != nil {
		return nil
	}

	switch result.Outcome {
	case models.AnswerOutcomeCorrect:
		if result.Response != nil && result.Response.Announcement != "" {
			announcement := result.Response.Announcement
			if result.Response.Footer != "" {
				announcement += "\n_" + result.Response.Footer + "_"
			}
			return c.Send(announcement, tele.ModeMarkdown)
		}
	case models.AnswerOutcomeVeryClose:
		return c.Reply("🤏 So close!")
	}

	return nil
}

func (h *gameHandlers) Stats(c tele.Context) error {
	user, err := h.resolveUser(c)
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}

	serviceStats, err := do.Invoke[*services.ServiceStats](h.container)
	if err != nil {
		return err
	}

	stats, err := serviceStats.UserStats(context.Background(), user.ID)
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}
	if stats == nil {
		return c.Send("You haven't played any games yet. Start one with /jumble")
	}

	return c.Send(renderStats(stats), tele.ModeMarkdown)
}

func (h *gameHandlers) Leaderboard(c tele.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](h.container)
	if err != nil {
		return err
	}

	items, err := serviceStats.WinLeaderboard(context.Background(), 10)
	if err != nil {
		return c.Send("Something went wrong, try again later.")
	}
	if len(items) == 0 {
		return c.Send("Nobody has won a game yet.")
	}

	var b strings.Builder
	b.WriteString("*Top winners*\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%d. [%d](tg://user?id=%d) - %.0f wins\n", item.Rank, item.UserID, item.UserID, item.Score)
	}
	return c.Send(b.String(), tele.ModeMarkdown)
}

func (h *gameHandlers) onExpiry(session *models.GameSession, resp *models.GameResponse) {
	text := renderGame(resp)
	if resp.Announcement != "" {
		text += "\n" + resp.Announcement
	}

	if _, err := h.bot.Send(&tele.Chat{ID: session.ChannelID}, text, tele.ModeMarkdown); err != nil {
		// chat may have kicked the bot; nothing to do
		return
	}
}

func (h *gameHandlers) editGameMessage(c tele.Context, resp *models.GameResponse) error {
	if c.Message() == nil {
		return nil
	}

	if c.Message().Photo != nil {
		return c.Edit(&tele.Photo{
			File:    c.Message().Photo.File,
			Caption: renderGame(resp),
		}, tele.ModeMarkdown, actionMarkup(resp))
	}

	return c.Edit(renderGame(resp), tele.ModeMarkdown, actionMarkup(resp))
}

func actionMarkup(resp *models.GameResponse) *tele.ReplyMarkup {
	m := &tele.ReplyMarkup{}
	if resp.Actions == nil {
		return m
	}

	data := strconv.Itoa(resp.SessionID)
	var row []tele.Btn
	if resp.Actions.AddHint {
		row = append(row, m.Data(btnHint.Text, btnHint.Unique, data))
	}
	if resp.Actions.Reshuffle {
		row = append(row, m.Data(btnReshuffle.Text, btnReshuffle.Unique, data))
	}
	if resp.Actions.GiveUp {
		row = append(row, m.Data(btnGiveUp.Text, btnGiveUp.Unique, data))
	}
	m.Inline(m.Row(row...))
	return m
}

func renderGame(resp *models.GameResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n", resp.Title)

	if resp.CorrectAnswer != "" {
		fmt.Fprintf(&b, "\nThe answer was `%s`\n", resp.CorrectAnswer)
	} else if resp.Jumbled != "" {
		fmt.Fprintf(&b, "\n`%s`\n", resp.Jumbled)
	}

	if resp.HintText != "" {
		fmt.Fprintf(&b, "\n*%s*\n%s", resp.HintTitle, resp.HintText)
	}

	if resp.Footer != "" && resp.CorrectAnswer == "" {
		fmt.Fprintf(&b, "\n_%s_", resp.Footer)
	}

	return b.String()
}

func renderStats(stats *models.JumbleUserStats) string {
	var b strings.Builder
	b.WriteString("*Your jumble stats*\n")
	fmt.Fprintf(&b, "Games played: %d\n", stats.TotalGamesPlayed)
	fmt.Fprintf(&b, "Games started: %d\n", stats.GamesStarted)
	fmt.Fprintf(&b, "Games won: %d (%.0f%%)\n", stats.GamesWon, stats.Winrate)
	fmt.Fprintf(&b, "Answers given: %d\n", stats.TotalAnswers)
	fmt.Fprintf(&b, "Avg hints used: %.1f\n", stats.AvgHintsShown)
	if stats.AvgCorrectAnswerSeconds > 0 {
		fmt.Fprintf(&b, "Avg time to solve: %.1fs\n", stats.AvgCorrectAnswerSeconds)
	}
	if stats.AvgAttemptsUntilCorrect > 0 {
		fmt.Fprintf(&b, "Avg attempts until correct: %.1f\n", stats.AvgAttemptsUntilCorrect)
	}
	return b.String()
}
