package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GameType string

const (
	GameTypeJumble     GameType = "jumble"
	GameTypePixelation GameType = "pixelation"
)

type EndReason string

const (
	EndReasonSolved      EndReason = "solved"
	EndReasonSurrendered EndReason = "surrendered"
	EndReasonTimedOut    EndReason = "timed_out"
	EndReasonAbandoned   EndReason = "abandoned"
)

type GameSession struct {
	bun.BaseModel `bun:"table:game_session"`

	ID            int      `bun:"id,pk,autoincrement" json:"id"`
	PublicID      string   `bun:"public_id" json:"public_id"`
	Type          GameType `bun:"type" json:"type"`
	ChannelID     int64    `bun:"channel_id" json:"channel_id"`
	StarterUserID int64    `bun:"starter_user_id" json:"starter_user_id"`

	CorrectAnswer string `bun:"correct_answer" json:"-"`
	JumbledAnswer string `bun:"jumbled_answer" json:"jumbled_answer"`
	ArtistName    string `bun:"artist_name" json:"-"`
	AlbumName     string `bun:"album_name" json:"-"`

	DateStarted  time.Time  `bun:"date_started" json:"date_started"`
	DateEnded    *time.Time `bun:"date_ended" json:"date_ended"`
	EndReason    EndReason  `bun:"end_reason" json:"end_reason"`
	GuessSeconds int        `bun:"guess_seconds" json:"guess_seconds"`

	// Reference to the rendered chat message, used to lock its buttons
	// once the session ends.
	ResponseMessageID int64 `bun:"response_message_id" json:"response_message_id"`

	Hints   []*SessionHint   `bun:"-" json:"hints"`
	Answers []*SessionAnswer `bun:"-" json:"answers"`
}

func (session *GameSession) Ended() bool {
	return session.DateEnded != nil
}

func (session *GameSession) HintsShown() int {
	shown := 0
	for _, hint := range session.Hints {
		if hint.Shown {
			shown++
		}
	}
	return shown
}

func (session *GameSession) GuessWindow() time.Duration {
	return time.Duration(session.GuessSeconds) * time.Second
}

// Clone deep-copies the session so readers outside the engine lock
// never share hint or answer records with concurrent mutations.
func (session *GameSession) Clone() *GameSession {
	clone := *session
	if session.DateEnded != nil {
		ended := *session.DateEnded
		clone.DateEnded = &ended
	}
	clone.Hints = make([]*SessionHint, len(session.Hints))
	for i, hint := range session.Hints {
		h := *hint
		clone.Hints[i] = &h
	}
	clone.Answers = make([]*SessionAnswer, len(session.Answers))
	for i, answer := range session.Answers {
		a := *answer
		if answer.Distance != nil {
			d := *answer.Distance
			a.Distance = &d
		}
		clone.Answers[i] = &a
	}
	return &clone
}

type SessionHint struct {
	bun.BaseModel `bun:"table:session_hint"`

	GameSessionID int    `bun:"game_session_id,pk" json:"game_session_id"`
	Rank          int    `bun:"rank,pk" json:"rank"`
	Content       string `bun:"content" json:"content"`
	Shown         bool   `bun:"shown" json:"shown"`
}

type SessionAnswer struct {
	bun.BaseModel `bun:"table:session_answer"`

	ID            int       `bun:"id,pk,autoincrement" json:"id"`
	GameSessionID int       `bun:"game_session_id" json:"game_session_id"`
	UserID        int64     `bun:"user_id" json:"user_id"`
	Content       string    `bun:"content" json:"content"`
	Correct       bool      `bun:"correct" json:"correct"`
	Distance      *int      `bun:"distance" json:"distance"`
	AnsweredAt    time.Time `bun:"answered_at" json:"answered_at"`
}
