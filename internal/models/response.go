package models

type ResponseStatus string

const (
	StatusOK           ResponseStatus = "ok"
	StatusCooldown     ResponseStatus = "cooldown"
	StatusRateLimited  ResponseStatus = "rate_limited"
	StatusNoHistory    ResponseStatus = "no_history"
	StatusNoCandidate  ResponseStatus = "no_candidate"
	StatusNoPermission ResponseStatus = "no_permission"
	StatusNotFound     ResponseStatus = "not_found"
	StatusError        ResponseStatus = "error"
)

type GameActions struct {
	AddHint   bool `json:"add_hint"`
	Reshuffle bool `json:"reshuffle"`
	GiveUp    bool `json:"give_up"`
}

// GameResponse is the render-ready payload handed to the transport
// layer. The engine never talks to chat directly.
type GameResponse struct {
	Status    ResponseStatus `json:"status"`
	SessionID int            `json:"session_id,omitempty"`
	PublicID  string         `json:"public_id,omitempty"`

	Title         string `json:"title,omitempty"`
	Jumbled       string `json:"jumbled,omitempty"`
	HintTitle     string `json:"hint_title,omitempty"`
	HintText      string `json:"hint_text,omitempty"`
	Footer        string `json:"footer,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`

	Actions *GameActions `json:"actions,omitempty"`

	Image     []byte `json:"image,omitempty"`
	ImageName string `json:"image_name,omitempty"`

	// Announcement is delivered fire-and-forget after the state
	// transition committed, never inline.
	Announcement string `json:"announcement,omitempty"`
}

type AnswerOutcome string

const (
	AnswerOutcomeCorrect   AnswerOutcome = "correct"
	AnswerOutcomeVeryClose AnswerOutcome = "very_close"
	AnswerOutcomeWrong     AnswerOutcome = "wrong"
	AnswerOutcomeIgnored   AnswerOutcome = "ignored"
)

type AnswerResult struct {
	Outcome  AnswerOutcome `json:"outcome"`
	Response *GameResponse `json:"response,omitempty"`
}
