package models

type JumbleUserStats struct {
	TotalGamesPlayed int     `bun:"total_games_played" json:"total_games_played"`
	GamesStarted     int     `bun:"games_started" json:"games_started"`
	GamesAnswered    int     `bun:"games_answered" json:"games_answered"`
	GamesWon         int     `bun:"games_won" json:"games_won"`
	AvgHintsShown    float64 `bun:"avg_hints_shown" json:"avg_hints_shown"`

	TotalAnswers            int     `bun:"total_answers" json:"total_answers"`
	AvgAnswerSeconds        float64 `bun:"avg_answer_seconds" json:"avg_answer_seconds"`
	AvgCorrectAnswerSeconds float64 `bun:"avg_correct_answer_seconds" json:"avg_correct_answer_seconds"`
	AvgAttemptsUntilCorrect float64 `bun:"avg_attempts_until_correct" json:"avg_attempts_until_correct"`
	Winrate                 float64 `bun:"winrate" json:"winrate"`
}

type LeaderboardItem struct {
	UserID int64   `json:"user_id"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}
