package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"jumble/internal/models"
)

func CreateTableGameSession(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GameSession)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_session_public_id").Unique().IfNotExists().Column("public_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_session_channel_id").IfNotExists().Column("channel_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GameSession)(nil)).Index("index_game_session_starter_date").IfNotExists().Column("starter_user_id", "date_started").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateTableSessionHint(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.SessionHint)(nil)).IfNotExists().Exec(ctx)
	return err
}

func CreateTableSessionAnswer(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.SessionAnswer)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.SessionAnswer)(nil)).Index("index_session_answer_session_id").IfNotExists().Column("game_session_id").Exec(ctx)
	return err
}

func CreateGameSession(ctx context.Context, db *bun.DB, session *models.GameSession) error {
	_, err := db.NewInsert().Model(session).Returning("*").Exec(ctx)
	return err
}

func GetGameSessionByID(ctx context.Context, db *bun.DB, sessionID int) (*models.GameSession, error) {
	var session models.GameSession
	err := db.NewSelect().Model(&session).Where("id = ?", sessionID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session.Hints, err = GetSessionHints(ctx, db, session.ID)
	if err != nil {
		return nil, err
	}
	session.Answers, err = GetSessionAnswers(ctx, db, session.ID)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func GetActiveSessionByChannel(ctx context.Context, db *bun.DB, channelID int64) (*models.GameSession, error) {
	var session models.GameSession
	err := db.NewSelect().Model(&session).
		Where("channel_id = ?", channelID).
		Where("date_ended IS NULL").
		Order("date_started DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	session.Hints, err = GetSessionHints(ctx, db, session.ID)
	if err != nil {
		return nil, err
	}
	session.Answers, err = GetSessionAnswers(ctx, db, session.ID)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func MarkSessionEnded(ctx context.Context, db *bun.DB, session *models.GameSession) error {
	_, err := db.NewUpdate().Model(session).
		Column("date_ended", "end_reason").
		WherePK().
		Where("date_ended IS NULL").
		Exec(ctx)
	return err
}

func UpdateSessionJumbled(ctx context.Context, db *bun.DB, session *models.GameSession) error {
	_, err := db.NewUpdate().Model(session).Column("jumbled_answer").WherePK().Exec(ctx)
	return err
}

func UpdateSessionMessageID(ctx context.Context, db *bun.DB, session *models.GameSession) error {
	_, err := db.NewUpdate().Model(session).Column("response_message_id").WherePK().Exec(ctx)
	return err
}

func UpsertSessionHints(ctx context.Context, db *bun.DB, hints []*models.SessionHint) error {
	if len(hints) == 0 {
		return nil
	}

	_, err := db.NewInsert().Model(&hints).
		On("CONFLICT (game_session_id, rank) DO UPDATE").
		Set("shown = EXCLUDED.shown").
		Exec(ctx)
	return err
}

func GetSessionHints(ctx context.Context, db *bun.DB, sessionID int) ([]*models.SessionHint, error) {
	var hints []*models.SessionHint
	err := db.NewSelect().Model(&hints).Where("game_session_id = ?", sessionID).Order("rank ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return hints, nil
}

func CreateSessionAnswer(ctx context.Context, db *bun.DB, answer *models.SessionAnswer) error {
	_, err := db.NewInsert().Model(answer).Returning("*").Exec(ctx)
	return err
}

func GetSessionAnswers(ctx context.Context, db *bun.DB, sessionID int) ([]*models.SessionAnswer, error) {
	var answers []*models.SessionAnswer
	err := db.NewSelect().Model(&answers).Where("game_session_id = ?", sessionID).Order("answered_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func CountSessionsStartedSince(ctx context.Context, db *bun.DB, userID int64, since time.Time) (int, error) {
	return db.NewSelect().Model((*models.GameSession)(nil)).
		Where("starter_user_id = ?", userID).
		Where("date_started >= ?", since).
		Count(ctx)
}

func GetRecentTargets(ctx context.Context, db *bun.DB, userID int64, since time.Time) ([]string, error) {
	var targets []string
	err := db.NewSelect().Model((*models.GameSession)(nil)).
		Column("correct_answer").
		Where("starter_user_id = ?", userID).
		Where("date_started >= ?", since).
		Scan(ctx, &targets)
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func ListStaleSessions(ctx context.Context, db *bun.DB, olderThan time.Time) ([]*models.GameSession, error) {
	var sessions []*models.GameSession
	err := db.NewSelect().Model(&sessions).
		Where("date_ended IS NULL").
		Where("date_started < ?", olderThan).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetWinTotals aggregates correct answers per user over all sessions,
// the source of truth the win leaderboard is rebuilt from.
func GetWinTotals(ctx context.Context, db *bun.DB) (map[int64]int, error) {
	var rows []struct {
		UserID int64 `bun:"user_id"`
		Wins   int   `bun:"wins"`
	}
	err := db.NewSelect().Model((*models.SessionAnswer)(nil)).
		ColumnExpr("user_id").
		ColumnExpr("count(*) wins").
		Where("correct").
		Group("user_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]int, len(rows))
	for _, row := range rows {
		totals[row.UserID] = row.Wins
	}
	return totals, nil
}

func GetUserStats(ctx context.Context, db *bun.DB, userID int64) (*models.JumbleUserStats, error) {
	var stats models.JumbleUserStats

	err := db.NewSelect().
		ColumnExpr("count(DISTINCT s.id) total_games_played").
		ColumnExpr("count(DISTINCT s.id) FILTER (WHERE s.starter_user_id = ?) games_started", userID).
		ColumnExpr("count(DISTINCT a.game_session_id) games_answered").
		ColumnExpr("count(DISTINCT a.game_session_id) FILTER (WHERE a.correct) games_won").
		ColumnExpr("coalesce(avg(h.shown_count), 0) avg_hints_shown").
		TableExpr("game_session s").
		Join("LEFT JOIN session_answer a ON a.game_session_id = s.id AND a.user_id = ?", userID).
		Join("LEFT JOIN LATERAL (SELECT count(*) FILTER (WHERE shown) shown_count FROM session_hint WHERE game_session_id = s.id) h ON TRUE").
		Where("s.starter_user_id = ? OR a.user_id IS NOT NULL", userID).
		Scan(ctx, &stats)
	if err != nil {
		return nil, err
	}

	if stats.TotalGamesPlayed == 0 {
		return nil, nil
	}

	var answerStats struct {
		TotalAnswers            int     `bun:"total_answers"`
		AvgAnswerSeconds        float64 `bun:"avg_answer_seconds"`
		AvgCorrectAnswerSeconds float64 `bun:"avg_correct_answer_seconds"`
	}
	err = db.NewSelect().
		ColumnExpr("count(*) total_answers").
		ColumnExpr("coalesce(avg(extract(epoch from a.answered_at - s.date_started)), 0) avg_answer_seconds").
		ColumnExpr("coalesce(avg(extract(epoch from a.answered_at - s.date_started)) FILTER (WHERE a.correct), 0) avg_correct_answer_seconds").
		TableExpr("session_answer a").
		Join("JOIN game_session s ON s.id = a.game_session_id").
		Where("a.user_id = ?", userID).
		Scan(ctx, &answerStats)
	if err != nil {
		return nil, err
	}

	stats.TotalAnswers = answerStats.TotalAnswers
	stats.AvgAnswerSeconds = answerStats.AvgAnswerSeconds
	stats.AvgCorrectAnswerSeconds = answerStats.AvgCorrectAnswerSeconds
	if stats.GamesWon > 0 {
		stats.AvgAttemptsUntilCorrect = float64(stats.TotalAnswers) / float64(stats.GamesWon)
	}
	if stats.GamesAnswered > 0 {
		stats.Winrate = float64(stats.GamesWon) / float64(stats.GamesAnswered) * 100
	}

	return &stats, nil
}
