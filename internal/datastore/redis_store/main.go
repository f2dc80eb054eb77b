package redis_store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"jumble/internal/models"
)

func dbKeyChannelSession(channelID int64) string {
	return fmt.Sprintf("game:session:channel:%d", channelID)
}

func dbKeyWinLeaderboard() string {
	return "leaderboard:jumble_wins"
}

// SaveChannelSession stores the active-session snapshot for a channel.
// The TTL covers the guess window plus the grace period, so a crashed
// process cannot leave a channel blocked forever.
func SaveChannelSession(ctx context.Context, cmd redis.Cmdable, session *models.GameSession, ttl time.Duration) error {
	b, err := msgpack.Marshal(session)
	if err != nil {
		return err
	}

	return cmd.Set(ctx, dbKeyChannelSession(session.ChannelID), b, ttl).Err()
}

func GetChannelSession(ctx context.Context, cmd redis.Cmdable, channelID int64) (*models.GameSession, error) {
	var v *models.GameSession
	b, err := cmd.Get(ctx, dbKeyChannelSession(channelID)).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}

func ClearChannelSession(ctx context.Context, cmd redis.Cmdable, channelID int64) error {
	return cmd.Del(ctx, dbKeyChannelSession(channelID)).Err()
}

func AddWin(ctx context.Context, cmd redis.Cmdable, userID int64) error {
	return cmd.ZIncrBy(ctx, dbKeyWinLeaderboard(), 1, strconv.FormatInt(userID, 10)).Err()
}

func SetWins(ctx context.Context, cmd redis.Cmdable, userID int64, wins float64) error {
	return cmd.ZAdd(ctx, dbKeyWinLeaderboard(), redis.Z{
		Score:  wins,
		Member: strconv.FormatInt(userID, 10),
	}).Err()
}

func ClearWinLeaderboard(ctx context.Context, cmd redis.Cmdable) error {
	return cmd.Del(ctx, dbKeyWinLeaderboard()).Err()
}

func GetWinLeaderboard(ctx context.Context, cmd redis.Cmdable, num int) ([]*models.LeaderboardItem, error) {
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyWinLeaderboard(), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	var results []*models.LeaderboardItem
	for i, item := range items {
		id, _ := strconv.ParseInt(item.Member.(string), 10, 64)
		results = append(results, &models.LeaderboardItem{
			UserID: id,
			Score:  item.Score,
			Rank:   i + 1,
		})
	}

	return results, nil
}
