package redis_store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pulsearena/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

const OTP_TTL = 5 * time.Minute

func dbKeyLeaderboard(challengeID string) string {
	return fmt.Sprintf("leaderboard:%s", strings.ToLower(challengeID))
}

func dbKeyLeaderboardName(challengeID string) string {
	return fmt.Sprintf("leaderboard:%s:names", strings.ToLower(challengeID))
}

func dbKeyWalletVault(userID string) string {
	return fmt.Sprintf("wallet_vault:%s", userID)
}

func dbKeyOTP(destination string) string {
	return fmt.Sprintf("otp:%s", strings.ToLower(destination))
}

func SetLeaderboardScore(ctx context.Context, cmd redis.Cmdable, challengeID string, v *models.LeaderboardItem) (*models.LeaderboardItem, error) {
	err := cmd.ZAdd(ctx, dbKeyLeaderboard(challengeID), redis.Z{
		Score:  v.Score,
		Member: v.UserID,
	}).Err()
	if err != nil {
		return nil, err
	}

	if v.Username != "" {
		err = cmd.HSet(ctx, dbKeyLeaderboardName(challengeID), v.UserID, v.Username).Err()
		if err != nil {
			return nil, err
		}
	}

	return v, nil
}

func ClearLeaderboard(ctx context.Context, cmd redis.Cmdable, challengeID string) error {
	err := cmd.Del(ctx, dbKeyLeaderboard(challengeID), dbKeyLeaderboardName(challengeID)).Err()
	if err != nil {
		return err
	}

	return nil
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, challengeID string, num int) ([]*models.LeaderboardItem, error) {
	// num always greater than 0
	items, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(challengeID), 0, int64(num-1)).Result()
	if err != nil {
		return nil, err
	}

	var results []*models.LeaderboardItem
	for i, item := range items {
		userID, _ := item.Member.(string)
		username := cmd.HGet(ctx, dbKeyLeaderboardName(challengeID), userID).Val()
		results = append(results, &models.LeaderboardItem{
			UserID:   userID,
			Username: username,
			Score:    item.Score,
			Rank:     i + 1,
		})
	}

	return results, nil
}

func GetLeaderboardRank(ctx context.Context, cmd redis.Cmdable, challengeID string, userID string) (*models.LeaderboardItem, error) {
	rank, err := cmd.ZRevRankWithScore(ctx, dbKeyLeaderboard(challengeID), userID).Result()
	if err != nil {
		return nil, err
	}

	username := cmd.HGet(ctx, dbKeyLeaderboardName(challengeID), userID).Val()
	return &models.LeaderboardItem{
		UserID:   userID,
		Username: username,
		Score:    rank.Score,
		Rank:     int(rank.Rank) + 1,
	}, nil
}

func GetLeaderboardParticipantsCount(ctx context.Context, cmd redis.Cmdable, challengeID string) (int64, error) {
	count, err := cmd.ZCard(ctx, dbKeyLeaderboard(challengeID)).Result()
	if err != nil {
		return 0, err
	}

	return count, nil
}

func SaveConnectedWallet(ctx context.Context, cmd redis.Cmdable, userID string, wallet *models.ConnectedWallet) error {
	if wallet.ID == "" {
		return errors.New("invalid wallet id")
	}

	b, err := msgpack.Marshal(wallet)
	if err != nil {
		return err
	}

	err = cmd.HSet(ctx, dbKeyWalletVault(userID), wallet.ID, b).Err()
	if err != nil {
		return err
	}

	return nil
}

func GetConnectedWallet(ctx context.Context, cmd redis.Cmdable, userID string, walletID string) (*models.ConnectedWallet, error) {
	var v *models.ConnectedWallet
	b, err := cmd.HGet(ctx, dbKeyWalletVault(userID), walletID).Bytes()
	if err != nil {
		return nil, err
	}

	err = msgpack.Unmarshal(b, &v)
	return v, err
}

func GetConnectedWallets(ctx context.Context, cmd redis.Cmdable, userID string) ([]*models.ConnectedWallet, error) {
	entries, err := cmd.HGetAll(ctx, dbKeyWalletVault(userID)).Result()
	if err != nil {
		return nil, err
	}

	var wallets []*models.ConnectedWallet
	for _, raw := range entries {
		var v *models.ConnectedWallet
		if err := msgpack.Unmarshal([]byte(raw), &v); err != nil {
			return nil, err
		}
		wallets = append(wallets, v)
	}

	return wallets, nil
}

func DeleteConnectedWallet(ctx context.Context, cmd redis.Cmdable, userID string, walletID string) error {
	return cmd.HDel(ctx, dbKeyWalletVault(userID), walletID).Err()
}

func SetOTP(ctx context.Context, cmd redis.Cmdable, destination, code string) error {
	err := cmd.Set(ctx, dbKeyOTP(destination), code, OTP_TTL).Err()
	if err != nil {
		return err
	}

	return err
}

func GetOTP(ctx context.Context, cmd redis.Cmdable, destination string) (string, error) {
	code, err := cmd.Get(ctx, dbKeyOTP(destination)).Result()
	if err != nil {
		return code, err
	}

	return code, err
}

func DeleteOTP(ctx context.Context, cmd redis.Cmdable, destination string) error {
	return cmd.Del(ctx, dbKeyOTP(destination)).Err()
}

// RedisWalletVault adapts the package funcs to the WalletVault seam.
type RedisWalletVault struct {
	Redis redis.UniversalClient
}

func (v *RedisWalletVault) Put(ctx context.Context, userID string, wallet *models.ConnectedWallet) error {
	return SaveConnectedWallet(ctx, v.Redis, userID, wallet)
}

func (v *RedisWalletVault) Get(ctx context.Context, userID, walletID string) (*models.ConnectedWallet, error) {
	wallet, err := GetConnectedWallet(ctx, v.Redis, userID, walletID)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return wallet, err
}

func (v *RedisWalletVault) ListByUser(ctx context.Context, userID string) ([]*models.ConnectedWallet, error) {
	return GetConnectedWallets(ctx, v.Redis, userID)
}

func (v *RedisWalletVault) Delete(ctx context.Context, userID, walletID string) error {
	return DeleteConnectedWallet(ctx, v.Redis, userID, walletID)
}

// RedisNonceStore adapts the OTP funcs to the NonceStore seam.
type RedisNonceStore struct {
	Redis redis.UniversalClient
}

func (s *RedisNonceStore) SetOTP(ctx context.Context, destination, code string) error {
	return SetOTP(ctx, s.Redis, destination, code)
}

func (s *RedisNonceStore) GetOTP(ctx context.Context, destination string) (string, error) {
	return GetOTP(ctx, s.Redis, destination)
}

func (s *RedisNonceStore) DeleteOTP(ctx context.Context, destination string) error {
	return DeleteOTP(ctx, s.Redis, destination)
}
