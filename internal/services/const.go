package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrChallengeEnded = errors.New("challenge has ended")
var ErrAlreadyJoined = errors.New("already joined this challenge")
var ErrChallengeFull = errors.New("challenge is full")
var ErrFlowNotFound = errors.New("join flow not found")
var ErrFlowForbidden = errors.New("join flow belongs to another session")
var ErrNotJoined = errors.New("no live participation for this challenge")
var ErrWalletUnknown = errors.New("unknown wallet")
var ErrWalletNotConnectable = errors.New("wallet cannot be connected")
var ErrInvalidOTP = errors.New("invalid or expired code")
var ErrInvalidSigninMethod = errors.New("unsupported sign-in method")
var ErrLeaderboardRebuildLock = errors.New("leaderboard rebuild locked")

const (
	CONFIG_SERVER_MODE = "SERVER_MODE"

	SERVER_MODE_DEVELOPMENT = "development"
	SERVER_MODE_STAGING     = "staging"
	SERVER_MODE_PRODUCTION  = "production"

	CHALLENGE_LEADERBOARD_DEFAULT_LIMIT = 20
	DEFAULT_MAX_PARTICIPANTS            = 999

	OTP_LENGTH                = 6
	OTP_RATE_LIMIT_PER_MINUTE = 5

	WALLET_CONNECT_DELAY  = 2 * time.Second
	TX_CONFIRM_DELAY      = 2 * time.Second
	FLOW_RETENTION        = 10 * time.Minute
	NETWORK_FEE_ESTIMATE  = "0.02"
	MOCK_AVATAR_URL       = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg?auto=compress&cs=tinysrgb&w=100"
	MOCK_EMBEDDED_ADDRESS = "0x1234567890123456789012345678905678901234"

	CACHE_TTL_5_SECONDS  = 5 * time.Second
	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func DBKeyChallengeList() string {
	return "challenge:list"
}

func DBKeyChallenge(id string) string {
	return fmt.Sprintf("challenge:%s", strings.ToLower(id))
}

func DBKeyChallengeLeaderboard(id string, limit int) string {
	return fmt.Sprintf("challenge:%s:leaderboard:%d", strings.ToLower(id), limit)
}

func DBKeyUserParticipations(userID string) string {
	return fmt.Sprintf("user:%s:participations", userID)
}

func LockKeyLeaderboardRebuild(challengeID string) string {
	return fmt.Sprintf("lock:leaderboard-rebuild:%s", strings.ToLower(challengeID))
}

func LimitKeyOTP(destination string) string {
	return fmt.Sprintf("limit:otp:%s", strings.ToLower(destination))
}
