package models

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/uptrace/bun"
)

type ChainType string

const (
	ChainAbstract ChainType = "ABSTRACT"
	ChainSolana   ChainType = "SOLANA"
	ChainEthereum ChainType = "ETHEREUM"
)

type TournamentState string

const (
	TournamentDraft     TournamentState = "DRAFT"
	TournamentUpcoming  TournamentState = "UPCOMING"
	TournamentLive      TournamentState = "LIVE"
	TournamentEnded     TournamentState = "ENDED"
	TournamentSettled   TournamentState = "SETTLED"
	TournamentCancelled TournamentState = "CANCELLED"
	TournamentDispute   TournamentState = "DISPUTE"
)

// TournamentStatus is the collapsed display status.
type TournamentStatus string

const (
	StatusLive     TournamentStatus = "LIVE"
	StatusUpcoming TournamentStatus = "UPCOMING"
	StatusEnded    TournamentStatus = "ENDED"
)

var ErrInvalidEntryFee = errors.New("invalid entry fee amount")

type Token struct {
	Chain     ChainType `json:"chain"`
	Symbol    string    `json:"symbol"`
	TokenAddr string    `json:"token_addr"`
	Decimals  int       `json:"decimals"`
}

type TimeWindow struct {
	StartUTC time.Time `json:"start_utc"`
	EndUTC   time.Time `json:"end_utc"`
}

type LeaderboardConfig struct {
	ScoreBy        string     `json:"score_by"`
	HigherIsBetter bool       `json:"higher_is_better"`
	TimeWindow     TimeWindow `json:"time_window"`
}

type EntryAndPrizes struct {
	EntryToken Token `json:"entry_token"`
	// EntryFee is a decimal string scaled by EntryToken.Decimals, large
	// amounts overflow int64 so keep it textual and do math in big.Int.
	EntryFee        string `json:"entry_fee"`
	PrizeToken      Token  `json:"prize_token"`
	MaxParticipants int    `json:"max_participants"`
}

type Fees struct {
	DeveloperFeeBps    int    `json:"developer_fee_bps"`
	OrganizerFeeBps    int    `json:"organizer_fee_bps"`
	DevFeeWallet       string `json:"dev_fee_wallet"`
	OrganizerFeeWallet string `json:"organizer_fee_wallet"`
}

type Tournament struct {
	bun.BaseModel      `bun:"table:tournament"`
	ID                 string            `bun:"id,pk" json:"id"`
	Title              string            `bun:"title" json:"title"`
	Slug               string            `bun:"slug" json:"slug"`
	Visibility         string            `bun:"visibility" json:"visibility"`
	Game               string            `bun:"game" json:"game"`
	Mode               string            `bun:"mode" json:"mode"`
	LeaderboardConfig  LeaderboardConfig `bun:"leaderboard_config,type:jsonb" json:"leaderboard_config"`
	EntryAndPrizes     EntryAndPrizes    `bun:"entry_and_prizes,type:jsonb" json:"entry_and_prizes"`
	Fees               Fees              `bun:"fees,type:jsonb" json:"fees"`
	State              TournamentState   `bun:"state" json:"state"`
	CreatedBy          string            `bun:"created_by" json:"created_by"`
	AllowUserGenerated bool              `bun:"allow_user_generated" json:"allow_user_generated"`
	DisputeWindowHours int               `bun:"dispute_window_hours" json:"dispute_window_hours"`
	Description        string            `bun:"description" json:"description"`
	Participants       int               `bun:"participants" json:"participants"`
	CreatedAt          time.Time         `bun:"created_at" json:"created_at"`
	UpdatedAt          time.Time         `bun:"updated_at" json:"updated_at"`
}

// TournamentCardData is the flattened display shape for list views.
type TournamentCardData struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Status          TournamentStatus `json:"status"`
	PrizePool       string           `json:"prize_pool"`
	Participants    int              `json:"participants"`
	MaxParticipants int              `json:"max_participants"`
	EntryFee        string           `json:"entry_fee"`
	TokenSymbol     string           `json:"token_symbol"`
	TimeRemaining   string           `json:"time_remaining"`
}

func (t *Tournament) Status() TournamentStatus {
	switch t.State {
	case TournamentLive:
		return StatusLive
	case TournamentEnded, TournamentSettled, TournamentCancelled:
		return StatusEnded
	default:
		return StatusUpcoming
	}
}

func (t *Tournament) IsEnded() bool {
	return t.Status() == StatusEnded
}

/// PrizePoolUnits derives the displayable prize pool in token base units:
// entry_fee * participants * (10000 - developer_bps - organizer_bps) / 10000,
// floored by integer division.
func (t *Tournament) PrizePoolUnits() (*big.Int, error) {
	fee, ok := new(big.Int).SetString(t.EntryAndPrizes.EntryFee, 10)
	if !ok || fee.Sign() < 0 {
		return nil, ErrInvalidEntryFee
	}

	remainder := int64(10000 - t.Fees.DeveloperFeeBps - t.Fees.OrganizerFeeBps)
	pool := new(big.Int).Mul(fee, big.NewInt(int64(t.Participants)))
	pool.Mul(pool, big.NewInt(remainder))
	pool.Quo(pool, big.NewInt(10000))
	return pool, nil
}

func (t *Tournament) PrizePoolDisplay() (string, error) {
	pool, err := t.PrizePoolUnits()
	if err != nil {
		return "", err
	}

	whole := FormatTokenAmount(pool, t.EntryAndPrizes.PrizeToken.Decimals, 0)
	return fmt.Sprintf("%s %s", whole, t.EntryAndPrizes.PrizeToken.Symbol), nil
}

func (t *Tournament) EntryFeeDisplay() (string, error) {
	fee, ok := new(big.Int).SetString(t.EntryAndPrizes.EntryFee, 10)
	if !ok {
		return "", ErrInvalidEntryFee
	}

	amount := FormatTokenAmount(fee, t.EntryAndPrizes.EntryToken.Decimals, 2)
	return fmt.Sprintf("%s %s", amount, t.EntryAndPrizes.EntryToken.Symbol), nil
}

func (t *Tournament) CardData() (*TournamentCardData, error) {
	prizePool, err := t.PrizePoolDisplay()
	if err != nil {
		return nil, err
	}

	entryFee, err := t.EntryFeeDisplay()
	if err != nil {
		return nil, err
	}

	maxParticipants := t.EntryAndPrizes.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = 999
	}

	return &TournamentCardData{
		ID:              t.ID,
		Title:           t.Title,
		Status:          t.Status(),
		PrizePool:       prizePool,
		Participants:    t.Participants,
		MaxParticipants: maxParticipants,
		EntryFee:        entryFee,
		TokenSymbol:     t.EntryAndPrizes.EntryToken.Symbol,
		TimeRemaining:   t.timeRemaining(time.Now()),
	}, nil
}

func (t *Tournament) timeRemaining(now time.Time) string {
	switch t.Status() {
	case StatusLive:
		return "In Progress"
	case StatusEnded:
		return "Completed"
	default:
		until := t.LeaderboardConfig.TimeWindow.StartUTC.Sub(now)
		if until <= 0 {
			return "Starting soon"
		}
		if until < time.Hour {
			return fmt.Sprintf("Starts in %d minutes", int(until.Minutes()))
		}
		return fmt.Sprintf("Starts in %d hours", int(until.Hours()))
	}
}

// FormatTokenAmount renders base units as a decimal amount with fracDigits
// fractional digits, truncating (never rounding up) beyond that precision.
func FormatTokenAmount(units *big.Int, decimals int, fracDigits int) string {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(units, scale, new(big.Int))
	if fracDigits <= 0 || decimals <= 0 {
		return whole.String()
	}

	digits := fmt.Sprintf("%0*s", decimals, frac.String())
	if len(digits) > fracDigits {
		digits = digits[:fracDigits]
	}
	return fmt.Sprintf("%s.%s", whole.String(), digits)
}
