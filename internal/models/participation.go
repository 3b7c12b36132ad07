package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ParticipationStatus string

const (
	ParticipationJoined    ParticipationStatus = "JOINED"
	ParticipationCompleted ParticipationStatus = "COMPLETED"
	ParticipationCancelled ParticipationStatus = "CANCELLED"
)

type ChallengeParticipation struct {
	bun.BaseModel `bun:"table:challenge_participation"`
	ID            string              `bun:"id,pk" json:"id"`
	UserID        string              `bun:"user_id" json:"user_id"`
	ChallengeID   string              `bun:"challenge_id" json:"challenge_id"`
	Status        ParticipationStatus `bun:"status" json:"status"`
	JoinedAt      time.Time           `bun:"joined_at" json:"joined_at"`
	CompletedAt   *time.Time          `bun:"completed_at" json:"completed_at"`
	EntryTxHash   *string             `bun:"entry_tx_hash" json:"entry_tx_hash"`
	PayoutTxHash  *string             `bun:"payout_tx_hash" json:"payout_tx_hash"`
	FinalRank     *int                `bun:"final_rank" json:"final_rank"`
	PrizeAmount   *string             `bun:"prize_amount" json:"prize_amount"`
}
