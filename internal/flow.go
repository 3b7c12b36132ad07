package internal

import (
	"errors"
	"time"

	"pulsearena/internal/models"
)

// FlowState is a step of the join-challenge sequence. The happy path is
// IDLE -> SIGN_IN -> SELECT_PAYMENT -> CONNECT_WALLET -> SIGN_TRANSACTION
// -> COMMITTED, with CONNECT_WALLET skipped for card payments and wallets
// that are already connected. CANCELLED is reachable from every
// non-terminal state.
type FlowState string

const (
	FlowIdle            FlowState = "IDLE"
	FlowSignIn          FlowState = "SIGN_IN"
	FlowSelectPayment   FlowState = "SELECT_PAYMENT"
	FlowConnectWallet   FlowState = "CONNECT_WALLET"
	FlowSignTransaction FlowState = "SIGN_TRANSACTION"
	FlowCommitted       FlowState = "COMMITTED"
	FlowCancelled       FlowState = "CANCELLED"
)

var (
	ErrFlowTransition   = errors.New("invalid flow transition")
	ErrFlowTerminal     = errors.New("flow already finished")
	ErrTermsNotAccepted = errors.New("terms and conditions not accepted")
	ErrNoPaymentMethod  = errors.New("no payment method selected")
	ErrFlowBusy         = errors.New("another operation is in progress")
)

type JoinFlow struct {
	ID          string    `json:"id"`
	ChallengeID string    `json:"challenge_id"`
	UserID      string    `json:"user_id"`
	State       FlowState `json:"state"`

	Method        string                `json:"method"`
	Variant       models.PaymentVariant `json:"variant"`
	TermsAccepted bool                  `json:"terms_accepted"`

	// pending marks a simulated async operation (wallet connect or
	// transaction signing) in flight; a second one is rejected until the
	// first resolves or the flow is cancelled.
	pending bool

	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewJoinFlow opens a flow for the challenge. An empty userID means the
// caller is unauthenticated and must pass through SIGN_IN first.
func NewJoinFlow(id, challengeID, userID string) *JoinFlow {
	now := time.Now()
	flow := &JoinFlow{
		ID:          id,
		ChallengeID: challengeID,
		UserID:      userID,
		State:       FlowSignIn,
		StartedAt:   now,
		UpdatedAt:   now,
	}
	if userID != "" {
		flow.State = FlowSelectPayment
	}
	return flow
}

func (f *JoinFlow) Terminal() bool {
	return f.State == FlowCommitted || f.State == FlowCancelled
}

// CompleteSignIn attaches the now-authenticated user and advances to
// payment selection.
func (f *JoinFlow) CompleteSignIn(userID string) error {
	if f.State != FlowSignIn {
		return ErrFlowTransition
	}
	f.UserID = userID
	f.State = FlowSelectPayment
	f.touch()
	return nil
}

// SelectPaymentMethod resolves the next step from the chosen method: card
// and already-connected wallets go straight to transaction signing, an
// unconnected wallet has to be connected first.
func (f *JoinFlow) SelectPaymentMethod(methodID string, variant models.PaymentVariant, connected bool) error {
	if f.State != FlowSelectPayment {
		return ErrFlowTransition
	}

	f.Method = methodID
	f.Variant = variant
	if variant == models.VariantCardPayment || connected {
		f.State = FlowSignTransaction
	} else {
		f.State = FlowConnectWallet
	}
	f.touch()
	return nil
}

func (f *JoinFlow) CompleteConnect() error {
	if f.State != FlowConnectWallet {
		return ErrFlowTransition
	}
	f.State = FlowSignTransaction
	f.touch()
	return nil
}

// SetTerms records the terms checkbox; acceptance is validated at commit
// time, not here.
func (f *JoinFlow) SetTerms(accepted bool) error {
	if f.Terminal() {
		return ErrFlowTerminal
	}
	f.TermsAccepted = accepted
	f.touch()
	return nil
}

// Commit finishes the flow. It is an error, not a transition, when terms
// are missing or no payment method was resolved.
func (f *JoinFlow) Commit() error {
	if f.State != FlowSignTransaction {
		return ErrFlowTransition
	}
	if f.Method == "" {
		return ErrNoPaymentMethod
	}
	if !f.TermsAccepted {
		return ErrTermsNotAccepted
	}
	f.State = FlowCommitted
	f.touch()
	return nil
}

func (f *JoinFlow) Cancel() error {
	if f.Terminal() {
		return ErrFlowTerminal
	}
	f.State = FlowCancelled
	f.pending = false
	f.touch()
	return nil
}

// StartOperation claims the single async slot of the flow.
func (f *JoinFlow) StartOperation() error {
	if f.Terminal() {
		return ErrFlowTerminal
	}
	if f.pending {
		return ErrFlowBusy
	}
	f.pending = true
	return nil
}

func (f *JoinFlow) FinishOperation() {
	f.pending = false
}

func (f *JoinFlow) touch() {
	f.UpdatedAt = time.Now()
}
