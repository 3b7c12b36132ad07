package services

import (
	"context"
	"sync"
	"time"

	"pulsearena/internal"
	"pulsearena/internal/models"

	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

// ServiceJoinFlow drives join sessions through the sign-in, payment
// selection, wallet connection and signing steps. Flows are held in
// process memory; they are throwaway per-session state, not durable
// records.
type ServiceJoinFlow struct {
	container *do.Injector

	mu    sync.Mutex
	flows map[string]*internal.JoinFlow

	// confirmDelay simulates transaction confirmation, shortened in tests.
	confirmDelay time.Duration
}

func NewServiceJoinFlow(container *do.Injector) (*ServiceJoinFlow, error) {
	return &ServiceJoinFlow{
		container:    container,
		flows:        map[string]*internal.JoinFlow{},
		confirmDelay: TX_CONFIRM_DELAY,
	}, nil
}

// StartFlow opens a join session for the challenge. Ended challenges,
// full challenges and duplicate joins are rejected up front.
func (service *ServiceJoinFlow) StartFlow(ctx context.Context, user *models.UserFromAuth, challengeID string) (*internal.JoinFlow, error) {
	serviceTournament, err := do.Invoke[*ServiceTournament](service.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	tournament, err := serviceTournament.GetChallenge(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	if tournament.IsEnded() {
		return nil, errorx.Wrap(ErrChallengeEnded, errorx.Invalid)
	}

	maxParticipants := tournament.EntryAndPrizes.MaxParticipants
	if maxParticipants == 0 {
		maxParticipants = DEFAULT_MAX_PARTICIPANTS
	}
	if tournament.Participants >= maxParticipants {
		return nil, errorx.Wrap(ErrChallengeFull, errorx.Invalid)
	}

	userID := ""
	if user != nil {
		userID = user.ID

		serviceParticipation, err := do.Invoke[*ServiceParticipation](service.container)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		joined, err := serviceParticipation.HasJoined(ctx, user.ID, challengeID)
		if err != nil {
			return nil, err
		}
		if joined {
			return nil, errorx.Wrap(ErrAlreadyJoined, errorx.Invalid)
		}
	}

	flow := internal.NewJoinFlow(uuid.NewString(), challengeID, userID)

	service.mu.Lock()
	service.evictStale(time.Now())
	service.flows[flow.ID] = flow
	service.mu.Unlock()

	return flow, nil
}

// evictStale drops terminal flows once their retention lapses, keeping
// the registry bounded. Callers must hold the mutex.
func (service *ServiceJoinFlow) evictStale(now time.Time) {
	for id, flow := range service.flows {
		if flow.Terminal() && now.Sub(flow.UpdatedAt) > FLOW_RETENTION {
			delete(service.flows, id)
		}
	}
}

func (service *ServiceJoinFlow) GetFlow(flowID string, user *models.UserFromAuth) (*internal.JoinFlow, error) {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.lookup(flowID, user)
}

// CompleteSignIn attaches the freshly authenticated user to a flow opened
// before sign-in.
func (service *ServiceJoinFlow) CompleteSignIn(ctx context.Context, flowID string, user *models.UserFromAuth) (*internal.JoinFlow, error) {
	serviceParticipation, err := do.Invoke[*ServiceParticipation](service.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	flow, err := service.lookupAny(flowID)
	if err != nil {
		return nil, err
	}

	joined, err := serviceParticipation.HasJoined(ctx, user.ID, flow.ChallengeID)
	if err != nil {
		return nil, err
	}
	if joined {
		return nil, errorx.Wrap(ErrAlreadyJoined, errorx.Invalid)
	}

	if err := flow.CompleteSignIn(user.ID); err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	return flow, nil
}

// SelectPayment records the chosen method and resolves whether the wallet
// connection step can be skipped.
func (service *ServiceJoinFlow) SelectPayment(ctx context.Context, flowID string, user *models.UserFromAuth, methodID string) (*internal.JoinFlow, error) {
	method := models.FindPaymentMethod(methodID)
	if method == nil {
		return nil, errorx.Wrap(ErrWalletUnknown, errorx.NotExist)
	}

	connected := false
	if method.Variant != models.VariantCardPayment {
		serviceWallet, err := do.Invoke[*ServiceWallet](service.container)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.Service)
		}

		wallet, err := serviceWallet.GetConnectedWallet(ctx, user, methodID)
		if err != nil {
			return nil, err
		}
		connected = wallet != nil && wallet.Connected
	}

	service.mu.Lock()
	defer service.mu.Unlock()

	flow, err := service.lookup(flowID, user)
	if err != nil {
		return nil, err
	}

	if err := flow.SelectPaymentMethod(methodID, method.Variant, connected); err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	return flow, nil
}

// Connect runs the wallet approval hand-off for the flow's method. A
// cancellation while the approval is pending wins: the late result is
// discarded and no connection is recorded.
func (service *ServiceJoinFlow) Connect(ctx context.Context, flowID string, user *models.UserFromAuth) (*internal.JoinFlow, error) {
	serviceWallet, err := do.Invoke[*ServiceWallet](service.container)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.Service)
	}

	service.mu.Lock()
	flow, err := service.lookup(flowID, user)
	if err != nil {
		service.mu.Unlock()
		return nil, err
	}
	if flow.State != internal.FlowConnectWallet {
		service.mu.Unlock()
		return nil, errorx.Wrap(internal.ErrFlowTransition, errorx.Invalid)
	}
	if err := flow.StartOperation(); err != nil {
		service.mu.Unlock()
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	method := flow.Method
	service.mu.Unlock()

	wallet, connectErr := serviceWallet.ConnectWallet(ctx, user, method)

	service.mu.Lock()
	defer service.mu.Unlock()
	flow.FinishOperation()

	if flow.State != internal.FlowConnectWallet {
		// Cancelled while the approval was pending; erase anything the slow
		// path managed to write.
		if wallet != nil {
			_ = serviceWallet.vault.Delete(context.WithoutCancel(ctx), user.ID, wallet.ID)
		}
		return nil, errorx.Wrap(internal.ErrFlowTerminal, errorx.Invalid)
	}

	if connectErr != nil {
		// Connection failed, the flow stays here for a retry.
		return nil, connectErr
	}

	if err := flow.CompleteConnect(); err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	return flow, nil
}

// SetTerms records the terms checkbox.
func (service *ServiceJoinFlow) SetTerms(flowID string, user *models.UserFromAuth, accepted bool) (*internal.JoinFlow, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	flow, err := service.lookup(flowID, user)
	if err != nil {
		return nil, err
	}

	if err := flow.SetTerms(accepted); err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	return flow, nil
}

// Confirm signs the simulated entry transaction and commits the join:
// the participation record is appended and the participant count bumped.
// Terms must have been accepted; a missing acceptance is an error and the
// flow stays retryable. Cancellation during confirmation discards the
// result.
func (service *ServiceJoinFlow) Confirm(ctx context.Context, flowID string, user *models.UserFromAuth) (*internal.JoinFlow, *models.ChallengeParticipation, error) {
	serviceParticipation, err := do.Invoke[*ServiceParticipation](service.container)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	serviceTournament, err := do.Invoke[*ServiceTournament](service.container)
	if err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}

	service.mu.Lock()
	flow, err := service.lookup(flowID, user)
	if err != nil {
		service.mu.Unlock()
		return nil, nil, err
	}
	if flow.State != internal.FlowSignTransaction {
		service.mu.Unlock()
		return nil, nil, errorx.Wrap(internal.ErrFlowTransition, errorx.Invalid)
	}
	if !flow.TermsAccepted {
		service.mu.Unlock()
		return nil, nil, errorx.Wrap(internal.ErrTermsNotAccepted, errorx.Validation)
	}
	if err := flow.StartOperation(); err != nil {
		service.mu.Unlock()
		return nil, nil, errorx.Wrap(err, errorx.Invalid)
	}
	service.mu.Unlock()

	select {
	case <-ctx.Done():
		service.mu.Lock()
		flow.FinishOperation()
		service.mu.Unlock()
		return nil, nil, errorx.Wrap(ctx.Err(), errorx.Other)
	case <-time.After(service.confirmDelay):
	}

	service.mu.Lock()
	defer service.mu.Unlock()
	flow.FinishOperation()

	if flow.State != internal.FlowSignTransaction {
		return nil, nil, errorx.Wrap(internal.ErrFlowTerminal, errorx.Invalid)
	}

	// A parallel flow for the same user and challenge may have committed
	// while this one waited; only the first sale counts.
	joined, err := serviceParticipation.HasJoined(context.WithoutCancel(ctx), user.ID, flow.ChallengeID)
	if err != nil {
		return nil, nil, err
	}
	if joined {
		return nil, nil, errorx.Wrap(ErrAlreadyJoined, errorx.Invalid)
	}

	participation, err := serviceParticipation.RecordJoin(context.WithoutCancel(ctx), user.ID, flow.ChallengeID)
	if err != nil {
		return nil, nil, err
	}

	if err := flow.Commit(); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Invalid)
	}

	if err := serviceTournament.store.IncrementParticipants(context.WithoutCancel(ctx), flow.ChallengeID); err != nil {
		return nil, nil, errorx.Wrap(err, errorx.Service)
	}
	_ = serviceTournament.cache.Delete(context.WithoutCancel(ctx), DBKeyChallengeList())

	return flow, participation, nil
}

// CancelFlow aborts the session from any non-terminal state. Any pending
// connect or confirm sees the state change when it wakes and discards its
// result.
func (service *ServiceJoinFlow) CancelFlow(flowID string, user *models.UserFromAuth) (*internal.JoinFlow, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	flow, err := service.lookup(flowID, user)
	if err != nil {
		return nil, err
	}

	if err := flow.Cancel(); err != nil {
		return nil, errorx.Wrap(err, errorx.Invalid)
	}
	return flow, nil
}

// lookup requires the flow to belong to the given user once a user is
// attached. Callers must hold the mutex.
func (service *ServiceJoinFlow) lookup(flowID string, user *models.UserFromAuth) (*internal.JoinFlow, error) {
	flow, err := service.lookupAny(flowID)
	if err != nil {
		return nil, err
	}

	if flow.UserID != "" {
		if user == nil || user.ID != flow.UserID {
			return nil, errorx.Wrap(ErrFlowForbidden, errorx.Authn)
		}
	}
	return flow, nil
}

func (service *ServiceJoinFlow) lookupAny(flowID string) (*internal.JoinFlow, error) {
	flow, ok := service.flows[flowID]
	if !ok {
		return nil, errorx.Wrap(ErrFlowNotFound, errorx.NotExist)
	}
	return flow, nil
}
