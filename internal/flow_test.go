package internal

import (
	"testing"

	"pulsearena/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJoinFlow(t *testing.T) {
	t.Run("anonymous starts at sign-in", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "")
		assert.Equal(t, FlowSignIn, flow.State)
	})

	t.Run("authenticated skips sign-in", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		assert.Equal(t, FlowSelectPayment, flow.State)
		assert.Equal(t, "u1", flow.UserID)
	})
}

func TestJoinFlowHappyPath(t *testing.T) {
	flow := NewJoinFlow("f1", "c1", "")

	require.NoError(t, flow.CompleteSignIn("u1"))
	assert.Equal(t, FlowSelectPayment, flow.State)

	require.NoError(t, flow.SelectPaymentMethod("metamask", models.VariantBrowserExtension, false))
	assert.Equal(t, FlowConnectWallet, flow.State)

	require.NoError(t, flow.CompleteConnect())
	assert.Equal(t, FlowSignTransaction, flow.State)

	require.NoError(t, flow.SetTerms(true))
	require.NoError(t, flow.Commit())
	assert.Equal(t, FlowCommitted, flow.State)
	assert.True(t, flow.Terminal())
}

func TestJoinFlowSkipsConnect(t *testing.T) {
	t.Run("card payment", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		require.NoError(t, flow.SelectPaymentMethod("card", models.VariantCardPayment, false))
		assert.Equal(t, FlowSignTransaction, flow.State)
	})

	t.Run("already connected wallet", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		require.NoError(t, flow.SelectPaymentMethod("pulse", models.VariantEmbedded, true))
		assert.Equal(t, FlowSignTransaction, flow.State)
	})
}

func TestJoinFlowCommitGuards(t *testing.T) {
	t.Run("terms not accepted is an error, not a transition", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		require.NoError(t, flow.SelectPaymentMethod("card", models.VariantCardPayment, false))

		err := flow.Commit()
		assert.ErrorIs(t, err, ErrTermsNotAccepted)
		assert.Equal(t, FlowSignTransaction, flow.State)

		// Accepting terms afterwards makes the same commit succeed.
		require.NoError(t, flow.SetTerms(true))
		require.NoError(t, flow.Commit())
		assert.Equal(t, FlowCommitted, flow.State)
	})

	t.Run("commit outside signing state", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		assert.ErrorIs(t, flow.Commit(), ErrFlowTransition)
	})
}

func TestJoinFlowCancel(t *testing.T) {
	t.Run("cancellable from every non-terminal state", func(t *testing.T) {
		states := []func() *JoinFlow{
			func() *JoinFlow { return NewJoinFlow("f", "c", "") },
			func() *JoinFlow { return NewJoinFlow("f", "c", "u1") },
			func() *JoinFlow {
				flow := NewJoinFlow("f", "c", "u1")
				_ = flow.SelectPaymentMethod("metamask", models.VariantBrowserExtension, false)
				return flow
			},
			func() *JoinFlow {
				flow := NewJoinFlow("f", "c", "u1")
				_ = flow.SelectPaymentMethod("card", models.VariantCardPayment, false)
				return flow
			},
		}

		for _, build := range states {
			flow := build()
			require.NoError(t, flow.Cancel())
			assert.Equal(t, FlowCancelled, flow.State)
		}
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		flow := NewJoinFlow("f1", "c1", "u1")
		require.NoError(t, flow.Cancel())

		assert.ErrorIs(t, flow.Cancel(), ErrFlowTerminal)
		assert.ErrorIs(t, flow.SetTerms(true), ErrFlowTerminal)
		assert.ErrorIs(t, flow.SelectPaymentMethod("card", models.VariantCardPayment, false), ErrFlowTransition)
	})
}

func TestJoinFlowOperationSlot(t *testing.T) {
	flow := NewJoinFlow("f1", "c1", "u1")
	require.NoError(t, flow.SelectPaymentMethod("metamask", models.VariantBrowserExtension, false))

	require.NoError(t, flow.StartOperation())
	assert.ErrorIs(t, flow.StartOperation(), ErrFlowBusy)

	flow.FinishOperation()
	require.NoError(t, flow.StartOperation())

	// Cancelling releases the slot.
	require.NoError(t, flow.Cancel())
	assert.ErrorIs(t, flow.StartOperation(), ErrFlowTerminal)
}
