package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

func newTestSession(t *testing.T, inv *fakeInventory, proc *fakeProcessor, opts ...SessionOption) *Session {
	t.Helper()
	s := NewSession("s-1", NewFetcher(inv), proc, opts...)
	t.Cleanup(s.Close)
	return s
}

func TestSession_FreshSessionIsEmptyAndIdle(t *testing.T) {
	s := newTestSession(t, newFakeInventory(), newFakeProcessor())
	view := s.View()
	require.Empty(t, view.Items)
	require.Equal(t, domain.StateIdle, view.Checkout.State)
	require.False(t, view.Reconciliation.Blocked)
}

func TestSession_CheckoutSettlesAndClearsCart(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	proc := newFakeProcessor()
	s := newTestSession(t, inv, proc)

	s.AddToCart(mugInfo.Ref, 2)
	s.Refresh(context.Background())

	status, err := s.SubmitCheckout()
	require.NoError(t, err)
	require.Equal(t, domain.StateProcessing, status.State)

	req := <-proc.requests
	require.Equal(t, 1, req.Attempt)
	require.InDelta(t, 16.0, req.Total, 1e-9)
	proc.results <- nil

	require.Eventually(t, func() bool { return s.Checkout().State == domain.StateSettled }, waitFor, tick)
	require.Empty(t, s.Items())
	require.Equal(t, "chk-test", s.View().LastReceipt)
	require.Equal(t, domain.MessageSettled, s.Checkout().Message)
}

func TestSession_BlockedUntilEdited(t *testing.T) {
	inv := newFakeInventory(mugInfo, lampInfo)
	s := newTestSession(t, inv, newFakeProcessor())

	s.AddToCart(lampInfo.Ref, 3)
	s.Refresh(context.Background())

	_, err := s.SubmitCheckout()
	require.ErrorIs(t, err, domain.ErrCheckoutBlocked)
	require.Equal(t, []string{"Lamp"}, s.Checkout().InsufficientNames)
	require.Len(t, s.Items(), 1)

	s.UpdateQty("lamp", 1)
	require.Equal(t, domain.StateIdle, s.Checkout().State)
	require.False(t, s.Reconciliation().Blocked)
}

func TestSession_EmptyCartRejected(t *testing.T) {
	s := newTestSession(t, newFakeInventory(), newFakeProcessor())
	_, err := s.SubmitCheckout()
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Equal(t, domain.StateIdle, s.Checkout().State)
}

func TestSession_FetchFailureFailsClosed(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(mugInfo.Ref, 1)
	s.Refresh(context.Background())
	require.False(t, s.Reconciliation().Blocked)

	inv.setFail(true)
	s.Refresh(context.Background())
	rec := s.Reconciliation()
	require.True(t, rec.Blocked)
	require.Equal(t, []string{"Mug"}, rec.InsufficientNames)
}

func TestSession_EditInViewBlocksUntilRefetchResolves(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(mugInfo.Ref, 1)
	s.EnterView(context.Background())
	require.False(t, s.Reconciliation().Blocked)

	release := inv.hold()
	s.UpdateQty("mug", 2)

	rec := s.Reconciliation()
	require.True(t, rec.Blocked)
	require.True(t, rec.FetchInFlight)
	_, err := s.SubmitCheckout()
	require.ErrorIs(t, err, domain.ErrCheckoutBlocked)
	require.Equal(t, domain.MessageCheckingStock, s.Checkout().Message)

	release()
	require.Eventually(t, func() bool { return !s.Reconciliation().Blocked }, waitFor, tick)
}

func TestSession_NoRefetchOutsideView(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(mugInfo.Ref, 1)
	s.AddToCart(mugInfo.Ref, 1)
	require.Zero(t, inv.calls.Load())

	s.EnterView(context.Background())
	s.LeaveView()
	before := inv.calls.Load()
	s.AddToCart(mugInfo.Ref, 1)
	require.Equal(t, before, inv.calls.Load())
}

func TestSession_WatchPollsAndUnwatchStops(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor(), WithPollInterval(10*time.Millisecond))

	s.Watch()
	s.Watch()
	require.Eventually(t, func() bool { return inv.calls.Load() >= 3 }, waitFor, tick)
	require.True(t, s.View().Watching)

	s.Unwatch()
	require.False(t, s.View().Watching)
	time.Sleep(30 * time.Millisecond)
	stopped := inv.calls.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, stopped, inv.calls.Load())
}

func TestSession_PollPicksUpStockChanges(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor(), WithPollInterval(10*time.Millisecond))
	s.AddToCart(mugInfo.Ref, 3)
	s.Watch()
	require.Eventually(t, func() bool { return !s.Reconciliation().Blocked }, waitFor, tick)

	inv.setStock("mug", 1)
	require.Eventually(t, func() bool { return s.Reconciliation().Blocked }, waitFor, tick)
}

func TestSession_SubmitWhileProcessingRejected(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	proc := newFakeProcessor()
	s := newTestSession(t, inv, proc)
	s.AddToCart(mugInfo.Ref, 1)
	s.Refresh(context.Background())

	_, err := s.SubmitCheckout()
	require.NoError(t, err)
	<-proc.requests
	_, err = s.SubmitCheckout()
	require.ErrorIs(t, err, domain.ErrCheckoutInProgress)
	proc.results <- nil
}

func TestSession_ProcessorFailureReturnsToIdle(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	proc := newFakeProcessor()
	s := newTestSession(t, inv, proc)
	s.AddToCart(mugInfo.Ref, 1)
	s.Refresh(context.Background())

	_, err := s.SubmitCheckout()
	require.NoError(t, err)
	<-proc.requests
	proc.results <- errors.New("worker down")

	require.Eventually(t, func() bool { return s.Checkout().State == domain.StateIdle }, waitFor, tick)
	require.Equal(t, "worker down", s.Checkout().LastError)
	require.Len(t, s.Items(), 1)
}

func TestSession_CloseStopsBackgroundWork(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	proc := newFakeProcessor()
	s := NewSession("s-close", NewFetcher(inv), proc, WithPollInterval(5*time.Millisecond))
	s.AddToCart(mugInfo.Ref, 1)
	s.Refresh(context.Background())
	s.Watch()
	_, err := s.SubmitCheckout()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(waitFor):
		t.Fatal("close did not return")
	}
	require.Equal(t, domain.StateProcessing, s.Checkout().State)
}

func TestSession_StockShownPerLine(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(mugInfo.Ref, 1)
	s.AddToCart(domain.ProductRef{ID: "ghost", Name: "Ghost"}, 1)

	view := s.View()
	require.Nil(t, view.Items[0].Stock)

	s.Refresh(context.Background())
	view = s.View()
	require.NotNil(t, view.Items[0].Stock)
	require.EqualValues(t, 5, *view.Items[0].Stock)
	require.Nil(t, view.Items[1].Stock)
	require.Equal(t, []string{"Ghost"}, view.Reconciliation.InsufficientNames)
}

func TestSession_UnwatchDuringFetchKeepsLastSnapshot(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor(), WithPollInterval(time.Hour))
	s.AddToCart(mugInfo.Ref, 2)
	s.Refresh(context.Background())
	require.False(t, s.Reconciliation().Blocked)

	release := inv.hold()
	t.Cleanup(release)
	s.Watch()
	require.Eventually(t, func() bool { return inv.calls.Load() >= 2 }, waitFor, tick)
	require.True(t, s.Reconciliation().FetchInFlight)

	s.Unwatch()
	require.Eventually(t, func() bool { return !s.Reconciliation().FetchInFlight }, waitFor, tick)
	rec := s.Reconciliation()
	require.False(t, rec.Blocked)
	require.Empty(t, rec.InsufficientNames)
	require.EqualValues(t, 5, *s.View().Items[0].Stock)
}

func TestSession_CancelledRefreshKeepsLastSnapshot(t *testing.T) {
	inv := newFakeInventory(mugInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(mugInfo.Ref, 1)
	s.Refresh(context.Background())

	release := inv.hold()
	t.Cleanup(release)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.EnterView(ctx)
	}()
	require.Eventually(t, func() bool { return inv.calls.Load() >= 2 }, waitFor, tick)
	cancel()
	<-done

	rec := s.Reconciliation()
	require.False(t, rec.FetchInFlight)
	require.False(t, rec.Blocked)
}

func TestSession_NoOpEditKeepsCheckoutAndSkipsFetch(t *testing.T) {
	inv := newFakeInventory(mugInfo, lampInfo)
	s := newTestSession(t, inv, newFakeProcessor())
	s.AddToCart(lampInfo.Ref, 3)
	s.EnterView(context.Background())
	_, err := s.SubmitCheckout()
	require.ErrorIs(t, err, domain.ErrCheckoutBlocked)
	before := inv.calls.Load()

	s.RemoveFromCart("missing")
	s.UpdateQty("missing", 4)
	s.UpdateQty("lamp", 3)

	require.Equal(t, domain.StateBlocked, s.Checkout().State)
	require.Equal(t, before, inv.calls.Load())
}
