/*
SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	auctionStart = time.Unix(1, 0).UTC()
	auctionEnd   = time.Unix(10, 0).UTC()
)

const (
	ownerAccount  = AccountAddress("owner")
	itemContract  = ContractAddress("item-token")
	itemTokenID   = "2"
	partContract  = ContractAddress("participation-token")
	partTokenID   = "1"
	testCustodian = ContractAddress("auction")
)

func oneToOneRate(t *testing.T) Rate {
	t.Helper()
	rate, err := NewRate(decimal.NewFromInt(1))
	require.NoError(t, err)
	return rate
}

type recordedTransfer struct {
	to     AccountAddress
	amount uint64
}

// recordingFunds captures every outbound refund and payout.
type recordingFunds struct {
	transfers []recordedTransfer
	failWith  error
}

func (f *recordingFunds) Transfer(to AccountAddress, amount uint64) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.transfers = append(f.transfers, recordedTransfer{to: to, amount: amount})
	return nil
}

type recordedItemTransfer struct {
	item ItemReference
	to   AccountAddress
}

type recordingTokens struct {
	transfers []recordedItemTransfer
	failWith  error
}

func (r *recordingTokens) Transfer(item ItemReference, from Address, to AccountAddress) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.transfers = append(r.transfers, recordedItemTransfer{item: item, to: to})
	return nil
}

func privateConfig() AuctionConfig {
	return AuctionConfig{
		Start:        auctionStart,
		End:          auctionEnd,
		MinimumRaise: 100,
		ParticipationToken: &ParticipationTokenReference{
			Contract: partContract,
			TokenID:  partTokenID,
		},
	}
}

func publicConfig() AuctionConfig {
	return AuctionConfig{Start: auctionStart, End: auctionEnd, MinimumRaise: 100}
}

func onboardItem(t *testing.T, a *Auction) {
	t.Helper()
	event, err := a.ReceiveItem(ContractAddr(itemContract), itemTokenID, 1,
		AccountAddr(ownerAccount), ownerAccount, oneToOneRate(t))
	require.NoError(t, err)
	require.NotNil(t, event)
}

func admit(t *testing.T, a *Auction, account AccountAddress) {
	t.Helper()
	event, err := a.AdmitParticipant(ContractAddr(partContract), partTokenID, AccountAddr(account))
	require.NoError(t, err)
	require.Equal(t, account, event.Account)
}

// openPrivateAuction returns a private auction with the item onboarded and
// the given accounts admitted.
func openPrivateAuction(t *testing.T, accounts ...AccountAddress) *Auction {
	t.Helper()
	a := NewAuction(privateConfig())
	onboardItem(t, a)
	for _, account := range accounts {
		admit(t, a, account)
	}
	return a
}

func TestNewAuction(t *testing.T) {
	a := NewAuction(privateConfig())

	assert.Equal(t, StatusNotInitialized, a.State.Status)
	assert.False(t, a.State.IsOpen())
	assert.Nil(t, a.HighestBidder)
	assert.Zero(t, a.EscrowBalance)
	assert.True(t, a.IsPrivate())

	assert.True(t, NewAuction(publicConfig()).IsPublic())
}

// TestBidAndFinalize walks the full lifecycle: Alice bids 100, raises to
// 200 and is refunded 100, Bob bids 300 and Alice is refunded 200.
// Finalizing at the end time fails, finalizing after it settles the item
// to Bob and pays 300 to the owner. Subsequent bids and finalizations are
// rejected.
func TestBidAndFinalize(t *testing.T) {
	alice := AccountAddress("alice")
	bob := AccountAddress("bob")
	a := openPrivateAuction(t, alice, bob)

	rate := oneToOneRate(t)
	funds := &recordingFunds{}
	tokens := &recordingTokens{}

	event, err := a.PlaceBid(AccountAddr(alice), 100, auctionEnd, rate, funds)
	require.NoError(t, err)
	assert.Empty(t, funds.transfers)
	assert.Equal(t, alice, *a.HighestBidder)
	assert.Equal(t, uint64(100), a.EscrowBalance)
	assert.Equal(t, uint64(100), event.HighestBid)

	_, err = a.PlaceBid(AccountAddr(alice), 200, auctionEnd, rate, funds)
	require.NoError(t, err)
	_, err = a.PlaceBid(AccountAddr(bob), 300, auctionEnd, rate, funds)
	require.NoError(t, err)

	_, err = a.Finalize(auctionEnd, ownerAccount, ContractAddr(testCustodian), tokens, funds, rate)
	assert.ErrorIs(t, err, ErrAuctionStillActive)

	afterEnd := auctionEnd.Add(time.Second)
	event, err = a.Finalize(afterEnd, ownerAccount, ContractAddr(testCustodian), tokens, funds, rate)
	require.NoError(t, err)

	assert.Equal(t, []recordedTransfer{
		{to: alice, amount: 100},
		{to: alice, amount: 200},
		{to: ownerAccount, amount: 300},
	}, funds.transfers)
	require.Len(t, tokens.transfers, 1)
	assert.Equal(t, bob, tokens.transfers[0].to)
	assert.Equal(t, itemTokenID, tokens.transfers[0].item.TokenID)

	assert.Equal(t, StatusSold, a.State.Status)
	assert.Equal(t, bob, *a.State.Winner)
	assert.Equal(t, bob, *a.HighestBidder)
	assert.Zero(t, a.EscrowBalance)
	assert.Zero(t, event.HighestBid)

	_, err = a.Finalize(afterEnd, ownerAccount, ContractAddr(testCustodian), tokens, funds, rate)
	assert.ErrorIs(t, err, ErrAuctionNotOpen)
	_, err = a.PlaceBid(AccountAddr(bob), 500, auctionEnd, rate, funds)
	assert.ErrorIs(t, err, ErrAuctionNotOpen)
}

// Bids for amounts lower than or equal to the highest bid are rejected.
func TestBidNotAboveCurrentBid(t *testing.T) {
	one := AccountAddress("account1")
	two := AccountAddress("account2")
	a := openPrivateAuction(t, one, two)

	rate := oneToOneRate(t)
	funds := &recordingFunds{}

	_, err := a.PlaceBid(AccountAddr(one), 100, auctionEnd, rate, funds)
	require.NoError(t, err)

	_, err = a.PlaceBid(AccountAddr(two), 100, auctionEnd, rate, funds)
	assert.ErrorIs(t, err, ErrBidBelowCurrentBid)
	_, err = a.PlaceBid(AccountAddr(two), 99, auctionEnd, rate, funds)
	assert.ErrorIs(t, err, ErrBidBelowCurrentBid)

	assert.Equal(t, one, *a.HighestBidder)
	assert.Empty(t, funds.transfers)
}

// Bids of zero against a zero balance are rejected: 0 is not strictly
// greater than 0.
func TestBidZero(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)

	_, err := a.PlaceBid(AccountAddr(bidder), 0, auctionEnd, oneToOneRate(t), &recordingFunds{})
	assert.ErrorIs(t, err, ErrBidBelowCurrentBid)
}

// A bid above the current highest bid is still rejected when its raise in
// cents is below the minimum raise.
func TestBidBelowMinimumRaise(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)

	rate := oneToOneRate(t)
	funds := &recordingFunds{}

	_, err := a.PlaceBid(AccountAddr(bidder), 100, auctionEnd, rate, funds)
	require.NoError(t, err)

	_, err = a.PlaceBid(AccountAddr(bidder), 150, auctionEnd, rate, funds)
	assert.ErrorIs(t, err, ErrBidBelowMinimumRaise)
	assert.Equal(t, uint64(100), a.EscrowBalance)
}

func TestBidWindow(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)
	rate := oneToOneRate(t)

	_, err := a.PlaceBid(AccountAddr(bidder), 100, auctionStart.Add(-time.Second), rate, &recordingFunds{})
	assert.ErrorIs(t, err, ErrBidTooEarly)

	_, err = a.PlaceBid(AccountAddr(bidder), 100, auctionEnd.Add(time.Second), rate, &recordingFunds{})
	assert.ErrorIs(t, err, ErrBidTooLate)

	// The window bounds themselves are valid bid times.
	_, err = a.PlaceBid(AccountAddr(bidder), 100, auctionStart, rate, &recordingFunds{})
	assert.NoError(t, err)
	_, err = a.PlaceBid(AccountAddr(bidder), 200, auctionEnd, rate, &recordingFunds{})
	assert.NoError(t, err)
}

func TestBidFromContractRejected(t *testing.T) {
	a := openPrivateAuction(t)

	_, err := a.PlaceBid(ContractAddr("some-contract"), 100, auctionEnd, oneToOneRate(t), &recordingFunds{})
	assert.ErrorIs(t, err, ErrOnlyAccount)
}

func TestPrivateAuctionRequiresParticipation(t *testing.T) {
	stranger := AccountAddress("stranger")
	a := openPrivateAuction(t)

	_, err := a.PlaceBid(AccountAddr(stranger), 100, auctionEnd, oneToOneRate(t), &recordingFunds{})
	assert.ErrorIs(t, err, ErrNotAParticipant)

	_, err = a.CanBid(AccountAddr(stranger), auctionEnd)
	assert.ErrorIs(t, err, ErrNotAParticipant)
}

func TestPublicAuctionSkipsParticipationCheck(t *testing.T) {
	a := NewAuction(publicConfig())
	onboardItem(t, a)

	stranger := AccountAddress("stranger")
	_, err := a.PlaceBid(AccountAddr(stranger), 100, auctionEnd, oneToOneRate(t), &recordingFunds{})
	assert.NoError(t, err)
}

func TestCanBidRequiresOpenAuction(t *testing.T) {
	a := NewAuction(privateConfig())

	_, err := a.CanBid(AccountAddr("bidder"), auctionEnd)
	assert.ErrorIs(t, err, ErrAuctionNotOpen)
}

func TestAdmitParticipant(t *testing.T) {
	a := NewAuction(privateConfig())
	account := AccountAddress("alice")

	admit(t, a, account)
	assert.True(t, a.IsParticipant(account))

	// Re-admission is a no-op, not an error.
	admit(t, a, account)
	assert.True(t, a.IsParticipant(account))

	_, err := a.AdmitParticipant(ContractAddr(partContract), "junk", AccountAddr(account))
	assert.ErrorIs(t, err, ErrInvalidParticipationToken)

	_, err = a.AdmitParticipant(ContractAddr("other-contract"), partTokenID, AccountAddr(account))
	assert.ErrorIs(t, err, ErrInvalidParticipationToken)

	_, err = a.AdmitParticipant(AccountAddr("not-a-contract"), partTokenID, AccountAddr(account))
	assert.ErrorIs(t, err, ErrSenderNotContract)

	_, err = a.AdmitParticipant(ContractAddr(partContract), partTokenID, ContractAddr("not-an-account"))
	assert.ErrorIs(t, err, ErrOnlyAccount)
}

func TestAdmitParticipantPublicAuction(t *testing.T) {
	a := NewAuction(publicConfig())

	_, err := a.AdmitParticipant(ContractAddr(partContract), partTokenID, AccountAddr("alice"))
	assert.ErrorIs(t, err, ErrPublicAuction)
}

func TestReceiveItem(t *testing.T) {
	a := NewAuction(privateConfig())
	rate := oneToOneRate(t)

	event, err := a.ReceiveItem(ContractAddr(itemContract), itemTokenID, 1,
		AccountAddr(ownerAccount), ownerAccount, rate)
	require.NoError(t, err)
	assert.Equal(t, StatusNotSoldYet, event.State.Status)
	assert.Equal(t, itemContract, event.State.Item.Contract)
	assert.Zero(t, event.HighestBid)
	assert.True(t, a.State.IsOpen())

	// Onboarding fires exactly once.
	_, err = a.ReceiveItem(ContractAddr(itemContract), itemTokenID, 1,
		AccountAddr(ownerAccount), ownerAccount, rate)
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestReceiveItemAuthorization(t *testing.T) {
	rate := oneToOneRate(t)

	a := NewAuction(privateConfig())
	_, err := a.ReceiveItem(ContractAddr(itemContract), itemTokenID, 1,
		AccountAddr("mallory"), ownerAccount, rate)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, StatusNotInitialized, a.State.Status)

	_, err = a.ReceiveItem(AccountAddr("not-a-contract"), itemTokenID, 1,
		AccountAddr(ownerAccount), ownerAccount, rate)
	assert.ErrorIs(t, err, ErrSenderNotContract)

	_, err = a.ReceiveItem(ContractAddr(itemContract), itemTokenID, 1,
		ContractAddr("not-an-account"), ownerAccount, rate)
	assert.ErrorIs(t, err, ErrOnlyAccount)
}

// Finalizing after the end with no bids succeeds trivially: no transfers,
// no state change, the item stays unsold.
func TestFinalizeWithoutBids(t *testing.T) {
	a := openPrivateAuction(t)
	funds := &recordingFunds{}
	tokens := &recordingTokens{}

	event, err := a.Finalize(auctionEnd.Add(time.Second), ownerAccount,
		ContractAddr(testCustodian), tokens, funds, oneToOneRate(t))
	require.NoError(t, err)
	assert.Nil(t, event)
	assert.Equal(t, StatusNotSoldYet, a.State.Status)
	assert.Empty(t, funds.transfers)
	assert.Empty(t, tokens.transfers)
}

// A failed item transfer fails the call and leaves the auction open, so
// finalize can be retried.
func TestFinalizeItemTransferFailureIsRetryable(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)
	rate := oneToOneRate(t)
	funds := &recordingFunds{}

	_, err := a.PlaceBid(AccountAddr(bidder), 100, auctionEnd, rate, funds)
	require.NoError(t, err)

	afterEnd := auctionEnd.Add(time.Second)
	broken := &recordingTokens{failWith: errors.New("receiver rejected")}
	_, err = a.Finalize(afterEnd, ownerAccount, ContractAddr(testCustodian), broken, funds, rate)
	assert.ErrorIs(t, err, ErrItemTransfer)
	assert.Equal(t, StatusNotSoldYet, a.State.Status)
	assert.Equal(t, uint64(100), a.EscrowBalance)

	_, err = a.Finalize(afterEnd, ownerAccount, ContractAddr(testCustodian), &recordingTokens{}, funds, rate)
	assert.NoError(t, err)
	assert.Equal(t, StatusSold, a.State.Status)
}

func TestRefundFailureFailsBid(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)
	rate := oneToOneRate(t)

	_, err := a.PlaceBid(AccountAddr(bidder), 100, auctionEnd, rate, &recordingFunds{})
	require.NoError(t, err)

	broken := &recordingFunds{failWith: errors.New("account gone")}
	_, err = a.PlaceBid(AccountAddr(bidder), 200, auctionEnd, rate, broken)
	assert.ErrorIs(t, err, ErrRefundTransfer)
}

func TestPayoutFailureFailsFinalize(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)
	rate := oneToOneRate(t)

	_, err := a.PlaceBid(AccountAddr(bidder), 100, auctionEnd, rate, &recordingFunds{})
	require.NoError(t, err)

	broken := &recordingFunds{failWith: errors.New("owner account frozen")}
	_, err = a.Finalize(auctionEnd.Add(time.Second), ownerAccount,
		ContractAddr(testCustodian), &recordingTokens{}, broken, rate)
	assert.ErrorIs(t, err, ErrPayoutTransfer)
}

func TestNextMinimumBid(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := openPrivateAuction(t, bidder)
	rate := oneToOneRate(t)

	next, err := a.NextMinimumBid(AccountAddr(bidder), auctionEnd, rate)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), next)

	_, err = a.PlaceBid(AccountAddr(bidder), 150, auctionEnd, rate, &recordingFunds{})
	require.NoError(t, err)

	next, err = a.NextMinimumBid(AccountAddr(bidder), auctionEnd, rate)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), next)

	_, err = a.NextMinimumBid(AccountAddr("stranger"), auctionEnd, rate)
	assert.ErrorIs(t, err, ErrNotAParticipant)
	_, err = a.NextMinimumBid(AccountAddr(bidder), auctionEnd.Add(time.Second), rate)
	assert.ErrorIs(t, err, ErrBidTooLate)
}

// With two native units per cent, a three-unit balance is worth one cent
// and the next acceptable bid rounds up to whole native units.
func TestNextMinimumBidRounding(t *testing.T) {
	bidder := AccountAddress("bidder")
	a := NewAuction(publicConfig())
	onboardItem(t, a)
	a.EscrowBalance = 3
	rate, err := NewRate(decimal.NewFromInt(2))
	require.NoError(t, err)

	next, err := a.NextMinimumBid(AccountAddr(bidder), auctionEnd, rate)
	require.NoError(t, err)
	// floor(3/2) = 1 cent held, +100 minimum raise = 101 cents = 202 native.
	assert.Equal(t, uint64(202), next)
}
