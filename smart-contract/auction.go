/*
SPDX-License-Identifier: Apache-2.0
*/

// Package auction exposes an escrow-based ascending auction for a single
// token as Fabric chaincode. A transaction that returns an error discards
// every staged write, including same-transaction cross-chaincode moves, so
// each entry point is an all-or-nothing unit of work.
package auction

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"go.uber.org/zap"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// This contract implements an escrow auction: a single token lot is sold
// to the highest bidder over a bounded time window, optionally gated by a
// participation token.
type SmartContract struct {
	contractapi.Contract
}

// Initialize creates the auction singleton in its not-initialized state.
// The submitting client becomes the auction owner. start and end are
// RFC 3339 timestamps bounding the bid window; minimumRaise is in
// reference-currency cents. participationContract and participationTokenID
// may both be empty for a public auction. currencyChaincode and
// oracleChaincode name the collaborating chaincodes; escrowAccount is the
// account custodying the item and funds on the token ledgers.
func (s *SmartContract) Initialize(ctx contractapi.TransactionContextInterface,
	start string, end string, minimumRaise uint64,
	participationContract string, participationTokenID string,
	currencyChaincode string, oracleChaincode string, escrowAccount string) error {

	owner, err := getSubmittingClientIdentity(ctx)
	if err != nil {
		return err
	}

	exists, err := doesAuctionExist(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if the auction already exists: %v", err)
	}
	if exists {
		return fmt.Errorf("auction has already been created")
	}

	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return fmt.Errorf("start is not a valid RFC 3339 timestamp: %v", err)
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return fmt.Errorf("end is not a valid RFC 3339 timestamp: %v", err)
	}
	if !endTime.After(startTime) {
		return fmt.Errorf("end must be after start")
	}

	if currencyChaincode == "" || oracleChaincode == "" || escrowAccount == "" {
		return fmt.Errorf("currencyChaincode, oracleChaincode and escrowAccount are required")
	}

	config := core.AuctionConfig{
		Start:        startTime,
		End:          endTime,
		MinimumRaise: minimumRaise,
	}
	if participationContract != "" || participationTokenID != "" {
		if participationContract == "" || participationTokenID == "" {
			return fmt.Errorf("participationContract and participationTokenID must be set together")
		}
		config.ParticipationToken = &core.ParticipationTokenReference{
			Contract: core.ContractAddress(participationContract),
			TokenID:  participationTokenID,
		}
	}

	record := &auctionRecord{
		Auction:           core.NewAuction(config),
		Owner:             owner,
		EscrowAccount:     core.AccountAddress(escrowAccount),
		CurrencyChaincode: core.ContractAddress(currencyChaincode),
		OracleChaincode:   core.ContractAddress(oracleChaincode),
	}
	if err := putAuctionRecord(ctx, record); err != nil {
		return fmt.Errorf("could not save the new auction in the world state: %v", err)
	}

	zap.S().Infow("auction created",
		"owner", owner, "start", startTime, "end", endTime, "minimumRaise", minimumRaise)
	return nil
}

// OnItemTokenReceived onboards the escrowed item and opens the auction for
// bids. The issuing token chaincode must already have credited the escrow
// account; custody is verified rather than trusted. Only the auction owner
// may deposit the item, and only once.
func (s *SmartContract) OnItemTokenReceived(ctx contractapi.TransactionContextInterface,
	tokenContract string, tokenID string, amount uint64) error {

	record, err := getAuctionRecord(ctx)
	if err != nil {
		return err
	}
	origin, err := getSubmittingClientIdentity(ctx)
	if err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("item amount cannot be zero")
	}

	tokens := newChainTokenClient(ctx.GetStub(), record.EscrowAccount)
	held, err := tokens.BalanceOf(core.ContractAddress(tokenContract), tokenID, record.EscrowAccount)
	if err != nil {
		return err
	}
	if held < amount {
		return fmt.Errorf("escrow account holds %d of token %s, expected at least %d", held, tokenID, amount)
	}

	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)
	event, err := record.Auction.ReceiveItem(
		core.ContractAddr(core.ContractAddress(tokenContract)), tokenID, amount,
		core.AccountAddr(origin), record.Owner, oracle)
	if err != nil {
		return err
	}

	if err := putAuctionRecord(ctx, record); err != nil {
		return fmt.Errorf("could not save the updated auction: %v", err)
	}
	if err := setAuctionUpdatedEvent(ctx, event); err != nil {
		return err
	}

	zap.S().Infow("auction item onboarded",
		"tokenContract", tokenContract, "tokenId", tokenID, "amount", amount)
	return nil
}

// OnParticipationTokenReceived admits the submitting client to a private
// auction. The client must hold the configured participation token on its
// issuing chaincode; admission is idempotent.
func (s *SmartContract) OnParticipationTokenReceived(ctx contractapi.TransactionContextInterface,
	tokenContract string, tokenID string) error {

	record, err := getAuctionRecord(ctx)
	if err != nil {
		return err
	}
	origin, err := getSubmittingClientIdentity(ctx)
	if err != nil {
		return err
	}

	tokens := newChainTokenClient(ctx.GetStub(), record.EscrowAccount)
	held, err := tokens.BalanceOf(core.ContractAddress(tokenContract), tokenID, origin)
	if err != nil {
		return err
	}
	if held == 0 {
		return fmt.Errorf("client does not hold participation token %s", tokenID)
	}

	event, err := record.Auction.AdmitParticipant(
		core.ContractAddr(core.ContractAddress(tokenContract)), tokenID, core.AccountAddr(origin))
	if err != nil {
		return err
	}

	if err := putAuctionRecord(ctx, record); err != nil {
		return fmt.Errorf("could not save the updated auction: %v", err)
	}
	if err := setParticipantAddedEvent(ctx, event); err != nil {
		return err
	}

	zap.S().Infow("participant admitted", "account", origin)
	return nil
}

// Bid places a bid of amount native-currency units for the submitting
// client. The tendered amount is collected into escrow first; if any later
// check fails the transaction is discarded and the collection with it. On
// success the displaced bidder, if any, has been refunded in the same
// transaction.
func (s *SmartContract) Bid(ctx contractapi.TransactionContextInterface, amount uint64) error {
	record, err := getAuctionRecord(ctx)
	if err != nil {
		return err
	}
	bidder, err := getSubmittingClientIdentity(ctx)
	if err != nil {
		return err
	}
	now, err := getTxTime(ctx)
	if err != nil {
		return err
	}

	tokens := newChainTokenClient(ctx.GetStub(), record.EscrowAccount)
	funds := newChainFundsClient(tokens, record.CurrencyChaincode)
	if err := funds.Collect(bidder, amount); err != nil {
		return fmt.Errorf("could not collect the tendered amount: %v", err)
	}

	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)
	event, err := record.Auction.PlaceBid(core.AccountAddr(bidder), amount, now, oracle, funds)
	if err != nil {
		return err
	}

	if err := putAuctionRecord(ctx, record); err != nil {
		return fmt.Errorf("could not save the updated auction: %v", err)
	}
	if err := setAuctionUpdatedEvent(ctx, event); err != nil {
		return err
	}

	zap.S().Infow("bid accepted", "bidder", bidder, "amount", amount)
	return nil
}

// Finalize settles the auction after its end time: the item is released to
// the leading bidder and the custodied balance to the owner. Without any
// bid it succeeds as a no-op and the item stays unsold.
func (s *SmartContract) Finalize(ctx contractapi.TransactionContextInterface) error {
	record, err := getAuctionRecord(ctx)
	if err != nil {
		return err
	}
	now, err := getTxTime(ctx)
	if err != nil {
		return err
	}

	tokens := newChainTokenClient(ctx.GetStub(), record.EscrowAccount)
	funds := newChainFundsClient(tokens, record.CurrencyChaincode)
	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)

	event, err := record.Auction.Finalize(now, record.Owner,
		core.AccountAddr(record.EscrowAccount), tokens, funds, oracle)
	if err != nil {
		return err
	}
	if event == nil {
		zap.S().Infow("auction ended without bids")
		return nil
	}

	if err := putAuctionRecord(ctx, record); err != nil {
		return fmt.Errorf("could not save the finalized auction: %v", err)
	}
	if err := setAuctionUpdatedEvent(ctx, event); err != nil {
		return err
	}

	zap.S().Infow("auction finalized", "winner", *record.Auction.State.Winner)
	return nil
}

// CanBid returns the minimum native amount that would currently be
// accepted as the next bid from the submitting client, or the eligibility
// error preventing it. Read-only.
func (s *SmartContract) CanBid(ctx contractapi.TransactionContextInterface) (uint64, error) {
	record, err := getAuctionRecord(ctx)
	if err != nil {
		return 0, err
	}
	caller, err := getSubmittingClientIdentity(ctx)
	if err != nil {
		return 0, err
	}
	now, err := getTxTime(ctx)
	if err != nil {
		return 0, err
	}

	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)
	return record.Auction.NextMinimumBid(core.AccountAddr(caller), now, oracle)
}

// ConvertReferenceCentsToNative converts an amount of reference-currency
// cents to native units at the currently observed rate. Read-only.
func (s *SmartContract) ConvertReferenceCentsToNative(ctx contractapi.TransactionContextInterface, cents uint64) (uint64, error) {
	record, err := getAuctionRecord(ctx)
	if err != nil {
		return 0, err
	}
	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)
	return oracle.ReferenceCentsToNative(cents)
}

// GetAuction returns the current auction state for query clients.
func (s *SmartContract) GetAuction(ctx contractapi.TransactionContextInterface) (*AuctionView, error) {
	record, err := getAuctionRecord(ctx)
	if err != nil {
		return nil, err
	}

	oracle := newChainOracle(ctx.GetStub(), record.OracleChaincode)
	highestBidCents, err := oracle.NativeToReferenceCents(record.Auction.EscrowBalance)
	if err != nil {
		return nil, err
	}

	return &AuctionView{
		State:              record.Auction.State,
		HighestBidder:      record.Auction.HighestBidder,
		HighestBid:         highestBidCents,
		EscrowBalance:      record.Auction.EscrowBalance,
		MinimumRaise:       record.Auction.MinimumRaise,
		Start:              record.Auction.Start,
		End:                record.Auction.End,
		ParticipationToken: record.Auction.ParticipationToken,
		Owner:              record.Owner,
	}, nil
}
