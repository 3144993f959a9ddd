/*
SPDX-License-Identifier: Apache-2.0
*/

package core

// ReceiveItem handles the token-received notification that deposits the
// auctioned item. The sender contract becomes the item's issuing contract.
// It fires exactly once, transitioning NotInitialized to NotSoldYet; the
// origin account must be the auction owner.
func (a *Auction) ReceiveItem(sender Address, tokenID string, amount uint64, from Address, owner AccountAddress, oracle ExchangeOracle) (*AuctionUpdatedEvent, error) {
	contract, ok := sender.Contract()
	if !ok {
		return nil, ErrSenderNotContract
	}
	origin, ok := from.Account()
	if !ok {
		return nil, ErrOnlyAccount
	}
	if origin != owner {
		return nil, ErrUnauthorized
	}
	if a.State.Status != StatusNotInitialized {
		return nil, ErrAlreadyInitialized
	}

	a.State = NotSoldYet(ItemReference{
		Contract: contract,
		TokenID:  tokenID,
		Amount:   amount,
	})
	return a.updatedEvent(oracle)
}

// AdmitParticipant handles the token-received notification that presents a
// participation token. Admission is idempotent; re-admitting an account is
// a no-op, not an error.
func (a *Auction) AdmitParticipant(sender Address, tokenID string, from Address) (*ParticipantAddedEvent, error) {
	contract, ok := sender.Contract()
	if !ok {
		return nil, ErrSenderNotContract
	}
	origin, ok := from.Account()
	if !ok {
		return nil, ErrOnlyAccount
	}
	if a.IsPublic() {
		return nil, ErrPublicAuction
	}

	presented := ParticipationTokenReference{Contract: contract, TokenID: tokenID}
	if !a.ParticipationToken.Matches(presented) {
		return nil, ErrInvalidParticipationToken
	}

	if a.Participants == nil {
		a.Participants = map[AccountAddress]bool{}
	}
	a.Participants[origin] = true
	return &ParticipantAddedEvent{Account: origin}, nil
}
