/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import (
	"fmt"
	"strconv"

	"github.com/hyperledger/fabric-chaincode-go/shim"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// chainTokenClient talks to token chaincodes on the same channel. The wire
// is the conventional token interface: BalanceOf queries and TransferFrom
// moves; whether a transfer is authorized is the token chaincode's
// business.
type chainTokenClient struct {
	stub          shim.ChaincodeStubInterface
	escrowAccount core.AccountAddress
}

func newChainTokenClient(stub shim.ChaincodeStubInterface, escrowAccount core.AccountAddress) *chainTokenClient {
	return &chainTokenClient{stub: stub, escrowAccount: escrowAccount}
}

func (c *chainTokenClient) invoke(chaincode core.ContractAddress, args ...string) ([]byte, error) {
	ccArgs := make([][]byte, len(args))
	for i, arg := range args {
		ccArgs[i] = []byte(arg)
	}
	response := c.stub.InvokeChaincode(string(chaincode), ccArgs, c.stub.GetChannelID())
	if response.Status != shim.OK {
		return nil, fmt.Errorf("chaincode %s rejected %s: %s", chaincode, args[0], response.Message)
	}
	return response.Payload, nil
}

// Transfer releases escrowed item tokens to the receiver. A contract
// custodian resolves to the escrow account, which is where the chaincode's
// custody actually lives on the token ledger.
func (c *chainTokenClient) Transfer(item core.ItemReference, from core.Address, to core.AccountAddress) error {
	fromAccount := c.escrowAccount
	if account, ok := from.Account(); ok {
		fromAccount = account
	}
	_, err := c.invoke(item.Contract, "TransferFrom",
		string(fromAccount), string(to), item.TokenID, strconv.FormatUint(item.Amount, 10))
	return err
}

// BalanceOf reports how many units of tokenID the account holds on the
// given token chaincode.
func (c *chainTokenClient) BalanceOf(chaincode core.ContractAddress, tokenID string, account core.AccountAddress) (uint64, error) {
	payload, err := c.invoke(chaincode, "BalanceOf", string(account), tokenID)
	if err != nil {
		return 0, err
	}
	balance, err := strconv.ParseUint(string(payload), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token chaincode %s returned a malformed balance: %v", chaincode, err)
	}
	return balance, nil
}

// chainFundsClient moves the native currency token in and out of the
// escrow account.
type chainFundsClient struct {
	tokens   *chainTokenClient
	currency core.ContractAddress
}

func newChainFundsClient(tokens *chainTokenClient, currency core.ContractAddress) *chainFundsClient {
	return &chainFundsClient{tokens: tokens, currency: currency}
}

// Collect pulls a tendered amount from the bidder into escrow.
func (c *chainFundsClient) Collect(from core.AccountAddress, amount uint64) error {
	_, err := c.tokens.invoke(c.currency, "TransferFrom",
		string(from), string(c.tokens.escrowAccount), strconv.FormatUint(amount, 10))
	return err
}

// Transfer pays custodied funds out of the escrow account.
func (c *chainFundsClient) Transfer(to core.AccountAddress, amount uint64) error {
	_, err := c.tokens.invoke(c.currency, "TransferFrom",
		string(c.tokens.escrowAccount), string(to), strconv.FormatUint(amount, 10))
	return err
}
