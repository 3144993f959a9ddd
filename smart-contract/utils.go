/*
SPDX-License-Identifier: Apache-2.0
*/

package auction

import (
	"fmt"
	"time"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// getSubmittingClientIdentity returns the unique ID of the submitting client
func getSubmittingClientIdentity(ctx contractapi.TransactionContextInterface) (core.AccountAddress, error) {
	id, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to read clientID: %v", err)
	}
	return core.AccountAddress(id), nil
}

// getTxTime returns the transaction timestamp, which is deterministic
// across endorsers.
func getTxTime(ctx contractapi.TransactionContextInterface) (time.Time, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read the transaction timestamp: %v", err)
	}
	return ts.AsTime(), nil
}
