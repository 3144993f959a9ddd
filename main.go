/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"go.uber.org/zap"

	auction "github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/smart-contract"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	chaincode, err := contractapi.NewChaincode(&auction.SmartContract{})
	if err != nil {
		zap.S().Fatalw("error creating auction chaincode", "error", err)
	}
	if err := chaincode.Start(); err != nil {
		zap.S().Fatalw("error starting auction chaincode", "error", err)
	}
}
