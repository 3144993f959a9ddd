package auction

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// The chaincode manages a single auction instance per deployment.
const auctionKey = "auction"

const (
	auctionUpdatedEventName   = "AuctionUpdated"
	participantAddedEventName = "ParticipantAdded"
)

// doesAuctionExist checks if the auction record exists in the world state
func doesAuctionExist(ctx contractapi.TransactionContextInterface) (bool, error) {
	recordBin, err := ctx.GetStub().GetState(auctionKey)
	if err != nil {
		return false, err
	}
	return recordBin != nil, nil
}

// getAuctionRecord retrieves the auction record from the world state
func getAuctionRecord(ctx contractapi.TransactionContextInterface) (*auctionRecord, error) {
	recordBin, err := ctx.GetStub().GetState(auctionKey)
	if err != nil {
		return nil, err
	}
	if recordBin == nil {
		return nil, fmt.Errorf("auction has not been created")
	}
	var record auctionRecord
	if err := json.Unmarshal(recordBin, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// putAuctionRecord saves the auction record in the world state
func putAuctionRecord(ctx contractapi.TransactionContextInterface, record *auctionRecord) error {
	recordBin, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return ctx.GetStub().PutState(auctionKey, recordBin)
}

// setAuctionUpdatedEvent publishes the updated-state notification which can
// be received by contract users
func setAuctionUpdatedEvent(ctx contractapi.TransactionContextInterface, event *core.AuctionUpdatedEvent) error {
	eventBin, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := ctx.GetStub().SetEvent(auctionUpdatedEventName, eventBin); err != nil {
		return fmt.Errorf("could not publish the auction update: %v", err)
	}
	return nil
}

func setParticipantAddedEvent(ctx contractapi.TransactionContextInterface, event *core.ParticipantAddedEvent) error {
	eventBin, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := ctx.GetStub().SetEvent(participantAddedEventName, eventBin); err != nil {
		return fmt.Errorf("could not publish the participant admission: %v", err)
	}
	return nil
}
