package auction

import (
	"encoding/json"
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/shopspring/decimal"

	"github.com/hyperledger/fabric-samples/auction/escrow-auction/chaincode-go/core"
)

// chainOracle reads the currently observed exchange rate from the
// configured oracle chaincode and delegates the conversion math to
// core.Rate. The rate is fetched per conversion, never cached across
// calls.
type chainOracle struct {
	stub      shim.ChaincodeStubInterface
	chaincode core.ContractAddress
}

func newChainOracle(stub shim.ChaincodeStubInterface, chaincode core.ContractAddress) *chainOracle {
	return &chainOracle{stub: stub, chaincode: chaincode}
}

type ratePayload struct {
	// NativePerCent is how many native units one euro cent buys.
	NativePerCent decimal.Decimal `json:"nativePerCent"`
}

func (o *chainOracle) rate() (core.Rate, error) {
	response := o.stub.InvokeChaincode(string(o.chaincode), [][]byte{[]byte("GetRate")}, o.stub.GetChannelID())
	if response.Status != shim.OK {
		return core.Rate{}, fmt.Errorf("oracle chaincode %s rejected GetRate: %s", o.chaincode, response.Message)
	}
	var payload ratePayload
	if err := json.Unmarshal(response.Payload, &payload); err != nil {
		return core.Rate{}, fmt.Errorf("oracle chaincode %s returned a malformed rate: %v", o.chaincode, err)
	}
	return core.NewRate(payload.NativePerCent)
}

func (o *chainOracle) NativeToReferenceCents(native uint64) (uint64, error) {
	rate, err := o.rate()
	if err != nil {
		return 0, err
	}
	return rate.NativeToReferenceCents(native)
}

func (o *chainOracle) ReferenceCentsToNative(cents uint64) (uint64, error) {
	rate, err := o.rate()
	if err != nil {
		return 0, err
	}
	return rate.ReferenceCentsToNative(cents)
}
