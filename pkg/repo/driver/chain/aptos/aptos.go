package aptos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"aptchat/config"
	"aptchat/pkg/entities"
	"aptchat/utilities"
	"aptchat/utilities/http_client"
)

// group token pricing constants passed to <deployer>::core::initialize
const (
	initSupply        = "1200000000000000000"
	initVestingPeriod = "63072000"
	initBasePrice     = "10000000000"
	initPriceEpoch    = "2592000"
)

type Aptos struct {
	baseURL string
	client  *http.Client
}

func New() *Aptos {
	conf := config.GetConfig()

	address := conf.Aptos.Daemon.Mainnet.Address
	if conf.Mode == "stage" || conf.Mode == "local" {
		address = conf.Aptos.Daemon.Testnet.Address
	}

	return &Aptos{
		baseURL: address,
		client:  http_client.GetClient(),
	}
}

type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

// View calls a Move view function on the fullnode REST API
func (a *Aptos) View(ctx context.Context, function string, typeArgs, args []string) ([]json.RawMessage, error) {
	if typeArgs == nil {
		typeArgs = []string{}
	}
	if args == nil {
		args = []string{}
	}

	body, err := json.Marshal(viewRequest{Function: function, TypeArguments: typeArgs, Arguments: args})
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(a.baseURL, "v1", "view")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fullnode view call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fullnode view call returned %d for %s", resp.StatusCode, function)
	}

	var out []json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode view response: %w", err)
	}

	return out, nil
}

func rawToString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// GetTokenPrice returns the current group token price from chain
func (a *Aptos) GetTokenPrice(ctx context.Context, moduleAddress string) (string, error) {
	log := utilities.NewLogger("GetTokenPrice")

	out, err := a.View(ctx, fmt.Sprintf("%s::core::get_price", moduleAddress), nil, nil)
	if err != nil {
		log.WithError(err).Errorf("price lookup failed for module %s", moduleAddress)
		return "0", err
	}
	if len(out) == 0 {
		return "0", fmt.Errorf("empty view response for get_price")
	}

	return rawToString(out[0]), nil
}

// GetReserves returns the slip and peg reserve balances from chain
func (a *Aptos) GetReserves(ctx context.Context, moduleAddress string) (string, string, error) {
	log := utilities.NewLogger("GetReserves")

	out, err := a.View(ctx, fmt.Sprintf("%s::core::get_reserves", moduleAddress), nil, nil)
	if err != nil {
		log.WithError(err).Errorf("reserves lookup failed for module %s", moduleAddress)
		return "0", "0", err
	}
	if len(out) < 2 {
		return "0", "0", fmt.Errorf("short view response for get_reserves")
	}

	return rawToString(out[0]), rawToString(out[1]), nil
}

// InitializePayload builds the entry function the creator's wallet signs to
// set up a group token
func (a *Aptos) InitializePayload() entities.EntryFunctionPayload {
	conf := config.GetConfig()

	return entities.EntryFunctionPayload{
		Function:          fmt.Sprintf("%s::core::initialize", conf.Aptos.DeployerAddress),
		TypeArguments:     []string{conf.Aptos.StablecoinType},
		FunctionArguments: []string{initSupply, initVestingPeriod, initBasePrice, initPriceEpoch},
	}
}

// ModuleAddress is where confirmed tokens live; with direct initialization
// the deployer address is the module address
func (a *Aptos) ModuleAddress() string {
	return config.GetConfig().Aptos.DeployerAddress
}
