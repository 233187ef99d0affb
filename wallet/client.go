package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
)

// Capability is the externally supplied wallet provider. Implementations
// accept a method name plus parameters and either return the raw result or
// reject with an error. Signing, confirmation UI and broadcast all live on
// the other side of this interface.
type Capability interface {
	Request(ctx context.Context, method string, params ...any) (json.RawMessage, error)
}

// ProviderError is any rejection reported by the provider. A user declining
// a request and an on-chain failure arrive the same way and are deliberately
// not told apart.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ProviderError) Error() string {
	return e.Message
}

type Client struct {
	url string
	hc  *http.Client
	seq atomic.Int64
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		hc:  http.DefaultClient,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Id      int64  `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *ProviderError  `json:"error"`
}

func (c *Client) Request(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Id:      c.seq.Add(1),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	var out rpcResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, out.Error
	}
	return out.Result, nil
}

var errEmptyResult = errors.New("empty result from provider")

// RequestAccounts asks the provider for its accounts.
func RequestAccounts(ctx context.Context, provider Capability) ([]string, error) {
	raw, err := provider.Request(ctx, "eth_requestAccounts")
	if err != nil {
		return nil, err
	}
	var accounts []string
	if err = json.Unmarshal(raw, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func ChainID(ctx context.Context, provider Capability) (string, error) {
	raw, err := provider.Request(ctx, "eth_chainId")
	if err != nil {
		return "", err
	}
	return decodeString(raw)
}

// Call issues a read-only contract call against latest state.
func Call(ctx context.Context, provider Capability, to, data string) (string, error) {
	raw, err := provider.Request(ctx, "eth_call", map[string]string{"to": to, "data": data}, "latest")
	if err != nil {
		return "", err
	}
	return decodeString(raw)
}

// SendTransaction submits a transaction and returns its hash.
func SendTransaction(ctx context.Context, provider Capability, from, to, data string) (string, error) {
	raw, err := provider.Request(ctx, "eth_sendTransaction", map[string]string{"from": from, "to": to, "data": data})
	if err != nil {
		return "", err
	}
	return decodeString(raw)
}

func decodeString(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", errEmptyResult
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("malformed provider result: %w", err)
	}
	return s, nil
}
