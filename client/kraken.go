package client

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kraken_dca/models"

	"go.uber.org/zap"
)

// DefaultBaseURL is Kraken's REST API host.
const DefaultBaseURL = "https://api.kraken.com"

const (
	tickerPath     = "/0/public/Ticker"
	assetPairsPath = "/0/public/AssetPairs"
	balancePath    = "/0/private/Balance"
	addOrderPath   = "/0/private/AddOrder"
)

// KrakenClient performs public and private calls against the Kraken REST API
// and derives limit orders from live ticker data. Credentials are immutable
// for the lifetime of the client. Calls are synchronous; no state is shared
// between them.
type KrakenClient struct {
	creds   models.Credentials
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates an authenticated client. An empty baseURL selects the production
// API host.
func New(creds models.Credentials, baseURL string, logger *zap.Logger) *KrakenClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &KrakenClient{
		creds:   creds,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

// NewPublic creates a client restricted to public endpoints. Private calls go
// out unsigned, without authentication headers.
func NewPublic(baseURL string, logger *zap.Logger) *KrakenClient {
	return New(models.Credentials{}, baseURL, logger)
}

// apiResponse is Kraken's uniform response envelope: error is empty on
// success, result is endpoint-specific.
type apiResponse struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// FetchPublic issues a GET against a public endpoint, without authentication
// headers.
func (c *KrakenClient) FetchPublic(path string, query url.Values) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newTransportError("building request for "+path, err)
	}
	return c.do(req)
}

// FetchPrivate issues an authenticated call. A caller-supplied "nonce" body
// field is reused; otherwise a fresh one is generated. The body is marshalled
// once and those exact bytes are both signed and transmitted. An empty public
// key switches the client to unauthenticated mode: no nonce, no signing
// headers.
func (c *KrakenClient) FetchPrivate(method, path string, body map[string]string) (json.RawMessage, error) {
	signing := c.creds.PublicKey != ""
	if signing {
		if c.creds.PrivateKey == "" {
			return nil, newConfigurationError("private key is empty, cannot sign "+path, nil)
		}
		if body == nil {
			body = map[string]string{}
		}
		if _, ok := body["nonce"]; !ok {
			body["nonce"] = Nonce()
		}
	}

	var payload []byte
	if len(body) > 0 {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, newTransportError("encoding request body for "+path, err)
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, newTransportError("building request for "+path, err)
	}
	if len(payload) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if signing {
		sig, err := signature(c.creds.PrivateKey, path, body["nonce"], string(payload))
		if err != nil {
			return nil, newConfigurationError("signing request for "+path, err)
		}
		req.Header.Set("API-Key", c.creds.PublicKey)
		req.Header.Set("API-Sign", sig)
	}
	return c.do(req)
}

// do executes the request and unwraps the response envelope.
func (c *KrakenClient) do(req *http.Request) (json.RawMessage, error) {
	c.logger.Debug("exchange request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, newTransportError("request to "+req.URL.Path+" failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError("reading response from "+req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newTransportError(fmt.Sprintf("unexpected status %d from %s", resp.StatusCode, req.URL.Path), nil)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, newTransportError("decoding response from "+req.URL.Path, err)
	}
	if len(parsed.Error) > 0 {
		return nil, newExchangeError("error response from "+req.URL.Path, parsed.Error)
	}
	return parsed.Result, nil
}

// Nonce returns the current time in milliseconds since the Unix epoch as a
// decimal string. Millisecond resolution means two calls within the same
// millisecond yield equal nonces; Kraken may reject the second as a replay.
func Nonce() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

// signature computes the API-Sign value for a private request:
//
//	base64(HMAC-SHA512(base64decode(privateKey), path || SHA256(nonce || payload)))
//
// where payload is the URL-encoded query string (if any) concatenated with the
// serialized request body. Pure function of its inputs.
func signature(privateKey, path, nonce, payload string) (string, error) {
	key, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		return "", fmt.Errorf("decoding private key: %w", err)
	}
	digest := sha256.Sum256([]byte(nonce + payload))
	mac := hmac.New(sha512.New, key)
	mac.Write([]byte(path))
	mac.Write(digest[:])
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// GetAssetPairs returns the tradable asset pairs, keyed by pair name.
func (c *KrakenClient) GetAssetPairs() (map[string]json.RawMessage, error) {
	result, err := c.FetchPublic(assetPairsPath, nil)
	if err != nil {
		return nil, err
	}
	var pairs map[string]json.RawMessage
	if err := json.Unmarshal(result, &pairs); err != nil {
		return nil, newTransportError("decoding asset pairs result", err)
	}
	return pairs, nil
}

// GetAccountBalance returns the account's balances as asset -> amount strings.
func (c *KrakenClient) GetAccountBalance() (map[string]string, error) {
	result, err := c.FetchPrivate(http.MethodPost, balancePath, nil)
	if err != nil {
		return nil, err
	}
	var balances map[string]string
	if err := json.Unmarshal(result, &balances); err != nil {
		return nil, newTransportError("decoding balance result", err)
	}
	return balances, nil
}
