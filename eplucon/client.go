package eplucon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// BaseURL is the production portal endpoint, used when no override is given.
const BaseURL = "https://portaal.eplucon.nl/api/v2"

// Client talks to the Eplucon e-control REST API. It does not own the
// injected http.Client, so closing or recycling connections is the caller's
// business, as is any timeout policy.
type Client struct {
	base       string
	apiToken   string
	httpClient *http.Client
}

func NewClient(apiToken string, endpoint string, httpClient *http.Client) *Client {
	if endpoint == "" {
		endpoint = BaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		base:       endpoint,
		apiToken:   apiToken,
		httpClient: httpClient,
	}
}

// GetDevices lists the modules linked to the account, in portal order.
func (c *Client) GetDevices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.get(ctx, "/econtrol/modules", &devices); err != nil {
		return nil, err
	}

	log.Debug().Int("devices", len(devices)).Msg("Retrieved device listing")

	return devices, nil
}

// GetRealtimeInfo fetches the current telemetry for one module.
func (c *Client) GetRealtimeInfo(ctx context.Context, moduleId int) (*RealtimeInfo, error) {
	realtimeInfo := &RealtimeInfo{}
	if err := c.get(ctx, fmt.Sprintf("/econtrol/modules/%v/get_realtime_info", moduleId), realtimeInfo); err != nil {
		return nil, err
	}

	return realtimeInfo, nil
}

// GetHeatloadingStatus fetches the heat-loading state for one module.
func (c *Client) GetHeatloadingStatus(ctx context.Context, moduleId int) (*HeatLoading, error) {
	heatLoading := &HeatLoading{}
	if err := c.get(ctx, fmt.Sprintf("/econtrol/modules/%v/heatloading_status", moduleId), heatLoading); err != nil {
		return nil, err
	}

	return heatLoading, nil
}

// get performs one GET against the portal, validates the response envelope
// and unmarshals its data object into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	url := c.base + path
	log.Debug().Str("url", url).Msg("Eplucon API request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProtocolError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	data, err := validateResponse(body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &DecodeError{Err: err}
	}

	return nil
}

// validateResponse checks the {"auth": ..., "data": ...} envelope and returns
// the raw data object. A missing auth key means the response didn't come from
// the API we expect; a falsy one means the token was rejected.
func validateResponse(body []byte) (json.RawMessage, error) {
	var envelope struct {
		Auth json.RawMessage `json:"auth"`
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &ProtocolError{Message: fmt.Sprintf("malformed envelope: %v", err)}
	}

	if envelope.Auth == nil {
		return nil, &ProtocolError{Message: "expecting auth key in response"}
	}

	if !truthy(envelope.Auth) {
		return nil, &AuthError{Message: "please check the given API key"}
	}

	return envelope.Data, nil
}

func truthy(raw json.RawMessage) bool {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}

	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []interface{}:
		return len(v) > 0
	case map[string]interface{}:
		return len(v) > 0
	case nil:
		return false
	default:
		return true
	}
}
