package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/logger"

	"wheeladmin/internal/errorx"
)

// DefaultBnRegistrationURL is the boundary node custom domain registration
// endpoint.
const DefaultBnRegistrationURL = "https://icp0.io/registrations"

const mockLatency = time.Second

// BnRegistrationState is the registration state reported by the boundary
// nodes. Failures carry a message in FailedMessage.
type BnRegistrationState struct {
	Name          string
	FailedMessage string
}

const (
	BnStatePendingOrder             = "PendingOrder"
	BnStatePendingChallengeResponse = "PendingChallengeResponse"
	BnStatePendingAcmeApproval      = "PendingAcmeApproval"
	BnStateAvailable                = "Available"
	BnStateFailed                   = "Failed"
)

func (s BnRegistrationState) IsAvailable() bool {
	return s.Name == BnStateAvailable
}

func (s BnRegistrationState) IsFailed() bool {
	return s.Name == BnStateFailed
}

// The state is either a bare string or {"Failed": "message"}.
func (s *BnRegistrationState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = BnRegistrationState{Name: name}
		return nil
	}
	var failed struct {
		Failed *string `json:"Failed"`
	}
	if err := json.Unmarshal(data, &failed); err != nil {
		return err
	}
	if failed.Failed == nil {
		return fmt.Errorf("unknown registration state %s", data)
	}
	*s = BnRegistrationState{Name: BnStateFailed, FailedMessage: *failed.Failed}
	return nil
}

func (s BnRegistrationState) MarshalJSON() ([]byte, error) {
	if s.FailedMessage != "" {
		return json.Marshal(map[string]string{BnStateFailed: s.FailedMessage})
	}
	return json.Marshal(s.Name)
}

type BnRegistration struct {
	Name     string              `json:"name"`
	Canister string              `json:"canister"`
	State    BnRegistrationState `json:"state"`
}

type BnRegistrar interface {
	CreateRegistration(ctx context.Context, name string) (string, error)
	GetRegistration(ctx context.Context, requestID string) (BnRegistration, error)
	DeleteRegistration(ctx context.Context, requestID string) error
}

// BnRegistrationClient talks to the boundary node registration API. In mock
// mode no request leaves the process.
type BnRegistrationClient struct {
	url  string
	http *http.Client
	mock bool
}

func NewBnRegistrationClient(url string, httpClient *http.Client, mock bool) *BnRegistrationClient {
	if url == "" {
		url = DefaultBnRegistrationURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &BnRegistrationClient{url: strings.TrimRight(url, "/"), http: httpClient, mock: mock}
}

func (c *BnRegistrationClient) CreateRegistration(ctx context.Context, name string) (string, error) {
	if c.mock {
		logger.Warningf("mock create bn registration: %s", name)
		if err := sleep(ctx, mockLatency); err != nil {
			return "", err
		}
		return "mock-id", nil
	}

	body, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", err
	}
	var res struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.url, body, &res); err != nil {
		return "", err
	}
	if res.ID == "" {
		return "", errorx.NewInternal("invalid response body: missing registration id")
	}
	return res.ID, nil
}

func (c *BnRegistrationClient) GetRegistration(ctx context.Context, requestID string) (BnRegistration, error) {
	if c.mock {
		logger.Warningf("mock get bn registration: %s", requestID)
		if err := sleep(ctx, mockLatency); err != nil {
			return BnRegistration{}, err
		}
		return BnRegistration{
			Name:     "mock-domain.com",
			Canister: "mock-canister",
			State:    BnRegistrationState{Name: BnStatePendingOrder},
		}, nil
	}

	var res BnRegistration
	err := c.do(ctx, http.MethodGet, c.url+"/"+requestID, nil, &res)
	return res, err
}

func (c *BnRegistrationClient) DeleteRegistration(ctx context.Context, requestID string) error {
	if c.mock {
		logger.Warningf("mock delete bn registration: %s", requestID)
		return sleep(ctx, mockLatency)
	}
	return c.do(ctx, http.MethodDelete, c.url+"/"+requestID, nil, nil)
}

func (c *BnRegistrationClient) do(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errorx.NewInternal("%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return errorx.Err{Code: errorx.Code(resp.StatusCode), Message: string(msg)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errorx.NewInternal("decode registration response: %v", err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
