package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"brawl-tracker/internal/battlelog"
	"brawl-tracker/internal/config"
	"brawl-tracker/internal/constants"
	"brawl-tracker/internal/domain/value"

	"github.com/valyala/fasthttp"
)

var ErrNotFound = errors.New("not found")

// Error is a non-200 answer from the upstream API.
type Error struct {
	StatusCode int
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("API error: %d", e.StatusCode)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == fasthttp.StatusNotFound
}

type Client struct {
	token       string
	baseURL     string
	client      *fasthttp.Client
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		token:   cfg.APIToken,
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		client: &fasthttp.Client{
			MaxConnsPerHost:        100,
			ReadTimeout:            constants.ExternalAPITimeout,
			WriteTimeout:           constants.ExternalAPITimeout,
			MaxIdleConnDuration:    1 * time.Minute,
			DisablePathNormalizing: true,
		},
		rateLimit: RateLimitInfo{
			Limit:     10,
			Remaining: 10,
			Reset:     1,
			UpdatedAt: time.Now(),
		},
	}
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

func (c *Client) GetPlayer(ctx context.Context, tag value.PlayerTag) (*PlayerResponse, error) {
	return doRequest[PlayerResponse](ctx, c, c.playerURL(tag, ""))
}

// GetBattleLog returns the most recent page of tag's battle log, newest first.
func (c *Client) GetBattleLog(ctx context.Context, tag value.PlayerTag) ([]battlelog.Entry, error) {
	page, err := doRequest[BattleLogResponse](ctx, c, c.playerURL(tag, "/battlelog"))
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

func (c *Client) playerURL(tag value.PlayerTag, suffix string) string {
	return fmt.Sprintf("%s/players/%s%s", c.baseURL, url.PathEscape(tag.String()), suffix)
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+client.token)
	req.Header.Set("Accept", "application/json")

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	client.updateRateLimit(resp)

	if resp.StatusCode() != fasthttp.StatusOK {
		apiErr := &Error{StatusCode: resp.StatusCode()}
		_ = json.Unmarshal(resp.Body(), apiErr)
		return nil, apiErr
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

type BattleLogResponse struct {
	Items  []battlelog.Entry `json:"items"`
	Paging struct {
		Cursors struct {
			Before string `json:"before,omitempty"`
			After  string `json:"after,omitempty"`
		} `json:"cursors"`
	} `json:"paging"`
}

type PlayerResponse struct {
	Tag                   string          `json:"tag"`
	Name                  string          `json:"name"`
	NameColor             string          `json:"nameColor"`
	Trophies              int             `json:"trophies"`
	HighestTrophies       int             `json:"highestTrophies"`
	ExpLevel              int             `json:"expLevel"`
	ThreeVsThreeVictories int             `json:"3vs3Victories"`
	SoloVictories         int             `json:"soloVictories"`
	DuoVictories          int             `json:"duoVictories"`
	Club                  PlayerClub      `json:"club"`
	Brawlers              []PlayerBrawler `json:"brawlers"`
}

type PlayerClub struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type PlayerBrawler struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Power           int    `json:"power"`
	Rank            int    `json:"rank"`
	Trophies        int    `json:"trophies"`
	HighestTrophies int    `json:"highestTrophies"`
}
