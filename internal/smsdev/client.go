// Package smsdev is a client for the SmsDev (smsdev.com.br) SMS gateway:
// sending messages, reading the inbox and checking the account balance.
//
// A Client is not safe for concurrent use. It keeps the last decoded
// response (see Result) and a pending inbox filter between calls; callers
// sharing one across goroutines must serialize access.
package smsdev

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
	_ "time/tzdata" // America/Sao_Paulo must resolve without system zoneinfo

	"github.com/oggyb/smsdev/internal/phone"
	"github.com/oggyb/smsdev/internal/transport"
)

const (
	// BaseURL is the versioned root of the gateway API.
	BaseURL = "https://api.smsdev.com.br/v1"

	// EnvAPIKey is consulted when New is called without a key.
	EnvAPIKey = "SMSDEV_API_KEY"

	// APITimeZone is the only timezone the gateway speaks.
	APITimeZone = "America/Sao_Paulo"

	// DefaultDateFormat renders and reads dates as Unix epoch seconds.
	DefaultDateFormat = "U"

	// messageType 9 is the gateway's long-code SMS route.
	messageType = 9

	statusOK = "OK"
)

var apiLocation = func() *time.Location {
	loc, err := time.LoadLocation(APITimeZone)
	if err != nil {
		panic(fmt.Sprintf("smsdev: load %s: %v", APITimeZone, err))
	}
	return loc
}()

// Client talks to the SmsDev gateway.
type Client struct {
	apiKey string

	baseURL   string
	timeout   time.Duration
	transport transport.Transport
	validator phone.Validator

	validate   bool
	dateFormat string
	loc        *time.Location

	filter Filter
	result any
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithBaseURL points the default transport somewhere other than BaseURL.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithTimeout bounds each request made by the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithValidator replaces the recipient validator used when number
// validation is enabled.
func WithValidator(v phone.Validator) Option {
	return func(c *Client) { c.validator = v }
}

// WithLocation sets the timezone dates are presented and read in.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithDateFormat sets the initial date format, see SetDateFormat.
func WithDateFormat(layout string) Option {
	return func(c *Client) { c.dateFormat = layout }
}

// New creates a client. An empty apiKey falls back to $SMSDEV_API_KEY.
func New(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    BaseURL,
		validator:  phone.BrazilMobile{},
		validate:   true,
		dateFormat: DefaultDateFormat,
		loc:        time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = BaseURL
	}
	if c.transport == nil {
		c.transport = transport.NewHTTPTransport(c.baseURL, c.timeout)
	}
	if c.validator == nil {
		c.validator = phone.Passthrough{}
	}
	if c.loc == nil {
		c.loc = time.Local
	}
	if c.dateFormat == "" {
		c.dateFormat = DefaultDateFormat
	}

	c.filter = c.NewFilter()
	return c
}

// SetDateFormat changes the PHP date() style layout used both to read filter
// dates and to render Messages. It affects later calls only.
func (c *Client) SetDateFormat(layout string) *Client {
	c.dateFormat = layout
	return c
}

// SetNumberValidation toggles local recipient validation in Send.
func (c *Client) SetNumberValidation(on bool) *Client {
	c.validate = on
	return c
}

// Location returns the timezone dates are presented in.
func (c *Client) Location() *time.Location {
	return c.loc
}

// Result returns the last decoded response: map[string]any, []any, or nil
// when the last request failed.
func (c *Client) Result() any {
	return c.result
}

// Send submits an SMS. A nil error means only that the gateway queued the
// message; delivery is asynchronous. refer is echoed back by the gateway and
// is omitted when empty.
func (c *Client) Send(ctx context.Context, number, message, refer string) error {
	c.result = nil

	if c.validate {
		normalized, err := c.validator.Normalize(number)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidNumber, err)
		}
		number = normalized
	}

	body := sendRequest{
		Key:    c.apiKey,
		Type:   messageType,
		Number: number,
		Msg:    message,
		Refer:  refer,
	}

	if err := c.do(ctx, http.MethodPost, "/send", body); err != nil {
		return err
	}

	obj, ok := c.result.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: send returned %T", ErrUnexpectedResponse, c.result)
	}
	if apiErr := apiErrorFrom(obj); apiErr != nil {
		return apiErr
	}

	return nil
}

// Balance returns the remaining credit in BRL cents. It returns 0 on any
// failure, and 0 with a nil error when the gateway omits the figure.
func (c *Client) Balance(ctx context.Context) (int, error) {
	body := balanceRequest{Key: c.apiKey, Action: "saldo"}

	if err := c.do(ctx, http.MethodGet, "/balance", body); err != nil {
		return 0, err
	}

	obj, ok := c.result.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: balance returned %T", ErrUnexpectedResponse, c.result)
	}

	raw, ok := obj["saldo_sms"]
	if !ok {
		if apiErr := apiErrorFrom(obj); apiErr != nil && apiErr.Situacao != "" {
			return 0, apiErr
		}
		return 0, nil
	}

	balance, err := intValue(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: saldo_sms %v", ErrUnexpectedResponse, raw)
	}
	return balance, nil
}

// NewFilter returns an empty filter bound to the client's current date
// format and location.
func (c *Client) NewFilter() Filter {
	return NewFilter(c.dateFormat, c.loc)
}

// SetFilter resets the pending filter to match every message.
func (c *Client) SetFilter() *Client {
	c.filter = c.NewFilter()
	return c
}

// IsUnread restricts the pending filter to unread messages.
func (c *Client) IsUnread() *Client {
	c.filter = c.filter.Unread()
	return c
}

// ByID restricts the pending filter to one message id. Non-positive ids are ignored.
func (c *Client) ByID(id int) *Client {
	c.filter = c.filter.ByID(id)
	return c
}

// DateFrom sets the pending filter's lower date bound, read with the current
// date format. Unparsable input is ignored.
func (c *Client) DateFrom(date string) *Client {
	c.filter = c.filter.In(c.dateFormat, c.loc).DateFrom(date)
	return c
}

// DateTo sets the pending filter's upper date bound, read with the current
// date format. Unparsable input is ignored.
func (c *Client) DateTo(date string) *Client {
	c.filter = c.filter.In(c.dateFormat, c.loc).DateTo(date)
	return c
}

// DateBetween sets both bounds of the pending filter.
func (c *Client) DateBetween(from, to string) *Client {
	return c.DateFrom(from).DateTo(to)
}

// PendingFilter returns the filter the next Fetch will use.
func (c *Client) PendingFilter() Filter {
	return c.filter
}

// Fetch queries the inbox with the pending filter, then resets the pending
// filter whatever the outcome: filters apply to exactly one Fetch.
func (c *Client) Fetch(ctx context.Context) error {
	f := c.filter
	defer c.SetFilter()

	return c.FetchWith(ctx, f)
}

// FetchWith queries the inbox with f. The pending filter is left untouched.
//
// Success is structural: any decoded JSON array or object is accepted, an
// ERRO object included, and the content is left to Messages and Result.
func (c *Client) FetchWith(ctx context.Context, f Filter) error {
	body := f.Query()
	body["key"] = c.apiKey

	return c.do(ctx, http.MethodGet, "/inbox", body)
}

// ResultError returns the *APIError carried by the last result when it is an
// object with a non-OK situacao, and nil otherwise. Fetch does not fail on
// such a body, so callers that need to tell a rejected key from an empty
// inbox check here.
func (c *Client) ResultError() error {
	obj, ok := c.result.(map[string]any)
	if !ok {
		return nil
	}
	if apiErr := apiErrorFrom(obj); apiErr != nil && apiErr.Situacao != "" {
		return apiErr
	}
	return nil
}

// Messages projects the last Fetch result into received messages, with dates
// converted to the client's location and date format. It makes no request.
func (c *Client) Messages() []Message {
	return parseMessages(c.result, c.dateFormat, c.loc)
}

// do sends body as JSON and stores the decoded response in c.result. The
// previous result is always discarded first.
func (c *Client) do(ctx context.Context, method, path string, body any) error {
	c.result = nil

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", path, err)
	}

	raw, err := c.transport.Do(ctx, transport.Request{
		Method: method,
		Path:   path,
		Header: http.Header{"Accept": []string{"application/json"}},
		Body:   payload,
	})
	if err != nil {
		return fmt.Errorf("smsdev %s: %w", path, err)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnexpectedResponse, path, err)
	}

	switch decoded.(type) {
	case map[string]any, []any:
		c.result = decoded
		return nil
	default:
		return fmt.Errorf("%w: %s returned %T", ErrUnexpectedResponse, path, decoded)
	}
}

type sendRequest struct {
	Key    string `json:"key"`
	Type   int    `json:"type"`
	Number string `json:"number"`
	Msg    string `json:"msg"`
	Refer  string `json:"refer,omitempty"`
}

type balanceRequest struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}
