package refrate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Augustnerdaal/REALestate/internal/config"
	"github.com/Augustnerdaal/REALestate/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

var ErrNoRate = errors.New("no reference rate fetched yet")

// sourceNames labels each provider's rate in responses and reports
var sourceNames = map[string]string{
	config.RateProviderRiksbank: "Sveriges Riksbank policy rate",
	config.RateProviderCBR:      "Bank of Russia key rate",
}

// Client fetches the policy rate of the central bank behind the configured
// currency and keeps the latest value
type Client struct {
	provider  string
	url       string
	marginPct float64
	client    *http.Client
	log       *logrus.Logger
	now       func() time.Time

	mu     sync.RWMutex
	latest *models.ReferenceRate
}

// NewClient initializes a new reference rate client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		provider:  cfg.RateProvider,
		url:       cfg.RateURL,
		marginPct: cfg.RateMarginPct,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
		now: time.Now,
	}
}

// buildSOAPRequest creates a SOAP request for the key rate of the last 30 days
func (c *Client) buildSOAPRequest() string {
	now := c.now()
	fromDate := now.AddDate(0, 0, -30).Format("2006-01-02")
	toDate := now.Format("2006-01-02")
	return fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
		<soap12:Envelope xmlns:soap12="http://www.w3.org/2003/05/soap-envelope">
			<soap12:Body>
				<KeyRate xmlns="http://web.cbr.ru/">
					<fromDate>%s</fromDate>
					<ToDate>%s</ToDate>
				</KeyRate>
			</soap12:Body>
		</soap12:Envelope>`, fromDate, toDate)
}

// sendRequest posts the SOAP request and returns the raw response body
func (c *Client) sendRequest(ctx context.Context, soapRequest string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBufferString(soapRequest))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/soap+xml; charset=utf-8")
	req.Header.Set("SOAPAction", "http://web.cbr.ru/KeyRate")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debugf("Reference rate XML response: %s", string(body))
	return body, nil
}

// riksbankObservation is one point of a Riksbank SWEA series
type riksbankObservation struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// fetchRiksbank reads the latest observation of the policy rate series
func (c *Client) fetchRiksbank(ctx context.Context) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var obs riksbankObservation
	if err := json.NewDecoder(resp.Body).Decode(&obs); err != nil {
		return 0, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if obs.Value == nil {
		return 0, fmt.Errorf("no policy rate value in response")
	}
	c.log.Debugf("Riksbank policy rate %.2f%% observed on %s", *obs.Value, obs.Date)
	return *obs.Value, nil
}

// fetchCBR requests the key rate of the last 30 days over SOAP
func (c *Client) fetchCBR(ctx context.Context) (float64, error) {
	body, err := c.sendRequest(ctx, c.buildSOAPRequest())
	if err != nil {
		return 0, err
	}
	return parseXMLResponse(body)
}

// parseXMLResponse extracts the newest rate, which the service lists first
func parseXMLResponse(rawBody []byte) (float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return 0, fmt.Errorf("failed to parse XML: %w", err)
	}

	krElements := doc.FindElements("//diffgram/KeyRate/KR")
	if len(krElements) == 0 {
		return 0, fmt.Errorf("no key rate data found in XML")
	}

	rateElement := krElements[0].FindElement("./Rate")
	if rateElement == nil {
		return 0, fmt.Errorf("rate element not found in XML")
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateElement.Text()), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse rate: %w", err)
	}
	return rate, nil
}

// Refresh fetches the policy rate, adds the lender margin and caches the result
func (c *Client) Refresh(ctx context.Context) (models.ReferenceRate, error) {
	var (
		policy float64
		err    error
	)
	switch c.provider {
	case config.RateProviderCBR:
		policy, err = c.fetchCBR(ctx)
	case config.RateProviderRiksbank:
		policy, err = c.fetchRiksbank(ctx)
	default:
		err = fmt.Errorf("unknown rate provider %q", c.provider)
	}
	if err != nil {
		return models.ReferenceRate{}, err
	}

	rate := models.ReferenceRate{
		Source:           sourceNames[c.provider],
		PolicyRatePct:    policy,
		MarginPct:        c.marginPct,
		SuggestedRatePct: policy + c.marginPct,
		FetchedAt:        c.now().UTC(),
	}
	c.mu.Lock()
	c.latest = &rate
	c.mu.Unlock()

	c.log.Infof("Retrieved %s: %.2f%% (suggested loan rate %.2f%% with %.2f%% margin)", rate.Source, policy, rate.SuggestedRatePct, c.marginPct)
	return rate, nil
}

// Latest returns the cached rate, or ErrNoRate before the first refresh
func (c *Client) Latest() (models.ReferenceRate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return models.ReferenceRate{}, ErrNoRate
	}
	return *c.latest, nil
}
