// Package pricing resolves token USD rates for wallet balance display.
// Rates come from an optional quote endpoint and fall back to the static
// table when the endpoint is absent or failing.
package pricing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
)

var staticRates = map[string]float64{
	"MYTH":  0.02,
	"PENGU": 0.15,
	"ETH":   2400,
	"SOL":   95,
}

type Oracle struct {
	client   *httpclient.Client
	endpoint string

	mu    sync.RWMutex
	rates map[string]float64
}

func NewOracle(endpoint string) *Oracle {
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(5*time.Second),
		httpclient.WithRetryCount(2),
	)

	rates := make(map[string]float64, len(staticRates))
	for symbol, rate := range staticRates {
		rates[symbol] = rate
	}

	return &Oracle{
		client:   client,
		endpoint: endpoint,
		rates:    rates,
	}
}

// USDRate returns the last known rate for the symbol, 0 when unknown.
func (o *Oracle) USDRate(symbol string) float64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rates[strings.ToUpper(symbol)]
}

// USDValue converts a display amount of the token into dollars.
func (o *Oracle) USDValue(symbol string, amount float64) float64 {
	return amount * o.USDRate(symbol)
}

// Refresh pulls the quote endpoint and merges fetched rates over the
// static table. A missing endpoint is not an error.
func (o *Oracle) Refresh() error {
	if o.endpoint == "" {
		return nil
	}

	res, err := o.client.Get(o.endpoint, http.Header{})
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("quote endpoint status %d", res.StatusCode)
	}

	var fetched map[string]float64
	if err := json.NewDecoder(res.Body).Decode(&fetched); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	for symbol, rate := range fetched {
		o.rates[strings.ToUpper(symbol)] = rate
	}
	return nil
}
