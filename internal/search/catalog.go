package search

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Symbol is one tradable instrument.
type Symbol struct {
	Ticker   string `yaml:"ticker" json:"ticker"`
	Name     string `yaml:"name" json:"name"`
	Exchange string `yaml:"exchange" json:"exchange"`
	Currency string `yaml:"currency" json:"currency"`
}

// Broker is one brokerage name known to the lookup.
type Broker struct {
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// Catalog is the lookup data for symbols and brokers.
type Catalog struct {
	Symbols []Symbol `yaml:"symbols"`
	Brokers []Broker `yaml:"brokers"`
}

// LoadCatalog reads a YAML catalog file. An empty path returns the
// built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening search catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// ParseCatalog decodes a YAML catalog and normalizes tickers.
func ParseCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding search catalog: %w", err)
	}
	for i := range c.Symbols {
		c.Symbols[i].Ticker = strings.ToUpper(strings.TrimSpace(c.Symbols[i].Ticker))
		if c.Symbols[i].Ticker == "" {
			return nil, fmt.Errorf("search catalog: symbol %d has no ticker", i)
		}
	}
	for i := range c.Brokers {
		if strings.TrimSpace(c.Brokers[i].Name) == "" {
			return nil, fmt.Errorf("search catalog: broker %d has no name", i)
		}
	}
	return &c, nil
}

// SearchSymbols ranks symbols by ticker or company name, whichever
// matches better.
func (c *Catalog) SearchSymbols(query string) []Result[Symbol] {
	return Rank(c.Symbols, query, func(s Symbol) string {
		return bestKey(query, s.Ticker, s.Name)
	})
}

// SearchBrokers ranks brokers by name or alias.
func (c *Catalog) SearchBrokers(query string) []Result[Broker] {
	return Rank(c.Brokers, query, func(b Broker) string {
		return bestKey(query, append([]string{b.Name}, b.Aliases...)...)
	})
}

// Tickers returns every ticker in catalog order.
func (c *Catalog) Tickers() []string {
	out := make([]string, len(c.Symbols))
	for i, s := range c.Symbols {
		out[i] = s.Ticker
	}
	return out
}

func bestKey(query string, keys ...string) string {
	best, bestScore := keys[0], Score(query, keys[0])
	for _, k := range keys[1:] {
		if s := Score(query, k); s > bestScore {
			best, bestScore = k, s
		}
	}
	return best
}
