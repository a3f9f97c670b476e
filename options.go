package esdex

import (
	"net/http"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addresses          []string
	username           string
	password           string
	insecureSkipVerify bool
	transport          http.RoundTripper

	maxBatchSize int

	logger *zap.Logger
}

// WithAddresses sets the engine node addresses. At least one is required.
func WithAddresses(addrs ...string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addresses = addrs
	})
}

// WithBasicAuth sets the engine credentials.
func WithBasicAuth(username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.username = username
		c.password = password
	})
}

// WithInsecureSkipTLSVerify disables certificate verification.
// Only for dev clusters with self-signed certificates.
func WithInsecureSkipTLSVerify() Option {
	return optionFunc(func(c *clientConfig) {
		c.insecureSkipVerify = true
	})
}

// WithTransport overrides the HTTP transport (tests inject fakes here).
func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *clientConfig) {
		c.transport = rt
	})
}

// WithMaxBatchSize sets the maximum number of documents per bulk insert.
// Default: 1000.
func WithMaxBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxBatchSize = size
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
