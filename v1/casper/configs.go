package casper

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"google.golang.org/grpc"
)

const (
	// DefaultHTTPPort is the port of the Casper HTTP API.
	DefaultHTTPPort = 8080

	// DefaultGRPCPort is the port of the Casper matrix streaming service.
	DefaultGRPCPort = 50051

	// DefaultChunkFloats is the number of float values carried by one data frame.
	DefaultChunkFloats = 64 * 1024

	// DefaultMaxSendMsgSize bounds a single outgoing gRPC message.
	DefaultMaxSendMsgSize = 16 * 1024 * 1024

	// DefaultMaxResponseBytes bounds the body of a single HTTP response.
	DefaultMaxResponseBytes = 64 * 1024 * 1024

	defaultUserAgent = "casper-go/1"
)

// Config holds connection and behavior settings for the Casper client.
//
// Example (builder style):
//
//	cfg := casper.FromHost("localhost", 8080, 50051).
//	    WithTimeout(10 * time.Second).
//	    WithChunkFloats(32 * 1024)
type Config struct {
	// Base URL of the HTTP API, e.g. "http://localhost:8080".
	Endpoint string `yaml:"endpoint" envconfig:"CASPER_ENDPOINT"`

	// host:port of the gRPC matrix service, e.g. "localhost:50051".
	GRPCAddress string `yaml:"grpc_address" envconfig:"CASPER_GRPC_ADDRESS"`

	// Per-request timeout of HTTP calls. Uploads are bounded by their context only.
	Timeout time.Duration `yaml:"timeout" envconfig:"CASPER_TIMEOUT"`

	// Default number of float values per data frame for matrix uploads.
	ChunkFloats int `yaml:"chunk_floats" envconfig:"CASPER_CHUNK_FLOATS"`

	// Maximum size of one outgoing gRPC message in bytes.
	MaxSendMsgSize int `yaml:"max_send_msg_size" envconfig:"CASPER_MAX_SEND_MSG_SIZE"`

	// Maximum size of an HTTP response body in bytes.
	MaxResponseBytes int64 `yaml:"max_response_bytes" envconfig:"CASPER_MAX_RESPONSE_BYTES"`

	// gRPC keepalive ping interval; zero disables client pings.
	KeepAliveTime time.Duration `yaml:"keep_alive_time" envconfig:"CASPER_KEEP_ALIVE_TIME"`

	// How long to wait for a keepalive ack before closing the connection.
	KeepAliveTimeout time.Duration `yaml:"keep_alive_timeout" envconfig:"CASPER_KEEP_ALIVE_TIMEOUT"`

	// Instrument HTTP calls with otelhttp and propagate trace context on streams.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"CASPER_ENABLE_TRACING"`

	// Value of the User-Agent header.
	UserAgent string `yaml:"user_agent" envconfig:"CASPER_USER_AGENT"`

	// Logger receives client diagnostics. Defaults to a no-op logger.
	Logger Logger `yaml:"-" ignored:"true"`

	// HTTPClient replaces the internally built *http.Client (tests, custom transports).
	HTTPClient *http.Client `yaml:"-" ignored:"true"`

	// DialOptions are appended to the gRPC dial options (e.g. a bufconn dialer).
	DialOptions []grpc.DialOption `yaml:"-" ignored:"true"`
}

// DefaultConfig returns a config pointing at a local server on the default ports.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:         fmt.Sprintf("http://localhost:%d", DefaultHTTPPort),
		GRPCAddress:      fmt.Sprintf("localhost:%d", DefaultGRPCPort),
		Timeout:          30 * time.Second,
		ChunkFloats:      DefaultChunkFloats,
		MaxSendMsgSize:   DefaultMaxSendMsgSize,
		MaxResponseBytes: DefaultMaxResponseBytes,
		KeepAliveTime:    30 * time.Second,
		KeepAliveTimeout: 10 * time.Second,
		UserAgent:        defaultUserAgent,
	}
}

// FromHost returns a default config for a server reachable at host.
func FromHost(host string, httpPort, grpcPort int) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = fmt.Sprintf("http://%s:%d", host, httpPort)
	cfg.GRPCAddress = fmt.Sprintf("%s:%d", host, grpcPort)
	return cfg
}

// NewConfigFromEnv loads CASPER_* variables over DefaultConfig.
func NewConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load casper config from env: %w", err)
	}
	return cfg, nil
}

func (c *Config) WithEndpoint(endpoint string) *Config {
	c.Endpoint = endpoint
	return c
}

func (c *Config) WithGRPCAddress(addr string) *Config {
	c.GRPCAddress = addr
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithChunkFloats(n int) *Config {
	c.ChunkFloats = n
	return c
}

func (c *Config) WithMaxSendMsgSize(n int) *Config {
	c.MaxSendMsgSize = n
	return c
}

func (c *Config) WithMaxResponseBytes(n int64) *Config {
	c.MaxResponseBytes = n
	return c
}

func (c *Config) WithTracing(enabled bool) *Config {
	c.EnableTracing = enabled
	return c
}

func (c *Config) WithLogger(l Logger) *Config {
	c.Logger = l
	return c
}

func (c *Config) WithHTTPClient(hc *http.Client) *Config {
	c.HTTPClient = hc
	return c
}

func (c *Config) WithDialOptions(opts ...grpc.DialOption) *Config {
	c.DialOptions = append(c.DialOptions, opts...)
	return c
}

// Validate checks that the config can produce a working client.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("casper config: endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("casper config: invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("casper config: endpoint %q must use http or https", c.Endpoint)
	}
	if c.GRPCAddress == "" {
		return fmt.Errorf("casper config: grpc address is required")
	}
	if c.ChunkFloats < 1 {
		return fmt.Errorf("casper config: chunk_floats must be at least 1, got %d", c.ChunkFloats)
	}
	if c.MaxResponseBytes < 0 {
		return fmt.Errorf("casper config: max_response_bytes must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("casper config: timeout must not be negative")
	}
	return nil
}
