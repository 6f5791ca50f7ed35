package sched

import (
	"fmt"
	"os"
	"time"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/nanokern/sched/kernel"
	"github.com/nanokern/sched/service/trace"
	tracefs "github.com/nanokern/sched/service/trace/fs"
	"github.com/nanokern/sched/service/trace/memory"
)

// Trace vendors accepted by TraceConfig.Vendor.
const (
	TraceVendorNone   = "none"
	TraceVendorMemory = "memory"
	TraceVendorFs     = "fs"
)

// Config is a serialisable representation of the scheduler
// configuration. It can be populated from YAML or JSON; the zero value
// inherits the package defaults.
type Config struct {
	Trace     TraceConfig     `json:"trace" yaml:"trace"`
	Aging     AgingConfig     `json:"aging" yaml:"aging"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
}

// TraceConfig configures the diagnostic event service.
type TraceConfig struct {
	// Vendor selects the event destination: none, memory or fs.
	Vendor string `json:"vendor" yaml:"vendor"`

	// BaseURL is the destination directory for the fs vendor.
	BaseURL string `json:"baseURL,omitempty" yaml:"baseURL,omitempty"`

	// QueueBuffer bounds the in-flight event queue.
	QueueBuffer int `json:"queueBuffer,omitempty" yaml:"queueBuffer,omitempty"`

	// Retained bounds the event store of the memory vendor.
	Retained int `json:"retained,omitempty" yaml:"retained,omitempty"`
}

// AgingConfig configures the periodic aging runner.
type AgingConfig struct {
	// IntervalMs is the default period, in milliseconds, between aging
	// passes started by StartAging.
	IntervalMs int `json:"intervalMs" yaml:"intervalMs"`
}

// TelemetryConfig configures OpenTelemetry span export.
type TelemetryConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() *Config {
	return &Config{
		Trace: TraceConfig{
			Vendor:      TraceVendorMemory,
			QueueBuffer: 256,
			Retained:    1024,
		},
		Aging: AgingConfig{
			IntervalMs: 100,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "nanokern-sched",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	switch c.Trace.Vendor {
	case "", TraceVendorNone, TraceVendorMemory:
	case TraceVendorFs:
		if c.Trace.BaseURL == "" {
			return fmt.Errorf("trace.baseURL is required for the fs vendor")
		}
	default:
		return fmt.Errorf("unsupported trace vendor: %s", c.Trace.Vendor)
	}
	if c.Aging.IntervalMs < 0 {
		return fmt.Errorf("aging.intervalMs must not be negative")
	}
	return nil
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// NewFromConfig creates a scheduler from a declarative configuration.
// The returned store retains delivered events when the memory vendor is
// selected, and is nil otherwise.
func NewFromConfig(kctx *kernel.Context, switcher kernel.Switcher, config *Config, opts ...Option) (*Service, *memory.Store[trace.Event], error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, nil, err
	}

	var store *memory.Store[trace.Event]
	var traceOpts []trace.Option
	if config.Trace.QueueBuffer > 0 {
		traceOpts = append(traceOpts, trace.WithQueue(memory.NewQueue[trace.Event](memory.Config{QueueBuffer: config.Trace.QueueBuffer})))
	}

	switch config.Trace.Vendor {
	case TraceVendorMemory, "":
		store = memory.NewStore[trace.Event](config.Trace.Retained)
		traceOpts = append(traceOpts, trace.WithHandler(store.Add))
		opts = append(opts, WithTraceService(trace.New(traceOpts...)))
	case TraceVendorFs:
		writer, err := tracefs.NewWriter(afs.New(), tracefs.Config{BaseURL: config.Trace.BaseURL})
		if err != nil {
			return nil, nil, err
		}
		traceOpts = append(traceOpts, trace.WithHandler(writer.Handle))
		opts = append(opts, WithTraceService(trace.New(traceOpts...)))
	case TraceVendorNone:
	}

	if config.Telemetry.Enabled {
		opts = append(opts, WithTracing(config.Telemetry.ServiceName, config.Telemetry.ServiceVersion, config.Telemetry.OutputFile))
	}
	if config.Aging.IntervalMs > 0 {
		opts = append(opts, WithAgingInterval(time.Duration(config.Aging.IntervalMs)*time.Millisecond))
	}

	return New(kctx, switcher, opts...), store, nil
}
