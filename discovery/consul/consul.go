package consul

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/consul/api"

	"github.com/kbukum/healthreg/discovery"
	"github.com/kbukum/healthreg/logger"
)

// Provider implements discovery.CheckRegistry using the Consul agent API.
type Provider struct {
	mu     sync.RWMutex
	client *api.Client
	cfg    Config
	log    *logger.Logger
	stats  discovery.RegistryStats
}

func init() {
	discovery.RegisterProviderFactory(discovery.ProviderConsul, func(providerCfg any, log *logger.Logger) (discovery.CheckRegistry, error) {
		var cfg Config
		switch c := providerCfg.(type) {
		case *Config:
			if c != nil {
				cfg = *c
			}
		case Config:
			cfg = c
		case nil:
		default:
			return nil, fmt.Errorf("consul provider: unexpected config type %T", providerCfg)
		}
		return NewProvider(cfg, log)
	})
}

// NewProvider creates a Provider from the given Config.
func NewProvider(cfg Config, log *logger.Logger) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	apiCfg := api.DefaultConfig()
	apiCfg.Address = cfg.Address
	apiCfg.Scheme = cfg.Scheme
	apiCfg.Token = cfg.Token
	apiCfg.Namespace = cfg.Namespace
	apiCfg.Partition = cfg.Partition
	if cfg.Datacenter != "" {
		apiCfg.Datacenter = cfg.Datacenter
	}
	if cfg.TLS != nil && cfg.TLS.Enabled {
		apiCfg.TLSConfig = api.TLSConfig{
			Address:            cfg.TLS.ServerName,
			CAFile:             cfg.TLS.CACert,
			CAPath:             cfg.TLS.CAPath,
			CertFile:           cfg.TLS.ClientCert,
			KeyFile:            cfg.TLS.ClientKey,
			InsecureSkipVerify: cfg.TLS.InsecureSkipVerify,
		}
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: cfg.ConnectTimeout, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:        cfg.Pool.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Pool.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Pool.IdleConnTimeout,
	}
	httpClient, err := api.NewHttpClient(transport, apiCfg.TLSConfig)
	if err != nil {
		return nil, fmt.Errorf("consul http client: %w", err)
	}
	httpClient.Timeout = cfg.RequestTimeout
	apiCfg.HttpClient = httpClient

	client, err := api.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("consul client: %w", err)
	}

	return &Provider{
		client: client,
		cfg:    cfg,
		log:    log,
	}, nil
}

// RegisterScriptCheck registers a script check with the local agent.
func (c *Provider) RegisterScriptCheck(ctx context.Context, check *discovery.CheckInfo) error {
	return c.register(ctx, check, api.AgentServiceCheck{
		Args:     check.Args,
		Interval: check.Interval,
	})
}

// RegisterHTTPCheck registers an HTTP check with the local agent.
func (c *Provider) RegisterHTTPCheck(ctx context.Context, check *discovery.CheckInfo) error {
	return c.register(ctx, check, api.AgentServiceCheck{
		HTTP:     check.HTTP,
		Interval: check.Interval,
	})
}

func (c *Provider) register(ctx context.Context, check *discovery.CheckInfo, def api.AgentServiceCheck) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	reg := &api.AgentCheckRegistration{
		ID:                check.ID,
		Name:              check.Name,
		ServiceID:         check.ServiceID,
		AgentServiceCheck: def,
	}
	if err := c.client.Agent().CheckRegister(reg); err != nil {
		c.log.Error("failed to register check", map[string]interface{}{
			logger.FieldServiceCheckID: check.ID, logger.FieldError: err.Error(),
		})
		return fmt.Errorf("consul register check %q: %w", check.ID, err)
	}

	c.mu.Lock()
	c.stats.RegisteredChecks++
	c.stats.LastCall = time.Now()
	c.mu.Unlock()

	c.log.Debug("check registered", map[string]interface{}{
		logger.FieldServiceCheckID: check.ID, logger.FieldServiceID: check.ServiceID,
	})
	return nil
}

// DeregisterCheck removes a check from the local agent.
func (c *Provider) DeregisterCheck(ctx context.Context, checkID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.client.Agent().CheckDeregister(checkID); err != nil {
		return fmt.Errorf("consul deregister check %q: %w", checkID, err)
	}

	c.mu.Lock()
	c.stats.DeregisteredChecks++
	c.stats.LastCall = time.Now()
	c.mu.Unlock()

	c.log.Debug("check deregistered", map[string]interface{}{logger.FieldServiceCheckID: checkID})
	return nil
}

// Close is a no-op; the HTTP client does not require explicit closing.
func (c *Provider) Close() error {
	return nil
}

// Stats returns current registry statistics.
func (c *Provider) Stats() discovery.RegistryStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Compile-time checks.
var _ discovery.CheckRegistry = (*Provider)(nil)
