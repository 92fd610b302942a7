package webhook

import (
	"errors"

	"github.com/mschaaf17/ShippityApp/internal/core/domain/model/kernel"
	"github.com/mschaaf17/ShippityApp/internal/pkg/errs"
)

// ErrConfigIsNotConstructed is returned when a Config instance was not
// created through NewConfig or RestoreConfig.
var ErrConfigIsNotConstructed = errors.New("Config must be created via NewConfig constructor")

// Config is the registration of one partner webhook endpoint: where status
// updates are POSTed, the shared secret attached to each request, and
// whether delivery is currently enabled.
type Config struct {
	id          kernel.UUID
	name        string
	url         string
	secretToken string
	enabled     bool

	isConstructed bool
}

// NewConfig registers a partner webhook endpoint. Name identifies the
// partner; URL is the delivery target. The secret token is optional.
func NewConfig(id kernel.UUID, name, url, secretToken string, enabled bool) (*Config, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}

	return &Config{
		id:            id,
		name:          name,
		url:           url,
		secretToken:   secretToken,
		enabled:       enabled,
		isConstructed: true,
	}, nil
}

// RestoreConfig reconstructs a webhook configuration from persistence.
func RestoreConfig(id kernel.UUID, name, url, secretToken string, enabled bool) (*Config, error) {
	return NewConfig(id, name, url, secretToken, enabled)
}

// Validate ensures the Config was created via a constructor.
func (c *Config) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrConfigIsNotConstructed
	}
	return nil
}

// ID returns the configuration's surrogate identifier.
func (c *Config) ID() kernel.UUID { return c.id }

// Name returns the partner name this endpoint belongs to.
func (c *Config) Name() string { return c.name }

// URL returns the delivery target.
func (c *Config) URL() string { return c.url }

// SecretToken returns the shared secret, or empty when none is configured.
func (c *Config) SecretToken() string { return c.secretToken }

// Enabled reports whether deliveries to this endpoint are active.
func (c *Config) Enabled() bool { return c.enabled }

// Update replaces the endpoint settings. URL must stay non-empty.
func (c *Config) Update(url, secretToken string, enabled bool) error {
	if url == "" {
		return errs.NewValueIsRequiredError("url")
	}
	c.url = url
	c.secretToken = secretToken
	c.enabled = enabled
	return nil
}
