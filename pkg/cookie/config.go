package cookie

import "strings"

// Config holds cookie manager settings loadable from the environment.
// Secrets is a comma-separated list; the first entry is the active key,
// the rest verify cookies issued before a rotation.
type Config struct {
	Secrets string `env:"COOKIE_SECRETS,required"`
	Path    string `env:"COOKIE_PATH" envDefault:"/"`
	Domain  string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure  bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

// NewFromConfig creates a Manager from an env-loaded Config.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	var secrets []string
	for s := range strings.SplitSeq(cfg.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}

	configOpts := []Option{WithPath(cfg.Path)}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(true))
	}

	return New(secrets, append(configOpts, opts...)...)
}
