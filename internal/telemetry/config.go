package telemetry

import (
	"net"

	"codeberg.org/mutker/vitalstats/internal/errors"
)

const defaultPath = "/metrics"

type Config struct {
	// Addr is the listen address of the exposition endpoint. Empty disables it.
	Addr string
	Path string
}

func DefaultConfig() Config {
	return Config{
		Path: defaultPath,
	}
}

func (c Config) Enabled() bool {
	return c.Addr != ""
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if !c.Enabled() {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return errFactory.Wrap(ErrInvalidAddr, err)
	}
	if c.Path == "" || c.Path[0] != '/' {
		return errFactory.WithData(ErrInvalidConfig, c.Path)
	}
	return nil
}
