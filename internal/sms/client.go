package sms

import (
	"fmt"

	"github.com/oggyb/smsdev/internal/config"
	"github.com/oggyb/smsdev/internal/smsdev"
)

// NewSmsDevClient builds a gateway client from the SMSDEV_* settings.
// opts are applied after the configured ones.
func NewSmsDevClient(cfg *config.Config, opts ...smsdev.Option) (*smsdev.Client, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("smsdev client: %w", err)
	}

	all := append([]smsdev.Option{
		smsdev.WithBaseURL(cfg.SMSDev.BaseURL),
		smsdev.WithTimeout(cfg.SMSDev.Timeout),
		smsdev.WithLocation(loc),
		smsdev.WithDateFormat(cfg.SMSDev.DateFormat),
	}, opts...)

	c := smsdev.New(cfg.SMSDev.APIKey, all...).
		SetNumberValidation(cfg.SMSDev.NumberValidation)
	return c, nil
}
