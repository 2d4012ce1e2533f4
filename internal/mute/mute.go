// Package mute decides which senders never get a generated summary.
package mute

import (
	"strings"

	"go.uber.org/zap"
)

// Checker matches sender addresses against muted domains
type Checker struct {
	domains []string
	logger  *zap.Logger
}

// NewChecker creates a new mute checker
func NewChecker(domains []string, logger *zap.Logger) *Checker {
	normalized := make([]string, 0, len(domains))
	for _, domain := range domains {
		if d := strings.ToLower(strings.TrimSpace(domain)); d != "" {
			normalized = append(normalized, d)
		}
	}

	if len(normalized) > 0 && logger != nil {
		logger.Info("Initialized mute checker", zap.Strings("domains", normalized))
	}

	return &Checker{
		domains: normalized,
		logger:  logger,
	}
}

// IsMuted reports whether the sender's domain, or a parent of it, is muted.
// Senders shown by display name only are never muted.
func (c *Checker) IsMuted(sender string) bool {
	if c == nil || len(c.domains) == 0 {
		return false
	}

	at := strings.LastIndex(sender, "@")
	if at < 0 || at == len(sender)-1 {
		return false
	}
	domain := strings.ToLower(strings.Trim(sender[at+1:], " >"))

	for _, muted := range c.domains {
		if domain == muted || strings.HasSuffix(domain, "."+muted) {
			if c.logger != nil {
				c.logger.Debug("Sender is muted",
					zap.String("domain", domain),
					zap.String("sender", sender))
			}
			return true
		}
	}
	return false
}
