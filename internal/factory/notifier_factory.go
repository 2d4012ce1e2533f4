package factory

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/adapters/notify"
	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/ports"
)

// NotifierFactory creates digest notifiers based on configuration
type NotifierFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	out     io.Writer
	verbose bool
}

// NewNotifierFactory creates a new notifier factory. out receives console
// digests; nil means stdout.
func NewNotifierFactory(cfg *config.Config, logger *zap.Logger, out io.Writer, verbose bool) *NotifierFactory {
	return &NotifierFactory{
		cfg:     cfg,
		logger:  logger,
		out:     out,
		verbose: verbose,
	}
}

// CreateNotifier creates the configured notifier
func (f *NotifierFactory) CreateNotifier() (ports.Notifier, error) {
	notifyType := f.cfg.GetString("notify.type")

	switch notifyType {
	case "console":
		return notify.NewConsoleNotifier(f.out, f.logger, f.verbose), nil
	case "smtp":
		smtpCfg := f.cfg.GetSMTP()
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Address:  smtpCfg.Address,
			Username: smtpCfg.Username,
			Password: smtpCfg.Password,
			From:     smtpCfg.From,
			To:       smtpCfg.To,
			Subject:  smtpCfg.Subject,
		}, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported notifier type: %s", notifyType)
	}
}
