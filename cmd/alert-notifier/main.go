// Command alert-notifier posts CloudWatch alarms to a Slack compatible webhook.
// It is invoked directly as a CloudWatch alarm action.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/logging"
	"github.com/younsl/logsweep/internal/models"
	"github.com/younsl/logsweep/internal/notifier"
	"github.com/younsl/logsweep/internal/version"
	awsclient "github.com/younsl/logsweep/pkg/aws"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOGSWEEP_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log.Level)

	if err := cfg.ValidateNotifier(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}

	awsCfg, err := awsclient.LoadConfig(context.Background(), "")
	if err != nil {
		level.Error(logger).Log("msg", "loading AWS config", "err", err)
		os.Exit(1)
	}

	var store awsclient.SecretStore
	switch cfg.Notifier.SecretSource {
	case config.SecretSourceSecretsManager:
		store = awsclient.NewSecretsManagerStore(awsCfg)
	default:
		store = awsclient.NewParameterStoreFromConfig(awsCfg)
	}

	n := notifier.NewAlertNotifier(
		awsclient.NewCachedSecretStore(store, cfg.Notifier.CacheTTL()),
		notifier.NewSlackSender(notifier.SenderConfig{
			MaxRetries:     cfg.Notifier.MaxRetries,
			InitialBackoff: cfg.Notifier.InitialBackoff,
			Timeout:        cfg.Notifier.Timeout,
		}),
		notifier.Config{
			AppName:          cfg.App.Name,
			WebhookParameter: cfg.Notifier.WebhookParameter,
		},
	)

	level.Info(logger).Log(append([]interface{}{"msg", "starting alert notifier", "secret_source", cfg.Notifier.SecretSource}, version.Get().KeyVals()...)...)

	lambda.Start(func(ctx context.Context, event models.AlarmStateChangeEvent) error {
		return n.Handle(ctx, invocation.New(ctx, logger), event)
	})
}
