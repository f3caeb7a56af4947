// Command deletion-handler deletes log groups whose deletion schedule has fired.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-kit/log/level"
	"github.com/younsl/logsweep/internal/config"
	"github.com/younsl/logsweep/internal/invocation"
	"github.com/younsl/logsweep/internal/logging"
	"github.com/younsl/logsweep/internal/processor"
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

	p := processor.NewDeletionProcessor(awsclient.NewLogGroupDeleter(awsclient.NewLogsRegistry()))

	level.Info(logger).Log(append([]interface{}{"msg", "starting deletion handler"}, version.Get().KeyVals()...)...)

	lambda.Start(func(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
		return p.HandleEvent(ctx, invocation.New(ctx, logger), ev)
	})
}
