// Package invocation carries per-invocation state through a Lambda handler.
//
// A Context is built fresh at the start of every invocation and passed down the
// call chain explicitly, so handlers keep no mutable state between invocations.
package invocation

import (
	"context"
	"sync/atomic"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-kit/log"
)

var coldStart atomic.Bool

func init() {
	coldStart.Store(true)
}

// Context is the state scoped to one handler invocation.
type Context struct {
	RequestID    string
	FunctionName string
	ColdStart    bool
	Logger       log.Logger
}

// New builds the invocation context from the Lambda context in ctx. Outside the
// Lambda runtime the request id is empty.
func New(ctx context.Context, base log.Logger) *Context {
	inv := &Context{
		FunctionName: lambdacontext.FunctionName,
		ColdStart:    coldStart.Swap(false),
	}
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		inv.RequestID = lc.AwsRequestID
	}

	inv.Logger = log.With(base, "aws_request_id", inv.RequestID, "cold_start", inv.ColdStart)
	if inv.FunctionName != "" {
		inv.Logger = log.With(inv.Logger, "function_name", inv.FunctionName)
	}
	return inv
}

// With returns a logger for a single item of the invocation.
func (c *Context) With(keyvals ...interface{}) log.Logger {
	return log.With(c.Logger, keyvals...)
}
