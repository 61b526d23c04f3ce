//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/signalsfoundry/contact-scheduler/internal/api"
	"github.com/signalsfoundry/contact-scheduler/internal/config"
	"github.com/signalsfoundry/contact-scheduler/internal/logging"
	"github.com/signalsfoundry/contact-scheduler/internal/publish"
	"github.com/signalsfoundry/contact-scheduler/kb"
)

// responseMargin is kept free at the end of an invocation to encode and
// return the report.
const responseMargin = 2 * time.Second

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type handler struct {
	svc *api.Service
	log logging.Logger
}

func (h *handler) handle(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	req, err := api.DecodeSolveRequest([]byte(body))
	if err != nil {
		return errResp(api.HTTPStatus(err), err.Error())
	}
	req.TimeLimit = capToDeadline(ctx, req.TimeLimit)

	report, err := h.svc.Solve(ctx, req)
	if err != nil {
		h.log.Warn(ctx, "solve failed", logging.Err(err))
		return errResp(api.HTTPStatus(err), err.Error())
	}
	out, err := json.Marshal(report)
	if err != nil {
		return errResp(500, "encode report: "+err.Error())
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(out)}, nil
}

// capToDeadline shortens limit so the search ends before the invocation
// deadline. A zero limit means the configured default.
func capToDeadline(ctx context.Context, limit time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return limit
	}
	left := time.Until(deadline) - responseMargin
	if left <= 0 {
		left = time.Millisecond
	}
	if limit <= 0 || limit > left {
		return left
	}
	return limit
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func newHandler(ctx context.Context, cfg config.Config, log logging.Logger) (*handler, error) {
	opts := []api.Option{
		api.WithLogger(log),
		api.WithMaxTimeLimit(time.Duration(cfg.Server.MaxTimeLimit)),
	}
	sinks, err := publish.FromOptions(ctx, cfg.SinkOptions())
	if err != nil {
		return nil, err
	}
	if sinks.Len() > 0 {
		opts = append(opts, api.WithSink(sinks))
	}
	svc, err := api.NewService(cfg.SolverConfig(), kb.NewKnowledgeBase(), opts...)
	if err != nil {
		return nil, err
	}
	return &handler{svc: svc, log: log}, nil
}

func main() {
	log := logging.NewFromEnv()
	ctx := context.Background()

	cfg, err := config.Load(os.Getenv("SCHED_CONFIG"))
	if err != nil {
		log.Error(ctx, "failed to load configuration", logging.Err(err))
		os.Exit(1)
	}
	h, err := newHandler(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build handler", logging.Err(err))
		os.Exit(1)
	}
	log.Info(ctx, "scheduler lambda ready", logging.Duration("time_limit", time.Duration(cfg.Solver.TimeLimit)))
	lambda.Start(h.handle)
}
