package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/signalsfoundry/contact-scheduler/internal/instance"
	"github.com/signalsfoundry/contact-scheduler/internal/observability"
	"github.com/signalsfoundry/contact-scheduler/internal/runstore"
	"github.com/signalsfoundry/contact-scheduler/internal/solver"
	"github.com/signalsfoundry/contact-scheduler/kb"
	"github.com/signalsfoundry/contact-scheduler/model"
	"github.com/signalsfoundry/contact-scheduler/timectrl"
)

const singleQKDInstance = `{
	"problem_instance_id": "inst-a",
	"satellite_passes": [
		{"id": 1, "nodeId": 4, "orbitId": 0, "startTime": "2024-01-05T10:00:00Z", "endTime": "2024-01-05T10:10:00Z", "achievableKeyVolume": 5}
	],
	"service_targets": [
		{"id": 1, "applicationId": 1, "priority": 2, "nodeId": 4, "requestedOperation": "QKD"}
	]
}`

type captureSink struct {
	mu      sync.Mutex
	reports []*instance.Report
	err     error
}

func (c *captureSink) Publish(_ context.Context, r *instance.Report) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, r)
	return c.err
}

func (c *captureSink) Close() error { return nil }

type captureRuns struct {
	mu   sync.Mutex
	runs []runstore.Run
}

func (c *captureRuns) RecordRun(_ context.Context, run runstore.Run) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.runs = append(c.runs, run)
	return nil
}

func testSolverConfig() solver.Config {
	cfg := solver.DefaultConfig()
	cfg.TimeLimit = -1
	cfg.StepLimit = 200
	cfg.UnimprovedStepLimit = 50
	return cfg
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	opts = append([]Option{
		WithIDGenerator(sequentialIDs()),
		WithSolverOptions(solver.WithClock(timectrl.NewManualClock(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))),
	}, opts...)
	svc, err := NewService(testSolverConfig(), kb.NewKnowledgeBase(), opts...)
	require.NoError(t, err)
	return svc
}

func decodeSingle(t *testing.T) SolveRequest {
	t.Helper()
	req, err := DecodeSolveRequest([]byte(singleQKDInstance))
	require.NoError(t, err)
	return req
}

func TestServiceSolvePublishesAndRecords(t *testing.T) {
	sink := &captureSink{}
	runs := &captureRuns{}
	svc := newTestService(t, WithSink(sink), WithRunRecorder(runs))

	report, err := svc.Solve(context.Background(), decodeSingle(t))
	require.NoError(t, err)
	assert.Equal(t, "inst-a", report.ProblemInstanceID)
	assert.Equal(t, "id-1", report.RunID)
	assert.Equal(t, model.Score{Hard: 0, Soft: 12}, report.Score)
	assert.Equal(t, 12, report.Quality)
	assert.Equal(t, 1, report.SelectedContacts)

	require.Len(t, sink.reports, 1)
	require.Len(t, runs.runs, 1)
	assert.Equal(t, "id-1", runs.runs[0].ID)
	assert.Equal(t, "inst-a", runs.runs[0].InstanceID)
}

func TestServiceSolveSurvivesSinkFailure(t *testing.T) {
	svc := newTestService(t, WithSink(&captureSink{err: errors.New("bucket gone")}))
	report, err := svc.Solve(context.Background(), decodeSingle(t))
	require.NoError(t, err)
	assert.True(t, report.Feasible)
}

func TestServiceRejectsInvalidInstance(t *testing.T) {
	svc := newTestService(t)
	req := decodeSingle(t)
	req.Instance.SatellitePasses[0].EndTime = req.Instance.SatellitePasses[0].StartTime
	_, err := svc.Solve(context.Background(), req)
	assert.ErrorIs(t, err, model.ErrInvalidInstance)
}

func TestServiceStoredInstances(t *testing.T) {
	svc := newTestService(t)
	req := decodeSingle(t)

	id, err := svc.AddInstance(req.Instance)
	require.NoError(t, err)
	assert.Equal(t, "inst-a", id)

	_, err = svc.Report(id)
	assert.ErrorIs(t, err, kb.ErrNoReport)

	solved, err := svc.SolveStored(context.Background(), id, 0, false)
	require.NoError(t, err)
	latest, err := svc.Report(id)
	require.NoError(t, err)
	assert.Same(t, solved, latest)

	_, err = svc.SolveStored(context.Background(), "missing", 0, false)
	assert.ErrorIs(t, err, kb.ErrInstanceNotFound)

	anon := req.Instance
	anon.ID = ""
	generated, err := svc.AddInstance(anon)
	require.NoError(t, err)
	assert.NotEmpty(t, generated)
}

func TestDecodeSolveRequest(t *testing.T) {
	envelope := fmt.Sprintf(`{"instance": %s, "time_limit": "2s", "include_unselected": true}`, singleQKDInstance)
	req, err := DecodeSolveRequest([]byte(envelope))
	require.NoError(t, err)
	assert.Equal(t, "inst-a", req.Instance.ID)
	assert.Equal(t, 2*time.Second, req.TimeLimit)
	assert.True(t, req.IncludeUnselected)

	req, err = DecodeSolveRequest([]byte(fmt.Sprintf(`{"instance": %s, "time_limit_seconds": 1.5}`, singleQKDInstance)))
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, req.TimeLimit)

	req, err = DecodeSolveRequest([]byte(fmt.Sprintf(`{"instance": %s, "time_limit": 3}`, singleQKDInstance)))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, req.TimeLimit)

	bad := map[string]string{
		"not json":       `{"instance": `,
		"array body":     `[1, 2]`,
		"two instances":  fmt.Sprintf(`{"instance": [%s, %s]}`, singleQKDInstance, singleQKDInstance),
		"negative limit": fmt.Sprintf(`{"instance": %s, "time_limit": "-1s"}`, singleQKDInstance),
		"bad limit":      fmt.Sprintf(`{"instance": %s, "time_limit": "soon"}`, singleQKDInstance),
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSolveRequest([]byte(doc))
			require.Error(t, err)
			assert.Equal(t, codes.InvalidArgument, status.Code(ToStatusError(err)))
		})
	}
}

func TestHugeTimeLimitDoesNotOverflow(t *testing.T) {
	for _, doc := range []string{
		fmt.Sprintf(`{"instance": %s, "time_limit_seconds": 1e300}`, singleQKDInstance),
		fmt.Sprintf(`{"instance": %s, "time_limit": "99999999999999"}`, singleQKDInstance),
	} {
		req, err := DecodeSolveRequest([]byte(doc))
		require.NoError(t, err)
		assert.Equal(t, time.Duration(math.MaxInt64), req.TimeLimit)
	}

	_, err := ParseTimeLimit("NaN")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestServiceCapsRequestedTimeLimit(t *testing.T) {
	cfg := solver.DefaultConfig()
	capped, err := NewService(cfg, nil, WithMaxTimeLimit(30*time.Second))
	require.NoError(t, err)
	uncapped, err := NewService(cfg, nil)
	require.NoError(t, err)

	tests := []struct {
		name      string
		svc       *Service
		base      time.Duration
		requested time.Duration
		want      time.Duration
	}{
		{"request under cap", capped, cfg.TimeLimit, 5 * time.Second, 5 * time.Second},
		{"request over cap", capped, cfg.TimeLimit, 3 * time.Hour, 30 * time.Second},
		{"overflowed request", capped, cfg.TimeLimit, time.Duration(math.MaxInt64), 30 * time.Second},
		{"default over cap", capped, cfg.TimeLimit, 0, 30 * time.Second},
		{"zero default over cap", capped, 0, 0, 30 * time.Second},
		{"unbounded default", capped, -1, 0, 30 * time.Second},
		{"no cap", uncapped, cfg.TimeLimit, 3 * time.Hour, 3 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.svc.cfg.TimeLimit = tt.base
			assert.Equal(t, tt.want, tt.svc.solverConfig(tt.requested).TimeLimit)
		})
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
		http int
	}{
		{fmt.Errorf("wrap: %w", model.ErrInvalidInstance), codes.InvalidArgument, http.StatusBadRequest},
		{kb.ErrInstanceNotFound, codes.NotFound, http.StatusNotFound},
		{kb.ErrNoReport, codes.NotFound, http.StatusNotFound},
		{kb.ErrInstanceExists, codes.AlreadyExists, http.StatusConflict},
		{ErrNoRunHistory, codes.Unimplemented, http.StatusNotImplemented},
		{context.DeadlineExceeded, codes.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("boom"), codes.Internal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, status.Code(ToStatusError(tt.err)), tt.err.Error())
		assert.Equal(t, tt.http, HTTPStatus(tt.err), tt.err.Error())
	}
	assert.NoError(t, ToStatusError(nil))
	already := status.Error(codes.Unavailable, "down")
	assert.Equal(t, already, ToStatusError(already))
}

func doJSON(t *testing.T, method, url, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestHTTPRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := observability.NewAPICollector(reg)
	require.NoError(t, err)
	svc := newTestService(t)
	svc.Store().SetMetricsRecorder(collector)

	srv := httptest.NewServer(NewHTTPServer(svc, nil, collector).Router())
	defer srv.Close()

	code, body := doJSON(t, http.MethodPost, srv.URL+"/v1/solve", singleQKDInstance)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, float64(12), body["quality"])
	assert.Equal(t, instance.StatusFeasible, body["status"])

	code, body = doJSON(t, http.MethodPost, srv.URL+"/v1/solve", `{"instance": `)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "invalid request")

	code, body = doJSON(t, http.MethodPost, srv.URL+"/v1/instances", "["+singleQKDInstance+"]")
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, []any{"inst-a"}, body["ids"])

	code, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/instances", singleQKDInstance)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/instances/inst-a/report", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = doJSON(t, http.MethodPost, srv.URL+"/v1/instances/inst-a/solve?time_limit=1s&include_unselected=true", "")
	require.Equal(t, http.StatusOK, code, body)
	assert.Len(t, body["contacts"], 1)

	code, body = doJSON(t, http.MethodGet, srv.URL+"/v1/instances/inst-a/report", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "inst-a", body["problem_instance_id"])

	code, _ = doJSON(t, http.MethodPost, srv.URL+"/v1/instances/nope/solve", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = doJSON(t, http.MethodGet, srv.URL+"/v1/instances/inst-a/runs", "")
	assert.Equal(t, http.StatusNotImplemented, code)

	code, body = doJSON(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["instances"])

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	metrics, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(metrics), `http_requests_total{method="POST",route="/v1/solve",status="200"} 1`)
	assert.Contains(t, string(metrics), "scheduler_stored_instances 1")
}

func (c *captureRuns) ListRuns(_ context.Context, instanceID string, limit int) ([]runstore.Run, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []runstore.Run
	for i := len(c.runs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if c.runs[i].InstanceID == instanceID {
			out = append(out, c.runs[i])
		}
	}
	return out, nil
}

func TestHTTPRunHistory(t *testing.T) {
	runs := &captureRuns{}
	svc := newTestService(t, WithRunRecorder(runs))
	srv := httptest.NewServer(NewHTTPServer(svc, nil, nil).Router())
	defer srv.Close()

	for range 3 {
		code, _ := doJSON(t, http.MethodPost, srv.URL+"/v1/solve", singleQKDInstance)
		require.Equal(t, http.StatusOK, code)
	}

	resp, err := http.Get(srv.URL + "/v1/instances/inst-a/runs?limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, "id-3", got[0]["run_id"])
	assert.Equal(t, float64(12), got[0]["quality"])

	code, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/instances/inst-a/runs?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGRPCSolve(t *testing.T) {
	lis := bufconn.Listen(1 << 20)
	server := NewGRPCServer(newTestService(t), nil, nil)
	go func() { _ = server.Serve(lis) }()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal([]byte(`{"instance": `+singleQKDInstance+`}`), req))
	client := NewClient(conn)
	out, err := client.Solve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "inst-a", out.Fields["problem_instance_id"].GetStringValue())
	assert.Equal(t, float64(12), out.Fields["quality"].GetNumberValue())
	assert.Equal(t, float64(12), out.Fields["score"].GetStructValue().Fields["soft"].GetNumberValue())

	badReq := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal([]byte(`{"instance": {"satellite_passes": {"id": 1}}}`), badReq))
	_, err = client.Solve(ctx, badReq)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	health, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, health.Status)
}
