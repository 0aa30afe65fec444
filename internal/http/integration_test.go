package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/appclacks/slo-server/internal/exporter"
	apihttp "github.com/appclacks/slo-server/internal/http"
	"github.com/appclacks/slo-server/internal/http/handlers"
	"github.com/appclacks/slo-server/pkg/slo"
	"github.com/appclacks/slo-server/pkg/slo/aggregates"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func toJson(t *testing.T, s any) []byte {
	t.Helper()
	result, err := json.Marshal(s)
	assert.NoError(t, err, "fail to marshal to json")
	return result
}

func fromJson(t *testing.T, s any, data []byte) {
	t.Helper()
	err := json.Unmarshal(data, s)
	assert.NoError(t, err, "fail to unmarshal to json data %s", string(data))
}

func readBody(t *testing.T, body io.ReadCloser) []byte {
	b, err := io.ReadAll(body)
	defer body.Close()
	assert.NoError(t, err)
	return b
}

type testCase struct {
	url            string
	expectedStatus int
	method         string
	payload        any
	body           string
}

var baseURL = "http://127.0.0.1:10000"
var httpClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func testHTTP(t *testing.T, c testCase, result any) {
	t.Helper()
	var reqBody io.Reader
	if c.payload != nil {
		reqBody = bytes.NewBuffer(toJson(t, c.payload))
	}
	request, err := http.NewRequest(
		c.method,
		fmt.Sprintf("%s%s", baseURL, c.url),
		reqBody)
	assert.NoError(t, err)
	if c.payload != nil {
		request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	response, err := httpClient.Do(request)
	assert.NoError(t, err)
	body := readBody(t, response.Body)
	assert.Equal(t, response.StatusCode, c.expectedStatus, string(body))
	if result != nil {
		fromJson(t, result, body)
	}
	if c.body != "" {
		assert.Contains(t, string(body), c.body)
	}
}

func TestIntegration(t *testing.T) {
	reg := prometheus.NewRegistry()
	config := apihttp.Configuration{
		Host: "127.0.0.1",
		Port: 10000,
	}
	logger := slog.Default()
	sloExporter, err := exporter.New(reg)
	assert.NoError(t, err)
	manager, err := slo.NewManager(context.Background(), logger, nil, sloExporter)
	assert.NoError(t, err)
	handlersBuilder := handlers.NewBuilder(manager)
	server, err := apihttp.NewServer(logger, config, reg, handlersBuilder)
	assert.NoError(t, err)

	server.Start()
	defer func() {
		assert.NoError(t, server.Stop())
	}()
	time.Sleep(1 * time.Second)

	// register

	registerInput := handlers.RegisterSLOInput{
		Name:        "checkout-latency-p95",
		Description: "95th percentile latency of the checkout flow",
		Labels: map[string]string{
			"team": "payments",
		},
		Target:     99.9,
		Window:     aggregates.WindowDaily,
		MetricKind: aggregates.MetricKindLatency,
		Threshold:  floatPtr(300),
		Unit:       "ms",
	}
	registerCase := testCase{
		url:            "/api/v1/slo",
		expectedStatus: 200,
		payload:        registerInput,
		method:         "POST",
		body:           "SLO registered",
	}
	testHTTP(t, registerCase, nil)

	invalidRegisterCase := testCase{
		url:            "/api/v1/slo",
		expectedStatus: 400,
		payload: handlers.RegisterSLOInput{
			Name:       "broken",
			Target:     99,
			Window:     "fortnightly",
			MetricKind: aggregates.MetricKindAvailability,
		},
		method: "POST",
		body:   "invalid SLO window",
	}
	testHTTP(t, invalidRegisterCase, nil)

	// list

	listResult := handlers.ListSLOsOutput{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo",
		expectedStatus: 200,
		method:         "GET",
	}, &listResult)
	names := map[string]bool{}
	for _, definition := range listResult.Result {
		names[definition.Name] = true
	}
	assert.True(t, names["checkout-latency-p95"])
	assert.True(t, names["api-availability"])

	getResult := aggregates.SLODefinition{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95",
		expectedStatus: 200,
		method:         "GET",
	}, &getResult)
	assert.Equal(t, 99.9, getResult.Target)
	assert.NotEqual(t, "", getResult.ID)

	testHTTP(t, testCase{
		url:            "/api/v1/slo/doesnotexist",
		expectedStatus: 404,
		method:         "GET",
		body:           "SLO not found: doesnotexist",
	}, nil)

	// status updates

	statusResult := aggregates.SLOStatus{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95/status",
		expectedStatus: 200,
		method:         "POST",
		payload: handlers.UpdateSLOStatusInput{
			CurrentValue: 250,
			TotalEvents:  100000,
			GoodEvents:   99920,
		},
	}, &statusResult)
	assert.True(t, statusResult.Compliance)
	assert.Equal(t, float64(300), statusResult.TargetValue)
	assert.Equal(t, aggregates.AlertLevelWarning, statusResult.AlertLevel)

	testHTTP(t, testCase{
		url:            "/api/v1/slo/doesnotexist/status",
		expectedStatus: 404,
		method:         "POST",
		payload: handlers.UpdateSLOStatusInput{
			CurrentValue: 99,
			TotalEvents:  100,
			GoodEvents:   100,
		},
		body: "SLO not found: doesnotexist",
	}, nil)

	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95/status",
		expectedStatus: 400,
		method:         "POST",
		payload: handlers.UpdateSLOStatusInput{
			CurrentValue: 250,
			TotalEvents:  100,
			GoodEvents:   200,
		},
		body: "good events should not exceed total events",
	}, nil)

	// the path parameter owns the SLO name even when the body carries one
	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95/status",
		expectedStatus: 200,
		method:         "POST",
		payload: map[string]any{
			"name":          "doesnotexist",
			"current-value": 250,
			"total-events":  100000,
			"good-events":   99920,
		},
	}, &statusResult)
	assert.Equal(t, "checkout-latency-p95", statusResult.Definition.Name)

	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95/status",
		expectedStatus: 200,
		method:         "GET",
	}, &statusResult)
	assert.True(t, statusResult.Compliance)

	testHTTP(t, testCase{
		url:            "/api/v1/slo/api-availability/status",
		expectedStatus: 404,
		method:         "GET",
		body:           "no status for SLO",
	}, nil)

	// burn rates

	burnRatesResult := handlers.BurnRateAlertsOutput{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95/burnrates",
		expectedStatus: 200,
		method:         "GET",
	}, &burnRatesResult)
	assert.Len(t, burnRatesResult.Result, 3)
	assert.Equal(t, "1h", burnRatesResult.Result[0].Window)

	// statuses and summary

	listStatusesResult := handlers.ListSLOStatusesOutput{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo/status",
		expectedStatus: 200,
		method:         "GET",
	}, &listStatusesResult)
	assert.Len(t, listStatusesResult.Result, 1)

	summaryResult := aggregates.Summary{}
	testHTTP(t, testCase{
		url:            "/api/v1/slo/summary",
		expectedStatus: 200,
		method:         "GET",
	}, &summaryResult)
	assert.Equal(t, 1, summaryResult.Total)
	assert.Equal(t, 1, summaryResult.Warning)

	// exported metrics

	metricsRequest, err := http.NewRequest("GET", fmt.Sprintf("%s/metrics", baseURL), nil)
	assert.NoError(t, err)
	metricsResponse, err := httpClient.Do(metricsRequest)
	assert.NoError(t, err)
	metricsBody := string(readBody(t, metricsResponse.Body))
	assert.Contains(t, metricsBody, `appclacks_slo_compliance{slo_name="checkout-latency-p95"`)
	assert.Contains(t, metricsBody, "http_responses_total")
	assert.True(t, strings.Contains(metricsBody, "appclacks_error_budget_remaining_percent"))

	// unregister

	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95",
		expectedStatus: 200,
		method:         "DELETE",
		body:           "SLO deleted",
	}, nil)
	testHTTP(t, testCase{
		url:            "/api/v1/slo/checkout-latency-p95",
		expectedStatus: 404,
		method:         "DELETE",
	}, nil)
}

func floatPtr(f float64) *float64 {
	return &f
}
