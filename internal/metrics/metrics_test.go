package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestHandler_ExposesObservations(t *testing.T) {
	ObserveCalculation("pump_test", OutcomeInvalid)
	ObserveCalculation("pump_test", OutcomeInvalid)
	ObserveRequest("/api/user/tools/pump/calc", http.MethodPost, "200", 0.003)

	out := scrape(t)
	for _, want := range []string{
		`impeller_calculations_total{outcome="invalid",tool="pump_test"} 2`,
		`impeller_http_request_duration_seconds_count{method="POST",route="/api/user/tools/pump/calc",status="200"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}
