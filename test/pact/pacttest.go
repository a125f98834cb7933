//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "order-board-api"
	ConsumerName = "order-dashboard"

	StateOrdersBaseline   = "orders baseline"
	StateOrderExists      = "order with id 2 exists"
	StateOrderMissing     = "no order with id 404"
	StateStatusChangeOpen = "status change open for order 2"
)

const (
	ExistingOrderID = "2"
	MissingOrderID  = "404"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload is the wire form of the order every state seeds as id 2.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"id":          ExistingOrderID,
		"name":        "Samsung Galaxy S24",
		"category":    "Electronics",
		"price":       "999.99",
		"quantity":    5,
		"status":      "Ongoing",
		"lastUpdated": "2024-03-14",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
