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
	ProviderName = "storefront-api"
	ConsumerName = "storefront-web"

	// VoiceProviderName is the external calling service the API consumes.
	VoiceProviderName = "voice-service"

	StateCatalogBaseline = "catalog baseline"
	StateProductInStock  = "product p-101 exists with stock"
	StateProductMissing  = "no product with id p-404"
	StateVoiceAccepts    = "voice service accepts outbound calls"
)

const (
	ExistingProductID = "p-101"
	MissingProductID  = "p-404"

	ExampleProductName  = "Pact Mug"
	ExampleProductPrice = 12.5
	ExampleProductStock = 5

	ExamplePhone   = "+14155550123"
	ExampleCallSID = "CA0123456789abcdef"
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

// PactFile returns the pact file path for a consumer and provider pair.
func PactFile(t testing.TB, consumer, provider string) string {
	t.Helper()
	return filepath.Join(PactDir(t), consumer+"-"+provider+".json")
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

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
