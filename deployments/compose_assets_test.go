package deployments

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestComposeStackWiresAllServices(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "docker-compose.yaml")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read compose file: %v", err)
	}
	text := string(content)

	requiredServices := []string{
		"postgres:",
		"minio:",
		"ollama:",
		"supplyq-api:",
	}
	for _, service := range requiredServices {
		if !strings.Contains(text, service) {
			t.Fatalf("compose file missing service %q", service)
		}
	}

	requiredEnv := []string{
		"SUPPLYQ_STORE_DRIVER",
		"SUPPLYQ_STORE_DSN",
		"SUPPLYQ_AI_BASE_URL",
		"SUPPLYQ_AI_MODEL",
		"SUPPLYQ_INGEST_S3_ENDPOINT",
		"SUPPLYQ_INGEST_S3_BUCKET",
	}
	for _, key := range requiredEnv {
		if !strings.Contains(text, key) {
			t.Fatalf("compose file missing env key %q", key)
		}
	}

	if !strings.Contains(text, "condition: service_healthy") {
		t.Fatal("api service must wait on dependency health checks")
	}
}

func TestDockerfileBuildsBothBinaries(t *testing.T) {
	root := repoRoot(t)
	path := filepath.Join(root, "deployments", "Dockerfile")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dockerfile: %v", err)
	}
	text := string(content)

	for _, token := range []string{"./cmd/supplyq-api", "./cmd/supplyqctl", "USER supplyq"} {
		if !strings.Contains(text, token) {
			t.Fatalf("dockerfile missing %q", token)
		}
	}
}

func repoRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), ".."))
}
