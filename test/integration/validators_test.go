package integration

import (
	"net/url"
	"strings"
	"testing"

	"github.com/wrale/oauth2-device-grpc/internal/rpc/oauthpb"
)

const (
	promptPrefix   = "Go to "
	promptSuffix   = " to complete login"
	waitingMessage = "Waiting for response..."
	successMessage = "Success"
)

// validatePrompt checks the first stream message and returns the
// verification URL it carries
func validatePrompt(t *testing.T, msg *oauthpb.AuthResponse) string {
	t.Helper()

	var issues []string
	if !strings.HasPrefix(msg.Message, promptPrefix) || !strings.HasSuffix(msg.Message, promptSuffix) {
		issues = append(issues, "prompt must read \"Go to <url> to complete login\", got "+msg.Message)
	}
	if msg.AccessToken != "" || msg.RefreshToken != "" {
		issues = append(issues, "prompt must not carry tokens")
	}

	raw := strings.TrimSuffix(strings.TrimPrefix(msg.Message, promptPrefix), promptSuffix)
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		issues = append(issues, "verification URL must be absolute, got "+raw)
	}

	if len(issues) > 0 {
		t.Fatalf("Prompt validation failed:\n%s", strings.Join(issues, "\n"))
	}
	return raw
}

// validateProgress checks a message that follows the prompt
func validateProgress(t *testing.T, msg *oauthpb.AuthResponse) {
	t.Helper()

	switch msg.Message {
	case waitingMessage:
		if msg.AccessToken != "" {
			t.Error("waiting message must not carry tokens")
		}
	case successMessage:
		if msg.AccessToken == "" {
			t.Error("success message must carry an access token")
		}
	default:
		t.Errorf("unexpected progress message %q", msg.Message)
	}
}
