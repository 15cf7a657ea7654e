package facts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// ExecProvider obtains facts from an external executable. The topic is sent
// as JSON on stdin and the fact is read as JSON from stdout:
//
//	in:  {"topic":"Saturn"}
//	out: {"fact":"Saturn has 146 known moons."} or {"error":"..."}
//
// The execution timeout belongs to this provider; the interaction core
// imposes none of its own.
type ExecProvider struct {
	executable string
	timeoutMs  int
}

// NewExecProvider creates an ExecProvider for the given executable path with
// the specified timeout in milliseconds.
func NewExecProvider(executable string, timeoutMs int) *ExecProvider {
	return &ExecProvider{
		executable: executable,
		timeoutMs:  timeoutMs,
	}
}

// RequestFact runs the executable once and parses its output.
func (p *ExecProvider) RequestFact(ctx context.Context, topic string) (string, error) {
	// Bound the subprocess even when the caller's context has no deadline
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, p.executable)

	reqJSON, err := json.Marshal(factRequest{Topic: topic})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	cmd.Stdin = bytes.NewReader(reqJSON)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("fact command timeout after %dms", p.timeoutMs)
	}

	if err != nil {
		stderrStr := stderr.String()
		if stderrStr != "" {
			return "", fmt.Errorf("fact command failed: %w, stderr: %s", err, stderrStr)
		}
		return "", fmt.Errorf("fact command failed: %w", err)
	}

	var result factResponse
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return "", fmt.Errorf("failed to parse fact output: %w, stdout: %s", err, stdout.String())
	}

	if result.Error != "" {
		return "", fmt.Errorf("fact command error: %s", result.Error)
	}

	if result.Fact == "" {
		return "", ErrNoFact
	}

	return result.Fact, nil
}
