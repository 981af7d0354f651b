// Package gitmeta provides shell-based git metadata queries.
// It uses os/exec instead of a go-git dependency so that whatever git
// configuration the user has (credential helpers, safe.directory, etc.)
// applies unchanged.
package gitmeta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gleaner-dev/gleaner/types"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = 10 * time.Second

// ErrGitNotInstalled is returned when git cannot be located on PATH.
var ErrGitNotInstalled = errors.New("git is not installed or not in PATH")

// Commander is an interface for executing commands.
// This allows mocking in tests.
type Commander interface {
	RunInDir(ctx context.Context, dir, name string, args ...string) (string, error)
}

// ShellCommander executes real shell commands.
type ShellCommander struct{}

// RunInDir executes a command in the specified directory.
func (c *ShellCommander) RunInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		// Include stderr in error for debugging
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return "", fmt.Errorf("%w: %s", err, errMsg)
		}
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client wraps git metadata queries for a single working directory.
type Client struct {
	commander Commander
	workDir   string
	timeout   time.Duration
}

// NewClient creates a new git client for the given directory.
func NewClient(workDir string) *Client {
	return &Client{
		commander: &ShellCommander{},
		workDir:   workDir,
		timeout:   DefaultTimeout,
	}
}

// NewClientWithCommander creates a client with a custom commander (for testing).
func NewClientWithCommander(workDir string, commander Commander) *Client {
	return &Client{
		commander: commander,
		workDir:   workDir,
		timeout:   DefaultTimeout,
	}
}

// SetTimeout overrides the per-invocation timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.timeout = d
	}
}

// IsGitInstalled checks whether git is available.
func (c *Client) IsGitInstalled() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	_, err := c.commander.RunInDir(ctx, "", "git", "--version")
	return err == nil
}

// CommitCount returns the number of commits reachable from HEAD.
// Any failure (git missing, not a repository, timeout, unparseable
// output) yields 0 with a types.ErrExternalTool error attached, so
// callers on the metrics path can fall back without branching on
// failure modes.
func (c *Client) CommitCount() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	out, err := c.commander.RunInDir(ctx, c.workDir, "git", "rev-list", "HEAD", "--count")
	if err != nil {
		if !c.IsGitInstalled() {
			return 0, fmt.Errorf("%w: %w", types.ErrExternalTool, ErrGitNotInstalled)
		}
		return 0, fmt.Errorf("%w: git rev-list: %v", types.ErrExternalTool, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("%w: unexpected rev-list output %q", types.ErrExternalTool, out)
	}
	return count, nil
}
