package scm

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// DefaultRemote is the remote consulted when none is configured.
const DefaultRemote = "origin"

// GitOptions configures a Git adapter.
type GitOptions struct {
	// Remote is a remote name or URL (default "origin").
	Remote      string
	Credentials Credentials
	Logger      *zap.Logger
}

// Git implements Repository by shelling out to the git CLI.
type Git struct {
	dir    string
	remote string
	creds  Credentials
	log    *zap.Logger
}

// OpenGit binds a Git adapter to the repository containing dir.
func OpenGit(ctx context.Context, dir string, opts GitOptions) (*Git, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	remote := strings.TrimSpace(opts.Remote)
	if remote == "" {
		remote = DefaultRemote
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	g := &Git{dir: dir, remote: remote, creds: opts.Credentials, log: log}
	if _, err := g.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}
	return g, nil
}

// CurrentBranch resolves the checked-out branch via symbolic-ref. A detached
// HEAD reports the commit hash instead, which classifies as an opaque name.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "symbolic-ref", "--short", "HEAD")
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	out, err = g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsWorkingTreeChanged reports whether the working tree carries uncommitted
// changes.
func (g *Git) IsWorkingTreeChanged(ctx context.Context) (bool, error) {
	out, err := g.run(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("working tree status: %w", err)
	}
	return len(bytes.TrimSpace(out)) > 0, nil
}

// LocalTags lists local tag names.
func (g *Git) LocalTags(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("list local tags: %w", err)
	}
	return splitLines(out), nil
}

// RemoteTags lists tag names on the configured remote.
func (g *Git) RemoteTags(ctx context.Context) ([]string, error) {
	out, err := g.run(ctx, "ls-remote", "--tags", "--refs", g.remoteSpec())
	if err != nil {
		return nil, fmt.Errorf("list remote tags: %w", err)
	}
	var tags []string
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		name := strings.TrimPrefix(fields[1], "refs/tags/")
		if name != fields[1] && name != "" {
			tags = append(tags, name)
		}
	}
	return tags, nil
}

// CreateTag creates an annotated tag at HEAD.
func (g *Git) CreateTag(ctx context.Context, name, message string) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("create tag: message is required")
	}
	if _, err := g.run(ctx, "tag", "-a", name, "-m", message); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	g.log.Info("created tag", zap.String("tag", name))
	return nil
}

// PushTag publishes a tag to the configured remote.
func (g *Git) PushTag(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("push tag: %w", err)
	}
	if _, err := g.run(ctx, "push", g.remoteSpec(), "refs/tags/"+name); err != nil {
		return fmt.Errorf("push tag: %w", err)
	}
	g.log.Info("pushed tag", zap.String("tag", name), zap.String("remote", g.remote))
	return nil
}

// TagMessage returns the message body of an annotated tag.
func (g *Git) TagMessage(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("tag message: %w", err)
	}
	out, err := g.run(ctx, "tag", "--list", "--format=%(contents)", name)
	if err != nil {
		return "", fmt.Errorf("tag message: %w", err)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return "", fmt.Errorf("tag message: tag %q not found or has no message", name)
	}
	return string(out), nil
}

// remoteSpec injects credentials into URL remotes. Named remotes pass through
// so git can apply its own credential handling.
func (g *Git) remoteSpec() string {
	if g.creds.Username == "" {
		return g.remote
	}
	u, err := url.Parse(g.remote)
	if err != nil || u.Scheme != "http" && u.Scheme != "https" {
		return g.remote
	}
	if g.creds.Password != "" {
		u.User = url.UserPassword(g.creds.Username, g.creds.Password)
	} else {
		u.User = url.User(g.creds.Username)
	}
	return u.String()
}

func (g *Git) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", g.dir}, args...)...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("git %s: %s", g.redact(strings.Join(args, " ")), g.redact(msg))
	}
	return stdout.Bytes(), nil
}

// redact keeps credentials out of error text.
func (g *Git) redact(s string) string {
	if g.creds.Password == "" {
		return s
	}
	return strings.ReplaceAll(s, g.creds.Password, "***")
}

func validateTagName(name string) error {
	if name == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	if strings.ContainsAny(name, " \t\n\r~^:?*[\\") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}

func splitLines(out []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
