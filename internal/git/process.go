package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// Process is a running external command whose stdout is being consumed.
type Process interface {
	Stdout() io.Reader
	Wait() error
}

// Executable starts the external history tool.
type Executable interface {
	Start(ctx context.Context, dir string, args ...string) (Process, error)
}

// GitExecutable runs the git binary.
type GitExecutable struct {
	Path string // defaults to "git" on PATH
}

type gitProcess struct {
	cmd    *exec.Cmd
	stdout io.Reader
	stderr bytes.Buffer
}

// Start launches git in dir with the given arguments.
func (g GitExecutable) Start(ctx context.Context, dir string, args ...string) (Process, error) {
	path := g.Path
	if path == "" {
		path = "git"
	}

	p := &gitProcess{}
	p.cmd = exec.CommandContext(ctx, path, args...)
	p.cmd.Dir = dir
	p.cmd.Stderr = &p.stderr

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("git stdout pipe: %w", err)
	}
	p.stdout = stdout

	if err := p.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start git: %w", err)
	}
	return p, nil
}

func (p *gitProcess) Stdout() io.Reader {
	return p.stdout
}

func (p *gitProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("git log failed: %w: %s", err, strings.TrimSpace(p.stderr.String()))
	}
	return nil
}

// ResolveWorkingDirectory returns the work tree root of the repository
// containing path.
func ResolveWorkingDirectory(path string) (string, error) {
	if path == "" {
		path = "."
	}
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("repository %s has no work tree: %w", path, err)
	}
	return wt.Filesystem.Root(), nil
}
