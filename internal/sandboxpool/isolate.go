package sandboxpool

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const isolateProgramName = "isolate"

// isolateInner is the box id + working directory path an isolate box is
// identified by.
type isolateInner struct {
	boxID int
	path  string
}

func (i isolateInner) BoxID() int    { return i.boxID }
func (i isolateInner) Path() string  { return i.path }
func (i isolateInner) filePath(name string) string {
	return filepath.Join(i.path, name)
}

// IsolateTool wraps the `isolate` CLI (https://github.com/ioi/isolate).
// cgroupEnabled selects between the "plain" and "cgroup-enabled" build
// variants: the latter passes --cg to every invocation (and --cg-mem
// instead of --mem to the run command) and reports memory via cg-mem
// instead of max-rss. Exactly one variant is
// selected once, at construction, from SANDBOX_TYPE.
type IsolateTool struct {
	boxes         boxIDPool
	cgroupEnabled bool
}

// NewPlainTool builds an adapter for the plain (non-cgroup) isolate build.
func NewPlainTool() *IsolateTool {
	return &IsolateTool{}
}

// NewCgroupTool builds an adapter for the cgroup-enabled isolate build.
func NewCgroupTool() *IsolateTool {
	return &IsolateTool{cgroupEnabled: true}
}

func (t *IsolateTool) baseArgs() []string {
	if t.cgroupEnabled {
		return []string{"--cg"}
	}
	return nil
}

// BuildInner claims a box id, runs isolate's init command, and parses its
// stdout for the box's host path; the working directory is "<path>/box".
func (t *IsolateTool) BuildInner(ctx context.Context) (ToolInner, error) {
	boxID := t.boxes.claim()

	args := append(t.baseArgs(), fmt.Sprintf("--box-id=%d", boxID), "--init")
	out, err := exec.CommandContext(ctx, isolateProgramName, args...).Output()
	if err != nil {
		t.boxes.release(boxID)
		return nil, fmt.Errorf("isolate --init: %w", err)
	}

	basePath := filepath.Join(strings.TrimSpace(string(out)), "box")
	return isolateInner{boxID: boxID, path: basePath}, nil
}

// DestroyInner runs isolate's cleanup command, then releases the box id
// back to the pool. If cleanup fails the id is not released.
func (t *IsolateTool) DestroyInner(ctx context.Context, inner ToolInner) error {
	ii := inner.(isolateInner)
	args := append(t.baseArgs(), fmt.Sprintf("--box-id=%d", ii.boxID), "--cleanup")
	if err := exec.CommandContext(ctx, isolateProgramName, args...).Run(); err != nil {
		return fmt.Errorf("isolate --cleanup: %w", err)
	}
	t.boxes.release(ii.boxID)
	return nil
}

func (t *IsolateTool) AddFileWD(ctx context.Context, inner ToolInner, fileName, content string) error {
	ii := inner.(isolateInner)
	return os.WriteFile(ii.filePath(fileName), []byte(content), 0o644)
}

func (t *IsolateTool) ReadFileWD(ctx context.Context, inner ToolInner, fileName string) (string, error) {
	ii := inner.(isolateInner)
	b, err := os.ReadFile(ii.filePath(fileName))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (t *IsolateTool) RemoveFileWD(ctx context.Context, inner ToolInner, fileName string) error {
	ii := inner.(isolateInner)
	return os.Remove(ii.filePath(fileName))
}

// Execute stages stdin, runs the sandboxed command, parses the meta file,
// and maps the result to an ExecutionStatus per the precedence table:
// cg-oom-killed wins, then RE/SG, then TO, then XX (a hard adapter
// error, not a graded result), then non-zero exit, else Success.
func (t *IsolateTool) Execute(ctx context.Context, inner ToolInner, opts ExecutionOptions) (ExecutionResult, error) {
	ii := inner.(isolateInner)

	const stdinFileName = "stdin.txt"
	const metaFileName = "meta.txt"
	metaPath := ii.filePath(metaFileName)

	if err := t.AddFileWD(ctx, inner, stdinFileName, opts.Stdin); err != nil {
		return ExecutionResult{}, fmt.Errorf("write stdin: %w", err)
	}

	args := append([]string{}, t.baseArgs()...)
	if t.cgroupEnabled {
		args = append(args, fmt.Sprintf("--cg-mem=%d", int64(opts.MemoryLimitKB)))
	} else {
		args = append(args, fmt.Sprintf("--mem=%d", int64(opts.MemoryLimitKB)))
	}
	for _, m := range opts.Mounts {
		args = append(args, fmt.Sprintf("--dir=%s=%s", m.MountPoint, m.DirectoryPath))
	}
	args = append(args,
		fmt.Sprintf("--box-id=%d", ii.boxID),
		"--processes=128",
		fmt.Sprintf("--time=%v", opts.TimeLimitS),
		"--wall-time=100",
		fmt.Sprintf("--stdin=%s", stdinFileName),
		fmt.Sprintf("--meta=%s", metaPath),
		"--run", "--",
		opts.BinaryPath,
	)
	args = append(args, opts.Args...)

	cmd := exec.CommandContext(ctx, isolateProgramName, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	metaContent, err := t.ReadFileWD(ctx, inner, metaFileName)
	if err != nil {
		return ExecutionResult{}, fmt.Errorf("read meta file: %w", err)
	}

	metaTime := parseMetaFloat(metaContent, "time", 0)
	metaCgMem := parseMetaInt(metaContent, "cg-mem", 0)
	metaMaxRSS := parseMetaInt(metaContent, "max-rss", 0)
	metaOOMKilled := parseMetaInt(metaContent, "cg-oom-killed", 0)
	metaStatus := parseMetaString(metaContent, "status", "OK")

	_ = t.RemoveFileWD(ctx, inner, metaFileName)
	_ = t.RemoveFileWD(ctx, inner, stdinFileName)

	var status ExecutionStatus
	switch {
	case metaOOMKilled == 1:
		status = MemoryLimitExceeded
	case metaStatus == "RE" || metaStatus == "SG":
		status = RuntimeError
	case metaStatus == "TO":
		status = TimeLimitExceeded
	case metaStatus == "XX":
		return ExecutionResult{}, fmt.Errorf("isolate reported internal error (status XX)")
	case runErr != nil:
		status = RuntimeError
	default:
		status = Success
	}

	memoryKB := float64(metaMaxRSS)
	if t.cgroupEnabled {
		memoryKB = float64(metaCgMem)
	}

	return ExecutionResult{
		Status:   status,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		TimeS:    metaTime,
		MemoryKB: memoryKB,
	}, nil
}

func parseMetaLine(content, key string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		if !strings.HasPrefix(line, key) {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.TrimSpace(parts[0]) != key {
			continue
		}
		return strings.TrimSpace(parts[1]), true
	}
	return "", false
}

func parseMetaFloat(content, key string, fallback float64) float64 {
	v, ok := parseMetaLine(content, key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseMetaInt(content, key string, fallback int64) int64 {
	v, ok := parseMetaLine(content, key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func parseMetaString(content, key, fallback string) string {
	v, ok := parseMetaLine(content, key)
	if !ok {
		return fallback
	}
	return v
}
