package repo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"gitloc/internal/model"
)

// ExecLister 通过 git ls-files 获取被跟踪文件。
type ExecLister struct {
	// Binary 为空时使用 PATH 中的 git。
	Binary string
}

// List 在 dir 下执行 git ls-files -z，按 NUL 拆分输出，路径不会被 git 转义。
func (l *ExecLister) List(ctx context.Context, dir string) ([]string, error) {
	binary := l.Binary
	if binary == "" {
		binary = "git"
	}

	command := exec.CommandContext(ctx, binary, "ls-files", "-z")
	command.Dir = dir

	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		message := strings.TrimSpace(stderr.String())
		if strings.Contains(strings.ToLower(message), "not a git repository") {
			return nil, model.ErrNotRepository
		}
		if message != "" {
			return nil, fmt.Errorf("git ls-files failed: %s: %w", message, err)
		}
		return nil, fmt.Errorf("execute git ls-files: %w", err)
	}

	return parseListing(stdout.String()), nil
}

// parseListing 把 ls-files -z 的输出拆分为路径列表，忽略空项。
func parseListing(output string) []string {
	entries := strings.Split(output, "\x00")
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		files = append(files, entry)
	}
	return files
}
