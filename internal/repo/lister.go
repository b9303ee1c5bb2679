// Package repo 负责列出 Git 仓库中被跟踪的文件。
// 返回的路径相对于调用方给定的目录，统一使用 '/' 分隔，与 git ls-files 的输出保持一致。
package repo

import (
	"context"
	"fmt"
	"strings"
)

// Lister 定义被跟踪文件列表的获取方式。
type Lister interface {
	// List 返回 dir 下被跟踪的文件，按索引顺序排列。
	List(ctx context.Context, dir string) ([]string, error)
}

const (
	// BackendGoGit 直接读取 .git/index，不依赖外部 git 可执行文件。
	BackendGoGit = "gogit"
	// BackendExec 调用 git ls-files。
	BackendExec = "exec"
)

// Backends 返回全部可选后端名称。
func Backends() []string {
	return []string{BackendGoGit, BackendExec}
}

// New 根据后端名称创建列表器。
func New(backend string) (Lister, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendGoGit:
		return &GoGitLister{}, nil
	case BackendExec:
		return &ExecLister{}, nil
	default:
		return nil, fmt.Errorf("unsupported lister backend %q, allowed values: %s", backend, strings.Join(Backends(), ", "))
	}
}
