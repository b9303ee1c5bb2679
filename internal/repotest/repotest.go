// Package repotest 为测试构造临时 Git 仓库。
// 仓库通过 go-git 创建，测试环境不需要安装 git 可执行文件。
package repotest

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/require"
)

// WriteFile 是测试辅助函数，用于在临时目录快速落地测试文件。
func WriteFile(t testing.TB, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "mkdir fixture dir")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "write fixture file")
}

// Init 在临时目录初始化仓库，写入 tracked 中的文件并加入索引。
// untracked 中的文件只写入工作区，不加入索引。
func Init(t testing.TB, tracked map[string]string, untracked map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	repository, err := git.PlainInit(dir, false)
	require.NoError(t, err, "init repository")

	worktree, err := repository.Worktree()
	require.NoError(t, err, "open worktree")

	names := make([]string, 0, len(tracked))
	for name := range tracked {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), tracked[name])
		_, err := worktree.Add(name)
		require.NoError(t, err, "add %s", name)
	}

	for name, content := range untracked {
		WriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}
