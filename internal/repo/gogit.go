package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"gitloc/internal/model"
)

// GoGitLister 使用 go-git 读取仓库索引。
type GoGitLister struct{}

// List 打开 dir 所在的仓库（向上查找 .git），读取索引并保留 dir 之下的条目。
func (l *GoGitLister) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absoluteDir, err := resolveDir(dir)
	if err != nil {
		return nil, err
	}

	repository, err := git.PlainOpenWithOptions(absoluteDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, model.ErrNotRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	root, err := resolveDir(worktree.Filesystem.Root())
	if err != nil {
		return nil, err
	}

	prefix, err := relativePrefix(root, absoluteDir)
	if err != nil {
		return nil, err
	}

	index, err := repository.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	files := make([]string, 0, len(index.Entries))
	for _, entry := range index.Entries {
		name := entry.Name
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		name = strings.TrimPrefix(name, prefix)

		// 冲突状态下同一路径会以多个 stage 出现，只保留一次。
		if len(files) > 0 && files[len(files)-1] == name {
			continue
		}
		files = append(files, name)
	}
	return files, nil
}

// resolveDir 返回去除符号链接后的绝对路径，保证与仓库根目录可比较。
func resolveDir(dir string) (string, error) {
	absolute, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absolute)
	if err != nil {
		return "", fmt.Errorf("resolve symlinks: %w", err)
	}
	return resolved, nil
}

// relativePrefix 计算 dir 相对于仓库根目录的索引前缀，例如 "pkg/sub/"。
func relativePrefix(root string, dir string) (string, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == "." {
		return "", nil
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside repository %s", dir, root)
	}
	return filepath.ToSlash(rel) + "/", nil
}
