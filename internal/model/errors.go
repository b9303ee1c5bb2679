package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath 表示用户给定的路径不存在或不是目录。
	ErrInvalidPath = errors.New("invalid repository path")
	// ErrNotRepository 表示给定路径不在任何 Git 仓库内。
	ErrNotRepository = errors.New("not a git repository (or any parent up to mount point)")
)

// CountError 记录单文件读取失败信息。
// 失败文件只会被排除在汇总之外，不阻断其他文件的计数。
type CountError struct {
	Path string
	Err  error
}

func (e *CountError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *CountError) Unwrap() error {
	return e.Err
}
