// Package model 定义 gitloc 的核心数据模型。
// 这些结构会被列表器、分类器、聚合器和输出层共同使用。
package model

// ClassifiedPath 表示一个已经完成包含/排除判定的仓库相对路径。
type ClassifiedPath struct {
	Path     string
	Included bool
}

// FileCount 表示单文件计数结果。
//
// 注意：
// - Err 为 nil 时表示计数成功，Lines 为有效行数
// - Err 不为 nil 时 Lines 恒为 0，且不参与任何汇总
type FileCount struct {
	Path  string
	Lines int64
	Err   error
}

// OK 报告该文件是否计数成功。
func (c FileCount) OK() bool {
	return c.Err == nil
}

// AggregateResult 是一次运行的完整聚合结果。
//
// Files 的顺序与输入中被包含路径的顺序一致，与 worker 完成顺序无关。
// FileCount 只统计成功计数的文件；失败文件单独出现在 Errors 中。
type AggregateResult struct {
	Root       string
	Files      []FileCount
	TotalLines int64
	FileCount  int
	Errors     []FileCount
}

// Counted 返回成功计数的文件，顺序与 Files 一致。
func (r AggregateResult) Counted() []FileCount {
	counted := make([]FileCount, 0, r.FileCount)
	for _, item := range r.Files {
		if item.OK() {
			counted = append(counted, item)
		}
	}
	return counted
}
