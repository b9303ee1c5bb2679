// Package report 提供 gitloc 的输出能力。
// 当前实现支持 verbose、quiet、summary 三种格式，以及写往错误流的失败文件清单。
package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"gitloc/internal/model"
)

// Mode 表示输出格式。
type Mode int

const (
	// Verbose 逐个文件输出行数，最后输出总计。
	Verbose Mode = iota
	// Quiet 只输出总行数。
	Quiet
	// Summary 输出文件数与总行数。
	Summary
)

// minCountWidth 是 verbose 模式下行数列的最小宽度。
const minCountWidth = 4

func (m Mode) String() string {
	switch m {
	case Verbose:
		return "verbose"
	case Quiet:
		return "quiet"
	case Summary:
		return "summary"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode 解析配置中的输出格式名称，空字符串视为 verbose。
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "verbose":
		return Verbose, nil
	case "quiet":
		return Quiet, nil
	case "summary":
		return Summary, nil
	default:
		return Verbose, fmt.Errorf("unsupported mode %q, allowed values: verbose, quiet, summary", value)
	}
}

// Render 按指定格式把聚合结果写入 writer。
func Render(writer io.Writer, result model.AggregateResult, mode Mode) error {
	switch mode {
	case Verbose:
		return printVerbose(writer, result)
	case Quiet:
		_, err := fmt.Fprintf(writer, "%d\n", result.TotalLines)
		return err
	case Summary:
		_, err := fmt.Fprintf(writer, "Files: %d\nLines: %d\n", result.FileCount, result.TotalLines)
		return err
	default:
		return fmt.Errorf("unsupported mode %s", mode)
	}
}

// printVerbose 右对齐输出每个成功计数的文件，失败文件不出现在表格中。
func printVerbose(writer io.Writer, result model.AggregateResult) error {
	counted := result.Counted()

	widest := result.TotalLines
	for _, item := range counted {
		if item.Lines > widest {
			widest = item.Lines
		}
	}
	width := max(len(strconv.FormatInt(widest, 10)), minCountWidth)

	for _, item := range counted {
		if _, err := fmt.Fprintf(writer, "%*d %s\n", width, item.Lines, item.Path); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "%*d total\n", width, result.TotalLines)
	return err
}

// RenderErrors 把失败文件逐行写入 writer，格式为 "error: <path>: <cause>"。
// colored 为 true 时前缀使用红色。
func RenderErrors(writer io.Writer, result model.AggregateResult, colored bool) error {
	prefix := color.New(color.FgRed, color.Bold)
	if colored {
		prefix.EnableColor()
	} else {
		prefix.DisableColor()
	}

	for _, item := range result.Errors {
		if _, err := fmt.Fprintf(writer, "%s %s: %v\n", prefix.Sprint("error:"), item.Path, cause(item.Err)); err != nil {
			return err
		}
	}
	return nil
}

// cause 去掉错误中已经由路径列体现的路径信息，只保留底层原因。
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil {
		return pathErr.Err
	}

	var countErr *model.CountError
	if errors.As(err, &countErr) && countErr.Err != nil {
		return countErr.Err
	}
	return err
}
