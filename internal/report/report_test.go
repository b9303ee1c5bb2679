package report

import (
	"bytes"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitloc/internal/model"
)

func sampleResult() model.AggregateResult {
	return model.AggregateResult{
		Root: "/repo",
		Files: []model.FileCount{
			{Path: "src/main.rs", Lines: 120},
			{Path: "src/broken.rs", Err: &model.CountError{Path: "/repo/src/broken.rs", Err: fs.ErrPermission}},
			{Path: "build.rs", Lines: 7},
		},
		TotalLines: 127,
		FileCount:  2,
		Errors: []model.FileCount{
			{Path: "src/broken.rs", Err: &model.CountError{Path: "/repo/src/broken.rs", Err: fs.ErrPermission}},
		},
	}
}

func render(t *testing.T, result model.AggregateResult, mode Mode) string {
	t.Helper()

	var buffer bytes.Buffer
	require.NoError(t, Render(&buffer, result, mode))
	return buffer.String()
}

// TestRenderVerbose 验证 verbose 输出保持结果顺序、右对齐，且不列出失败文件。
func TestRenderVerbose(t *testing.T) {
	expected := strings.Join([]string{
		" 120 src/main.rs",
		"   7 build.rs",
		" 127 total",
		"",
	}, "\n")
	assert.Equal(t, expected, render(t, sampleResult(), Verbose))
}

// TestRenderVerboseWidth 验证宽度由最大值决定，总数也参与计算。
func TestRenderVerboseWidth(t *testing.T) {
	result := model.AggregateResult{
		Files: []model.FileCount{
			{Path: "a.go", Lines: 99999},
			{Path: "b.go", Lines: 1},
		},
		TotalLines: 100000,
		FileCount:  2,
	}

	expected := " 99999 a.go\n     1 b.go\n100000 total\n"
	assert.Equal(t, expected, render(t, result, Verbose))
}

// TestRenderVerboseEmpty 验证没有文件时只输出总计行。
func TestRenderVerboseEmpty(t *testing.T) {
	assert.Equal(t, "   0 total\n", render(t, model.AggregateResult{}, Verbose))
}

// TestRenderQuiet 验证 quiet 只输出总行数。
func TestRenderQuiet(t *testing.T) {
	assert.Equal(t, "127\n", render(t, sampleResult(), Quiet))
}

// TestRenderSummary 验证 summary 输出文件数和行数。
func TestRenderSummary(t *testing.T) {
	assert.Equal(t, "Files: 2\nLines: 127\n", render(t, sampleResult(), Summary))
}

// TestRenderUnknownMode 验证未知格式返回错误。
func TestRenderUnknownMode(t *testing.T) {
	var buffer bytes.Buffer
	assert.Error(t, Render(&buffer, sampleResult(), Mode(42)))
	assert.Equal(t, "mode(42)", Mode(42).String())
}

// TestRenderErrors 验证失败文件清单格式，以及颜色开关。
func TestRenderErrors(t *testing.T) {
	var plain bytes.Buffer
	require.NoError(t, RenderErrors(&plain, sampleResult(), false))
	assert.Equal(t, "error: src/broken.rs: permission denied\n", plain.String())

	var colored bytes.Buffer
	require.NoError(t, RenderErrors(&colored, sampleResult(), true))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "src/broken.rs: permission denied")

	var empty bytes.Buffer
	require.NoError(t, RenderErrors(&empty, model.AggregateResult{}, true))
	assert.Empty(t, empty.String())
}

// TestRenderErrorsPlainError 验证非 CountError 原样输出。
func TestRenderErrorsPlainError(t *testing.T) {
	result := model.AggregateResult{
		Errors: []model.FileCount{{Path: "x.go", Err: errors.New("boom")}},
	}

	var buffer bytes.Buffer
	require.NoError(t, RenderErrors(&buffer, result, false))
	assert.Equal(t, "error: x.go: boom\n", buffer.String())
}

// TestParseMode 验证模式名称解析。
func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":        Verbose,
		"verbose": Verbose,
		" Quiet ": Quiet,
		"SUMMARY": Summary,
	}
	for input, want := range cases {
		got, err := ParseMode(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
		if input != "" {
			assert.Equal(t, strings.ToLower(strings.TrimSpace(input)), got.String())
		}
	}

	_, err := ParseMode("json")
	assert.ErrorContains(t, err, "unsupported mode")
}

// TestRenderErrorsStripsPath 验证 PathError 中的绝对路径不会重复出现。
func TestRenderErrorsStripsPath(t *testing.T) {
	pathErr := &fs.PathError{Op: "open", Path: "/repo/gone.rs", Err: fs.ErrNotExist}
	result := model.AggregateResult{
		Errors: []model.FileCount{{Path: "gone.rs", Err: &model.CountError{Path: "/repo/gone.rs", Err: pathErr}}},
	}

	var buffer bytes.Buffer
	require.NoError(t, RenderErrors(&buffer, result, false))
	assert.Equal(t, "error: gone.rs: file does not exist\n", buffer.String())
}
