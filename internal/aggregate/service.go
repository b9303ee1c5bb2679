// Package aggregate 提供并发计数调度能力。
// 该层负责路径校验、任务分发、并发执行和结果聚合，不负责单文件读取细节。
package aggregate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gitloc/internal/classify"
	"gitloc/internal/linecount"
	"gitloc/internal/model"
	"gitloc/internal/repo"
)

// CountFunc 统计单个文件的行数，path 为绝对路径。
type CountFunc func(path string) (int64, error)

// Service 是聚合服务对象。
type Service struct {
	workers int
	logger  *zap.Logger
	count   CountFunc
}

// NewService 创建聚合服务。
// workers <= 0 时使用 CPU 核数；logger 为 nil 时不输出日志。
func NewService(workers int, logger *zap.Logger) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		workers: workers,
		logger:  logger,
		count:   linecount.CountFile,
	}
}

// Workers 返回并发 worker 上限。
func (s *Service) Workers() int {
	return s.workers
}

// Run 执行完整流水线：校验路径、列出被跟踪文件、分类、并发计数。
// 路径无效或无法列出文件时直接返回错误，此时不会调度任何计数任务。
func (s *Service) Run(ctx context.Context, lister repo.Lister, policy *classify.Policy, targetPath string) (model.AggregateResult, error) {
	var result model.AggregateResult

	root, err := validateRoot(targetPath)
	if err != nil {
		return result, err
	}

	files, err := lister.List(ctx, root)
	if err != nil {
		return result, fmt.Errorf("list tracked files in %s: %w", root, err)
	}

	classified := policy.Classify(files)
	s.logger.Debug("listed tracked files",
		zap.String("root", root),
		zap.Int("tracked", len(files)),
	)

	return s.Aggregate(ctx, root, classified)
}

// Aggregate 并发统计被包含的路径。
//
// 每个被包含路径按过滤后的位置分配固定下标，worker 只写入自己的槽位，
// 全部完成后按下标顺序折叠结果，因此输出顺序与调度顺序无关。
// 单文件失败只记录到 Errors，不会中断其他任务。
func (s *Service) Aggregate(ctx context.Context, root string, classified []model.ClassifiedPath) (model.AggregateResult, error) {
	result := model.AggregateResult{Root: root}

	included := make([]string, 0, len(classified))
	for _, item := range classified {
		if item.Included {
			included = append(included, item.Path)
		}
	}

	slots := make([]model.FileCount, len(included))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)

	for index, path := range included {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			slots[index] = s.countOne(root, path)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return result, fmt.Errorf("count lines: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("count lines: %w", err)
	}

	result.Files = slots
	result.Errors = make([]model.FileCount, 0)
	for _, item := range slots {
		if !item.OK() {
			result.Errors = append(result.Errors, item)
			continue
		}
		result.TotalLines += item.Lines
		result.FileCount++
	}

	s.logger.Debug("aggregated line counts",
		zap.Int("included", len(included)),
		zap.Int("counted", result.FileCount),
		zap.Int("failed", len(result.Errors)),
		zap.Int64("lines", result.TotalLines),
	)
	return result, nil
}

// countOne 统计单个文件，失败时把错误封装进 FileCount。
func (s *Service) countOne(root string, path string) model.FileCount {
	lines, err := s.count(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		s.logger.Debug("count failed", zap.String("path", path), zap.Error(err))
		return model.FileCount{Path: path, Err: err}
	}
	return model.FileCount{Path: path, Lines: lines}
}

// validateRoot 把用户输入转换为绝对目录路径。
func validateRoot(targetPath string) (string, error) {
	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return "", fmt.Errorf("%w: path is empty", model.ErrInvalidPath)
	}

	absoluteRoot, err := filepath.Abs(trimmedPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidPath, err)
	}

	info, err := os.Stat(absoluteRoot)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", model.ErrInvalidPath, absoluteRoot)
	}
	return absoluteRoot, nil
}
