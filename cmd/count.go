package cmd

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"gitloc/internal/aggregate"
	"gitloc/internal/classify"
	"gitloc/internal/config"
	"gitloc/internal/logging"
	"gitloc/internal/repo"
	"gitloc/internal/report"
)

// countOptions 存放计数命令中不经过 viper 的参数。
type countOptions struct {
	configFile string
	verbose    bool
	quiet      bool
	summary    bool
}

// newCountCmd 创建计数命令。
// 示例：
//
//	gitloc
//	gitloc ./project --summary
//	gitloc -q --backend exec
func newCountCmd(policy *classify.Policy) *cobra.Command {
	var options countOptions
	settings := config.New()

	countCmd := &cobra.Command{
		Use:   "gitloc [path]",
		Short: "统计 Git 仓库中被跟踪源码文件的行数",
		Long: "gitloc 列出仓库中被 Git 跟踪的文件，排除媒体、数据、文档等非源码文件，\n" +
			"并发统计剩余文件的行数，支持 verbose/quiet/summary 三种输出。\n\n" +
			"path 默认为当前目录。子命令名优先于 path：要统计名为 version 或 excludes 的目录，\n" +
			"请写成 ./version 或 ./excludes。",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			targetPath := "."
			if len(args) == 1 {
				targetPath = args[0]
			}
			return runCount(cmd, settings, policy, options, targetPath)
		},
	}

	flags := countCmd.Flags()
	flags.BoolVarP(&options.verbose, "verbose", "v", false, "逐个文件输出行数（默认）")
	flags.BoolVarP(&options.quiet, "quiet", "q", false, "只输出总行数")
	flags.BoolVarP(&options.summary, "summary", "s", false, "输出文件数与总行数")
	countCmd.MarkFlagsMutuallyExclusive("verbose", "quiet", "summary")

	flags.StringVar(&options.configFile, "config", "", "配置文件路径，默认查找 $HOME/.config/gitloc/config.*")
	flags.Int("workers", 0, "并发 worker 数量，0 表示使用 CPU 核数")
	flags.String("backend", repo.BackendGoGit, "文件列表后端: gogit 或 exec")
	flags.String("log-level", "warn", "日志级别: debug, info, warn, error")

	_ = settings.BindPFlag(config.KeyWorkers, flags.Lookup("workers"))
	_ = settings.BindPFlag(config.KeyBackend, flags.Lookup("backend"))
	_ = settings.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))

	return countCmd
}

// runCount 执行一次完整计数并输出结果。
// 列表阶段的错误直接返回；单文件错误写入错误流，不影响退出码。
func runCount(cmd *cobra.Command, v *viper.Viper, policy *classify.Policy, options countOptions, targetPath string) error {
	settings, err := config.Load(v, options.configFile)
	if err != nil {
		return err
	}

	mode, err := resolveMode(options, settings)
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}

	lister, err := repo.New(settings.Backend)
	if err != nil {
		return err
	}

	service := aggregate.NewService(settings.Workers, logger)
	logger.Debug("counting",
		zap.String("path", targetPath),
		zap.String("backend", settings.Backend),
		zap.Int("workers", service.Workers()),
		zap.Stringer("mode", mode),
	)

	result, err := service.Run(cmd.Context(), lister, policy, targetPath)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout(), result, mode); err != nil {
		return err
	}
	return report.RenderErrors(cmd.ErrOrStderr(), result, colorEnabled(cmd.ErrOrStderr()))
}

// resolveMode 命令行参数优先，其次是配置中的 mode。
func resolveMode(options countOptions, settings config.Settings) (report.Mode, error) {
	switch {
	case options.quiet:
		return report.Quiet, nil
	case options.summary:
		return report.Summary, nil
	case options.verbose:
		return report.Verbose, nil
	default:
		return report.ParseMode(settings.Mode)
	}
}

// colorEnabled 仅在输出到终端且未设置 NO_COLOR 时启用颜色。
func colorEnabled(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
