package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gitloc/internal/classify"
)

// newExcludesCmd 创建 excludes 子命令。
// 命令用于展示内置的排除规则：精确文件名以及按分组列出的后缀。
func newExcludesCmd(policy *classify.Policy) *cobra.Command {
	return &cobra.Command{
		Use:   "excludes",
		Short: "展示内置排除规则",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "GROUP\tENTRIES"); err != nil {
				return err
			}

			for _, group := range policy.Rules() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\n", group.Name, strings.Join(group.Entries, ", ")); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
