// Package classify 负责根据文件名和后缀判定一个被跟踪文件是否参与行数统计。
package classify

import (
	"path/filepath"
	"sort"
	"strings"

	"gitloc/internal/model"
)

// RuleGroup 用于对外展示一组排除规则。
type RuleGroup struct {
	Name    string
	Entries []string
}

// Policy 是不可变的排除策略。
// 构造完成后不会再被修改，可以在多个 goroutine 之间直接共享。
type Policy struct {
	names      map[string]struct{}
	extensions map[string]string
	groups     []RuleGroup
}

var (
	excludedNames = []string{"LICENSE", "LICENSE-MIT", "LICENSE-APACHE", ".gitignore"}

	mediaExtensions = []string{
		"mp3", "png", "jpg", "jpeg", "gif", "svg", "woff2", "ico", "webp", "bmp", "tiff", "wav",
		"mp4", "avi", "mov", "webm", "flac", "ogg", "ttf", "woff", "eot", "otf", "pdf",
	}
	dataExtensions = []string{"mmdb", "csv", "json", "toml", "lock", "ini", "yaml", "yml", "xml"}
	docExtensions  = []string{"md"}
)

// DefaultPolicy 创建内置排除策略。
func DefaultPolicy() *Policy {
	policy := &Policy{
		names:      make(map[string]struct{}, len(excludedNames)),
		extensions: make(map[string]string),
	}

	for _, name := range excludedNames {
		policy.names[name] = struct{}{}
	}

	policy.addExtensions("media", mediaExtensions)
	policy.addExtensions("data", dataExtensions)
	policy.addExtensions("docs", docExtensions)

	policy.groups = append(policy.groups, RuleGroup{Name: "names", Entries: sortedCopy(excludedNames)})
	return policy
}

func (p *Policy) addExtensions(group string, extensions []string) {
	for _, ext := range extensions {
		p.extensions[strings.ToLower(ext)] = group
	}
	p.groups = append(p.groups, RuleGroup{Name: group, Entries: sortedCopy(extensions)})
}

// Included 判定路径是否参与统计。
// 只检查最后一段文件名：先按精确文件名排除（区分大小写），再按后缀排除（不区分大小写）。
func (p *Policy) Included(path string) bool {
	name := baseName(path)

	if _, ok := p.names[name]; ok {
		return false
	}

	ext, ok := extension(name)
	if !ok {
		return true
	}

	_, excluded := p.extensions[strings.ToLower(ext)]
	return !excluded
}

// Classify 为每个路径打上包含/排除标记，保持输入顺序。
func (p *Policy) Classify(paths []string) []model.ClassifiedPath {
	result := make([]model.ClassifiedPath, 0, len(paths))
	for _, path := range paths {
		result = append(result, model.ClassifiedPath{
			Path:     path,
			Included: p.Included(path),
		})
	}
	return result
}

// Filter 返回被包含的路径，保持输入顺序。
func (p *Policy) Filter(paths []string) []string {
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		if p.Included(path) {
			result = append(result, path)
		}
	}
	return result
}

// Rules 返回排除规则清单，供 excludes 子命令展示。
func (p *Policy) Rules() []RuleGroup {
	result := make([]RuleGroup, 0, len(p.groups))
	for _, group := range p.groups {
		result = append(result, RuleGroup{
			Name:    group.Name,
			Entries: append([]string(nil), group.Entries...),
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// baseName 取最后一段路径。git 输出总是使用 '/'，本地路径可能使用系统分隔符。
func baseName(path string) string {
	path = filepath.ToSlash(path)
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// extension 返回最后一个 '.' 之后的后缀。
// ".env" 这种只有前导点的文件视为没有后缀。
func extension(name string) (string, bool) {
	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || idx == len(name)-1 {
		return "", false
	}
	return name[idx+1:], true
}

func sortedCopy(values []string) []string {
	result := append([]string(nil), values...)
	sort.Strings(result)
	return result
}
