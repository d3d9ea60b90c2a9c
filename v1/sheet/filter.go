package sheet

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Filter decides whether an uploaded or stored file is decoded at all.
type Filter struct {
	name       *regexp.Regexp
	extensions map[string]bool
	minSize    int64
	maxSize    int64
	custom     func(name string, size int64) error
}

// NewFilter compiles cfg.
func NewFilter(cfg FilterConfig) (*Filter, error) {
	f := &Filter{minSize: cfg.MinSize, maxSize: cfg.MaxSize}
	if cfg.NamePattern != "" {
		re, err := regexp.Compile("^(?:" + cfg.NamePattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid name pattern %q: %w", cfg.NamePattern, err)
		}
		f.name = re
	}
	if len(cfg.Extensions) > 0 {
		f.extensions = make(map[string]bool, len(cfg.Extensions))
		for _, ext := range cfg.Extensions {
			f.extensions[normalizeExt(ext)] = true
		}
	}
	return f, nil
}

// WithCheck adds a rule evaluated after the built-in ones.
func (f *Filter) WithCheck(check func(name string, size int64) error) *Filter {
	f.custom = check
	return f
}

// Check returns nil when a file called name of size bytes passes every rule,
// and a *RejectedError naming the failed rule otherwise.
func (f *Filter) Check(name string, size int64) error {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	ext := Extension(base)
	stem := strings.TrimSuffix(base, path.Ext(base))

	if f.name != nil && !f.name.MatchString(stem) {
		return &RejectedError{File: base, Rule: RuleName, Detail: fmt.Sprintf("does not match %s", f.name)}
	}
	if f.extensions != nil && !f.extensions[ext] {
		return &RejectedError{File: base, Rule: RuleType, Detail: fmt.Sprintf("unaccepted type %q", ext)}
	}
	if f.maxSize > 0 && size >= f.maxSize {
		return &RejectedError{File: base, Rule: RuleSize, Detail: fmt.Sprintf("%d bytes, limit %d", size, f.maxSize)}
	}
	if f.minSize > 0 && size <= f.minSize {
		return &RejectedError{File: base, Rule: RuleSize, Detail: fmt.Sprintf("%d bytes, minimum %d", size, f.minSize)}
	}
	if f.custom != nil {
		if err := f.custom(base, size); err != nil {
			return &RejectedError{File: base, Rule: RuleCheck, Detail: err.Error()}
		}
	}
	return nil
}

// Extension returns the lower-case extension of name without the dot.
func Extension(name string) string {
	return normalizeExt(path.Ext(name))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}
