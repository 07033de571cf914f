package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Setting keys
const (
	KeyTargetFolder             = "target_folder"
	KeyDefaultExcludePatterns   = "default_exclude_patterns"
	KeyCopyExcludePatterns      = "copy_exclude_patterns"
	KeyConfirmTemplateOverwrite = "confirm_template_overwrite"
	KeyAutoOpenNewProjects      = "auto_open_new_projects"
	KeyOpenCommand              = "open_command"
)

// Config is the decoded view of all settings
type Config struct {
	TargetFolder             string   `koanf:"target_folder"`
	DefaultExcludePatterns   []string `koanf:"default_exclude_patterns"`
	CopyExcludePatterns      []string `koanf:"copy_exclude_patterns"`
	ConfirmTemplateOverwrite bool     `koanf:"confirm_template_overwrite"`
	AutoOpenNewProjects      bool     `koanf:"auto_open_new_projects"`
	OpenCommand              string   `koanf:"open_command"`
}

type kind int

const (
	kindString kind = iota
	kindList
	kindBool
)

var keyKinds = map[string]kind{
	KeyTargetFolder:             kindString,
	KeyDefaultExcludePatterns:   kindList,
	KeyCopyExcludePatterns:      kindList,
	KeyConfirmTemplateOverwrite: kindBool,
	KeyAutoOpenNewProjects:      kindBool,
	KeyOpenCommand:              kindString,
}

// Keys returns every known setting key, sorted
func Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognised setting
func IsKnownKey(key string) bool {
	_, ok := keyKinds[key]
	return ok
}

// coerce converts value to the type stored for key. Strings are parsed so
// values typed at the command line can be stored directly.
func coerce(key string, value interface{}) (interface{}, error) {
	k, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}

	switch k {
	case kindList:
		return AsStrings(value), nil
	case kindBool:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("setting %q expects true or false, got %q", key, v)
			}
			return b, nil
		default:
			return nil, fmt.Errorf("setting %q expects a boolean", key)
		}
	default:
		return AsString(value), nil
	}
}

// ParseList splits a comma-separated list, trimming entries and dropping
// empty ones.
func ParseList(s string) []string {
	result := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// AsString converts a raw setting value to a string
func AsString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// AsStrings converts a raw setting value to a list. Strings are treated as
// comma-separated lists.
func AsStrings(v interface{}) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case string:
		return ParseList(val)
	case []string:
		return append([]string{}, val...)
	case []interface{}:
		result := make([]string, 0, len(val))
		for _, item := range val {
			if s := strings.TrimSpace(AsString(item)); s != "" {
				result = append(result, s)
			}
		}
		return result
	default:
		return ParseList(fmt.Sprint(val))
	}
}

// AsBool converts a raw setting value to a bool, using def when the value
// is missing or unparseable.
func AsBool(v interface{}, def bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
	}
	return def
}
