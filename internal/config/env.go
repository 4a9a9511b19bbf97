package config

import (
	"strconv"
	"strings"
)

// LookupFunc reports the value of an environment variable. os.LookupEnv
// satisfies it.
type LookupFunc func(key string) (string, bool)

// envMapping maps environment variables to the setting they override.
var envMapping = []struct {
	name string
	set  func(c *Config, value string) error
}{
	{"RUT_TAB_WIDTH", func(c *Config, v string) error { return setInt(&c.Editor.TabWidth, "RUT_TAB_WIDTH", v) }},
	{"RUT_LINE_ENDING", func(c *Config, v string) error { c.Editor.LineEnding = strings.ToLower(v); return nil }},
	{"RUT_MAX_UNDO", func(c *Config, v string) error { return setInt(&c.Editor.MaxUndo, "RUT_MAX_UNDO", v) }},
	{"RUT_LOG_LEVEL", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"RUT_ARCHIVE", func(c *Config, v string) error { c.Archive.Path = v; return nil }},
}

// ApplyEnv overlays the RUT_* variables that lookup reports as set.
// Empty values are treated as set.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	for _, m := range envMapping {
		val, ok := lookup(m.name)
		if !ok {
			continue
		}
		if err := m.set(c, strings.TrimSpace(val)); err != nil {
			return err
		}
	}
	return nil
}

// EnvNames lists the environment variables ApplyEnv reads.
func EnvNames() []string {
	names := make([]string, len(envMapping))
	for i, m := range envMapping {
		names[i] = m.name
	}
	return names
}

func setInt(dst *int, name, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return invalid("%s=%q is not an integer", name, value)
	}
	*dst = n
	return nil
}
