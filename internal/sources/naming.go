package sources

import "strings"

// ToolNamePrefix marks every per-source fetch capability.
const ToolNamePrefix = "fetch_docs_"

// DefaultMaxToolNameLength is the default cap on derived tool names. Some MCP
// clients reject longer names.
const DefaultMaxToolNameLength = 60

var toolNameReplacer = strings.NewReplacer(" ", "_", ".", "_", "/", "_")

// ToolName derives the capability name for a doc source from its human name:
// spaces, dots and slashes become underscores, the fetch prefix is applied,
// and the result is cut to maxLen characters when maxLen is positive (zero or
// negative means unlimited). The cut is a plain length truncation, so two
// distinct names may collide; collisions are the registry's job to detect.
func ToolName(humanName string, maxLen int) string {
	base := ToolNamePrefix + toolNameReplacer.Replace(humanName)
	if maxLen > 0 && len(base) > maxLen {
		return base[:maxLen]
	}
	return base
}
