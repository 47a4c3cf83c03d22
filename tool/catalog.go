package tool

// The built-in catalogs (productivity, music, system, meeting, browser) keep
// schemas, argument handling and user-facing phrasing in this package while
// the actual work happens behind injected interfaces. Hosts decide how deep
// the desktop integration goes; the engine only sees Tools.

// stringArg returns the string value for key, or "" when absent.
func stringArg(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// intArg returns the integer value for key. JSON decoding hands numbers over
// as float64, direct callers may pass int; both are accepted.
func intArg(args map[string]any, key string, fallback int) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	default:
		return fallback
	}
}
