package services

// Partial updates arrive as raw JSON objects. filterFields drops every key
// outside the whitelist; unknown keys are ignored, never rejected.
func filterFields(patch map[string]any, allowed ...string) map[string]any {
	filtered := make(map[string]any, len(allowed))
	for _, key := range allowed {
		if val, ok := patch[key]; ok {
			filtered[key] = val
		}
	}
	return filtered
}

func stringField(patch map[string]any, key string) string {
	if val, ok := patch[key].(string); ok {
		return val
	}
	return ""
}

// setIfPresent overwrites dst only when the patch value is non-empty.
// A null or "" in a patch keeps the stored value; this path cannot be used
// to clear a field.
func setIfPresent(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}
