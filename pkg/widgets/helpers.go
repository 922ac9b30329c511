package widgets

// attrsWithID merges an id into the instance attributes without
// mutating the caller's map. An "id" key already present wins.
func attrsWithID(attrs map[string]string, id string) map[string]string {
	if id == "" {
		return attrs
	}
	if _, ok := attrs["id"]; ok {
		return attrs
	}
	merged := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	merged["id"] = id
	return merged
}

// attrsWith returns attrs plus the given key/value pairs, copying so the
// widget's own map stays untouched. Later pairs win over attrs.
func attrsWith(attrs map[string]string, pairs ...string) map[string]string {
	if len(pairs) == 0 {
		return attrs
	}
	merged := make(map[string]string, len(attrs)+len(pairs)/2)
	for k, v := range attrs {
		merged[k] = v
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		merged[pairs[i]] = pairs[i+1]
	}
	return merged
}
