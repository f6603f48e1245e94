package util

// ContainsInt64 reports whether list contains v. An empty list is treated as
// "match everything" by callers that use id filters; this helper itself is a
// plain membership check.
func ContainsInt64(list []int64, v int64) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// ContainsString reports whether list contains v.
func ContainsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
