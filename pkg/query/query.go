// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

// Package query parses multi-value URL query parameters into typed slices.
package query

import (
	"strconv"
	"strings"
)

// IntSlice converts repeated query values into integers, dropping entries
// that do not parse.
func IntSlice(vals []string) []int {
	res := make([]int, 0, len(vals))
	for _, v := range vals {
		if i, err := strconv.Atoi(v); err == nil {
			res = append(res, i)
		}
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

// StringSlice splits a comma-separated query value into trimmed entries,
// dropping empties ("a,,b" yields ["a","b"]).
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
