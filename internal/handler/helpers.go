package handler

import (
	"fmt"
	"strconv"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// parsePage never fails: missing, malformed and non-positive values all mean page 1.
func parsePage(pageQuery string) int {
	if pageQuery == "" {
		return defaultPage
	}
	page, err := strconv.Atoi(pageQuery)
	if err != nil || page < 1 {
		return defaultPage
	}
	return page
}
