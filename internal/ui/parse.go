package ui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	appliedCountRe = regexp.MustCompile(`([0-9]+) filters? applied`)
	recordsFoundRe = regexp.MustCompile(`\(([0-9]+)\) Records? Found`)
)

// ParseAppliedCount extracts N from a "N filters applied" status message.
func ParseAppliedCount(msg string) (int, error) {
	return captureInt(appliedCountRe, msg)
}

// ParseRecordsFound extracts N from an "(N) Records Found" table header.
// "No Records Found" reads as zero.
func ParseRecordsFound(msg string) (int, error) {
	if strings.Contains(msg, "No Records Found") {
		return 0, nil
	}
	return captureInt(recordsFoundRe, msg)
}

func captureInt(re *regexp.Regexp, s string) (int, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q does not match %s", ErrPatternMismatch, s, re)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrPatternMismatch, s, err)
	}
	return n, nil
}

// ExtractTrailingID returns the numeric suffix of an id-bearing attribute
// such as "checkbox-substyles-12" for marker "substyles".
func ExtractTrailingID(value, marker string) (string, error) {
	re := regexp.MustCompile(`.*-` + regexp.QuoteMeta(marker) + `-([0-9]+)$`)
	m := re.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("%w: %q does not match %s", ErrPatternMismatch, value, re)
	}
	return m[1], nil
}

// HasClass reports whether a class attribute contains name as a whole token.
func HasClass(classAttr, name string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}

// ClassRegexp matches a class attribute containing name as a whole token,
// for use with ExpectClass.
func ClassRegexp(name string) *regexp.Regexp {
	return regexp.MustCompile(`(^|\s)` + regexp.QuoteMeta(name) + `(\s|$)`)
}

// AnyOf returns a regexp matching any of the given literal strings. With no
// values it matches nothing.
func AnyOf(values ...string) *regexp.Regexp {
	if len(values) == 0 {
		return regexp.MustCompile(`[^\s\S]`)
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = regexp.QuoteMeta(v)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}
