package templates

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	openTagPattern  = regexp.MustCompile(`<[^/][^>]*>`)
	closeTagPattern = regexp.MustCompile(`</[^>]*>`)
)

// ValidationResult is the outcome of a shallow markup check.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidationError is returned by save paths when markup fails Validate.
type ValidationError struct {
	Result ValidationResult
}

func (e *ValidationError) Error() string {
	return "invalid template: " + strings.Join(e.Result.Errors, "; ")
}

// Validate compares the number of opening tags with the number of closing
// tags. It is a syntactic smoke test, not a guarantee that the markup renders.
// Empty markup is balanced; Service.Save rejects it separately.
func Validate(markup string) ValidationResult {
	errs := []string{}
	opens := len(openTagPattern.FindAllString(markup, -1))
	closes := len(closeTagPattern.FindAllString(markup, -1))
	if opens != closes {
		errs = append(errs, fmt.Sprintf("Unbalanced HTML tags detected (%d opening, %d closing)", opens, closes))
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
