// Package validate implements form validation as a single reusable module
// parameterized by field-rule tables. Every page (login, register, profile,
// admin row edit) shares the same rule evaluation and error-map shape.
package validate

import (
	"fmt"
	"strings"
	"time"
)

// FileMeta describes an uploaded file for rules with Image or MaxBytes set.
type FileMeta struct {
	ContentType string
	Size        int64
}

// Rule validates one named form field. Message overrides are used where the
// UI wording differs from the generated default.
type Rule struct {
	Field    string
	Label    string
	Required bool
	Trim     bool // trim surrounding whitespace before checking
	MinLen   int
	MaxLen   int
	Equals   string // name of another field whose value must match
	Date     bool
	Image    bool // content type must be an image MIME type
	MaxBytes int64

	RequiredMessage string
	LengthMessage   string
	EqualsMessage   string
}

// Apply evaluates every rule against values (and files, which may be nil)
// and returns a map from field name to the first violation found for that
// field. All fields are checked; nothing short-circuits across fields. An
// empty map means the form may be submitted.
func Apply(rules []Rule, values map[string]string, files map[string]FileMeta) map[string]string {
	errs := make(map[string]string)

	for _, r := range rules {
		if r.Image || r.MaxBytes > 0 {
			if msg := r.checkFile(files); msg != "" {
				errs[r.Field] = msg
			}
			continue
		}

		v := values[r.Field]
		if r.Trim {
			v = strings.TrimSpace(v)
		}

		if v == "" {
			if r.Required {
				errs[r.Field] = r.requiredMessage()
			}
			continue
		}

		if msg := r.checkLength(v); msg != "" {
			errs[r.Field] = msg
			continue
		}

		if r.Equals != "" && v != values[r.Equals] {
			errs[r.Field] = r.equalsMessage()
			continue
		}

		if r.Date {
			if _, err := ParseDate(v); err != nil {
				errs[r.Field] = fmt.Sprintf("%s must be a valid date.", r.Label)
			}
		}
	}

	return errs
}

// Join flattens an error map into one user-facing message, in rule order so
// the output is deterministic.
func Join(rules []Rule, errs map[string]string) string {
	var parts []string
	for _, r := range rules {
		if msg, ok := errs[r.Field]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, " ")
}

func (r Rule) requiredMessage() string {
	if r.RequiredMessage != "" {
		return r.RequiredMessage
	}
	return fmt.Sprintf("%s is required.", r.Label)
}

func (r Rule) equalsMessage() string {
	if r.EqualsMessage != "" {
		return r.EqualsMessage
	}
	return fmt.Sprintf("%s does not match.", r.Label)
}

func (r Rule) checkLength(v string) string {
	n := len([]rune(v))
	switch {
	case r.MinLen > 0 && r.MaxLen > 0 && (n < r.MinLen || n > r.MaxLen):
	case r.MinLen > 0 && n < r.MinLen:
	case r.MaxLen > 0 && n > r.MaxLen:
	default:
		return ""
	}

	if r.LengthMessage != "" {
		return r.LengthMessage
	}
	switch {
	case r.MinLen > 0 && r.MaxLen > 0:
		return fmt.Sprintf("%s must be %d–%d characters.", r.Label, r.MinLen, r.MaxLen)
	case r.MinLen > 0:
		return fmt.Sprintf("%s must be at least %d characters.", r.Label, r.MinLen)
	default:
		return fmt.Sprintf("%s must be at most %d characters.", r.Label, r.MaxLen)
	}
}

func (r Rule) checkFile(files map[string]FileMeta) string {
	f, ok := files[r.Field]
	if !ok {
		if r.Required {
			return r.requiredMessage()
		}
		return ""
	}

	if r.Image && !strings.HasPrefix(f.ContentType, "image/") {
		return fmt.Sprintf("%s must be an image.", r.Label)
	}
	if r.MaxBytes > 0 && f.Size > r.MaxBytes {
		return fmt.Sprintf("%s must be at most %d MB.", r.Label, r.MaxBytes/(1<<20))
	}
	return ""
}

// dateLayouts covers the HTML date input format plus the timestamp forms the
// backend serializes.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a calendar date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
