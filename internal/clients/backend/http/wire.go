package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The backend has shipped two generations of every payload: snake_case with
// loosely typed scalars, and camelCase with proper types. The flex types below
// coerce either wire form to one native value at decode time, so the mappers
// never touch a raw representation twice.

// flexString accepts a JSON string or number.
type flexString string

func (v *flexString) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*v = flexString(str)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number, a numeric string, or null.
type flexInt int

func (v *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" || s == "" {
		*v = 0
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*v = flexInt(int(f))
	return nil
}

// flexBool accepts a JSON bool, 0/1, their string forms, or null.
type flexBool bool

func (v *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	switch s {
	case "null", "", "false", "0":
		*v = false
	case "true", "1":
		*v = true
	default:
		return fmt.Errorf("not a bool: %q", s)
	}
	return nil
}

// dateOnly normalizes a timestamp to YYYY-MM-DD; unparseable values pass
// through untouched.
func dateOnly(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// pickString returns the first present field, snake form passed first.
func pickString(vals ...*string) string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return ""
}

func pickInt(vals ...*flexInt) int {
	for _, v := range vals {
		if v != nil {
			return int(*v)
		}
	}
	return 0
}

func pickBool(vals ...*flexBool) bool {
	for _, v := range vals {
		if v != nil {
			return bool(*v)
		}
	}
	return false
}

func pickStrings(vals ...*[]string) []string {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return nil
}
