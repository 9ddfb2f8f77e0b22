package model

import (
	"encoding/json"
	"strconv"
)

// ID is a company identifier as supplied by callers and by the remote API.
// The API is inconsistent about the JSON type: the same field arrives as a
// number for some companies and as a string for others. ID absorbs both.
// A string that parses as an integer is stored numerically; anything else
// stays a string. Coercion never fails.
type ID struct {
	num     int64
	str     string
	numeric bool
}

// IDFromInt64 creates a numeric ID.
func IDFromInt64(n int64) ID {
	return ID{num: n, numeric: true}
}

// IDFromString creates an ID from a string, coercing numeric strings.
func IDFromString(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID{num: n, numeric: true}
	}
	return ID{str: s}
}

// IsNumeric reports whether the ID holds an integer value.
func (id ID) IsNumeric() bool {
	return id.numeric
}

// Int64 returns the numeric value and whether the ID is numeric.
func (id ID) Int64() (int64, bool) {
	return id.num, id.numeric
}

// String returns the canonical textual form of the ID.
func (id ID) String() string {
	if id.numeric {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// IsZero reports whether the ID is unset.
func (id ID) IsZero() bool {
	return !id.numeric && id.str == ""
}

// MarshalJSON emits a JSON number for numeric IDs and a string otherwise,
// so the variable binding sent to the API matches what the caller supplied.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts a JSON number, a JSON string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ID{}
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = IDFromInt64(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Neither number nor string: keep the raw token as text rather
		// than failing the whole record over an identifier.
		*id = ID{str: string(data)}
		return nil
	}
	*id = IDFromString(s)
	return nil
}
