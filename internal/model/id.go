package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ID identifies an event, session or checklist. IDs are decimal creation
// timestamps in milliseconds. Older snapshots and the remote mirror carry
// them as JSON numbers or strings; both decode to the same ID, so
// comparisons are plain string equality.
type ID string

// IDFromInt formats n as an ID.
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// Int returns the numeric value of the ID, if it has one.
func (id ID) Int() (int64, bool) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (id ID) String() string { return string(id) }

// MarshalJSON always writes the ID as a JSON string.
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var n json.Number
	if err := dec.Decode(&n); err != nil {
		return fmt.Errorf("decoding id %s: %w", data, err)
	}
	if i, err := n.Int64(); err == nil {
		*id = IDFromInt(i)
		return nil
	}
	// Exponent notation still names an integral timestamp.
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return fmt.Errorf("decoding id %s: not an integer", data)
	}
	*id = IDFromInt(int64(f))
	return nil
}
