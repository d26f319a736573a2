package models

import (
	"bytes"
	"encoding/json"
)

// The API returns related documents either populated ({"_id":..,"name":..})
// or as a bare id string depending on the endpoint. Both forms decode into
// the same struct; a bare id leaves the other fields empty.

func (c *AdmissionCollege) UnmarshalJSON(b []byte) error {
	type plain AdmissionCollege
	if id, ok := bareID(b); ok {
		*c = AdmissionCollege{ID: id}
		return nil
	}
	return json.Unmarshal(b, (*plain)(c))
}

func (c *ReviewCollege) UnmarshalJSON(b []byte) error {
	type plain ReviewCollege
	if id, ok := bareID(b); ok {
		*c = ReviewCollege{ID: id}
		return nil
	}
	return json.Unmarshal(b, (*plain)(c))
}

func (a *ReviewAuthor) UnmarshalJSON(b []byte) error {
	type plain ReviewAuthor
	if id, ok := bareID(b); ok {
		*a = ReviewAuthor{ID: id}
		return nil
	}
	return json.Unmarshal(b, (*plain)(a))
}

func bareID(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return "", false
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return "", false
	}
	return id, true
}
