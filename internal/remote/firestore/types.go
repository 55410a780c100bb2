package firestore

// Value is the typed JSON representation of a single Firestore field.
// Exactly one member is set; all nil means null.
type Value struct {
	NullValue      *string     `json:"nullValue,omitempty"`
	BooleanValue   *bool       `json:"booleanValue,omitempty"`
	IntegerValue   *string     `json:"integerValue,omitempty"`
	DoubleValue    *float64    `json:"doubleValue,omitempty"`
	StringValue    *string     `json:"stringValue,omitempty"`
	TimestampValue *string     `json:"timestampValue,omitempty"`
	ArrayValue     *ArrayValue `json:"arrayValue,omitempty"`
	MapValue       *MapValue   `json:"mapValue,omitempty"`
}

// ArrayValue holds the elements of an array field.
type ArrayValue struct {
	Values []Value `json:"values,omitempty"`
}

// MapValue holds the members of a nested map field.
type MapValue struct {
	Fields map[string]Value `json:"fields,omitempty"`
}

// Document is a Firestore document as returned by the REST API.
// Name is the full resource path ending in the document id.
type Document struct {
	Name       string           `json:"name,omitempty"`
	Fields     map[string]Value `json:"fields,omitempty"`
	CreateTime string           `json:"createTime,omitempty"`
	UpdateTime string           `json:"updateTime,omitempty"`
}

// ListResponse is the response from GET .../documents/{collection}.
type ListResponse struct {
	Documents     []Document `json:"documents"`
	NextPageToken string     `json:"nextPageToken"`
}

// Write is a single mutation inside a commit request.
type Write struct {
	Delete string `json:"delete,omitempty"`
}

// CommitRequest is the body of POST .../documents:commit.
type CommitRequest struct {
	Writes []Write `json:"writes"`
}

// ErrorResponse is the error envelope returned by Google APIs.
type ErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
