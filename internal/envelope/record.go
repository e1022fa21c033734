package envelope

// Record is one raw item of a response: a flat mapping of field code to
// text that remembers the order fields appeared in and which were present.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord builds a record from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewRecord(kv ...string) Record {
	r := Record{values: make(map[string]string, len(kv)/2)}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], kv[i+1])
	}
	return r
}

// Set stores a field value. Re-setting a field keeps its original position.
func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the raw value of a field and whether it was present
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field codes in the order they appeared
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields present
func (r Record) Len() int {
	return len(r.keys)
}
