package query

import "go.mongodb.org/mongo-driver/bson"

// Projection builds a field-inclusion document from a caller-supplied field
// list. The storage identity field is always excluded. With no fields the
// projection returns every document field (minus identity); unknown field
// names are passed through, the store simply returns nothing for them.
func Projection(fields ...string) bson.M {
	p := bson.M{"_id": 0}
	for _, f := range fields {
		if f != "" {
			p[f] = 1
		}
	}
	return p
}

// ProjectionDefault behaves like Projection but falls back to an
// endpoint-specific default field subset when the caller requested nothing.
func ProjectionDefault(fields, defaults []string) bson.M {
	if len(fields) > 0 {
		return Projection(fields...)
	}
	return Projection(defaults...)
}

// ProjectionExtend includes a base allow-list of fields plus whatever the
// caller explicitly asked for.
func ProjectionExtend(base, fields []string) bson.M {
	p := Projection(base...)
	for _, f := range fields {
		if f != "" {
			p[f] = 1
		}
	}
	return p
}
