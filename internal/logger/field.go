package logger

import (
	"time"

	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// field implements contracts.Field for every logger in this package.
type field struct {
	key   string
	value interface{}
}

func (f *field) Bool(key string, val bool) contracts.Field       { return &field{key, val} }
func (f *field) Int(key string, val int) contracts.Field         { return &field{key, val} }
func (f *field) Float64(key string, val float64) contracts.Field { return &field{key, val} }
func (f *field) String(key string, val string) contracts.Field   { return &field{key, val} }
func (f *field) Time(key string, val time.Time) contracts.Field  { return &field{key, val} }
func (f *field) Int64(key string, val int64) contracts.Field     { return &field{key, val} }
func (f *field) Uint64(key string, val uint64) contracts.Field   { return &field{key, val} }
func (f *field) Uint8(key string, val uint8) contracts.Field     { return &field{key, val} }

func (f *field) Error(key string, val error) contracts.Field {
	if val == nil {
		return &field{key, nil}
	}
	return &field{key, val.Error()}
}

// collect flattens fields into a map, skipping foreign implementations.
func collect(fields []contracts.Field) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if kv, ok := f.(*field); ok && kv.key != "" {
			out[kv.key] = kv.value
		}
	}
	return out
}
