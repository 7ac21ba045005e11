package wdfsdk

import (
	"encoding/json"
	"fmt"
)

// JSONConfig is an opaque JSON blob of driver settings supplied by the host
// at attach time, typically materialized from the driver's registry path.
// Drivers should Decode() it into a strongly typed struct.
type JSONConfig struct {
	raw json.RawMessage
}

func NewJSONConfig(raw []byte) JSONConfig { return JSONConfig{raw: raw} }

func (c JSONConfig) Raw() []byte { return c.raw }

// Empty reports whether the host supplied no settings.
func (c JSONConfig) Empty() bool { return len(c.raw) == 0 }

func (c JSONConfig) Decode(v any) error {
	if c.Empty() {
		return fmt.Errorf("empty config")
	}
	return json.Unmarshal(c.raw, v)
}
