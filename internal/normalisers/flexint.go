package normalisers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON number or a numeric string.
// Document dumps store positions either way.
type FlexInt struct {
	Value int
	Set   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}

	var n json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = FlexInt{}
			return nil
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}

	if v, err := n.Int64(); err == nil {
		*f = FlexInt{Value: int(v), Set: true}
		return nil
	}
	v, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*f = FlexInt{Value: int(v), Set: true}
	return nil
}
