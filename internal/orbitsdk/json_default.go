//go:build !sonic

package orbitsdk

import (
	"github.com/goccy/go-json"
)

// map keys are encoded in sorted order
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal
