//go:build sonic

package orbitsdk

import (
	"github.com/bytedance/sonic"
)

// ConfigStd sorts map keys, ConfigDefault does not
var jsonMarshal = sonic.ConfigStd.Marshal
var jsonUnmarshal = sonic.ConfigStd.Unmarshal
