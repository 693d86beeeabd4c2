package orbitsdk

import (
	"fmt"
	"runtime"

	"github.com/foundry/orbit/internal/version"
)

const (
	HeaderUserAgent   = "User-Agent"
	HeaderActiveGroup = "active-group"
)

var OrbitUserAgent = fmt.Sprintf("OrbitGo/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)
