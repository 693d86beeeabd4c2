package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/foundry/orbit/internal/orbitsdk"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

var errServiceUnreachable = errors.New("orbit service unreachable")

// checkStatus turns a non-2xx result into an error
func checkStatus(status int) error {
	switch {
	case status == orbitsdk.StatusServiceUnavailable:
		return errServiceUnreachable
	case status < http.StatusOK || status >= http.StatusMultipleChoices:
		return fmt.Errorf("orbit service responded with %d %s", status, http.StatusText(status))
	}
	return nil
}

func render(w io.Writer, v any, format string) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()

	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
