package conf

import (
	"encoding/json"
	"strings"

	"github.com/goccy/go-yaml"
)

// Encode returns the canonical JSON encoding of c. A positive indent puts
// each member on its own line, indented by that many spaces per level.
func (c *Conf) Encode(indent int) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(c, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(c)
	}

	if err != nil {
		return nil, ErrJSON.Wrap(err)
	}

	return append(data, '\n'), nil
}

// EncodeYAML returns the YAML rendition of the canonical JSON encoding of c,
// keeping its key order.
func (c *Conf) EncodeYAML() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, ErrJSON.Wrap(err)
	}

	out, err := yaml.JSONToYAML(data)
	if err != nil {
		return nil, ErrInternal.Wrap(err)
	}

	return out, nil
}
