package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes nodes as JSON to the writer.
func FormatJSON(_ context.Context, w io.Writer, indent int, nodes ...Node) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToNative(nodes...), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToNative(nodes...))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes nodes as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, indent int, nodes ...Node) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToNative(nodes...), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(yamlData)

	return err
}
