// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/pdiddy/reag/pkg/types"
)

// ErrEmptyInput reports an invocation with nothing to do. Tools surface it
// as an informational message, not a failure.
var ErrEmptyInput = errors.New("no input provided")

// Params are the parameters of one tool invocation.
type Params struct {
	Files []types.File        `mapstructure:"files"`
	Query string              `mapstructure:"query"`
	Model types.ModelSelector `mapstructure:"model"`
}

// DecodeParams decodes a host parameter map. A file blob may be given as
// []byte or as a string.
func DecodeParams(in map[string]any) (Params, error) {
	var p Params
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToBytesHook,
		Result:     &p,
		TagName:    "mapstructure",
	})
	if err != nil {
		return Params{}, fmt.Errorf("building parameter decoder: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return Params{}, fmt.Errorf("decoding parameters: %w", err)
	}
	return p, nil
}

var bytesType = reflect.TypeOf([]byte(nil))

func stringToBytesHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() == reflect.String && to == bytesType {
		return []byte(reflect.ValueOf(data).String()), nil
	}
	return data, nil
}

// Validate reports ErrEmptyInput when p has no files or a blank query.
func (p Params) Validate() error {
	if len(p.Files) == 0 {
		return fmt.Errorf("%w: no files", ErrEmptyInput)
	}
	if strings.TrimSpace(p.Query) == "" {
		return fmt.Errorf("%w: query is empty", ErrEmptyInput)
	}
	return nil
}
