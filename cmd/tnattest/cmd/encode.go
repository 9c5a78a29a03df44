package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trufnetwork/tnattest/internal/codec"
	"github.com/trufnetwork/tnattest/internal/format"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode values into binary attestation structures",
}

var encodeArgsCmd = &cobra.Command{
	Use:   "args <json|->",
	Short: "Encode a JSON array of action arguments to a hex argument buffer",
	Long: `Encode a JSON array of action arguments to a hex argument buffer.

Each array element is either a plain JSON value (type inferred) or an
object {"value": ..., "type": "..."} with an explicit type hint such as
int8, text, bool, numeric(5,2), bytea, uuid, or text[].`,
	Args: cobra.ExactArgs(1),
	RunE: runEncodeArgs,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.AddCommand(encodeArgsCmd)
}

func runEncodeArgs(cmd *cobra.Command, cmdArgs []string) error {
	input := cmdArgs[0]
	if input == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(data)
	}

	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("input must be a JSON array: %w", err)
	}

	args := make([]codec.Arg, 0, len(raw))
	for i, elem := range raw {
		arg, err := parseArg(elem)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		args = append(args, arg)
	}

	buf, err := codec.EncodeActionArgs(args, format.New())
	if err != nil {
		return err
	}
	fmt.Println(hex.EncodeToString(buf))
	return nil
}

// parseArg converts one JSON array element to a codec argument. Objects
// with "value" and "type" keys carry an explicit hint; anything else is a
// plain value with its type inferred.
func parseArg(elem any) (codec.Arg, error) {
	hint := ""
	value := elem

	if obj, ok := elem.(map[string]any); ok {
		v, hasValue := obj["value"]
		t, hasType := obj["type"]
		if !hasValue || !hasType {
			return codec.Arg{}, fmt.Errorf(`object arguments need "value" and "type" keys`)
		}
		hintStr, ok := t.(string)
		if !ok {
			return codec.Arg{}, fmt.Errorf(`"type" must be a string`)
		}
		hint = hintStr
		value = v
	}

	native, err := nativeValue(value, hint)
	if err != nil {
		return codec.Arg{}, err
	}
	return codec.Arg{Value: native, Hint: hint}, nil
}

// nativeValue maps JSON-decoded values onto the formatter's native types.
// Integral numbers become int64; other numbers keep their literal text so
// numeric hints round-trip exactly. Bytea hints take hex strings.
func nativeValue(v any, hint string) (any, error) {
	base := strings.ToLower(strings.TrimSuffix(hint, "[]"))

	switch x := v.(type) {
	case json.Number:
		if base == "numeric" || base == "decimal" {
			return x.String(), nil
		}
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", x.String())
		}
		return f, nil
	case string:
		if base == "bytea" || base == "blob" {
			raw, err := hex.DecodeString(strings.TrimPrefix(x, "0x"))
			if err != nil {
				return nil, fmt.Errorf("bytea value must be hex: %w", err)
			}
			return raw, nil
		}
		return x, nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			n, err := nativeValue(e, hint)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case map[string]any:
		return nil, fmt.Errorf("nested objects are not valid argument values")
	default:
		// bool or nil
		return v, nil
	}
}
