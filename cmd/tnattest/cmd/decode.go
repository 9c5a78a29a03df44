package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/trufnetwork/tnattest/internal/codec"
	"github.com/trufnetwork/tnattest/internal/core/api"
	"github.com/trufnetwork/tnattest/internal/core/archive"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

var storeDecoded bool

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode binary attestation structures to JSON",
}

var decodePayloadCmd = &cobra.Command{
	Use:   "payload <hex|base64|->",
	Short: "Decode a full attestation payload",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecodePayload,
}

var decodeResultCmd = &cobra.Command{
	Use:   "result <hex|base64|->",
	Short: "Decode a canonical query result buffer",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecodeResult,
}

var decodeArgsCmd = &cobra.Command{
	Use:   "args <hex|base64|->",
	Short: "Decode an action argument buffer",
	Args:  cobra.ExactArgs(1),
	RunE:  runDecodeArgs,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.AddCommand(decodePayloadCmd, decodeResultCmd, decodeArgsCmd)
	decodePayloadCmd.Flags().BoolVar(&storeDecoded, "store", false, "persist the decoded payload to the archive")
}

// readInput resolves a CLI input argument to raw bytes. "-" reads stdin;
// otherwise the argument is tried as hex (with optional 0x prefix), then
// as standard base64.
func readInput(arg string) ([]byte, error) {
	s := arg
	if s == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		s = strings.TrimSpace(string(data))
	}

	hexStr := strings.TrimPrefix(s, "0x")
	if raw, err := hex.DecodeString(hexStr); err == nil {
		return raw, nil
	}
	if raw, err := base64.StdEncoding.DecodeString(s); err == nil {
		return raw, nil
	}
	return nil, fmt.Errorf("input is neither valid hex nor base64")
}

// printJSON renders a protobuf message as indented JSON on stdout.
func printJSON(m proto.Message) error {
	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func runDecodePayload(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	p, err := codec.DecodePayload(raw)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	if storeDecoded {
		if archiveURL == "" {
			return fmt.Errorf("--store requires --archive-url")
		}
		db, err := archive.Open(archiveURL)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer db.Close()
		queries, err := archive.LoadQueries(db)
		if err != nil {
			return fmt.Errorf("failed to load queries: %w", err)
		}
		digest, err := queries.Store(p, raw)
		if err != nil {
			return fmt.Errorf("failed to store payload: %w", err)
		}
		fmt.Fprintf(os.Stderr, "stored attestation %s\n", digest)
	}

	out, err := api.PayloadToStruct(p)
	if err != nil {
		return err
	}
	return printJSON(out)
}

func runDecodeResult(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	rows, err := codec.DecodeQueryResult(raw)
	if err != nil {
		return fmt.Errorf("decode query result: %w", err)
	}

	out, err := api.RowsToList(rows)
	if err != nil {
		return err
	}
	return printJSON(out)
}

func runDecodeArgs(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	values, err := codec.DecodeArgumentBuffer(raw)
	if err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}

	out, err := api.ValuesToList(values)
	if err != nil {
		return err
	}
	return printJSON(out)
}
