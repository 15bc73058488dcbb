package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nao1215/xorcrack/internal/codec"
	"github.com/nao1215/xorcrack/internal/xorcipher"
	"github.com/spf13/cobra"
)

// NewEncryptCmd creates the encrypt command.
func NewEncryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encrypt [text...]",
		Short: "Encrypt text with repeating-key XOR",
		Long: `Encrypt XORs text with a repeating key and prints the ciphertext as hex.

The plaintext is taken from the arguments (joined by single spaces), from
--file, or from standard input when neither is given. Because XOR is its
own inverse, passing a hex ciphertext with --hex-input decrypts it.

Examples:
  # Repeating-key XOR
  xorcrack encrypt --key ICE "Burning 'em, if you ain't quick and nimble"

  # Single-byte key given as hex, base64 output
  xorcrack encrypt --key-hex 58 --base64 "Cooking MC's like a pound of bacon"

  # Decrypt a hex ciphertext
  xorcrack encrypt --key-hex 58 --hex-input 1b37373331363f78`,
		Args: cobra.ArbitraryArgs,
		RunE: runEncryptCmd,
	}

	cmd.Flags().StringP("key", "K", "", "Key text")
	cmd.Flags().String("key-hex", "", "Key as hex")
	cmd.Flags().StringP("file", "f", "", "Read plaintext from file (\"-\" for standard input)")
	cmd.Flags().Bool("hex-input", false, "Treat the input as hex and decode it first")
	cmd.Flags().Bool("base64", false, "Print base64 instead of hex")
	cmd.Flags().Bool("text", false, "Print the result as text (useful with --hex-input)")

	cmd.MarkFlagsMutuallyExclusive("key", "key-hex")
	cmd.MarkFlagsOneRequired("key", "key-hex")
	cmd.MarkFlagsMutuallyExclusive("base64", "text")

	return cmd
}

// runEncryptCmd executes the encrypt command.
func runEncryptCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	key, err := encryptKey(cmd)
	if err != nil {
		return err
	}

	input, err := encryptInput(cmd, args)
	if err != nil {
		return err
	}

	hexInput, err := flags.GetBool("hex-input")
	if err != nil {
		return err
	}
	if hexInput {
		if input, err = codec.DecodeHex(strings.TrimSpace(string(input))); err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}
	}

	out, err := xorcipher.Apply(input, key)
	if err != nil {
		return err
	}

	asBase64, err := flags.GetBool("base64")
	if err != nil {
		return err
	}
	asText, err := flags.GetBool("text")
	if err != nil {
		return err
	}

	switch {
	case asBase64:
		fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeBase64(out))
	case asText:
		fmt.Fprintln(cmd.OutOrStdout(), codec.BytesToText(out))
	default:
		fmt.Fprintln(cmd.OutOrStdout(), codec.EncodeHex(out))
	}
	return nil
}

// encryptKey reads the key from --key or --key-hex.
func encryptKey(cmd *cobra.Command) ([]byte, error) {
	if keyHex, err := cmd.Flags().GetString("key-hex"); err != nil {
		return nil, err
	} else if keyHex != "" {
		key, err := codec.DecodeHex(keyHex)
		if err != nil {
			return nil, fmt.Errorf("invalid --key-hex: %w", err)
		}
		return key, nil
	}

	key, err := cmd.Flags().GetString("key")
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, xorcipher.ErrInvalidKey
	}
	return codec.TextToBytes(key), nil
}

// encryptInput returns the plaintext from arguments, --file or stdin.
func encryptInput(cmd *cobra.Command, args []string) ([]byte, error) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}

	switch {
	case len(args) > 0 && file != "":
		return nil, errors.New("give the plaintext either as arguments or with --file, not both")
	case len(args) > 0:
		return codec.TextToBytes(strings.Join(args, " ")), nil
	case file != "" && file != "-":
		return os.ReadFile(file) //nolint:gosec // user-provided path is intentional
	default:
		return io.ReadAll(cmd.InOrStdin())
	}
}
