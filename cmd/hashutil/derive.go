package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/b/multibackend"
)

var (
	deriveContext string
	deriveLength  int
)

func init() {
	deriveKeyCmd.Flags().StringVar(&deriveContext, "context", "", "globally unique, application specific context string")
	deriveKeyCmd.Flags().IntVar(&deriveLength, "length", hashsession.DefaultLength, "length of the derived key in bytes")
}

var deriveKeyCmd = &cobra.Command{
	Use:   "derive-key [file]",
	Short: "Derive a key from the key material in file, or stdin, with BLAKE3",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if deriveContext == "" {
			return errors.New("--context is required")
		}
		if deriveLength < 0 {
			return errors.Errorf("length must be >= 0, got %d", deriveLength)
		}
		b, err := multibackend.ByName(v.GetString("backend"))
		if err != nil {
			return err
		}
		var r io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		material, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		key, err := hashsession.DeriveKey(b, deriveContext, material, hashsession.WithLength(deriveLength))
		if err != nil {
			return err
		}
		out, err := hashsession.Hex.EncodeToString(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}
