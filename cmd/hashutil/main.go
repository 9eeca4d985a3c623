package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/brendoncarroll/go-hashsession"
	"github.com/brendoncarroll/go-hashsession/b/multibackend"
)

var (
	log = hashsession.Logger

	v          = viper.New()
	configPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().String("backend", "default", "backend composition, one of "+joinNames(multibackend.Names()))
	mustBind(v, "backend", rootCmd.PersistentFlags().Lookup("backend"))
	v.SetEnvPrefix("HASHUTIL")
	v.AutomaticEnv()

	rootCmd.AddCommand(sumCmd)
	rootCmd.AddCommand(deriveKeyCmd)
	rootCmd.AddCommand(algosCmd)
}

var rootCmd = &cobra.Command{
	Use:   "hashutil",
	Short: "Hash files with BLAKE3, SHA2, MD5, BLAKE2b or SHAKE256",
}

var algosCmd = &cobra.Command{
	Use:   "algos",
	Short: "List supported algorithms",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, algo := range hashsession.Algorithms() {
			kind := "fixed"
			if algo.Extendable() {
				kind = "xof"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %-6s %d\n", algo, kind, algo.Size())
		}
		return nil
	},
}
