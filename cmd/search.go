package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Geocode a place name and list candidate locations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		locations, err := env.Resolver.Search(ctx, strings.Join(args, " "), searchLimit)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(locations, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal locations")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
