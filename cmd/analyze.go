package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/openeyemedia/climate-api/internal/resolver"
)

var (
	analyzeLat     float64
	analyzeLon     float64
	analyzeName    string
	analyzeCountry string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [location]",
	Short: "Run a climate analysis for a place name or coordinate pair",
	Args:  cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		query := resolver.Query{Name: strings.Join(args, " ")}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			query.Latitude = &analyzeLat
			query.Longitude = &analyzeLon
			query.Name = analyzeName
			query.Country = analyzeCountry
		} else if query.Name == "" {
			return eris.New("provide a location name or both --lat and --lon")
		}

		result, err := env.Orchestrator.Analyze(ctx, query)
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal analysis")
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64Var(&analyzeLat, "lat", 0, "latitude (requires --lon)")
	analyzeCmd.Flags().Float64Var(&analyzeLon, "lon", 0, "longitude (requires --lat)")
	analyzeCmd.Flags().StringVar(&analyzeName, "name", "", "display name for coordinate queries")
	analyzeCmd.Flags().StringVar(&analyzeCountry, "country", "", "display country for coordinate queries")
	rootCmd.AddCommand(analyzeCmd)
}
