package cmd

import (
	"github.com/spf13/cobra"

	"lightbnb/models"
)

var (
	propFilter   models.PropertyFilter
	propLimit    int
	propertyFile string
)

var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "Search reviewed properties, cheapest first",
	Long: `Search properties that have at least one review.

Costs are whole currency units; stored prices are in cents. Filters that
are left at zero are not applied.`,
	Example: `  lightbnb properties --city Van --min-cost 50 --max-cost 200
  lightbnb properties --owner 4 --min-rating 4 --limit 20`,
	RunE:        runProperties,
	Annotations: map[string]string{annotationDatabase: ""},
}

var propertyCmd = &cobra.Command{
	Use:         "property",
	Short:       "Manage property listings",
	Annotations: map[string]string{annotationDatabase: ""},
}

var propertyAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "List a new property from a YAML file",
	Example: `  lightbnb property add --file property.yaml`,
	RunE:    runPropertyAdd,
}

func init() {
	rootCmd.AddCommand(propertiesCmd, propertyCmd)
	propertyCmd.AddCommand(propertyAddCmd)

	f := propertiesCmd.Flags()
	f.StringVar(&propFilter.City, "city", "", "substring of the city name")
	f.IntVar(&propFilter.MinimumCostPerNight, "min-cost", 0, "nightly cost must exceed this")
	f.IntVar(&propFilter.MaximumCostPerNight, "max-cost", 0, "nightly cost must be below this")
	f.Int64Var(&propFilter.OwnerID, "owner", 0, "only properties owned by this user id")
	f.IntVar(&propFilter.MinimumRating, "min-rating", 0, "minimum average review rating")
	f.IntVar(&propLimit, "limit", 10, "maximum number of results")

	propertyAddCmd.Flags().StringVarP(&propertyFile, "file", "f", "", "YAML file describing the property")
	propertyAddCmd.MarkFlagRequired("file")
}

func runProperties(cmd *cobra.Command, _ []string) error {
	listings, err := app.gateway.GetProperties(commandContext(cmd), propFilter, propLimit)
	if err != nil {
		return err
	}
	app.log.Debug().Int("count", len(listings)).Msg("properties fetched")
	return printJSON(cmd.OutOrStdout(), listings)
}

func runPropertyAdd(cmd *cobra.Command, _ []string) error {
	p, err := loadNewProperty(propertyFile)
	if err != nil {
		return err
	}
	out, err := app.gateway.AddProperty(commandContext(cmd), p)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), out)
}
