// Package cmd - estimate command
package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"app-cost/core/catalog"
	"app-cost/core/output"
	"app-cost/core/session"
	"app-cost/internal/logging"
)

type estimateOptions struct {
	category    string
	subcategory string
	complexity  string
	features    []string
	team        string
	timeline    string
	format      string
	catalogPath string
}

var estimateOpts estimateOptions

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Price a project selection",
	Long: `Price one selection and print the breakdown.

Fields that are not given start from the catalog defaults.

Examples:
  app-cost estimate
  app-cost estimate --category web --subcategory complex --complexity complex
  app-cost estimate --feature userAuth --feature paymentIntegration --team 4
  app-cost estimate --catalog ./catalog.yaml --format markdown`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	f := estimateCmd.Flags()
	f.StringVar(&estimateOpts.category, "category", "", "app category (e.g. mobile, web)")
	f.StringVar(&estimateOpts.subcategory, "subcategory", "", "subcategory within the category (e.g. ios, ecommerce)")
	f.StringVar(&estimateOpts.complexity, "complexity", "", "complexity option or value")
	f.StringArrayVar(&estimateOpts.features, "feature", nil, "enable a feature (repeatable)")
	f.StringVar(&estimateOpts.team, "team", "", "team size")
	f.StringVar(&estimateOpts.timeline, "timeline", "", "timeline in weeks")
	f.StringVarP(&estimateOpts.format, "format", "f", "", "output format (cli, json, markdown)")
	f.StringVar(&estimateOpts.catalogPath, "catalog", "", "catalog document (.hcl, .json, .yaml)")
}

// edits turns the flags into session edits, in field order
func (o estimateOptions) edits() []session.Edit {
	var edits []session.Edit
	add := func(kind session.EditKind, value string) {
		if value != "" {
			edits = append(edits, session.Edit{Kind: kind, Value: value})
		}
	}
	add(session.EditCategory, o.category)
	add(session.EditSubcategory, o.subcategory)
	add(session.EditComplexity, o.complexity)
	for _, f := range o.features {
		add(session.EditEnable, f)
	}
	add(session.EditTeamSize, o.team)
	add(session.EditTimeline, o.timeline)
	return edits
}

func runEstimate(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(estimateOpts.format)
	if err != nil {
		return err
	}
	cfg, err := loadCatalog(estimateOpts.catalogPath)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	s, err := session.New(eng, catalog.DefaultSelection(cfg), logging.Named("session"))
	if err != nil {
		return err
	}
	for _, edit := range estimateOpts.edits() {
		if _, err := s.Apply(edit); err != nil {
			return err
		}
	}

	logging.Info("Estimate computed",
		zap.String("catalog", cfg.Name),
		zap.String("total", s.Result().Total.String()),
		zap.Int("items", len(s.Result().Items)),
	)

	return render(cmd.OutOrStdout(), format, &output.Report{
		Config:    cfg,
		Selection: s.State(),
		Result:    s.Result(),
	})
}
