package cmd

import (
	"fmt"
	"os"

	"github.com/gnames/taxodrift/internal/iopipeline"
	"github.com/gnames/taxodrift/internal/ioversions"
	app "github.com/gnames/taxodrift/pkg"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/gnames/taxodrift/pkg/lifecycle"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}

// flagOptions converts explicitly set persistent flags to options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		s, _ := flags.GetString("base-dir")
		res = append(res, config.OptBaseDir(s))
	}
	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		res = append(res, config.OptLogLevel(s))
	}
	if flags.Changed("jobs") {
		i, _ := flags.GetInt("jobs")
		res = append(res, config.OptJobsNumber(i))
	}
	return res
}

// newPipeline loads versions.yaml and creates a pipeline for its
// checklists.
func newPipeline(force bool) (lifecycle.Pipeline, error) {
	reg, err := ioversions.Load(cfg)
	if err != nil {
		return nil, err
	}
	return iopipeline.New(cfg, reg, iopipeline.OptForce(force)), nil
}
