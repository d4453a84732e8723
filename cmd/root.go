/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/taxodrift/internal/iofs"
	"github.com/gnames/taxodrift/internal/iologger"
	app "github.com/gnames/taxodrift/pkg"
	"github.com/gnames/taxodrift/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "taxodrift",
		Short:   "TaxoDrift measures taxonomic drift between checklist releases",
		Long: `TaxoDrift compares releases of plant checklists (WCVP, WFO or any
SFGA archive) and measures how the accepted names of species change
between them.

For every name of an old release it follows two paths: the chained path
carries the old accepted name through every following release, the
direct path looks the name up in the newest release. Names whose paths
end at different accepted names are disagreements.

Commands:
  versions   list checklists and releases from versions.yaml
  resolve    load releases and resolve their records to accepted names
  compare    compare pairs of releases
  chain      compare a sequence of releases
  summarize  recalculate summaries of comparison directories
  changes    status changes and species differences between releases
  trend      disagreement series, correlation tests and plots
  export     save resolved releases and comparisons to PostgreSQL

Configuration precedence (highest to lowest):
  1. CLI flags (--base-dir, --log-level, --jobs)
  2. Environment variables (TAXODRIFT_*)
  3. Config file (~/.config/taxodrift/config.yaml)
  4. Built-in defaults

Releases are described in ~/.config/taxodrift/versions.yaml.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "taxodrift version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for taxodrift")

	rootCmd.PersistentFlags().StringP("base-dir", "b", "",
		"directory of checklist inputs and analysis outputs")
	rootCmd.PersistentFlags().String("log-level", "",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0,
		"number of concurrent workers")

	rootCmd.AddCommand(
		getVersionsCmd(),
		getResolveCmd(),
		getCompareCmd(),
		getChainCmd(),
		getSummarizeCmd(),
		getChangesCmd(),
		getTrendCmd(),
		getExportCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureVersionsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update(flagOptions(cmd))

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping the records
	// written during bootstrap.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"base_dir", cfg.BaseDir,
	)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("TAXODRIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("base_dir", "TAXODRIFT_BASE_DIR")

	// Log configuration
	v.BindEnv("log.level", "TAXODRIFT_LOG_LEVEL")
	v.BindEnv("log.format", "TAXODRIFT_LOG_FORMAT")
	v.BindEnv("log.destination", "TAXODRIFT_LOG_DESTINATION")

	// Analysis configuration
	v.BindEnv("match.canonical_fallback", "TAXODRIFT_MATCH_CANONICAL_FALLBACK")
	v.BindEnv("resolver.max_unresolved", "TAXODRIFT_RESOLVER_MAX_UNRESOLVED")
	v.BindEnv("trend.permutations", "TAXODRIFT_TREND_PERMUTATIONS")
	v.BindEnv("trend.seed", "TAXODRIFT_TREND_SEED")

	// S3 sources
	v.BindEnv("s3.region", "TAXODRIFT_S3_REGION")
	v.BindEnv("s3.endpoint", "TAXODRIFT_S3_ENDPOINT")
	v.BindEnv("s3.path_style", "TAXODRIFT_S3_PATH_STYLE")

	// Database configuration
	v.BindEnv("database.host", "TAXODRIFT_DATABASE_HOST")
	v.BindEnv("database.port", "TAXODRIFT_DATABASE_PORT")
	v.BindEnv("database.user", "TAXODRIFT_DATABASE_USER")
	v.BindEnv("database.password", "TAXODRIFT_DATABASE_PASSWORD")
	v.BindEnv("database.database", "TAXODRIFT_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "TAXODRIFT_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "TAXODRIFT_DATABASE_BATCH_SIZE")

	// General configuration
	v.BindEnv("jobs_number", "TAXODRIFT_JOBS_NUMBER")

	v.AutomaticEnv()
}
