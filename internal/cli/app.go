// Package cli implements the mtwist command line tool: drawing values from either
// Mersenne Twister, checking their uniformity and timing the two word widths.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var usageTemplate = fmt.Sprintf(`%s{{if .Runnable}}
  %s{{end}}{{if .HasAvailableSubCommands}}
  %s{{end}}{{if .HasAvailableSubCommands}}

%s{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  %s {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

%s
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

%s
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`,
	color.CyanString("Usage:"),
	color.GreenString("{{.UseLine}}"),
	color.GreenString("{{.CommandPath}} [command]"),
	color.CyanString("Available Commands:"),
	color.GreenString("{{rpad .Name .NamePadding }}"),
	color.CyanString("Flags:"),
	color.CyanString("Global Flags:"),
)

// App is the mtwist command line application. Flags can be overridden by MTWIST_*
// environment variables and by a configuration file passed with --config.
type App struct {
	name string
	v    *viper.Viper
	log  zerolog.Logger
}

// New creates the application named name. The name also determines the environment prefix.
func New(name string) *App {
	v := viper.New()
	v.SetEnvPrefix(strings.ReplaceAll(strings.ToUpper(name), "-", "_"))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return &App{
		name: name,
		v:    v,
		log:  zerolog.Nop(),
	}
}

// Command builds the root command with all sub commands attached.
func (a *App) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               a.name,
		Short:             "Mersenne Twister (MT19937, MT19937-64) toolbox",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetUsageTemplate(usageTemplate)
	addGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		a.drawCommand(),
		a.checkCommand(),
		a.benchCommand(),
	)
	return cmd
}

// Run executes the application and exits the process with status 1 on error.
func (a *App) Run() {
	cmd := a.Command()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%v %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "C", "",
		"Read configuration from specified `FILE`, support JSON, TOML, YAML, HCL, or Java properties formats.")
	fs.String("log-level", zerolog.InfoLevel.String(), "Log level (trace, debug, info, warn, error).")
	fs.BoolP("quiet", "q", false, "Disable logging.")
}

// setup binds the flags of the executing command, reads the configuration file and
// creates the logger. It runs before every sub command.
func (a *App) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	if cfgFile := a.v.GetString("config"); cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read configuration file(%s): %w", cfgFile, err)
		}
	}
	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log-level"), a.v.GetBool("quiet"))
	if err != nil {
		return err
	}
	a.log = logger
	a.log.Debug().Str("command", cmd.CommandPath()).Strs("settings", a.v.AllKeys()).Msg("configuration loaded")
	return nil
}

func newLogger(out io.Writer, level string, quiet bool) (zerolog.Logger, error) {
	if quiet {
		return zerolog.Nop(), nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger().Level(lvl), nil
}

// cliOptions is implemented by the options of every sub command.
type cliOptions interface {
	// AddFlags adds flags to the specified FlagSet object.
	AddFlags(fs *pflag.FlagSet)

	// Validate is called after flags, environment and configuration file were applied.
	Validate() []error
}

// load fills opts from the bound flags, environment and configuration file and validates it.
func (a *App) load(opts cliOptions) error {
	if err := a.v.Unmarshal(opts); err != nil {
		return fmt.Errorf("reading options: %w", err)
	}
	if errs := opts.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
	}
	return nil
}
