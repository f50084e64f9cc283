package app

import (
	"fmt"
	"io"

	"github.com/phillarmonic/exprdoc/internal/ast"
	"github.com/phillarmonic/exprdoc/internal/document"
	"github.com/phillarmonic/exprdoc/internal/errors"
	"github.com/spf13/cobra"
)

// Domain: CLI Application Structure
// This file contains the main CLI application setup with Cobra commands and flags

// App represents the CLI application
type App struct {
	version string
	commit  string
	date    string

	rootCmd *cobra.Command

	// Flags
	configFile  string
	format      string
	indent      int
	check       bool
	verbose     bool
	noColor     bool
	showVersion bool
	initConfig  bool

	// Debug flags
	debugMode bool
	debugAST  bool
	debugJSON bool
	debugYAML bool

	// color is resolved from the workspace config and --no-color
	color bool
}

// NewApp creates a new CLI application
func NewApp(version, commit, date string) *App {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		color:   true,
	}

	app.rootCmd = &cobra.Command{
		Use:   "exprdoc [file]",
		Short: "Validate and re-render expression tree documents",
		Long: `exprdoc reads an expression tree serialized as a JSON or YAML node document,
rebuilds the tree, checks that every node is complete, and prints the
canonical document again.

Examples:
  exprdoc tree.json                  # Re-render tree.json as indented JSON
  exprdoc --format yaml tree.json    # Convert a JSON tree to YAML
  cat tree.yml | exprdoc -           # Read the document from stdin
  exprdoc --check tree.json          # Validate only
  exprdoc --debug --debug-ast t.json # Show the tree outline
  exprdoc --init                     # Create a .exprdoc.yml workspace config

Built-in Commands:
  Use the 'cmd:' prefix for built-in commands to avoid conflicts with file names:
  exprdoc cmd:kinds                  # List node kinds
  exprdoc cmd:completion bash        # Generate shell completion`,
		RunE:              app.run,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: CompleteInputFiles,
		SilenceErrors:     true,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true, // Disable default 'completion' command
		},
	}

	app.setupFlags()
	app.setupCommands()

	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// FormatError renders err the way the CLI reports failures
func (a *App) FormatError(err error) string {
	return errors.FormatError(err, a.color)
}

// setupFlags sets up all command-line flags
func (a *App) setupFlags() {
	flags := a.rootCmd.Flags()

	flags.StringVarP(&a.configFile, "config", "c", "", "Workspace config file (default: .exprdoc.yml if present)")
	flags.StringVar(&a.format, "format", defaultFormat, "Output format: json or yaml")
	flags.IntVar(&a.indent, "indent", defaultIndent, "Spaces per nesting level (0 prints compact JSON)")
	flags.BoolVar(&a.check, "check", false, "Validate the tree without re-rendering it")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Show progress on stderr")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored diagnostics")
	flags.BoolVar(&a.showVersion, "version", false, "Show version information")
	flags.BoolVar(&a.initConfig, "init", false, "Initialize a new .exprdoc.yml workspace config")

	// Debug flags
	flags.BoolVar(&a.debugMode, "debug", false, "Enable debug mode - shows the tree outline and documents")
	flags.BoolVar(&a.debugAST, "debug-ast", false, "Show the tree outline (requires --debug)")
	flags.BoolVar(&a.debugJSON, "debug-json", false, "Show the tree as JSON (requires --debug)")
	flags.BoolVar(&a.debugYAML, "debug-yaml", false, "Show the tree as YAML (requires --debug)")

	_ = a.rootCmd.RegisterFlagCompletionFunc("format", CompleteFormats)
}

// setupCommands sets up subcommands
func (a *App) setupCommands() {
	a.rootCmd.AddCommand(a.createCompletionCommand())
	a.rootCmd.AddCommand(a.createKindsCommand())
}

// run is the main command handler
func (a *App) run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Handle --version flag
	if a.showVersion {
		return ShowVersion(out, a.version, a.commit, a.date)
	}

	// Handle --init flag
	if a.initConfig {
		return InitializeConfig(out, a.configFile)
	}

	opts, err := a.resolveOptions(cmd)
	if err != nil {
		return err
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	a.logf(cmd, "reading %s", inputName(name))
	data, err := readInput(cmd.InOrStdin(), name)
	if err != nil {
		return err
	}

	node, err := LoadTree(data)
	if err != nil {
		return fmt.Errorf("%s: %w", inputName(name), err)
	}
	a.logf(cmd, "loaded %s", describeTree(node))

	// Handle debug mode
	if a.debugMode {
		return HandleDebugMode(out, node, DebugOptions{
			AST:  a.debugAST,
			JSON: a.debugJSON,
			YAML: a.debugYAML,
		})
	}

	if a.check {
		fmt.Fprintln(out, "ok")
		return nil
	}

	a.logf(cmd, "rendering %s with indent %d", opts.Format, opts.Indent)
	return RenderTree(out, node, opts)
}

// resolveOptions merges the workspace config with explicitly set flags
func (a *App) resolveOptions(cmd *cobra.Command) (document.Options, error) {
	path, err := FindConfigFile(a.configFile)
	if err != nil {
		return document.Options{}, err
	}

	config, err := loadWorkspaceConfig(path)
	if err != nil {
		return document.Options{}, err
	}
	a.color = config.ColorEnabled() && !a.noColor
	if path != "" {
		a.logf(cmd, "using config %s", path)
	}

	formatName := config.Format
	if cmd.Flags().Changed("format") {
		formatName = a.format
	}
	format, err := document.ParseFormat(formatName)
	if err != nil {
		return document.Options{}, err
	}

	indent := config.IndentOrDefault()
	if cmd.Flags().Changed("indent") {
		indent = a.indent
	}
	if indent < 0 {
		return document.Options{}, fmt.Errorf("--indent must not be negative, got %d", indent)
	}

	return document.Options{Format: format, Indent: indent}, nil
}

// logf writes a progress note to stderr when --verbose is set
func (a *App) logf(cmd *cobra.Command, format string, args ...any) {
	if !a.verbose {
		return
	}
	prefix := "→"
	if a.color {
		prefix = "\033[36m→\033[0m"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), prefix+" "+format+"\n", args...)
}

// describeTree summarizes the root of a loaded tree
func describeTree(node ast.Node) string {
	count := 0
	ast.Walk(node, func(ast.Node, int) bool {
		count++
		return true
	})
	return fmt.Sprintf("%s with %d nodes", node.Kind(), count)
}

// createKindsCommand creates the cmd:kinds subcommand
func (a *App) createKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cmd:kinds",
		Short: "List node kinds and their category",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printKinds(cmd.OutOrStdout())
		},
	}
}

// printKinds writes one line per node kind
func printKinds(w io.Writer) {
	for _, k := range ast.Kinds() {
		category := "root"
		switch {
		case k.IsStatement():
			category = "statement"
		case k.IsExpression():
			category = "expression"
		}
		fmt.Fprintf(w, "%-20s %s\n", k, category)
	}
}

// createCompletionCommand creates the cmd:completion subcommand
func (a *App) createCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cmd:completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `Generate shell completion script for exprdoc.

Note: The 'cmd:' prefix is reserved for built-in commands to avoid conflicts with file names.

To load completions:

Bash:

  $ source <(exprdoc cmd:completion bash)

Zsh:

  $ exprdoc cmd:completion zsh > "${fpath[1]}/_exprdoc"

Fish:

  $ exprdoc cmd:completion fish | source

PowerShell:

  PS> exprdoc cmd:completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return a.rootCmd.GenBashCompletion(out)
			case "zsh":
				return a.rootCmd.GenZshCompletion(out)
			case "fish":
				return a.rootCmd.GenFishCompletion(out, true)
			case "powershell":
				return a.rootCmd.GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}
