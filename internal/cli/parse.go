package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/codetidy/usort/internal/app"
	"github.com/codetidy/usort/internal/config"
	"github.com/codetidy/usort/internal/report"
)

var ErrHelpRequested = errors.New("help requested")

func ParseArgs(args []string) (app.Request, error) {
	req := app.DefaultRequest()
	if len(args) == 0 {
		return req, ErrHelpRequested
	}

	if isHelpArg(args[0]) {
		return req, ErrHelpRequested
	}

	switch args[0] {
	case "organize":
		return parseOrganize(args[1:], req, app.ModeOrganize)
	case "check":
		return parseOrganize(args[1:], req, app.ModeCheck)
	case "watch":
		return parseOrganize(args[1:], req, app.ModeWatch)
	default:
		return req, fmt.Errorf("unknown command: %s", args[0])
	}
}

func parseOrganize(args []string, req app.Request, mode app.Mode) (app.Request, error) {
	args = normalizeArgs(args)

	fs := flag.NewFlagSet(string(mode), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	repoPath := fs.String("repo", req.RepoPath, "repository path")
	write := fs.Bool("write", false, "rewrite files in place")
	formatFlag := fs.String("format", string(req.Organize.Format), "output format")
	diagnosticsPath := fs.String("diagnostics", "", "diagnostics snapshot path")
	configPath := fs.String("config", "", "config file path")
	debounceMS := fs.Int("debounce-ms", 0, "watch debounce in milliseconds")

	primaryNamespace := fs.String("primary-namespace", req.Organize.Options.PrimaryNamespace, "namespace sorted first")
	splitGroups := fs.Bool("split-groups", req.Organize.Options.SplitGroups, "separate root-namespace groups with a blank line")
	keepUnused := fs.Bool("keep-unused", req.Organize.Options.DisableUnusedRemoval, "never remove usings reported unused")
	processConditionals := fs.Bool("process-conditional-regions", req.Organize.Options.ProcessConditionalRegions, "allow removal inside #if/#region ranges")
	aliasPlacement := fs.String("alias-placement", string(req.Organize.Options.AliasPlacement), "alias using placement: top|bottom|intermixed")
	allUnusedThreshold := fs.Int("all-unused-threshold", req.Organize.Options.AllUnusedReliabilityThreshold, "using count above which an all-unused verdict is distrusted")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return req, ErrHelpRequested
		}
		return req, err
	}

	format, err := report.ParseFormat(*formatFlag)
	if err != nil {
		return req, err
	}
	if *debounceMS < 0 {
		return req, fmt.Errorf("--debounce-ms must be >= 0")
	}

	visited := visitedFlags(fs)

	fileOverrides, resolvedConfigPath, err := config.Load(strings.TrimSpace(*repoPath), strings.TrimSpace(*configPath))
	if err != nil {
		return req, err
	}
	options := fileOverrides.Apply(config.Defaults())

	cliOverrides := config.Overrides{}
	if visited["primary-namespace"] {
		cliOverrides.PrimaryNamespace = primaryNamespace
	}
	if visited["split-groups"] {
		cliOverrides.SplitGroups = splitGroups
	}
	if visited["keep-unused"] {
		cliOverrides.DisableUnusedRemoval = keepUnused
	}
	if visited["process-conditional-regions"] {
		cliOverrides.ProcessConditionalRegions = processConditionals
	}
	if visited["alias-placement"] {
		cliOverrides.AliasPlacement = aliasPlacement
	}
	if visited["all-unused-threshold"] {
		cliOverrides.AllUnusedReliabilityThreshold = allUnusedThreshold
	}
	if err := cliOverrides.Validate(); err != nil {
		return req, err
	}

	options = cliOverrides.Apply(options)
	if err := options.Validate(); err != nil {
		return req, err
	}

	paths := fs.Args()
	if mode == app.ModeWatch && len(paths) > 0 {
		return req, fmt.Errorf("watch takes no file arguments; use --repo")
	}
	if containsStdin(paths) && len(paths) > 1 {
		return req, fmt.Errorf("stdin (-) cannot be combined with file arguments")
	}

	req.Mode = mode
	req.RepoPath = strings.TrimSpace(*repoPath)
	req.Organize = app.OrganizeRequest{
		Paths:           paths,
		Write:           *write,
		Format:          format,
		DiagnosticsPath: strings.TrimSpace(*diagnosticsPath),
		ConfigPath:      resolvedConfigPath,
		Debounce:        time.Duration(*debounceMS) * time.Millisecond,
		Options:         options,
	}

	return req, nil
}

func containsStdin(paths []string) bool {
	for _, path := range paths {
		if path == "-" {
			return true
		}
	}
	return false
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

// normalizeArgs lets flags appear after positional arguments, which the
// stdlib flag package otherwise refuses to parse.
func normalizeArgs(args []string) []string {
	if len(args) == 0 {
		return args
	}

	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, 1)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			if flagNeedsValue(arg) && i+1 < len(args) {
				flags = append(flags, args[i+1])
				i++
			}
			continue
		}
		positionals = append(positionals, arg)
	}

	return append(flags, positionals...)
}

func flagNeedsValue(arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	name := strings.TrimLeft(arg, "-")
	switch name {
	case "repo", "format", "diagnostics", "config", "debounce-ms",
		"primary-namespace", "alias-placement", "all-unused-threshold":
		return true
	default:
		return false
	}
}

func visitedFlags(fs *flag.FlagSet) map[string]bool {
	visited := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		visited[f.Name] = true
	})
	return visited
}
