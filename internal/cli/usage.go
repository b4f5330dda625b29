package cli

const usage = `Usage:
  usort organize [flags] [file.cs ...]
  usort organize [flags] -            (read one document from stdin)
  usort check [flags] [file.cs ...]
  usort watch [flags]

Commands:
  organize  Sort, group, deduplicate and strip unused using directives.
            Without --write the run only reports what would change.
  check     Dry run for CI: exit code 3 when any file needs organizing.
  watch     Re-organize .cs files under --repo as they change on disk.

Options:
  --repo PATH                      Repository path (default: .)
  --write                          Rewrite files in place (organize only)
  --format table|json|sarif        Report format (default: table)
  --diagnostics PATH               Analyzer diagnostics snapshot (JSON)
  --config PATH                    Config file (.usort.yml, usort.toml, usort.json)
  --primary-namespace NS           Namespace sorted before all others (default: System)
  --split-groups                   Blank line between root-namespace groups (default: true)
  --keep-unused                    Never remove usings reported unused
  --process-conditional-regions    Allow removal inside #if/#region ranges
  --alias-placement top|bottom|intermixed
                                   Where alias usings land (default: bottom)
  --all-unused-threshold N         Distrust an all-unused verdict above N usings (default: 3)
  --debounce-ms N                  Watch quiet period before re-organizing
  -h, --help                       Show this help text
`

func Usage() string {
	return usage
}
