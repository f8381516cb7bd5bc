package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render the site into its build directory")
	fmt.Fprintln(w, "  serve      Serve the site, rendering pages on request")
	fmt.Fprintln(w, "  print      Print one page to PDF")
	fmt.Fprintln(w, "  inspect    Show the syntax tree or outline of a markdown file")
	fmt.Fprintln(w, "  init       Create a config file and a first post")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdsite help <command>' for details on a specific command.")
}

func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -s, --site <dir>          Site root directory (default: .)")
	fmt.Fprintln(w, "  -c, --config <path>       Config file (default: _config/site.yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite build [site-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every markdown page, the stylesheet and the post index.")
	fmt.Fprintln(w, "Directories starting with _ or . are skipped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, relative to the site (default: _site)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --date-format <s>     Post date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long, short")
	fmt.Fprintln(w, "      --theme <name>        Highlighting theme (default: monokai)")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite serve [site-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the site for development. Pages are rendered from their")
	fmt.Fprintln(w, "markdown source on every request; syntax definitions are reloaded")
	fmt.Fprintln(w, "when the syntaxes directory changes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:1024)")
	fmt.Fprintln(w)
	printSiteFlags(w)
}

// printPrintUsage prints usage for the print command.
func printPrintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite print <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a page into its layout and print it to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: input with .pdf)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-2)")
	fmt.Fprintln(w, "      --css <path>          Extra print stylesheet")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN           Chrome binary to use")
	fmt.Fprintln(w, "  ROD_NO_SANDBOX=1          Disable the Chrome sandbox (Docker/CI)")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite inspect <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the syntax tree of a markdown file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --toc                 Print the table of contents instead")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdsite init [site-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create _config/site.yaml and posts/hello.md. Existing files are kept.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --title <s>           Site title (default: My Site)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "print":
		printPrintUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
