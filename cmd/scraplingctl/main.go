// Command scraplingctl is a small demonstration front end for the
// scrapling library: it parses one HTML document and runs a single
// css or xpath query against it, printing one match per line. With
// neither query given it prints the prettified document.
//
// It is not part of the library's public contract — a convenience for
// exercising the package end to end, in the spirit of the teacher
// repo's own example/main.go.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	scrapling "github.com/scrapling/core"
)

func main() {
	var (
		file     = flag.String("file", "", "path to an HTML file (default: stdin)")
		cssSel   = flag.String("css", "", "CSS selector to run")
		xpathSel = flag.String("xpath", "", "XPath expression to run")
		url      = flag.String("url", "", "base URL for urljoin and domain derivation")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*file, *cssSel, *xpathSel, *url, logger); err != nil {
		fmt.Fprintln(os.Stderr, "scraplingctl:", err)
		os.Exit(1)
	}
}

func run(file, cssSel, xpathSel, url string, logger *slog.Logger) error {
	content, err := readInput(file)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	root, err := scrapling.New(content, scrapling.Options{URL: url, Logger: logger})
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var result scrapling.Result
	switch {
	case cssSel != "":
		result, err = root.Css(cssSel)
	case xpathSel != "":
		result, err = root.Xpath(xpathSel)
	default:
		fmt.Println(root.Prettify().String())
		return nil
	}
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}

	printResult(os.Stdout, result)
	return nil
}

func readInput(file string) ([]byte, error) {
	if file == "" {
		return io.ReadAll(bufio.NewReader(os.Stdin))
	}
	return os.ReadFile(file)
}

func printResult(w io.Writer, r scrapling.Result) {
	switch r.Kind {
	case scrapling.KindElements:
		for _, sel := range r.Elements {
			fmt.Fprintln(w, sel.HTMLContent().String())
		}
	case scrapling.KindStrings:
		for _, t := range r.Texts {
			fmt.Fprintln(w, t.String())
		}
	default:
		for _, item := range r.Mixed {
			switch v := item.(type) {
			case scrapling.Selector:
				fmt.Fprintln(w, v.HTMLContent().String())
			case scrapling.TextHandler:
				fmt.Fprintln(w, v.String())
			}
		}
	}
}
