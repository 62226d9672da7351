package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"zygr/frontend-go/pkg/ast"
	"zygr/frontend-go/pkg/diagnostics"
	"zygr/frontend-go/pkg/driver"
	"zygr/frontend-go/pkg/lexer"
	"zygr/frontend-go/pkg/parser"
)

type dumpOptions struct {
	tokens bool
	parse  bool
	format string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &dumpOptions{}
	cmd := &cobra.Command{
		Use:           "zygr (-t || -p) <filename>",
		Short:         "Lexer, parser and type checker for a TypeScript-like language",
		Version:       cliToolVersion,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(opts, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().BoolVarP(&opts.tokens, "tokens", "t", false, "print every token of <filename>")
	cmd.Flags().BoolVarP(&opts.parse, "parse", "p", false, "print the top-level nodes of <filename>")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, json or yaml")
	// Unknown modes fall back to the usage line without signalling an error.
	cmd.SetFlagErrorFunc(func(*cobra.Command, error) error {
		printUsage(stdout)
		return nil
	})
	cmd.AddCommand(newCheckCmd(stdout, stderr))
	return cmd
}

func runDump(opts *dumpOptions, args []string, stdout, stderr io.Writer) error {
	if opts.tokens == opts.parse || len(args) != 1 || !driver.ValidFormat(opts.format) {
		printUsage(stdout)
		return nil
	}
	path := args[0]
	out := newRenderer(stderr)
	data, err := os.ReadFile(path)
	if err != nil {
		out.diagnostics(path, []diagnostics.CompilerError{driver.ReadFailure(path, err)})
		return errReported
	}
	source := string(data)

	var errs []diagnostics.CompilerError
	if opts.tokens {
		lexed := lexer.Tokenize(source)
		errs = lexed.Errors
		err = writeTokens(stdout, lexed.Result, opts.format)
	} else {
		parsed := parser.ParseSource(source)
		errs = parsed.Errors
		err = writeProgram(stdout, parsed.Result, opts.format)
	}
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		diagnostics.Sort(errs)
		out.diagnostics(path, errs)
		return errReported
	}
	return nil
}

func writeTokens(w io.Writer, tokens []lexer.Token, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(tokens, "", "  ")
		if err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(tokens)
		if err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}
		_, err = w.Write(data)
		return err
	}
	for _, tok := range tokens {
		if _, err := fmt.Fprintln(w, tok.String()); err != nil {
			return err
		}
	}
	return nil
}

func writeProgram(w io.Writer, program *ast.Program, format string) error {
	switch format {
	case "json":
		data, err := ast.MarshalIndentJSON(program)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := ast.MarshalYAML(program)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	for _, stmt := range program.Body {
		if err := ast.Fprint(w, stmt); err != nil {
			return err
		}
	}
	return nil
}
