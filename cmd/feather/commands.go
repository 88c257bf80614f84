package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/feather-lang/feather/lexer"
	"github.com/feather-lang/feather/parser"
	"github.com/feather-lang/feather/printer"
)

func newRootCommand(fs afero.Fs) *cobra.Command {
	root := &cobra.Command{
		Use:           "feather",
		Short:         "Tooling for Feather source files",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		parseCommand(fs),
		tokensCommand(fs),
		fmtCommand(fs),
	)
	return root
}

func readSource(fs afero.Fs, name string) (string, error) {
	data, err := afero.ReadFile(fs, name)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	return string(data), nil
}

func parseCommand(fs afero.Fs) *cobra.Command {
	var asExpr bool

	cmd := &cobra.Command{
		Use:   "parse file...",
		Short: "Parse files and dump their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				src, err := readSource(fs, name)
				if err != nil {
					return err
				}
				if asExpr {
					e, err := parser.ParseExpr(name, src)
					if err != nil {
						return errors.Wrapf(err, "%s", name)
					}
					fmt.Fprintln(cmd.OutOrStdout(), dumpExpr(e, 0))
					continue
				}
				file, err := parser.Parse(name, src)
				if err != nil {
					return errors.Wrapf(err, "%s", name)
				}
				fmt.Fprint(cmd.OutOrStdout(), dumpFile(file))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&asExpr, "expr", "e", false, "Treat each file as a single expression")
	return cmd
}

func tokensCommand(fs afero.Fs) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens file...",
		Short: "Tokenize files and print one token per line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				src, err := readSource(fs, name)
				if err != nil {
					return err
				}
				toks, err := lexer.Lex(name, src)
				if err != nil {
					return errors.Wrapf(err, "%s", name)
				}
				for _, tok := range toks {
					fmt.Fprintf(cmd.OutOrStdout(), "%d:%d\t%s\t%q\n",
						tok.Line, tok.Col, tok.Type, tok.Literal)
				}
			}
			return nil
		},
	}
}

func fmtCommand(fs afero.Fs) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt file...",
		Short: "Reprint files in canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range args {
				src, err := readSource(fs, name)
				if err != nil {
					return err
				}
				file, err := parser.Parse(name, src)
				if err != nil {
					return errors.Wrapf(err, "%s", name)
				}
				out := printer.File(file)
				if !write {
					fmt.Fprint(cmd.OutOrStdout(), out)
					continue
				}
				if out == src {
					log.Debug().Msgf("%s already canonical", name)
					continue
				}
				if err := afero.WriteFile(fs, name, []byte(out), 0o644); err != nil {
					return errors.Wrapf(err, "failed to write %s", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Rewrite files in place instead of printing")
	return cmd
}
