package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	smithy "github.com/smithy-gen/sdkgen"
	"github.com/smithy-gen/sdkgen/data"
	"github.com/smithy-gen/sdkgen/partitions"
	"github.com/smithy-gen/sdkgen/pipeline"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCode lets a command signal a distinguished process exit code
// without main needing to know which stage failed.
type exitCode struct {
	code int
	err  error
}

func (e *exitCode) Error() string { return e.err.Error() }
func (e *exitCode) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ec *exitCode
	if as, ok := err.(*exitCode); ok {
		ec = as
	}
	if ec != nil {
		fmt.Fprintln(os.Stderr, "error:", ec.err)
		return ec.code
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "smithy-gen",
		Short: "Generates client SDK source from Smithy 2.0 JSON AST models",
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPartitionsCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var force bool
	var abortOnIssues bool
	var verbose bool
	var dumpAst bool

	cmd := &cobra.Command{
		Use:   "generate <src_dir> <out_dir> [service...]",
		Short: "Generate client SDK source for one or more services from a model directory",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			srcDir, outDir, services := args[0], args[1], args[2:]
			smithy.Verbose = verbose

			policy := smithy.IssuePolicyCollect
			if abortOnIssues {
				policy = smithy.IssuePolicyAbort
			}
			orch, err := pipeline.NewOrchestrator(outDir, force, policy)
			if err != nil {
				return &exitCode{code: 1, err: err}
			}
			defer orch.Logger.Sync()

			ast, err := orch.LoadModels(srcDir)
			if err != nil {
				return &exitCode{code: 1, err: err}
			}
			if dumpAst {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return &exitCode{code: 1, err: err}
				}
				conf := data.NewObject()
				conf.Put("outdir", outDir)
				conf.Put("force", true)
				if err := (&smithy.AstGenerator{}).Generate(ast, conf); err != nil {
					return &exitCode{code: 1, err: err}
				}
			}
			model, sym, err := orch.BuildSymbols(ast)
			if err != nil {
				return &exitCode{code: 2, err: err}
			}
			results, err := orch.Run(context.Background(), model, sym, services)
			if err != nil {
				return &exitCode{code: 3, err: err}
			}
			failed := false
			for _, r := range results {
				if r.Err != nil {
					failed = true
					fmt.Fprintf(os.Stderr, "service %s: %v\n", r.ServiceName, r.Err)
				} else {
					fmt.Printf("generated %s\n", filepath.Join(outDir, r.ServiceName))
				}
			}
			if failed {
				return &exitCode{code: 3, err: fmt.Errorf("one or more services failed to emit")}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing output files")
	cmd.Flags().BoolVar(&abortOnIssues, "abort", false, "abort on the first model issue instead of collecting them")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "dump shape-level debug output while building the model")
	cmd.Flags().BoolVar(&dumpAst, "dump-ast", false, "write the merged model as model.json in out_dir before generating")
	return cmd
}

func newPartitionsCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "partitions <sdk-partitions.json>",
		Short: "Emit the partitions module from an AWS partitions metadata file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return &exitCode{code: 1, err: err}
			}
			file, err := partitions.Load(raw)
			if err != nil {
				return &exitCode{code: 2, err: err}
			}
			if outDir == "" {
				return partitions.Emit(os.Stdout, file)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return &exitCode{code: 1, err: err}
			}
			f, err := os.Create(filepath.Join(outDir, "partitions.zz"))
			if err != nil {
				return &exitCode{code: 1, err: err}
			}
			defer f.Close()
			if err := partitions.Emit(f, file); err != nil {
				return &exitCode{code: 3, err: err}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (defaults to stdout)")
	return cmd
}
