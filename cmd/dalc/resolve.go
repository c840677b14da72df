package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dalc/internal/diag"
	"dalc/internal/project"
	"dalc/internal/sema"
	"dalc/internal/symbols"
	"dalc/internal/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME [TYPE...]",
	Short: "Resolve a call against the function namespace",
	Long: `Resolve picks the function a call NAME(TYPE...) binds to and prints its
signature. With --unit the unit's declarations are registered first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().String("unit", "", "register the declarations of this unit first")
}

func runResolve(cmd *cobra.Command, args []string) error {
	u, set, err := loadBuiltins()
	if err != nil {
		return err
	}
	reg := symbols.NewRegistry(set)

	unitPath, err := cmd.Flags().GetString("unit")
	if err != nil {
		return err
	}
	if unitPath != "" {
		if err := registerUnit(cmd, u, reg, unitPath); err != nil {
			return err
		}
	}

	name := args[0]
	argTypes := make([]*types.Type, 0, len(args)-1)
	for _, expr := range args[1:] {
		t, err := u.Parse(expr)
		if err != nil {
			return err
		}
		argTypes = append(argTypes, t)
	}

	out := cmd.OutOrStdout()
	target := reg.GetCallable(name, argTypes)
	if target == nil {
		fmt.Fprintf(out, "no match for %s\n", symbols.CallKey(name, argTypes))
		for _, sig := range reg.Overloads(name) {
			fmt.Fprintf(out, "  candidate: %s\n", sig.DetailString())
		}
		return errReported
	}
	origin := "builtin"
	if reg.IsUserFunction(target) {
		origin = "user"
	}
	fmt.Fprintf(out, "%s [%s]\n", target.DetailString(), origin)
	return nil
}

// registerUnit checks the unit at path into reg and prints any diagnostics.
func registerUnit(cmd *cobra.Command, u *types.Universe, reg *symbols.Registry, path string) error {
	src, err := project.LoadUnit(path)
	if err != nil {
		return err
	}
	bag := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: bag}
	if _, err := sema.Check(cmd.Context(), reg, sema.BuildUnit(u, src, reporter), reporter); err != nil {
		return err
	}
	for _, d := range bag.Items() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %s: %s\n", d.Primary, d.Severity, d.Code.ID(), d.Message)
	}
	return nil
}
