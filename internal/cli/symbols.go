package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/sograph/sograph/pkg/elfsym"
)

// symbolsCommand creates the symbols command, a direct window onto the
// symbol inspector for one file.
func (c *CLI) symbolsCommand() *cobra.Command {
	var (
		imports bool
		needed  bool
	)

	cmd := &cobra.Command{
		Use:   "symbols <elf-file>",
		Short: "List the exported functions of an ELF file",
		Long: `List dynamic-linking information for a single ELF file.

By default the exported function symbols are printed, sorted by name. With
--imports the undefined (imported) symbols are printed instead; with --needed
the DT_NEEDED sonames, in dynamic-section order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ins := elfsym.FileInspector{}
			switch {
			case needed:
				sonames, err := ins.Needed(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%d needed\n", len(sonames))
				for _, soname := range sonames {
					fmt.Println(soname)
				}
			case imports:
				names, err := ins.ImportedNames(args[0])
				if err != nil {
					return err
				}
				printSorted("imported", names)
			default:
				names, err := ins.ExportedFunctions(args[0])
				if err != nil {
					return err
				}
				printSorted("exported", names)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&imports, "imports", false, "list undefined (imported) symbols instead")
	cmd.Flags().BoolVar(&needed, "needed", false, "list DT_NEEDED sonames instead")
	cmd.MarkFlagsMutuallyExclusive("imports", "needed")

	return cmd
}

func printSorted(kind string, names []string) {
	fmt.Printf("%d %s\n", len(names), kind)
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
}
