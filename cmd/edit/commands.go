package edit

import (
	"fmt"

	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/spf13/cobra"
)

var (
	SetCmd = &cobra.Command{
		Use:   "set [file] [path] [value]",
		Short: "Sets the value of a property",
		Long: util.WrapString(`Sets the value of a property. Bools accept true, false, 1 and 0. ` +
			`Tuples like vectors and colors are written as comma separated lists, e.g. "1.5, 2".`),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(args[0], args[1], setValue(args[2]))
		},
	}
	DupCmd = &cobra.Command{
		Use:   "dup [file] [path]",
		Short: "Duplicates a property, container element or map entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(args[0], args[1], duplicate)
		},
	}
	RmCmd = &cobra.Command{
		Use:   "rm [file] [path]",
		Short: "Removes a property, container element or map entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(args[0], args[1], remove)
		},
	}
	RenameCmd = &cobra.Command{
		Use:   "rename [file] [path] [name]",
		Short: "Renames a property",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyEdit(args[0], args[1], rename(args[2]))
		},
	}
)

func setValue(value string) editFunc {
	return func(_ *property.Tree, n *property.Node) (string, error) {
		before := n.DisplayValue()
		if err := n.SetValue(value); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s -> %s", property.Path(n), before, n.DisplayValue()), nil
	}
}

func duplicate(t *property.Tree, n *property.Node) (string, error) {
	c, err := t.Duplicate(n)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("duplicated %s as %s", property.Path(n), property.Path(c)), nil
}

func remove(t *property.Tree, n *property.Node) (string, error) {
	path := property.Path(n)
	if err := t.Delete(n); err != nil {
		return "", err
	}
	return fmt.Sprintf("removed %s", path), nil
}

func rename(name string) editFunc {
	return func(_ *property.Tree, n *property.Node) (string, error) {
		before := property.Path(n)
		if err := n.SetName(name); err != nil {
			return "", err
		}
		return fmt.Sprintf("renamed %s to %s", before, property.Path(n)), nil
	}
}
