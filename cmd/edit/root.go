package edit

import (
	"fmt"

	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/ValentinKolb/dSav/lib/savefile"
	"github.com/spf13/cobra"
)

func init() {
	// Add output flags to every command that writes a file
	for _, cmd := range []*cobra.Command{SetCmd, DupCmd, RmCmd, RenameCmd} {
		util.SetupOutputFlags(cmd)
	}
}

// editFunc changes the tree of a loaded file and returns a line describing the change
type editFunc func(t *property.Tree, n *property.Node) (string, error)

// applyEdit loads a file, resolves path, applies fn and saves the result
func applyEdit(input, path string, fn editFunc) error {
	conf := util.GetEditorConfig()
	f, err := util.LoadFile(input, conf)
	if err != nil {
		return err
	}
	msg, err := editFile(f, path, fn)
	if err != nil {
		return err
	}
	target, err := util.SaveFile(f, input, conf)
	if err != nil {
		return err
	}
	fmt.Printf("%s (written to %s)\n", msg, target)
	return nil
}

// editFile resolves path in f and applies fn
func editFile(f *savefile.File, path string, fn editFunc) (string, error) {
	n, err := f.Tree.Find(path)
	if err != nil {
		return "", err
	}
	return fn(f.Tree, n)
}
