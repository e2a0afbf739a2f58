package inspect

import (
	"errors"
	"fmt"
	"os"

	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/property"
	"github.com/ValentinKolb/dSav/lib/savefile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// ErrRoundTrip is returned by verify when the serialized file differs from the input
	ErrRoundTrip = errors.New("round trip mismatch")

	DumpCmd = &cobra.Command{
		Use:   "dump [file]",
		Short: "Prints the property tree of a save file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := util.LoadFile(args[0], util.GetEditorConfig())
			if err != nil {
				return err
			}
			fmt.Printf("version: %s\n", f.Header.Version.String)
			fmt.Printf("compressed: %t\n\n", f.IsCompressed())
			writeTree(os.Stdout, f.Tree, viper.GetInt("depth"))
			fmt.Printf("\n%d properties, %d raw, %d footer bytes\n",
				f.Stats.Properties, f.Stats.Opaque, len(f.Footer))
			return nil
		},
	}
	GetCmd = &cobra.Command{
		Use:   "get [file] [path]",
		Short: "Prints a single property",
		Long: util.WrapString(`Prints a single property. The path is made of display names separated by "/", ` +
			`container elements are addressed as [i], map entries as [i].Key and [i].Value.`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := util.LoadFile(args[0], util.GetEditorConfig())
			if err != nil {
				return err
			}
			n, err := f.Tree.Find(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("path:     %s\n", property.Path(n))
			fmt.Printf("type:     %s\n", n.DisplayType())
			fmt.Printf("value:    %s\n", n.DisplayValue())
			fmt.Printf("editable: %t\n", n.IsEditable())
			if n.IsOpaque() {
				fmt.Printf("raw:      %d bytes\n", len(n.Raw))
			}
			if len(n.Children) > 0 {
				fmt.Println()
				writeTree(os.Stdout, &property.Tree{Roots: n.Children}, 0)
			}
			return nil
		},
	}
	VerifyCmd = &cobra.Command{
		Use:   "verify [file]",
		Short: "Checks that the file is written back byte for byte",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := util.GetEditorConfig()
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			f, err := savefile.Parse(data, conf.ToOptions())
			if err != nil {
				return err
			}

			// the serializer writes uncompressed output, so compare against the inflated body
			expected, _, err := savefile.Inflate(data, conf.ToLayout())
			if err != nil {
				return err
			}
			opts := conf.ToOptions()
			opts.Compress = false
			out, err := savefile.Serialize(f, opts)
			if err != nil {
				return err
			}

			if off := firstDiff(expected, out); off >= 0 {
				return fmt.Errorf("%w: first difference at offset 0x%X (input %d bytes, output %d bytes)",
					ErrRoundTrip, off, len(expected), len(out))
			}
			fmt.Printf("ok: %d bytes, %d properties (%d raw, %d unsupported, %d raw maps)\n",
				len(out), f.Stats.Properties, f.Stats.Opaque, f.Stats.Unsupported, f.Stats.OpaqueMaps)
			return nil
		},
	}
)
