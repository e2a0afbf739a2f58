package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/ValentinKolb/dSav/cmd/util"
	libexport "github.com/ValentinKolb/dSav/lib/export"
	"github.com/spf13/cobra"
)

var (
	// ExportCmd converts a save file into a structured snapshot
	ExportCmd = &cobra.Command{
		Use:   "export [file]",
		Short: "Exports the property tree in a structured format",
		Long: util.WrapString(`Exports the property tree of a save file as a snapshot. ` +
			`Raw properties keep their bytes hex encoded, so nothing is lost. ` +
			`Without --out the snapshot is written to stdout.`),
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
)

func init() {
	// add flags
	key := "format"
	ExportCmd.Flags().StringP(key, "f", "json", util.WrapString(fmt.Sprintf("Snapshot format (%s)", strings.Join(libexport.Formats(), ", "))))
	key = "compression"
	ExportCmd.Flags().String(key, "none", util.WrapString("Compression of the snapshot (none, zstd, lz4)"))
	key = "out"
	ExportCmd.Flags().StringP(key, "o", "", util.WrapString("Path of the snapshot file"))
}

func runExport(_ *cobra.Command, args []string) error {
	conf := util.GetEditorConfig()
	compression, err := libexport.ParseCompression(conf.ExportCompression)
	if err != nil {
		return err
	}

	f, err := util.LoadFile(args[0], conf)
	if err != nil {
		return err
	}
	data, err := libexport.Export(f, conf.ExportFormat, compression)
	if err != nil {
		return err
	}

	if conf.Output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := util.WriteFileAtomic(conf.Output, data); err != nil {
		return err
	}
	util.Logger.Infof("exported %s to %s (%s, %s)", args[0], conf.Output, conf.ExportFormat, compression)
	return nil
}
