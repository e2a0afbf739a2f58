package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/dSav/cmd/edit"
	"github.com/ValentinKolb/dSav/cmd/export"
	"github.com/ValentinKolb/dSav/cmd/inspect"
	"github.com/ValentinKolb/dSav/cmd/util"
	"github.com/ValentinKolb/dSav/lib/common"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "dsav",
		Short: "save file editor",
		Long: fmt.Sprintf(`dSav (v%s)

A lossless reader and writer for tagged property save files.
Every property that cannot be interpreted is kept as raw bytes,
so unedited files are written back byte for byte.`, Version),
		SilenceUsage:      true,
		PersistentPreRunE: setupEditor,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dSav",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("dSav v%s\n", Version)
		},
	}
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(util.GetEditorConfig().String())
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(inspect.DumpCmd)
	RootCmd.AddCommand(inspect.GetCmd)
	RootCmd.AddCommand(inspect.VerifyCmd)
	RootCmd.AddCommand(inspect.PerfCmd)
	RootCmd.AddCommand(edit.SetCmd)
	RootCmd.AddCommand(edit.DupCmd)
	RootCmd.AddCommand(edit.RmCmd)
	RootCmd.AddCommand(edit.RenameCmd)
	RootCmd.AddCommand(export.ExportCmd)
	RootCmd.AddCommand(versionCmd)
	RootCmd.AddCommand(configCmd)

	// Add Flags
	util.SetupLayoutFlags(RootCmd)
}

// setupEditor binds the flags of the executed command and configures the loggers
func setupEditor(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(util.GetEditorConfig())
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
