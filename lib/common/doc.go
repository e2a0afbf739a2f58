// Package common provides the configuration and logging shared by the command line
// editor and the codec packages.
//
// The package focuses on:
//   - The editor configuration and its conversion to codec options
//   - Custom logging implementation integrated with the Dragonboat logger registry
//
// Key Components:
//
//   - EditorConfig: header layout sizes, output and export settings and the log
//     level. ToLayout and ToOptions convert it to the options of the savefile package.
//     String renders a sectioned report used by the config command.
//
//   - Logger: a Dragonboat ILogger writing "LEVEL | package | message" lines to
//     stderr. Packages obtain their logger with logger.GetLogger at init time;
//     InitLoggers installs the factory and applies the configured level.
package common
