// Package common contains the pieces shared by the benchmark library and the
// command line: the run configuration and the logger setup.
//
// Logging is routed through the dragonboat logger factory so every package can
// obtain a named logger with logger.GetLogger at init time; InitLoggers installs
// the encbench formatting and sets the level afterwards.
package common
