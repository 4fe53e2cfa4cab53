// Package logging provides slog loggers with per-module levels.
//
// Records go to stdout (text or JSON) and, when journald is reachable, to the
// systemd journal tagged with SYSLOG_IDENTIFIER=ledseq:
//
//	logging.Initialize(logging.Config{
//		Level:   "info",
//		Format:  "text",
//		Modules: map[string]string{"led": "debug"},
//	})
//	logger := logging.GetLogger("led")
//	logger.Info("Run started", "line", "secondary", "sequence", "Error")
//
// Levels can be changed while running with SetLevel; loggers already handed
// out follow the change.
//
//	journalctl -t ledseq MODULE=led
package logging
