package seoforge

import "go.uber.org/zap"

// pkgLog is the logger used by package-level helpers (URL normalization,
// date parsing) that have no component to hang a logger on. The pipeline
// never fails on bad input; it warns here and degrades.
var pkgLog = zap.NewNop()

// SetLogger replaces the package logger. Nil is ignored.
func SetLogger(l *zap.Logger) {
	if l != nil {
		pkgLog = l
	}
}
