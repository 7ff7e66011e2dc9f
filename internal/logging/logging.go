package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New creates a logger for a component, writing to logs/<component>.log and
// stderr, and returns it with a cleanup func.
func New(component string) (*logrus.Entry, func(), error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := os.MkdirAll("logs", 0o755); err != nil {
		return nil, nil, err
	}
	path := filepath.Join("logs", component+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return logger.WithField("component", component), func() { _ = f.Close() }, nil
}
