package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ferrolab/mcp-mockserver/internal/config"
	"github.com/ferrolab/mcp-mockserver/internal/mcp"
	"github.com/ferrolab/mcp-mockserver/internal/observer"
	"github.com/ferrolab/mcp-mockserver/internal/stream"
	"github.com/ferrolab/mcp-mockserver/internal/tools"
)

// NewToolbox builds the mock toolbox. Echo is the only tool with real
// behavior; everything else the protocol exposes is static.
func NewToolbox() *mcp.Toolbox {
	return mcp.NewToolbox(
		tools.Echo(),
	)
}

// NewHandler assembles the full HTTP surface: dispatcher, stream endpoint
// and recorder.
func NewHandler(rec observer.Recorder, log *logrus.Entry, pingInterval time.Duration) *mcp.Handler {
	server := mcp.NewServer(NewToolbox())
	sse := stream.NewHandler(log, pingInterval)
	return mcp.NewHandler(server, rec, sse, log)
}

// Run starts the mock server with file-backed capture per cfg. It blocks
// until the listener fails.
func Run(cfg config.Config, addr string, log *logrus.Entry) error {
	rec, err := observer.NewFileRecorder(cfg.RequestLogPath, cfg.ResponseLogPath)
	if err != nil {
		return err
	}
	defer func() { _ = rec.Close() }()

	h := NewHandler(rec, log, stream.DefaultPingInterval)
	return mcp.RunHTTP(h, addr)
}
