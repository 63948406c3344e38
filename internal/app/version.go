package app

const ServiceName = "orientation-service"

// Set via -ldflags during build:
//
//	go build -ldflags="-X 'orientation-service/internal/app.Version=1.0.0'"
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)
