package config

import (
	"github.com/appclacks/slo-server/internal/database"
	"github.com/appclacks/slo-server/internal/http"
	"github.com/appclacks/slo-server/internal/tracing"
)

// SLODefinition declares an extra SLO in the configuration file. It is
// registered at startup, after the default platform catalog.
type SLODefinition struct {
	Name        string            `validate:"required,max=255"`
	Description string            `validate:"omitempty,max=255"`
	Labels      map[string]string
	Target      float64 `validate:"required,gt=0,lte=100"`
	Window      string  `validate:"required"`
	MetricKind  string  `yaml:"metric-kind" validate:"required"`
	Threshold   *float64
	Unit        string
}

type SLO struct {
	Definitions []SLODefinition
}

type Configuration struct {
	HTTP     http.Configuration
	Database database.Configuration
	Tracing  tracing.Configuration
	SLO      SLO
}
