package dispatcher

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/F3-Nation/f3-nation-map-sub001/internal/dispatcher"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
