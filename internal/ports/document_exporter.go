package ports

import "dropoff-route-planner/internal/domain"

// Renders one selected route sheet into an opaque document.
type DocumentExporter interface {
	Export(sheet domain.RouteSheet) ([]byte, error)
	ContentType() string
	FileExtension() string
}
