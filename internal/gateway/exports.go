package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Nixie-Tech-LLC/warden/internal/model"
)

var ErrCaseNameRequired = errors.New("case name is required")

// Exports triggers evidence packages on the export service. Building the
// package and its manifest happens server side.
type Exports struct {
	c *Client
}

func (e *Exports) CreateExport(ctx context.Context, req model.ExportRequest) (*model.ExportDescriptor, error) {
	req.CaseName = strings.TrimSpace(req.CaseName)
	if req.CaseName == "" {
		return nil, ErrCaseNameRequired
	}
	if len(req.EventIDs) == 0 {
		return nil, errors.New("at least one event is required")
	}
	var out model.ExportDescriptor
	if err := e.c.do(ctx, http.MethodPost, "/api/export/create", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadURL is where the package for exportID can be fetched.
func (e *Exports) DownloadURL(exportID string) string {
	return e.c.BaseURL + "/api/export/download/" + url.PathEscape(exportID)
}
