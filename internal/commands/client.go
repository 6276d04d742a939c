package commands

import (
	"fmt"

	"github.com/dmateus/gemweb/internal/api"
	"github.com/dmateus/gemweb/internal/config"
	"github.com/dmateus/gemweb/internal/models"
)

// newClient loads cookies from disk and builds a client for the given model.
// The caller owns the client and must Close it.
func newClient(model models.Model, autoRefresh bool) (*api.Client, error) {
	cookies, err := config.LoadCookies()
	if err != nil {
		return nil, err
	}

	clientOpts := []api.ClientOption{
		api.WithModel(model),
		api.WithAutoRefresh(autoRefresh),
	}

	// Browser refresh also recovers from expired cookies mid-session
	if browserType, enabled := getBrowserRefresh(); enabled {
		clientOpts = append(clientOpts, api.WithBrowserRefresh(browserType))
	}

	client, err := api.NewClient(cookies, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}
