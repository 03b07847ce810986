package commands

import (
	"fmt"
	"sync"

	"github.com/mackiedrew/coda-client/internal/constants"
	"github.com/mackiedrew/coda-client/pkg/codaclient"
)

// ConfigPersister implements the auth.ConfigPersister interface.
type ConfigPersister struct {
	mutex sync.Mutex
}

// NewConfigPersister creates a new config persister.
func NewConfigPersister() *ConfigPersister {
	return &ConfigPersister{}
}

// UpdateAPIToken stores token and the API root it belongs to in the config
// file. The public API root is stored as an empty value.
func (p *ConfigPersister) UpdateAPIToken(apiURL, token string) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile()
	if err != nil {
		return err
	}

	config.API = codaclient.NormalizeBaseURL(apiURL)
	if config.API == constants.DefaultBaseURL {
		config.API = ""
	}

	config.Token = token
	stampToken(config)

	if err := saveConfigStruct(config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
