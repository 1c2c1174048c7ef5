package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"topmart-admin/internal/topmart"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type EndpointsConfig struct {
	Endpoints topmart.Endpoints `yaml:"endpoints"`
}

// LoadEndpointConfig reads API path overrides from a YAML file. A missing
// file yields the default endpoints; paths left out of the file keep their
// defaults.
func LoadEndpointConfig(endpointsFile string) (topmart.Endpoints, error) {
	if endpointsFile == "" {
		return topmart.DefaultEndpoints(), nil
	}

	var endpointsPath string
	if filepath.IsAbs(endpointsFile) {
		endpointsPath = endpointsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return topmart.Endpoints{}, fmt.Errorf("failed to get working directory: %w", err)
		}
		endpointsPath = filepath.Join(wd, endpointsFile)
	}

	data, err := os.ReadFile(endpointsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			zap.L().Debug("No endpoints file, using defaults", zap.String("file", endpointsFile))
			return topmart.DefaultEndpoints(), nil
		}
		return topmart.Endpoints{}, fmt.Errorf("unable to read %s: %w", endpointsFile, err)
	}

	var config EndpointsConfig
	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return topmart.Endpoints{}, fmt.Errorf("unable to parse %s: %w", endpointsFile, err)
	}

	e := config.Endpoints.WithDefaults()
	for name, p := range map[string]string{"approve": e.Approve, "reject": e.Reject} {
		if !strings.Contains(p, "{id}") {
			return topmart.Endpoints{}, fmt.Errorf("%s endpoint %q must contain {id}", name, p)
		}
	}
	return e, nil
}
