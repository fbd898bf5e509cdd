package config

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceMode represents the available run modes.
type ServiceMode string

const (
	// ServiceModeSession runs the interactive session flow.
	ServiceModeSession ServiceMode = "session"
	// ServiceModeDevGateway runs the in-memory development gateway.
	ServiceModeDevGateway ServiceMode = "devgateway"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{ServiceModeSession, ServiceModeDevGateway}
}

// ParseServices parses a comma-delimited string of service names and returns
// the enabled services. It validates that all service names are valid and
// returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeSession, ServiceModeDevGateway:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: session, devgateway)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}
