package config

import "stackstats/internal/stats"

const (
	DefaultProject  = "openstack"
	DefaultBaseURL  = stats.DefaultBaseURL
	DefaultTimeout  = stats.DefaultTimeout
	DefaultFormat   = "csv"
	DefaultLogLevel = "info"
	DefaultRate     = 0.0
)

var (
	DefaultReleases = []string{
		"Pike", "Ocata", "Newton", "Mitaka", "Liberty", "Kilo",
		"Juno", "Icehouse", "Havana", "Grizzly", "All",
	}

	DefaultCompanies = []string{"All", "Red Hat", "SUSE", "Mirantis", "Canonical", "b1 systems gmbh"}

	// CoreModules are the mature OpenStack projects.
	CoreModules = []string{
		"All", "cinder-group", "glance-group", "keystone-group",
		"neutron-group", "nova-group", "swift-group",
	}

	// ExtraModules are less mature OpenStack projects.
	ExtraModules = []string{
		"All", "aodh", "barbican-group", "ceilometer-group", "designate-group",
		"gnocchi", "heat-group", "horizon-group", "ironic-group", "magnum-group",
		"manila-group", "mistral-group", "monasca-group", "murano-group", "panko",
		"rally-group", "sahara-group", "tempest", "trove-group",
		"openstackclient-group", "oslo-group", "security-group", "documentation-group",
	}

	// DefaultModules is CoreModules followed by ExtraModules, sharing one "All".
	DefaultModules = append(append([]string{}, CoreModules...), ExtraModules[1:]...)
)
