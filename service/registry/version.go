package registry

import (
	"fmt"

	"github.com/viant/omlflow/model/flow"
	"github.com/viant/omlflow/service/dao/flow/dependencies"
)

// VersionFunc computes the version a flow is looked up by on the registry
type VersionFunc func(aFlow *flow.Flow) (string, error)

// ExternalVersion uses the flow external version
func ExternalVersion(aFlow *flow.Flow) (string, error) {
	return aFlow.ExternalVersion, nil
}

// PackageVersion uses the version pinned for pkg in the flow dependencies, formatted as <pkg>_<version>
func PackageVersion(pkg string) VersionFunc {
	return func(aFlow *flow.Flow) (string, error) {
		if aFlow.Dependencies == nil {
			return "", fmt.Errorf("%w: flow %v has no dependencies to resolve %v version", flow.ErrInvalidArgument, aFlow.Name, pkg)
		}
		requirements, err := dependencies.Parse([]byte(*aFlow.Dependencies))
		if err != nil {
			return "", fmt.Errorf("invalid dependencies of flow %v: %w", aFlow.Name, err)
		}
		requirement, ok := requirements.Lookup(pkg)
		if !ok || requirement.Version == "" {
			return "", fmt.Errorf("%w: flow %v does not pin %v", flow.ErrInvalidArgument, aFlow.Name, pkg)
		}
		return pkg + "_" + requirement.Version, nil
	}
}
